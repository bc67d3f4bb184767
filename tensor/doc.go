// Package tensor provides dense, row-major numeric arrays and the
// flattening rules used to turn array-like Go values into feature lists.
//
// A [Tensor] pairs a shape with a flat backing slice. Its first axis is the
// row axis: [Tensor.Row] returns the contiguous elements of one sample,
// which is how the three parallel dataset columns are sliced per row.
//
// [FromAny] accepts scalars, slices, arrays (of any nesting), []any and
// other tensors, and flattens them in row-major order. Nothing is
// reordered beyond collapsing dimensions:
//
//	t, _ := tensor.FromAny[float32]([][]float64{{1, 2}, {3, 4}})
//	t.Shape()   // [2 2]
//	t.Flatten() // [1 2 3 4]
//
// Float targets accept integer inputs. Integer targets reject floating
// point inputs with a [*KindError] instead of truncating them.
package tensor
