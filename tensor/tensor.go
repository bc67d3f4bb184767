package tensor

import (
	"errors"
	"fmt"
)

// Number is the set of element types a Tensor can hold.
type Number interface {
	~int32 | ~int64 | ~float32 | ~float64
}

var (
	// ErrShape is returned when a shape does not describe the data length.
	ErrShape = errors.New("tensor: shape does not match data length")
	// ErrRagged is returned when nested inputs have unequal lengths on one axis.
	ErrRagged = errors.New("tensor: ragged nested array")
	// ErrOverflow is returned when an integer does not fit the element type.
	ErrOverflow = errors.New("tensor: integer overflow")
)

// Tensor is a dense row-major array.
type Tensor[T Number] struct {
	shape []int
	data  []T
}

// New wraps data with the given shape. Without a shape the tensor is a
// vector of len(data) elements.
func New[T Number](data []T, shape ...int) (*Tensor[T], error) {
	if len(shape) == 0 {
		shape = []int{len(data)}
	}

	size := 1
	for _, d := range shape {
		if d < 0 {
			return nil, fmt.Errorf("%w: negative dimension %d", ErrShape, d)
		}
		size *= d
	}
	if size != len(data) {
		return nil, fmt.Errorf("%w: shape %v holds %d elements, got %d", ErrShape, shape, size, len(data))
	}

	return &Tensor[T]{
		shape: append([]int(nil), shape...),
		data:  data,
	}, nil
}

// MustNew is like New but panics on error. Intended for tests and literals.
func MustNew[T Number](data []T, shape ...int) *Tensor[T] {
	t, err := New(data, shape...)
	if err != nil {
		panic(err)
	}
	return t
}

// Scalar returns a rank-0 tensor holding v.
func Scalar[T Number](v T) *Tensor[T] {
	return &Tensor[T]{shape: []int{}, data: []T{v}}
}

// Shape returns a copy of the tensor shape.
func (t *Tensor[T]) Shape() []int {
	return append([]int(nil), t.shape...)
}

// Rank returns the number of dimensions.
func (t *Tensor[T]) Rank() int {
	return len(t.shape)
}

// Len returns the total number of elements.
func (t *Tensor[T]) Len() int {
	return len(t.data)
}

// Data returns the backing slice without copying.
func (t *Tensor[T]) Data() []T {
	return t.data
}

// Flatten returns a row-major copy of all elements.
func (t *Tensor[T]) Flatten() []T {
	out := make([]T, len(t.data))
	copy(out, t.data)
	return out
}

// Rows returns the length of the first axis. A scalar counts as one row.
func (t *Tensor[T]) Rows() int {
	if len(t.shape) == 0 {
		return 1
	}
	return t.shape[0]
}

// Width returns the number of elements in one row.
func (t *Tensor[T]) Width() int {
	if len(t.shape) == 0 {
		return 1
	}
	w := 1
	for _, d := range t.shape[1:] {
		w *= d
	}
	return w
}

// Row returns the flattened elements of row i. The result aliases the
// tensor data and has its capacity clipped to the row.
func (t *Tensor[T]) Row(i int) []T {
	w := t.Width()
	return t.data[i*w : (i+1)*w : (i+1)*w]
}

// Any returns the backing slice as an untyped value. It lets FromAny
// consume tensors of any element type.
func (t *Tensor[T]) Any() any {
	return t.data
}

// Convert copies t into a tensor with element type U.
func Convert[U, T Number](t *Tensor[T]) *Tensor[U] {
	out := make([]U, len(t.data))
	for i, v := range t.data {
		out[i] = U(v)
	}
	return &Tensor[U]{shape: t.Shape(), data: out}
}
