package tensor

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("DefaultVector", func(t *testing.T) {
		tt, err := New([]float32{1, 2, 3})
		require.NoError(t, err)
		assert.Equal(t, []int{3}, tt.Shape())
		assert.Equal(t, 3, tt.Rows())
		assert.Equal(t, 1, tt.Width())
	})

	t.Run("Matrix", func(t *testing.T) {
		tt, err := New([]int64{1, 2, 3, 4, 5, 6}, 2, 3)
		require.NoError(t, err)
		assert.Equal(t, 2, tt.Rank())
		assert.Equal(t, 2, tt.Rows())
		assert.Equal(t, 3, tt.Width())
		assert.Equal(t, []int64{4, 5, 6}, tt.Row(1))
	})

	t.Run("ShapeMismatch", func(t *testing.T) {
		_, err := New([]float32{1, 2, 3}, 2, 2)
		assert.ErrorIs(t, err, ErrShape)
	})

	t.Run("NegativeDimension", func(t *testing.T) {
		_, err := New([]float32{}, -1)
		assert.ErrorIs(t, err, ErrShape)
	})

	t.Run("ZeroRows", func(t *testing.T) {
		tt, err := New([]float32{}, 0, 7)
		require.NoError(t, err)
		assert.Equal(t, 0, tt.Rows())
		assert.Equal(t, 7, tt.Width())
	})
}

func TestRowIsClipped(t *testing.T) {
	tt := MustNew([]float32{1, 2, 3, 4}, 2, 2)

	row := tt.Row(0)
	assert.Equal(t, 2, cap(row))

	row = append(row, 99)
	assert.Equal(t, []float32{3, 4}, tt.Row(1), "append must not clobber the next row")
}

func TestScalar(t *testing.T) {
	s := Scalar[float32](1.5)
	assert.Equal(t, 0, s.Rank())
	assert.Equal(t, 1, s.Rows())
	assert.Equal(t, []float32{1.5}, s.Flatten())
}

func TestFlattenCopies(t *testing.T) {
	data := []float32{1, 2}
	tt := MustNew(data)
	flat := tt.Flatten()
	flat[0] = 42
	assert.Equal(t, float32(1), data[0])
}

func TestConvert(t *testing.T) {
	tt := MustNew([]float64{1.25, -2}, 2, 1)
	f := Convert[float32](tt)
	assert.Equal(t, []int{2, 1}, f.Shape())
	assert.Equal(t, []float32{1.25, -2}, f.Data())
}

func TestFromAny(t *testing.T) {
	tests := []struct {
		name  string
		in    any
		shape []int
		want  []float32
	}{
		{"Scalar", 1.5, nil, []float32{1.5}},
		{"IntScalar", 3, nil, []float32{3}},
		{"Vector", []float64{0.1, 0.2, 0.3}, []int{3}, []float32{0.1, 0.2, 0.3}},
		{"Matrix", [][]float32{{1, 2}, {3, 4}, {5, 6}}, []int{3, 2}, []float32{1, 2, 3, 4, 5, 6}},
		{"Array", [2][2]int{{1, 2}, {3, 4}}, []int{2, 2}, []float32{1, 2, 3, 4}},
		{"AnySlice", []any{1, 2.5, uint8(3)}, []int{3}, []float32{1, 2.5, 3}},
		{"Empty", []float32{}, []int{0}, []float32{}},
		{"Pointer", &[]float32{7}, []int{1}, []float32{7}},
		{"Tensor", MustNew([]int64{1, 2, 3, 4}, 2, 2), []int{2, 2}, []float32{1, 2, 3, 4}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tt, err := FromAny[float32](tc.in)
			require.NoError(t, err)
			if tc.shape == nil {
				assert.Equal(t, 0, tt.Rank())
			} else {
				assert.Equal(t, tc.shape, tt.Shape())
			}
			assert.Equal(t, tc.want, tt.Flatten())
		})
	}
}

func TestFromAny_SameTypeIsNotCopied(t *testing.T) {
	in := MustNew([]float32{1, 2})
	out, err := FromAny[float32](in)
	require.NoError(t, err)
	assert.Same(t, in, out)
}

func TestFromAny_Errors(t *testing.T) {
	t.Run("Ragged", func(t *testing.T) {
		_, err := FromAny[float32]([][]float32{{1, 2}, {3}})
		assert.ErrorIs(t, err, ErrRagged)
	})

	t.Run("MixedDepth", func(t *testing.T) {
		_, err := FromAny[float32]([]any{1.0, []float32{2}})
		assert.ErrorIs(t, err, ErrRagged)
	})

	t.Run("NonNumeric", func(t *testing.T) {
		_, err := FromAny[float32]([]string{"a"})
		var ke *KindError
		require.ErrorAs(t, err, &ke)
		assert.Equal(t, reflect.String, ke.Kind)
		assert.Equal(t, reflect.Float32, ke.Target)
	})

	t.Run("Nil", func(t *testing.T) {
		_, err := FromAny[float32](nil)
		var ke *KindError
		assert.ErrorAs(t, err, &ke)
	})

	t.Run("NilTensor", func(t *testing.T) {
		_, err := FromAny[float32]((*Tensor[float32])(nil))
		var ke *KindError
		require.ErrorAs(t, err, &ke)
		assert.Equal(t, reflect.Invalid, ke.Kind)

		_, err = FromAny[float32]((*Tensor[int64])(nil))
		require.ErrorAs(t, err, &ke)

		_, err = FlattenFloat32((*Tensor[float32])(nil))
		assert.ErrorAs(t, err, &ke)

		_, err = FlattenInt64((*Tensor[int64])(nil))
		assert.ErrorAs(t, err, &ke)
	})

	t.Run("FloatToInt", func(t *testing.T) {
		_, err := FromAny[int64]([]float64{1.5})
		var ke *KindError
		require.ErrorAs(t, err, &ke)
		assert.Equal(t, reflect.Float64, ke.Kind)
	})

	t.Run("BoolToFloat", func(t *testing.T) {
		_, err := FromAny[float32](true)
		var ke *KindError
		assert.ErrorAs(t, err, &ke)
	})

	t.Run("Overflow", func(t *testing.T) {
		_, err := FromAny[int64](uint64(1 << 63))
		assert.ErrorIs(t, err, ErrOverflow)

		_, err = FromAny[int32](int64(1 << 40))
		assert.ErrorIs(t, err, ErrOverflow)
	})
}

func TestFlattenInt64(t *testing.T) {
	got, err := FlattenInt64([][]int{{4, 5}, {6, 7}})
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 5, 6, 7}, got)

	got, err = FlattenInt64([]bool{true, false})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 0}, got)
}

func TestFlattenFloat32(t *testing.T) {
	got, err := FlattenFloat32([][][]float64{{{1}, {2}}, {{3}, {4}}})
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3, 4}, got)
}
