package tensor

import (
	"fmt"
	"math"
	"reflect"
)

// KindError reports an input element that cannot become the target type.
type KindError struct {
	Kind   reflect.Kind
	Target reflect.Kind
}

func (e *KindError) Error() string {
	return fmt.Sprintf("tensor: cannot convert %s element to %s", e.Kind, e.Target)
}

// shaped is implemented by *Tensor of every element type.
type shaped interface {
	Shape() []int
	Any() any
}

// FromAny converts an array-like value into a Tensor with element type T.
//
// Accepted inputs are numeric scalars, slices and arrays of any nesting
// depth (including []any), pointers to those, and tensors. Booleans are
// accepted by integer targets only.
func FromAny[T Number](v any) (*Tensor[T], error) {
	target := reflect.TypeFor[T]()
	if v == nil {
		return nil, &KindError{Kind: reflect.Invalid, Target: target.Kind()}
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, &KindError{Kind: reflect.Invalid, Target: target.Kind()}
	}

	if t, ok := v.(*Tensor[T]); ok {
		return t, nil
	}

	if s, ok := v.(shaped); ok {
		src := reflect.ValueOf(s.Any())
		data := make([]T, 0, src.Len())
		for i := 0; i < src.Len(); i++ {
			x, err := convert[T](src.Index(i), target)
			if err != nil {
				return nil, err
			}
			data = append(data, x)
		}
		return build(data, s.Shape())
	}

	rv := reflect.ValueOf(v)
	shape, err := inferShape(rv)
	if err != nil {
		return nil, err
	}

	size := 1
	for _, d := range shape {
		size *= d
	}

	data := make([]T, 0, size)
	if err := fill(rv, shape, target, &data); err != nil {
		return nil, err
	}
	return build(data, shape)
}

// build keeps an empty shape as rank 0 instead of New's vector default.
func build[T Number](data []T, shape []int) (*Tensor[T], error) {
	if len(shape) == 0 {
		if len(data) != 1 {
			return nil, fmt.Errorf("%w: scalar with %d elements", ErrShape, len(data))
		}
		return Scalar(data[0]), nil
	}
	return New(data, shape...)
}

// FlattenFloat32 flattens an array-like value into a float32 slice.
func FlattenFloat32(v any) ([]float32, error) {
	t, err := FromAny[float32](v)
	if err != nil {
		return nil, err
	}
	return t.Flatten(), nil
}

// FlattenInt64 flattens an array-like value into an int64 slice.
func FlattenInt64(v any) ([]int64, error) {
	t, err := FromAny[int64](v)
	if err != nil {
		return nil, err
	}
	return t.Flatten(), nil
}

func indirect(rv reflect.Value) reflect.Value {
	for rv.IsValid() && (rv.Kind() == reflect.Interface || rv.Kind() == reflect.Pointer) {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}

func isList(rv reflect.Value) bool {
	k := rv.Kind()
	return k == reflect.Slice || k == reflect.Array
}

// inferShape follows the first element on every axis.
func inferShape(rv reflect.Value) ([]int, error) {
	var shape []int
	for {
		rv = indirect(rv)
		if !rv.IsValid() {
			return nil, &KindError{Kind: reflect.Invalid}
		}
		if !isList(rv) {
			return shape, nil
		}
		shape = append(shape, rv.Len())
		if rv.Len() == 0 {
			return shape, nil
		}
		rv = rv.Index(0)
	}
}

func fill[T Number](rv reflect.Value, shape []int, target reflect.Type, out *[]T) error {
	rv = indirect(rv)
	if len(shape) == 0 {
		if rv.IsValid() && isList(rv) {
			return ErrRagged
		}
		x, err := convert[T](rv, target)
		if err != nil {
			return err
		}
		*out = append(*out, x)
		return nil
	}

	if !rv.IsValid() || !isList(rv) || rv.Len() != shape[0] {
		return ErrRagged
	}
	for i := 0; i < rv.Len(); i++ {
		if err := fill(rv.Index(i), shape[1:], target, out); err != nil {
			return err
		}
	}
	return nil
}

func convert[T Number](rv reflect.Value, target reflect.Type) (T, error) {
	rv = indirect(rv)
	if !rv.IsValid() {
		return 0, &KindError{Kind: reflect.Invalid, Target: target.Kind()}
	}

	isFloat := target.Kind() == reflect.Float32 || target.Kind() == reflect.Float64

	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		if !isFloat {
			return 0, &KindError{Kind: rv.Kind(), Target: target.Kind()}
		}
		return T(rv.Float()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := rv.Int()
		if !isFloat && reflect.Zero(target).OverflowInt(i) {
			return 0, fmt.Errorf("%w: %d does not fit %s", ErrOverflow, i, target.Kind())
		}
		return T(i), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if isFloat {
			return T(u), nil
		}
		if u > math.MaxInt64 || reflect.Zero(target).OverflowInt(int64(u)) {
			return 0, fmt.Errorf("%w: %d does not fit %s", ErrOverflow, u, target.Kind())
		}
		return T(int64(u)), nil
	case reflect.Bool:
		if isFloat {
			return 0, &KindError{Kind: rv.Kind(), Target: target.Kind()}
		}
		if rv.Bool() {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, &KindError{Kind: rv.Kind(), Target: target.Kind()}
	}
}
