package example

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrMalformed is returned when the input is not a valid Example encoding.
	ErrMalformed = errors.New("example: malformed message")
	// ErrMultipleKinds is returned when a Feature has more than one list set.
	ErrMultipleKinds = errors.New("example: feature has more than one kind set")
)

// Kind identifies which list a Feature carries.
type Kind int

const (
	// KindNone is a Feature with no list set.
	KindNone Kind = iota
	// KindBytes is a Feature carrying a BytesList.
	KindBytes
	// KindFloat is a Feature carrying a FloatList.
	KindFloat
	// KindInt64 is a Feature carrying an Int64List.
	KindInt64
)

func (k Kind) String() string {
	switch k {
	case KindBytes:
		return "bytes_list"
	case KindFloat:
		return "float_list"
	case KindInt64:
		return "int64_list"
	default:
		return "none"
	}
}

// BytesList holds a list of byte strings.
type BytesList struct {
	Value [][]byte
}

// FloatList holds a list of 32-bit floats.
type FloatList struct {
	Value []float32
}

// Int64List holds a list of 64-bit signed integers.
type Int64List struct {
	Value []int64
}

// Feature holds one typed list. At most one field may be set.
type Feature struct {
	BytesList *BytesList
	FloatList *FloatList
	Int64List *Int64List
}

// FloatFeature returns a Feature holding values as a FloatList.
func FloatFeature(values ...float32) *Feature {
	return &Feature{FloatList: &FloatList{Value: values}}
}

// Int64Feature returns a Feature holding values as an Int64List.
func Int64Feature(values ...int64) *Feature {
	return &Feature{Int64List: &Int64List{Value: values}}
}

// BytesFeature returns a Feature holding values as a BytesList.
func BytesFeature(values ...[]byte) *Feature {
	return &Feature{BytesList: &BytesList{Value: values}}
}

// Kind reports which list is set.
func (f *Feature) Kind() Kind {
	if f == nil {
		return KindNone
	}
	switch {
	case f.BytesList != nil:
		return KindBytes
	case f.FloatList != nil:
		return KindFloat
	case f.Int64List != nil:
		return KindInt64
	default:
		return KindNone
	}
}

// Len returns the number of values in the list that is set.
func (f *Feature) Len() int {
	switch f.Kind() {
	case KindBytes:
		return len(f.BytesList.Value)
	case KindFloat:
		return len(f.FloatList.Value)
	case KindInt64:
		return len(f.Int64List.Value)
	default:
		return 0
	}
}

// Floats returns the FloatList values, or nil if f is not a float feature.
func (f *Feature) Floats() []float32 {
	if f.Kind() != KindFloat {
		return nil
	}
	return f.FloatList.Value
}

// Int64s returns the Int64List values, or nil if f is not an int64 feature.
func (f *Feature) Int64s() []int64 {
	if f.Kind() != KindInt64 {
		return nil
	}
	return f.Int64List.Value
}

// Bytes returns the BytesList values, or nil if f is not a bytes feature.
func (f *Feature) Bytes() [][]byte {
	if f.Kind() != KindBytes {
		return nil
	}
	return f.BytesList.Value
}

func (f *Feature) validate() error {
	if f == nil {
		return nil
	}
	n := 0
	if f.BytesList != nil {
		n++
	}
	if f.FloatList != nil {
		n++
	}
	if f.Int64List != nil {
		n++
	}
	if n > 1 {
		return ErrMultipleKinds
	}
	return nil
}

// Features is a map from feature name to Feature.
type Features struct {
	Feature map[string]*Feature
}

// Example is a single training sample.
type Example struct {
	Features *Features
}

// New returns an Example holding the given features.
func New(features map[string]*Feature) *Example {
	return &Example{Features: &Features{Feature: features}}
}

// Get returns the named feature, or nil.
func (e *Example) Get(name string) *Feature {
	if e == nil || e.Features == nil {
		return nil
	}
	return e.Features.Feature[name]
}

// Names returns the feature names in sorted order.
func (e *Example) Names() []string {
	if e == nil || e.Features == nil {
		return nil
	}
	names := make([]string, 0, len(e.Features.Feature))
	for name := range e.Features.Feature {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks that every feature carries at most one list.
func (e *Example) Validate() error {
	for _, name := range e.Names() {
		if err := e.Features.Feature[name].validate(); err != nil {
			return fmt.Errorf("feature %q: %w", name, err)
		}
	}
	return nil
}
