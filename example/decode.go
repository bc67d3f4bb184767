package example

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Unmarshal decodes an Example from protobuf wire format.
func Unmarshal(b []byte) (*Example, error) {
	e := &Example{}
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num != fieldExampleFeatures || typ != protowire.BytesType {
			return nil
		}
		if e.Features == nil {
			e.Features = &Features{Feature: make(map[string]*Feature)}
		}
		// Repeated occurrences of a message field merge.
		return e.Features.unmarshal(v)
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// fieldFunc receives one field. For BytesType v is the length-delimited
// payload; for scalar types v is the raw encoded value.
type fieldFunc func(num protowire.Number, typ protowire.Type, v []byte) error

func consumeFields(b []byte, fn fieldFunc) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %w", ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]

		var v []byte
		if typ == protowire.BytesType {
			payload, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return fmt.Errorf("%w: field %d: %w", ErrMalformed, num, protowire.ParseError(m))
			}
			v, n = payload, m
		} else {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return fmt.Errorf("%w: field %d: %w", ErrMalformed, num, protowire.ParseError(n))
			}
			v = b[:n]
		}
		b = b[n:]

		if err := fn(num, typ, v); err != nil {
			return err
		}
	}
	return nil
}

func (fs *Features) unmarshal(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num != fieldFeaturesMap || typ != protowire.BytesType {
			return nil
		}
		var (
			key string
			f   = &Feature{}
		)
		err := consumeFields(v, func(num protowire.Number, typ protowire.Type, v []byte) error {
			switch {
			case num == fieldMapKey && typ == protowire.BytesType:
				key = string(v)
			case num == fieldMapValue && typ == protowire.BytesType:
				f = &Feature{}
				return f.unmarshal(v)
			}
			return nil
		})
		if err != nil {
			return err
		}
		fs.Feature[key] = f
		return nil
	})
}

func (f *Feature) unmarshal(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if typ != protowire.BytesType {
			return nil
		}
		// Oneof: the last kind on the wire wins.
		switch num {
		case fieldBytesList:
			l := &BytesList{}
			if err := l.unmarshal(v); err != nil {
				return err
			}
			*f = Feature{BytesList: l}
		case fieldFloatList:
			l := &FloatList{}
			if err := l.unmarshal(v); err != nil {
				return err
			}
			*f = Feature{FloatList: l}
		case fieldInt64List:
			l := &Int64List{}
			if err := l.unmarshal(v); err != nil {
				return err
			}
			*f = Feature{Int64List: l}
		}
		return nil
	})
}

func (l *BytesList) unmarshal(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == fieldListValue && typ == protowire.BytesType {
			l.Value = append(l.Value, append([]byte{}, v...))
		}
		return nil
	})
}

func (l *FloatList) unmarshal(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num != fieldListValue {
			return nil
		}
		switch typ {
		case protowire.BytesType:
			if len(v)%4 != 0 {
				return fmt.Errorf("%w: packed float list of %d bytes", ErrMalformed, len(v))
			}
			if l.Value == nil {
				l.Value = make([]float32, 0, len(v)/4)
			}
			for len(v) > 0 {
				bits, n := protowire.ConsumeFixed32(v)
				l.Value = append(l.Value, math.Float32frombits(bits))
				v = v[n:]
			}
		case protowire.Fixed32Type:
			bits, _ := protowire.ConsumeFixed32(v)
			l.Value = append(l.Value, math.Float32frombits(bits))
		}
		return nil
	})
}

func (l *Int64List) unmarshal(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num != fieldListValue {
			return nil
		}
		switch typ {
		case protowire.BytesType:
			for len(v) > 0 {
				x, n := protowire.ConsumeVarint(v)
				if n < 0 {
					return fmt.Errorf("%w: packed int64 list: %w", ErrMalformed, protowire.ParseError(n))
				}
				l.Value = append(l.Value, int64(x))
				v = v[n:]
			}
		case protowire.VarintType:
			x, _ := protowire.ConsumeVarint(v)
			l.Value = append(l.Value, int64(x))
		}
		return nil
	})
}
