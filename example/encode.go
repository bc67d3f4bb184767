package example

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of the wire schema (see example.proto).
const (
	fieldExampleFeatures protowire.Number = 1
	fieldFeaturesMap     protowire.Number = 1
	fieldMapKey          protowire.Number = 1
	fieldMapValue        protowire.Number = 2
	fieldBytesList       protowire.Number = 1
	fieldFloatList       protowire.Number = 2
	fieldInt64List       protowire.Number = 3
	fieldListValue       protowire.Number = 1
)

// Marshal encodes the Example in protobuf wire format.
func (e *Example) Marshal() ([]byte, error) {
	return e.AppendMarshal(nil)
}

// AppendMarshal appends the encoding of e to b.
func (e *Example) AppendMarshal(b []byte) ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if b == nil {
		b = make([]byte, 0, e.Size())
	}
	return e.appendTo(b), nil
}

// Size returns the encoded size of e in bytes.
func (e *Example) Size() int {
	if e == nil || e.Features == nil {
		return 0
	}
	return protowire.SizeTag(fieldExampleFeatures) + protowire.SizeBytes(e.Features.size())
}

func (e *Example) appendTo(b []byte) []byte {
	if e == nil || e.Features == nil {
		return b
	}
	b = protowire.AppendTag(b, fieldExampleFeatures, protowire.BytesType)
	b = protowire.AppendVarint(b, uint64(e.Features.size()))
	return e.Features.appendTo(b, e.Names())
}

func (fs *Features) size() int {
	n := 0
	for key, f := range fs.Feature {
		n += protowire.SizeTag(fieldFeaturesMap) + protowire.SizeBytes(entrySize(key, f))
	}
	return n
}

// appendTo writes entries in the order given by names.
func (fs *Features) appendTo(b []byte, names []string) []byte {
	for _, key := range names {
		f := fs.Feature[key]
		b = protowire.AppendTag(b, fieldFeaturesMap, protowire.BytesType)
		b = protowire.AppendVarint(b, uint64(entrySize(key, f)))
		b = protowire.AppendTag(b, fieldMapKey, protowire.BytesType)
		b = protowire.AppendString(b, key)
		b = protowire.AppendTag(b, fieldMapValue, protowire.BytesType)
		b = protowire.AppendVarint(b, uint64(f.size()))
		b = f.appendTo(b)
	}
	return b
}

func entrySize(key string, f *Feature) int {
	return protowire.SizeTag(fieldMapKey) + protowire.SizeBytes(len(key)) +
		protowire.SizeTag(fieldMapValue) + protowire.SizeBytes(f.size())
}

func (f *Feature) size() int {
	switch f.Kind() {
	case KindBytes:
		return protowire.SizeTag(fieldBytesList) + protowire.SizeBytes(f.BytesList.size())
	case KindFloat:
		return protowire.SizeTag(fieldFloatList) + protowire.SizeBytes(f.FloatList.size())
	case KindInt64:
		return protowire.SizeTag(fieldInt64List) + protowire.SizeBytes(f.Int64List.size())
	default:
		return 0
	}
}

func (f *Feature) appendTo(b []byte) []byte {
	switch f.Kind() {
	case KindBytes:
		b = protowire.AppendTag(b, fieldBytesList, protowire.BytesType)
		b = protowire.AppendVarint(b, uint64(f.BytesList.size()))
		return f.BytesList.appendTo(b)
	case KindFloat:
		b = protowire.AppendTag(b, fieldFloatList, protowire.BytesType)
		b = protowire.AppendVarint(b, uint64(f.FloatList.size()))
		return f.FloatList.appendTo(b)
	case KindInt64:
		b = protowire.AppendTag(b, fieldInt64List, protowire.BytesType)
		b = protowire.AppendVarint(b, uint64(f.Int64List.size()))
		return f.Int64List.appendTo(b)
	default:
		return b
	}
}

func (l *BytesList) size() int {
	n := 0
	for _, v := range l.Value {
		n += protowire.SizeTag(fieldListValue) + protowire.SizeBytes(len(v))
	}
	return n
}

func (l *BytesList) appendTo(b []byte) []byte {
	for _, v := range l.Value {
		b = protowire.AppendTag(b, fieldListValue, protowire.BytesType)
		b = protowire.AppendBytes(b, v)
	}
	return b
}

func (l *FloatList) size() int {
	if len(l.Value) == 0 {
		return 0
	}
	return protowire.SizeTag(fieldListValue) + protowire.SizeBytes(4*len(l.Value))
}

func (l *FloatList) appendTo(b []byte) []byte {
	if len(l.Value) == 0 {
		return b
	}
	b = protowire.AppendTag(b, fieldListValue, protowire.BytesType)
	b = protowire.AppendVarint(b, uint64(4*len(l.Value)))
	for _, v := range l.Value {
		b = protowire.AppendFixed32(b, math.Float32bits(v))
	}
	return b
}

func (l *Int64List) packedSize() int {
	n := 0
	for _, v := range l.Value {
		n += protowire.SizeVarint(uint64(v))
	}
	return n
}

func (l *Int64List) size() int {
	if len(l.Value) == 0 {
		return 0
	}
	return protowire.SizeTag(fieldListValue) + protowire.SizeBytes(l.packedSize())
}

func (l *Int64List) appendTo(b []byte) []byte {
	if len(l.Value) == 0 {
		return b
	}
	b = protowire.AppendTag(b, fieldListValue, protowire.BytesType)
	b = protowire.AppendVarint(b, uint64(l.packedSize()))
	for _, v := range l.Value {
		b = protowire.AppendVarint(b, uint64(v))
	}
	return b
}
