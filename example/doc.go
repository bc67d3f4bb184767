// Package example implements the tf.train.Example protocol buffer messages.
//
// An [Example] is a map from feature name to [Feature]; a Feature holds
// exactly one typed list: [BytesList], [FloatList] or [Int64List]. The
// messages are encoded with google.golang.org/protobuf/encoding/protowire
// against the schema in example.proto, so no generated code is needed.
//
// Encoding is deterministic: map entries are written in sorted key order
// and repeated scalars use packed encoding. Decoding accepts packed and
// unpacked scalars and skips unknown fields.
//
//	ex := example.New(map[string]*example.Feature{
//	    "ic50": example.FloatFeature(1.5),
//	})
//	b, _ := ex.Marshal()
//	back, _ := example.Unmarshal(b)
//	back.Get("ic50").Floats() // [1.5]
package example
