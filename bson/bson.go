// Package bson provides a BSON serializer for ipc.SchemaCodec.
//
// Integers are written at the smallest BSON width that holds them, so a
// kind is stored as int32 on the wire. Floats travel as BSON doubles and
// are narrowed back to float32 on decode; NaN and infinities survive.
package bson

import (
	"bytes"

	"github.com/jedlimke/ipc"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
)

// bsonSerializer implements ipc.Serializer for BSON.
type bsonSerializer struct{}

// New returns a BSON serializer.
func New() ipc.Serializer {
	return &bsonSerializer{}
}

// ContentType returns the MIME type for BSON.
func (s *bsonSerializer) ContentType() string {
	return "application/bson"
}

// Marshal encodes v as a BSON document.
func (s *bsonSerializer) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	vw, err := bsonrw.NewBSONValueWriter(&buf)
	if err != nil {
		return nil, err
	}
	enc, err := bson.NewEncoder(vw)
	if err != nil {
		return nil, err
	}
	enc.IntMinSize()
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a BSON document into v.
//
// Doubles are allowed to truncate into float32: a NaN widened on encode
// never compares equal to itself, which the default decoder treats as
// loss of precision.
func (s *bsonSerializer) Unmarshal(data []byte, v any) error {
	dec, err := bson.NewDecoder(bsonrw.NewBSONDocumentReader(data))
	if err != nil {
		return err
	}
	dec.AllowTruncatingDoubles()
	return dec.Decode(v)
}
