package ipc

import "encoding/xml"

// Wire is the schema object handed to a Serializer.
//
// A nil pointer is an absent field and is omitted from the encoded bytes;
// serializers never write a default in its place. Kind travels as a raw
// int64 so that no serializer narrows an oversized value into a defined
// kind; range checking happens after Unmarshal.
//
// The protobuf tags match the IPCData message used on the wire:
//
//	message IPCData {
//	    optional int32  the_int    = 1;
//	    optional float  the_float  = 2;
//	    optional string the_string = 3;
//	    optional Type   the_type   = 4;
//	}
type Wire struct {
	XMLName xml.Name `json:"-" yaml:"-" msgpack:"-" bson:"-" cbor:"-" xml:"record"`
	Int     *int32   `json:"int,omitempty" xml:"int,omitempty" yaml:"int,omitempty" msgpack:"int,omitempty" bson:"int,omitempty" cbor:"1,keyasint,omitempty" protobuf:"varint,1,opt,name=the_int"`
	Float   *float32 `json:"float,omitempty" xml:"float,omitempty" yaml:"float,omitempty" msgpack:"float,omitempty" bson:"float,omitempty" cbor:"2,keyasint,omitempty" protobuf:"fixed32,2,opt,name=the_float"`
	Text    *string  `json:"text,omitempty" xml:"text,omitempty" yaml:"text,omitempty" msgpack:"text,omitempty" bson:"text,omitempty" cbor:"3,keyasint,omitempty" protobuf:"bytes,3,opt,name=the_string"`
	Kind    *int64   `json:"kind,omitempty" xml:"kind,omitempty" yaml:"kind,omitempty" msgpack:"kind,omitempty" bson:"kind,omitempty" cbor:"4,keyasint,omitempty" protobuf:"varint,4,opt,name=the_type,enum=IPCData_Type"`
}

// SchemaCodec encodes Records through a Serializer.
//
// Presence is carried by the Serializer; SchemaCodec adds the enum range
// check the Serializer does not perform.
type SchemaCodec struct {
	serializer Serializer
}

// NewSchemaCodec returns a SchemaCodec delegating to s.
func NewSchemaCodec(s Serializer) *SchemaCodec {
	return &SchemaCodec{serializer: s}
}

// ContentType returns the Serializer's content type.
func (c *SchemaCodec) ContentType() string {
	return c.serializer.ContentType()
}

// Encode sets each present field on a Wire and serializes it.
// A present Kind outside the enumeration fails with ErrRange; a Serializer
// failure is reported as ErrInternal.
func (c *SchemaCodec) Encode(r Record) ([]byte, error) {
	w, err := toWire(r)
	if err != nil {
		return nil, err
	}

	data, err := c.serializer.Marshal(&w)
	if err != nil {
		return nil, newEncodeError(ErrInternal, "", err)
	}
	return data, nil
}

// Decode unmarshals data and validates the enumeration field.
// Malformed bytes fail with ErrParse; an out-of-range Kind fails with ErrRange.
func (c *SchemaCodec) Decode(data []byte) (Record, error) {
	var w Wire
	if err := c.serializer.Unmarshal(data, &w); err != nil {
		return Record{}, newDecodeError(ErrParse, "", indexNone, string(data), err)
	}
	return fromWire(w)
}

// toWire copies present fields into a Wire.
func toWire(r Record) (Wire, error) {
	w := Wire{
		Int:   optionalPtr(r.Int),
		Float: optionalPtr(r.Float),
		Text:  optionalPtr(r.Text),
	}
	if k, ok := r.Kind.Get(); ok {
		if !k.Valid() {
			return Wire{}, newEncodeError(ErrRange, fieldKind, nil)
		}
		raw := int64(k)
		w.Kind = &raw
	}
	return w, nil
}

// fromWire builds a Record from a decoded Wire, rejecting undefined kinds.
func fromWire(w Wire) (Record, error) {
	r := Record{
		Int:   optionalFrom(w.Int),
		Float: optionalFrom(w.Float),
		Text:  optionalFrom(w.Text),
	}
	if w.Kind != nil {
		k, err := KindFromInt(*w.Kind)
		if err != nil {
			return Record{}, err
		}
		r.Kind = Some(k)
	}
	return r, nil
}
