// Package ipc encodes and decodes the record exchanged between the ipc
// producer and consumer processes.
//
// A Record carries four independently optional fields: an int32, a float32,
// a text string, and a Kind. Absence is explicit; an absent integer is never
// reported as zero and an absent string is never reported as "".
//
// # Wire Formats
//
// Two interchangeable codec variants are provided:
//
//   - SchemaCodec delegates field layout to a Serializer (protobuf, MessagePack,
//     JSON, YAML, XML, BSON, CBOR) and adds presence and enum range checking
//     on top of it.
//   - TextCodec is a self-contained pipe-delimited format with backslash
//     escaping and strict field-count validation.
//
// Bytes produced by one variant must be decoded by the same variant.
//
// # Basic Usage
//
//	codec := ipc.NewSchemaCodec(proto.New())
//
//	rec := ipc.Record{
//	    Int:  ipc.Some[int32](47),
//	    Text: ipc.Some("Make it so"),
//	    Kind: ipc.Some(ipc.KindC),
//	}
//
//	data, _ := codec.Encode(rec)
//	got, err := codec.Decode(data)
//
// # Text Format
//
//	int|float|text|kind
//
// A literal '|' or '\' inside a field is written as "\|" or "\\". Only
// complete records are representable:
//
//	text := ipc.NewTextCodec()
//	data, _ := text.Encode(rec) // fails with ErrIncomplete, Float is absent
//
// # Errors
//
// Decode failures are typed. Use errors.Is with ErrStructure, ErrFormat,
// ErrRange, or ErrParse, and errors.As with *DecodeError for the offending
// field and input.
//
// # Sealing
//
// Any codec can be wrapped so that its payload is encrypted on the channel:
//
//	enc, _ := ipc.AES(key)
//	sealed := ipc.Seal(codec, enc)
//
// # Serializer Providers
//
// The following serializers are available as subpackages:
//
//   - proto - protobuf wire format (application/x-protobuf)
//   - msgpack - MessagePack encoding (application/msgpack)
//   - json - JSON encoding (application/json)
//   - yaml - YAML encoding (application/yaml)
//   - xml - XML encoding (application/xml)
//   - bson - BSON encoding (application/bson)
//   - cbor - CBOR core deterministic encoding (application/cbor)
package ipc

// Codec converts a Record to bytes and back.
//
// Implementations are stateless and safe for concurrent use. The input
// buffer passed to Decode is not retained after the call returns.
type Codec interface {
	// ContentType identifies the wire format (e.g., "application/x-protobuf").
	ContentType() string

	// Encode renders r as bytes.
	Encode(r Record) ([]byte, error)

	// Decode parses data into a Record.
	Decode(data []byte) (Record, error)
}

// Serializer is a structured-object library that a SchemaCodec delegates
// field encoding to.
type Serializer interface {
	// ContentType returns the MIME type for this serializer (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}
