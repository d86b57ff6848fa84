// Package json provides a JSON serializer for ipc.SchemaCodec.
//
// JSON has no literal for NaN or the infinities; a record carrying one
// fails to encode with ipc.ErrInternal.
package json

import (
	"encoding/json"

	"github.com/jedlimke/ipc"
)

// jsonSerializer implements ipc.Serializer for JSON.
type jsonSerializer struct{}

// New returns a JSON serializer.
func New() ipc.Serializer {
	return &jsonSerializer{}
}

// ContentType returns the MIME type for JSON.
func (s *jsonSerializer) ContentType() string {
	return "application/json"
}

// Marshal encodes v as JSON.
func (s *jsonSerializer) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal decodes JSON data into v.
func (s *jsonSerializer) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
