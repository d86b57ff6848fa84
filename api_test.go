package ipc_test

import (
	"encoding/json"
	"errors"

	"github.com/jedlimke/ipc"
)

// testSerializer is a simple JSON serializer for testing without importing ipc/json.
type testSerializer struct{}

func (s *testSerializer) ContentType() string { return "application/json" }

func (s *testSerializer) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (s *testSerializer) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// failingSerializer fails every call.
type failingSerializer struct{}

var errSerializer = errors.New("serializer failure")

func (s *failingSerializer) ContentType() string { return "application/x-failing" }

func (s *failingSerializer) Marshal(any) ([]byte, error) { return nil, errSerializer }

func (s *failingSerializer) Unmarshal([]byte, any) error { return errSerializer }

var (
	_ ipc.Codec      = (*ipc.SchemaCodec)(nil)
	_ ipc.Codec      = (*ipc.TextCodec)(nil)
	_ ipc.Serializer = (*testSerializer)(nil)
)

// full returns a complete Record.
func full(i int32, f float32, s string, k ipc.Kind) ipc.Record {
	return ipc.Record{
		Int:   ipc.Some(i),
		Float: ipc.Some(f),
		Text:  ipc.Some(s),
		Kind:  ipc.Some(k),
	}
}
