// Package msgpack provides a MessagePack serializer for ipc.SchemaCodec.
//
// Integers are written in their most compact MessagePack form.
package msgpack

import (
	"bytes"
	"fmt"
	"math"

	"github.com/jedlimke/ipc"
	"github.com/vmihailenco/msgpack/v5"
)

// msgpackSerializer implements ipc.Serializer for MessagePack.
type msgpackSerializer struct{}

// wideWire mirrors ipc.Wire with the int field widened. The decoder
// narrows integers to the destination width without a range check.
type wideWire struct {
	Int   *int64   `msgpack:"int,omitempty"`
	Float *float32 `msgpack:"float,omitempty"`
	Text  *string  `msgpack:"text,omitempty"`
	Kind  *int64   `msgpack:"kind,omitempty"`
}

// New returns a MessagePack serializer.
func New() ipc.Serializer {
	return &msgpackSerializer{}
}

// ContentType returns the MIME type for MessagePack.
func (s *msgpackSerializer) ContentType() string {
	return "application/msgpack"
}

// Marshal encodes v as MessagePack.
func (s *msgpackSerializer) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.UseCompactInts(true)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes MessagePack data into v. For an *ipc.Wire, an int
// that does not fit in int32 is an error.
func (s *msgpackSerializer) Unmarshal(data []byte, v any) error {
	w, ok := v.(*ipc.Wire)
	if !ok || w == nil {
		return msgpack.Unmarshal(data, v)
	}

	var wide wideWire
	if err := msgpack.Unmarshal(data, &wide); err != nil {
		return err
	}

	*w = ipc.Wire{Float: wide.Float, Text: wide.Text, Kind: wide.Kind}
	if wide.Int != nil {
		if *wide.Int < math.MinInt32 || *wide.Int > math.MaxInt32 {
			return fmt.Errorf("msgpack: int %d overflows int32", *wide.Int)
		}
		i := int32(*wide.Int)
		w.Int = &i
	}
	return nil
}
