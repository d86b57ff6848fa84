// Package cbor provides a CBOR serializer for ipc.SchemaCodec.
package cbor

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/jedlimke/ipc"
)

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer and float
// encoding, no indefinite-length items. The same record always produces
// identical bytes.
var encMode cbor.EncMode

// decMode rejects duplicate map keys so a field cannot be set twice.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("cbor: encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic("cbor: decoder initialization failed: " + err.Error())
	}
}

// cborSerializer implements ipc.Serializer for CBOR.
type cborSerializer struct{}

// New returns a CBOR serializer.
func New() ipc.Serializer {
	return &cborSerializer{}
}

// ContentType returns the MIME type for CBOR.
func (s *cborSerializer) ContentType() string {
	return "application/cbor"
}

// Marshal encodes v as CBOR.
func (s *cborSerializer) Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v.
func (s *cborSerializer) Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) for data.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}
