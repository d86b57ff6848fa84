// Package xml provides an XML serializer for ipc.SchemaCodec.
//
// XML cannot carry most control characters; text containing them does not
// survive a round trip.
package xml

import (
	"encoding/xml"

	"github.com/jedlimke/ipc"
)

// xmlSerializer implements ipc.Serializer for XML.
type xmlSerializer struct{}

// New returns an XML serializer.
func New() ipc.Serializer {
	return &xmlSerializer{}
}

// ContentType returns the MIME type for XML.
func (s *xmlSerializer) ContentType() string {
	return "application/xml"
}

// Marshal encodes v as XML.
func (s *xmlSerializer) Marshal(v any) ([]byte, error) {
	return xml.Marshal(v)
}

// Unmarshal decodes XML data into v.
func (s *xmlSerializer) Unmarshal(data []byte, v any) error {
	return xml.Unmarshal(data, v)
}
