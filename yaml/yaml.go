// Package yaml provides a YAML serializer for ipc.SchemaCodec.
package yaml

import (
	"github.com/jedlimke/ipc"
	"gopkg.in/yaml.v3"
)

// yamlSerializer implements ipc.Serializer for YAML.
type yamlSerializer struct{}

// New returns a YAML serializer.
func New() ipc.Serializer {
	return &yamlSerializer{}
}

// ContentType returns the MIME type for YAML.
func (s *yamlSerializer) ContentType() string {
	return "application/yaml"
}

// Marshal encodes v as YAML.
func (s *yamlSerializer) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// Unmarshal decodes YAML data into v.
func (s *yamlSerializer) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}
