// Package config loads the settings shared by the ipc binaries.
//
// Settings come from defaults, then an optional YAML file, then command
// line flags that were explicitly set.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jedlimke/ipc"
	"github.com/jedlimke/ipc/bson"
	"github.com/jedlimke/ipc/cbor"
	"github.com/jedlimke/ipc/channel"
	"github.com/jedlimke/ipc/json"
	"github.com/jedlimke/ipc/msgpack"
	"github.com/jedlimke/ipc/proto"
	"github.com/jedlimke/ipc/relay"
	"github.com/jedlimke/ipc/xml"
	"github.com/jedlimke/ipc/yaml"
	"github.com/spf13/pflag"
	yamlv3 "gopkg.in/yaml.v3"
)

// Format names a wire format.
type Format string

// Supported formats.
const (
	FormatProto   Format = "proto"
	FormatMsgpack Format = "msgpack"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatXML     Format = "xml"
	FormatBSON    Format = "bson"
	FormatCBOR    Format = "cbor"
	FormatText    Format = "text"
)

// serializers maps schema formats to their serializer constructors.
var serializers = map[Format]func() ipc.Serializer{
	FormatProto:   proto.New,
	FormatMsgpack: msgpack.New,
	FormatJSON:    json.New,
	FormatYAML:    yaml.New,
	FormatXML:     xml.New,
	FormatBSON:    bson.New,
	FormatCBOR:    cbor.New,
}

// Decode error policies.
const (
	PolicySkip = "skip"
	PolicyStop = "stop"
)

// ErrInvalid indicates a configuration value is out of bounds or unknown.
var ErrInvalid = errors.New("invalid configuration")

// Queue configures the message queue.
type Queue struct {
	Name           string `yaml:"name"`
	Capacity       int    `yaml:"capacity"`
	MaxMessageSize int    `yaml:"max_message_size"`
}

// Seal configures payload encryption. An empty Algorithm disables sealing.
type Seal struct {
	Algorithm string `yaml:"algorithm"`
	Key       string `yaml:"key"` // hex encoded
}

// Config is the full binary configuration.
type Config struct {
	Queue         Queue         `yaml:"queue"`
	Format        Format        `yaml:"format"`
	PollInterval  time.Duration `yaml:"poll_interval"`
	OnDecodeError string        `yaml:"on_decode_error"`
	Seal          Seal          `yaml:"seal"`
}

// Default returns the configuration matching the reference system.
func Default() Config {
	return Config{
		Queue: Queue{
			Name:           channel.DefaultName,
			Capacity:       channel.DefaultCapacity,
			MaxMessageSize: channel.MaxMessageSize,
		},
		Format:        FormatProto,
		PollInterval:  relay.DefaultPollInterval,
		OnDecodeError: PolicySkip,
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yamlv3.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	if len(c.Queue.Name) < 2 || c.Queue.Name[0] != '/' {
		return fmt.Errorf("%w: queue name %q must start with '/'", ErrInvalid, c.Queue.Name)
	}
	if c.Queue.Capacity <= 0 {
		return fmt.Errorf("%w: queue capacity must be positive, got %d", ErrInvalid, c.Queue.Capacity)
	}
	if c.Queue.MaxMessageSize <= 0 {
		return fmt.Errorf("%w: max message size must be positive, got %d", ErrInvalid, c.Queue.MaxMessageSize)
	}
	if _, ok := serializers[c.Format]; !ok && c.Format != FormatText {
		return fmt.Errorf("%w: unknown format %q", ErrInvalid, c.Format)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("%w: poll interval must be positive, got %s", ErrInvalid, c.PollInterval)
	}
	if c.OnDecodeError != PolicySkip && c.OnDecodeError != PolicyStop {
		return fmt.Errorf("%w: on_decode_error must be %q or %q, got %q", ErrInvalid, PolicySkip, PolicyStop, c.OnDecodeError)
	}
	if c.Seal.Algorithm != "" {
		if !ipc.IsValidSealAlgo(ipc.SealAlgo(c.Seal.Algorithm)) {
			return fmt.Errorf("%w: unknown seal algorithm %q", ErrInvalid, c.Seal.Algorithm)
		}
		if _, err := hex.DecodeString(c.Seal.Key); err != nil {
			return fmt.Errorf("%w: seal key is not hex: %v", ErrInvalid, err)
		}
	}
	return nil
}

// Codec builds the configured codec, sealed when a seal algorithm is set.
func (c Config) Codec() (ipc.Codec, error) {
	var codec ipc.Codec
	if c.Format == FormatText {
		codec = ipc.NewTextCodec()
	} else {
		newSerializer, ok := serializers[c.Format]
		if !ok {
			return nil, fmt.Errorf("%w: unknown format %q", ErrInvalid, c.Format)
		}
		codec = ipc.Use(newSerializer())
	}

	if c.Seal.Algorithm == "" {
		return codec, nil
	}

	key, err := hex.DecodeString(c.Seal.Key)
	if err != nil {
		return nil, fmt.Errorf("%w: seal key is not hex: %v", ErrInvalid, err)
	}
	enc, err := ipc.NewEncryptor(ipc.SealAlgo(c.Seal.Algorithm), key)
	if err != nil {
		return nil, err
	}
	return ipc.Seal(codec, enc), nil
}

// DecodeErrorPolicy returns the relay policy for OnDecodeError.
func (c Config) DecodeErrorPolicy() relay.DecodeErrorPolicy {
	if c.OnDecodeError == PolicyStop {
		return relay.Stop
	}
	return relay.Skip
}

// Flags holds command line overrides registered by BindFlags.
type Flags struct {
	fs      *pflag.FlagSet
	path    string
	overlay Config
}

// BindFlags registers the shared flags on fs.
func BindFlags(fs *pflag.FlagSet) *Flags {
	d := Default()
	f := &Flags{fs: fs}
	fs.StringVarP(&f.path, "config", "c", "", "path to a YAML config file")
	fs.StringVar(&f.overlay.Queue.Name, "queue", d.Queue.Name, "message queue name")
	fs.IntVar(&f.overlay.Queue.Capacity, "capacity", d.Queue.Capacity, "maximum queued messages")
	fs.IntVar(&f.overlay.Queue.MaxMessageSize, "max-message-size", d.Queue.MaxMessageSize, "maximum message size in bytes")
	fs.StringVarP((*string)(&f.overlay.Format), "format", "f", string(d.Format), "wire format: proto, msgpack, json, yaml, xml, bson, cbor, text")
	fs.DurationVar(&f.overlay.PollInterval, "poll-interval", d.PollInterval, "sleep between empty receive attempts")
	fs.StringVar(&f.overlay.OnDecodeError, "on-decode-error", d.OnDecodeError, "skip or stop on undecodable messages")
	fs.StringVar(&f.overlay.Seal.Algorithm, "seal", "", "payload encryption: aes or xchacha20")
	fs.StringVar(&f.overlay.Seal.Key, "seal-key", "", "hex encoded seal key")
	return f
}

// Resolve loads the config file named by --config, if any, applies the
// flags that were set, and validates the result. Call after fs.Parse.
func (f *Flags) Resolve() (Config, error) {
	cfg := Default()
	if f.path != "" {
		var err error
		if cfg, err = Load(f.path); err != nil {
			return cfg, err
		}
	}

	overrides := map[string]func(){
		"queue":            func() { cfg.Queue.Name = f.overlay.Queue.Name },
		"capacity":         func() { cfg.Queue.Capacity = f.overlay.Queue.Capacity },
		"max-message-size": func() { cfg.Queue.MaxMessageSize = f.overlay.Queue.MaxMessageSize },
		"format":           func() { cfg.Format = f.overlay.Format },
		"poll-interval":    func() { cfg.PollInterval = f.overlay.PollInterval },
		"on-decode-error":  func() { cfg.OnDecodeError = f.overlay.OnDecodeError },
		"seal":             func() { cfg.Seal.Algorithm = f.overlay.Seal.Algorithm },
		"seal-key":         func() { cfg.Seal.Key = f.overlay.Seal.Key },
	}
	for name, apply := range overrides {
		if f.fs.Changed(name) {
			apply()
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
