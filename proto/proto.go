// Package proto provides a protobuf serializer for ipc.SchemaCodec.
//
// The wire layout is read from the `protobuf` struct tags on ipc.Wire, so
// the bytes are interchangeable with any protobuf implementation of the
// IPCData message. Only ipc.Wire values are supported.
package proto

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/jedlimke/ipc"
	"github.com/zoobzio/sentinel"
	"google.golang.org/protobuf/encoding/protowire"
)

// tagName is the struct tag carrying "<wiretype>,<number>,..." descriptors.
const tagName = "protobuf"

func init() {
	sentinel.Tag(tagName)
}

// ErrUnsupportedType indicates a value other than ipc.Wire was passed.
var ErrUnsupportedType = errors.New("proto: unsupported type")

// fieldPlan describes how one Wire field maps to the protobuf wire format.
type fieldPlan struct {
	index []int            // reflect.Value.FieldByIndex access path
	name  string           // field name for error messages
	num   protowire.Number // protobuf field number
	typ   protowire.Type   // protobuf wire type
	kind  reflect.Kind     // kind of the pointed-to value
}

// messagePlan holds the field plans of ipc.Wire ordered by field number.
type messagePlan struct {
	fields   []fieldPlan
	byNumber map[protowire.Number]int
}

var (
	planOnce sync.Once
	plan     *messagePlan
	planErr  error
)

// getPlan builds the ipc.Wire plan once and caches the result.
func getPlan() (*messagePlan, error) {
	planOnce.Do(func() {
		plan, planErr = buildPlan()
	})
	return plan, planErr
}

// buildPlan scans ipc.Wire struct tags into a messagePlan.
func buildPlan() (*messagePlan, error) {
	spec := sentinel.Scan[ipc.Wire]()
	p := &messagePlan{byNumber: make(map[protowire.Number]int)}

	for _, field := range spec.Fields {
		tag, ok := field.Tags[tagName]
		if !ok {
			continue
		}
		if field.Kind != sentinel.KindPointer {
			return nil, fmt.Errorf("proto: field %s must be a pointer for optional presence", field.Name)
		}

		num, typ, err := parseTag(tag)
		if err != nil {
			return nil, fmt.Errorf("proto: field %s: %w", field.Name, err)
		}

		kind := field.ReflectType.Elem().Kind()
		if !compatible(typ, kind) {
			return nil, fmt.Errorf("proto: field %s: wire type %d cannot carry %s", field.Name, typ, kind)
		}
		if _, dup := p.byNumber[num]; dup {
			return nil, fmt.Errorf("proto: field %s: duplicate field number %d", field.Name, num)
		}

		p.byNumber[num] = len(p.fields)
		p.fields = append(p.fields, fieldPlan{
			index: field.Index,
			name:  field.Name,
			num:   num,
			typ:   typ,
			kind:  kind,
		})
	}

	sort.Slice(p.fields, func(i, j int) bool { return p.fields[i].num < p.fields[j].num })
	for i, f := range p.fields {
		p.byNumber[f.num] = i
	}
	return p, nil
}

// parseTag reads the wire type and field number from a protobuf tag.
func parseTag(tag string) (protowire.Number, protowire.Type, error) {
	parts := strings.Split(tag, ",")
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("malformed tag %q", tag)
	}

	var typ protowire.Type
	switch parts[0] {
	case "varint":
		typ = protowire.VarintType
	case "fixed32":
		typ = protowire.Fixed32Type
	case "bytes":
		typ = protowire.BytesType
	default:
		return 0, 0, fmt.Errorf("unsupported wire type %q", parts[0])
	}

	n, err := strconv.ParseInt(parts[1], 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid field number %q", parts[1])
	}
	num := protowire.Number(n)
	if !num.IsValid() {
		return 0, 0, fmt.Errorf("invalid field number %d", n)
	}
	return num, typ, nil
}

// compatible reports whether a wire type can carry values of kind.
func compatible(typ protowire.Type, kind reflect.Kind) bool {
	switch typ {
	case protowire.VarintType:
		return kind == reflect.Int32 || kind == reflect.Int64
	case protowire.Fixed32Type:
		return kind == reflect.Float32
	case protowire.BytesType:
		return kind == reflect.String
	}
	return false
}

// protoSerializer implements ipc.Serializer for the protobuf wire format.
type protoSerializer struct{}

// New returns a protobuf serializer.
func New() ipc.Serializer {
	return &protoSerializer{}
}

// ContentType returns the MIME type for protobuf.
func (s *protoSerializer) ContentType() string {
	return "application/x-protobuf"
}

// Marshal encodes an ipc.Wire. Set fields are written in field-number
// order; nil fields are omitted.
func (s *protoSerializer) Marshal(v any) ([]byte, error) {
	var rv reflect.Value
	switch w := v.(type) {
	case ipc.Wire:
		rv = reflect.ValueOf(w)
	case *ipc.Wire:
		if w == nil {
			return nil, fmt.Errorf("%w: nil *ipc.Wire", ErrUnsupportedType)
		}
		rv = reflect.ValueOf(w).Elem()
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}

	p, err := getPlan()
	if err != nil {
		return nil, err
	}

	b := []byte{}
	for _, f := range p.fields {
		fv := rv.FieldByIndex(f.index)
		if fv.IsNil() {
			continue
		}
		e := fv.Elem()

		b = protowire.AppendTag(b, f.num, f.typ)
		switch f.kind {
		case reflect.Int32, reflect.Int64:
			// Negative values are sign-extended to ten bytes.
			b = protowire.AppendVarint(b, uint64(e.Int()))
		case reflect.Float32:
			b = protowire.AppendFixed32(b, math.Float32bits(float32(e.Float())))
		case reflect.String:
			if !utf8.ValidString(e.String()) {
				return nil, fmt.Errorf("proto: field %s: string is not valid UTF-8", f.name)
			}
			b = protowire.AppendString(b, e.String())
		}
	}
	return b, nil
}

// Unmarshal decodes protobuf bytes into an *ipc.Wire, resetting it first.
// Unknown fields and fields with an unexpected wire type are skipped; the
// last occurrence of a repeated field wins.
func (s *protoSerializer) Unmarshal(data []byte, v any) error {
	w, ok := v.(*ipc.Wire)
	if !ok || w == nil {
		return fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}

	p, err := getPlan()
	if err != nil {
		return err
	}

	*w = ipc.Wire{}
	rv := reflect.ValueOf(w).Elem()

	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		i, known := p.byNumber[num]
		if !known || p.fields[i].typ != typ {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
			continue
		}

		f := p.fields[i]
		fv := rv.FieldByIndex(f.index)
		ptr := reflect.New(fv.Type().Elem())

		switch f.kind {
		case reflect.Int32:
			x, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
			ptr.Elem().SetInt(int64(int32(x)))
		case reflect.Int64:
			// Kept whole so an oversized enum value is not narrowed into range.
			x, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
			ptr.Elem().SetInt(int64(x))
		case reflect.Float32:
			x, n := protowire.ConsumeFixed32(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
			ptr.Elem().SetFloat(float64(math.Float32frombits(x)))
		case reflect.String:
			x, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
			if !utf8.Valid(x) {
				return fmt.Errorf("proto: field %s: string is not valid UTF-8", f.name)
			}
			ptr.Elem().SetString(string(x))
		}
		fv.Set(ptr)
	}
	return nil
}
