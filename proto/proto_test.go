package proto

import (
	"bytes"
	"errors"
	"testing"

	"github.com/jedlimke/ipc"
	ipctest "github.com/jedlimke/ipc/testing"
	"google.golang.org/protobuf/encoding/protowire"
)

func ptr[T any](v T) *T { return &v }

func TestNew(t *testing.T) {
	c := New()
	if c == nil {
		t.Error("New() should return non-nil serializer")
	}
}

func TestContentType(t *testing.T) {
	c := New()
	if c.ContentType() != "application/x-protobuf" {
		t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/x-protobuf")
	}
}

func TestPlan(t *testing.T) {
	p, err := getPlan()
	if err != nil {
		t.Fatalf("getPlan() error: %v", err)
	}

	want := []struct {
		num protowire.Number
		typ protowire.Type
	}{
		{1, protowire.VarintType},
		{2, protowire.Fixed32Type},
		{3, protowire.BytesType},
		{4, protowire.VarintType},
	}
	if len(p.fields) != len(want) {
		t.Fatalf("plan has %d fields, want %d", len(p.fields), len(want))
	}
	for i, w := range want {
		if p.fields[i].num != w.num || p.fields[i].typ != w.typ {
			t.Errorf("field %d = (%d, %d), want (%d, %d)", i, p.fields[i].num, p.fields[i].typ, w.num, w.typ)
		}
	}
}

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag     string
		num     protowire.Number
		typ     protowire.Type
		wantErr bool
	}{
		{"varint,1,opt,name=the_int", 1, protowire.VarintType, false},
		{"fixed32,2,opt", 2, protowire.Fixed32Type, false},
		{"bytes,15", 15, protowire.BytesType, false},
		{"fixed64,1", 0, 0, true},
		{"varint", 0, 0, true},
		{"varint,x", 0, 0, true},
		{"varint,0", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			num, typ, err := parseTag(tt.tag)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseTag() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && (num != tt.num || typ != tt.typ) {
				t.Errorf("parseTag() = (%d, %d), want (%d, %d)", num, typ, tt.num, tt.typ)
			}
		})
	}
}

func TestMarshal_KnownBytes(t *testing.T) {
	tests := []struct {
		name string
		w    ipc.Wire
		want []byte
	}{
		{"empty", ipc.Wire{}, []byte{}},
		{"int", ipc.Wire{Int: ptr(int32(1))}, []byte{0x08, 0x01}},
		{"zero int is present", ipc.Wire{Int: ptr(int32(0))}, []byte{0x08, 0x00}},
		{"float", ipc.Wire{Float: ptr(float32(1))}, []byte{0x15, 0x00, 0x00, 0x80, 0x3f}},
		{"string", ipc.Wire{Text: ptr("hi")}, []byte{0x1a, 0x02, 'h', 'i'}},
		{"kind", ipc.Wire{Kind: ptr(int64(2))}, []byte{0x20, 0x02}},
		{
			"negative int",
			ipc.Wire{Int: ptr(int32(-1))},
			[]byte{0x08, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01},
		},
		{
			"field order",
			ipc.Wire{Kind: ptr(int64(1)), Int: ptr(int32(3))},
			[]byte{0x08, 0x03, 0x20, 0x01},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New().Marshal(tt.w)
			if err != nil {
				t.Fatalf("Marshal() error: %v", err)
			}
			if got == nil {
				t.Fatal("Marshal() returned nil slice")
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Marshal() = % x, want % x", got, tt.want)
			}
		})
	}
}

func TestMarshal_Unsupported(t *testing.T) {
	c := New()

	for _, v := range []any{nil, "string", struct{}{}, (*ipc.Wire)(nil)} {
		if _, err := c.Marshal(v); !errors.Is(err, ErrUnsupportedType) {
			t.Errorf("Marshal(%T) error = %v, want ErrUnsupportedType", v, err)
		}
	}

	var w ipc.Wire
	if err := c.Unmarshal(nil, w); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("Unmarshal(non-pointer) error = %v, want ErrUnsupportedType", err)
	}
}

func TestMarshal_InvalidUTF8(t *testing.T) {
	_, err := New().Marshal(ipc.Wire{Text: ptr("\xff")})
	if err == nil {
		t.Error("Marshal() should reject invalid UTF-8")
	}

	_, err = ipc.NewSchemaCodec(New()).Encode(ipc.Record{Text: ipc.Some("\xff")})
	if !errors.Is(err, ipc.ErrInternal) {
		t.Errorf("Encode() error = %v, want ErrInternal", err)
	}
}

func TestUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  ipc.Wire
	}{
		{"empty", nil, ipc.Wire{}},
		{"unknown field skipped", []byte{0x28, 0x07, 0x08, 0x05}, ipc.Wire{Int: ptr(int32(5))}},
		{"unknown bytes field skipped", []byte{0x32, 0x01, 'x', 0x20, 0x01}, ipc.Wire{Kind: ptr(int64(1))}},
		{"oversized kind kept whole", protowire.AppendVarint([]byte{0x20}, 1<<32 + 1), ipc.Wire{Kind: ptr(int64(1<<32 + 1))}},
		{
			"negative kind",
			[]byte{0x20, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01},
			ipc.Wire{Kind: ptr(int64(-1))},
		},
		{"last occurrence wins", []byte{0x08, 0x01, 0x08, 0x02}, ipc.Wire{Int: ptr(int32(2))}},
		{"mismatched wire type skipped", []byte{0x0d, 0x01, 0x02, 0x03, 0x04}, ipc.Wire{}},
		{"empty string present", []byte{0x1a, 0x00}, ipc.Wire{Text: ptr("")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ipc.Wire{Float: ptr(float32(9))}
			if err := New().Unmarshal(tt.input, &w); err != nil {
				t.Fatalf("Unmarshal() error: %v", err)
			}
			if !wireEqual(w, tt.want) {
				t.Errorf("Unmarshal() = %+v, want %+v", w, tt.want)
			}
		})
	}
}

func TestUnmarshal_Malformed(t *testing.T) {
	inputs := map[string][]byte{
		"invalid_data":     []byte("invalid_data"),
		"truncated varint": {0x08},
		"truncated fixed":  {0x15, 0x00, 0x00},
		"truncated bytes":  {0x1a, 0x05, 'a'},
		"field zero":       {0x00, 0x01},
		"invalid utf8":     {0x1a, 0x01, 0xff},
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			var w ipc.Wire
			if err := New().Unmarshal(input, &w); err == nil {
				t.Errorf("Unmarshal(% x) should return error", input)
			}
		})
	}
}

func TestSchemaRoundTrip(t *testing.T) {
	c := ipc.NewSchemaCodec(New())

	for _, tc := range append(ipctest.PresenceSubsets(), ipctest.CompleteRecords()...) {
		t.Run(tc.Name, func(t *testing.T) {
			data, err := c.Encode(tc.Record)
			if err != nil {
				t.Fatalf("Encode() error: %v", err)
			}
			got, err := c.Decode(data)
			if err != nil {
				t.Fatalf("Decode(% x) error: %v", data, err)
			}
			if !got.Equal(tc.Record) {
				t.Errorf("round-trip mismatch:\ngot\n%s\nwant\n%s", got, tc.Record)
			}
		})
	}
}

func TestSchemaEmptyRecord(t *testing.T) {
	c := ipc.NewSchemaCodec(New())

	data, err := c.Encode(ipc.Record{})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("Encode(empty) = % x, want no bytes", data)
	}

	got, err := c.Decode(data)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if !got.Empty() {
		t.Errorf("Decode() = %s, want empty record", got)
	}
}

func TestSchemaDecodeKindOutOfRange(t *testing.T) {
	// the_type = 999
	_, err := ipc.NewSchemaCodec(New()).Decode([]byte{0x20, 0xe7, 0x07})
	if !errors.Is(err, ipc.ErrRange) {
		t.Errorf("Decode() error = %v, want ErrRange", err)
	}
}

func TestSchemaDecodeKindOverflow(t *testing.T) {
	c := ipc.NewSchemaCodec(New())

	for _, v := range []uint64{1<<32 + 1, 1<<32 + 2, 1 << 63} {
		data := protowire.AppendVarint(protowire.AppendTag(nil, 4, protowire.VarintType), v)
		if _, err := c.Decode(data); !errors.Is(err, ipc.ErrRange) {
			t.Errorf("Decode(kind=%d) error = %v, want ErrRange", v, err)
		}
	}
}

func TestSchemaDecodeMalformed(t *testing.T) {
	_, err := ipc.NewSchemaCodec(New()).Decode([]byte("invalid_data"))
	if !errors.Is(err, ipc.ErrParse) {
		t.Errorf("Decode() error = %v, want ErrParse", err)
	}
}

func wireEqual(a, b ipc.Wire) bool {
	return eqPtr(a.Int, b.Int) && eqPtr(a.Float, b.Float) && eqPtr(a.Text, b.Text) && eqPtr(a.Kind, b.Kind)
}

func eqPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
