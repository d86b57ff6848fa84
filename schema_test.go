package ipc_test

import (
	"errors"
	"testing"

	"github.com/jedlimke/ipc"
	ipctest "github.com/jedlimke/ipc/testing"
)

func TestSchemaCodec_ContentType(t *testing.T) {
	c := ipc.NewSchemaCodec(&testSerializer{})
	if got := c.ContentType(); got != "application/json" {
		t.Errorf("ContentType() = %q, want %q", got, "application/json")
	}
}

func TestSchemaCodec_RoundTrip(t *testing.T) {
	c := ipc.NewSchemaCodec(&testSerializer{})

	for _, tc := range append(ipctest.PresenceSubsets(), ipctest.CompleteRecords()...) {
		t.Run(tc.Name, func(t *testing.T) {
			data, err := c.Encode(tc.Record)
			if err != nil {
				t.Fatalf("Encode() error: %v", err)
			}
			got, err := c.Decode(data)
			if err != nil {
				t.Fatalf("Decode(%s) error: %v", data, err)
			}
			if !got.Equal(tc.Record) {
				t.Errorf("round-trip mismatch:\ngot\n%s\nwant\n%s", got, tc.Record)
			}
		})
	}
}

func TestSchemaCodec_EmptyRecord(t *testing.T) {
	c := ipc.NewSchemaCodec(&testSerializer{})

	data, err := c.Encode(ipc.Record{})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("Encode(empty) = %s, want {}", data)
	}

	got, err := c.Decode(data)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if !got.Empty() {
		t.Errorf("Decode() = %s, want all fields absent", got)
	}
}

func TestSchemaCodec_PresentZeroIsNotAbsent(t *testing.T) {
	c := ipc.NewSchemaCodec(&testSerializer{})
	r := ipc.Record{Int: ipc.Some(int32(0)), Text: ipc.Some("")}

	data, err := c.Encode(r)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if string(data) != `{"int":0,"text":""}` {
		t.Errorf("Encode() = %s", data)
	}

	got, err := c.Decode(data)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if !got.Int.IsSet() || !got.Text.IsSet() || got.Float.IsSet() || got.Kind.IsSet() {
		t.Errorf("presence lost: %s", got)
	}
}

func TestSchemaCodec_DecodeKindOutOfRange(t *testing.T) {
	c := ipc.NewSchemaCodec(&testSerializer{})

	for _, input := range []string{`{"kind":999}`, `{"kind":-1}`, `{"kind":3,"int":1}`} {
		_, err := c.Decode([]byte(input))
		if !errors.Is(err, ipc.ErrRange) {
			t.Errorf("Decode(%s) error = %v, want ErrRange", input, err)
			continue
		}
		var de *ipc.DecodeError
		if !errors.As(err, &de) || de.Field != "kind" {
			t.Errorf("Decode(%s) error = %v, want DecodeError on kind", input, err)
		}
	}
}

func TestSchemaCodec_EncodeKindOutOfRange(t *testing.T) {
	c := ipc.NewSchemaCodec(&testSerializer{})

	_, err := c.Encode(ipc.Record{Kind: ipc.Some(ipc.Kind(999))})
	if !errors.Is(err, ipc.ErrRange) {
		t.Errorf("Encode() error = %v, want ErrRange", err)
	}
}

func TestSchemaCodec_DecodeMalformed(t *testing.T) {
	c := ipc.NewSchemaCodec(&testSerializer{})

	for _, input := range []string{"invalid_data", `{"int":"x"}`, `{"int":1`, ""} {
		_, err := c.Decode([]byte(input))
		if !errors.Is(err, ipc.ErrParse) {
			t.Errorf("Decode(%q) error = %v, want ErrParse", input, err)
		}
	}
}

func TestSchemaCodec_SerializerFailure(t *testing.T) {
	c := ipc.NewSchemaCodec(&failingSerializer{})

	_, err := c.Encode(ipc.Record{Int: ipc.Some(int32(1))})
	if !errors.Is(err, ipc.ErrInternal) {
		t.Errorf("Encode() error = %v, want ErrInternal", err)
	}
	var ee *ipc.EncodeError
	if !errors.As(err, &ee) || !errors.Is(ee.Cause, errSerializer) {
		t.Errorf("EncodeError.Cause should carry the serializer error, got %v", err)
	}

	_, err = c.Decode([]byte("{}"))
	if !errors.Is(err, ipc.ErrParse) {
		t.Errorf("Decode() error = %v, want ErrParse", err)
	}
}
