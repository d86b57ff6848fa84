package ipc

import (
	"errors"
	"strconv"
)

// TextContentType identifies the delimited-text wire format.
const TextContentType = "text/x-ipc-delimited"

// Worst-case widths of the non-text fields.
const (
	maxIntWidth   = len("-2147483648")
	maxFloatWidth = len("-1.17549435e-38")
	maxKindWidth  = 1
)

// MaxEncodedSize returns the largest TextCodec output for a text field of
// textLen bytes. Escaping can double the text.
func MaxEncodedSize(textLen int) int {
	return maxIntWidth + maxFloatWidth + maxKindWidth + (fieldCount - 1) + 2*textLen
}

// TextCodec encodes complete Records as "int|float|text|kind".
//
// Only complete records are representable: every field must be present.
// Every NaN is written as "NaN" and decodes as the canonical quiet NaN
// (0x7fc00000), so sign and payload bits of a NaN are not preserved.
type TextCodec struct{}

// NewTextCodec returns a delimited-text codec.
func NewTextCodec() *TextCodec {
	return &TextCodec{}
}

// ContentType returns TextContentType.
func (c *TextCodec) ContentType() string {
	return TextContentType
}

// Encode renders r in delimited text. An absent field fails with
// ErrIncomplete; an undefined Kind fails with ErrRange.
func (c *TextCodec) Encode(r Record) ([]byte, error) {
	i, ok := r.Int.Get()
	if !ok {
		return nil, newEncodeError(ErrIncomplete, fieldInt, nil)
	}
	f, ok := r.Float.Get()
	if !ok {
		return nil, newEncodeError(ErrIncomplete, fieldFloat, nil)
	}
	t, ok := r.Text.Get()
	if !ok {
		return nil, newEncodeError(ErrIncomplete, fieldText, nil)
	}
	k, ok := r.Kind.Get()
	if !ok {
		return nil, newEncodeError(ErrIncomplete, fieldKind, nil)
	}
	if !k.Valid() {
		return nil, newEncodeError(ErrRange, fieldKind, nil)
	}

	b := make([]byte, 0, MaxEncodedSize(len(t)))
	b = strconv.AppendInt(b, int64(i), 10)
	b = append(b, delimiter)
	b = strconv.AppendFloat(b, float64(f), 'g', -1, 32)
	b = append(b, delimiter)
	b = appendEscaped(b, t)
	b = append(b, delimiter)
	b = strconv.AppendInt(b, int64(k), 10)
	return b, nil
}

// Decode parses delimited text. The field count is validated before any
// value is parsed, so a count mismatch is always ErrStructure.
func (c *TextCodec) Decode(data []byte) (Record, error) {
	tokens, err := splitFields(string(data))
	if err != nil {
		return Record{}, err
	}

	intTok := Unescape(tokens[indexInt])
	i, err := strconv.ParseInt(intTok, 10, 32)
	if err != nil {
		return Record{}, newDecodeError(ErrFormat, fieldInt, indexInt, intTok, err)
	}

	floatTok := Unescape(tokens[indexFloat])
	f, err := strconv.ParseFloat(floatTok, 32)
	if err != nil {
		return Record{}, newDecodeError(ErrFormat, fieldFloat, indexFloat, floatTok, err)
	}

	text := Unescape(tokens[indexText])

	kindTok := Unescape(tokens[indexKind])
	kv, err := strconv.ParseInt(kindTok, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return Record{}, newDecodeError(ErrRange, fieldKind, indexKind, kindTok, err)
		}
		return Record{}, newDecodeError(ErrFormat, fieldKind, indexKind, kindTok, err)
	}
	k, err := KindFromInt(kv)
	if err != nil {
		return Record{}, err
	}

	return Record{
		Int:   Some(int32(i)),
		Float: Some(float32(f)),
		Text:  Some(text),
		Kind:  Some(k),
	}, nil
}
