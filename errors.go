package ipc

import (
	"errors"
	"fmt"
	"strconv"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrStructure indicates delimited text has the wrong number of fields.
	ErrStructure = errors.New("incorrect number of fields")

	// ErrFormat indicates a field cannot be parsed as its declared type.
	ErrFormat = errors.New("invalid field format")

	// ErrRange indicates an enumeration value outside the defined set.
	ErrRange = errors.New("enum value out of range")

	// ErrParse indicates bytes are not a well-formed instance of the schema.
	ErrParse = errors.New("parse failed")

	// ErrInternal indicates the underlying serializer failed to encode.
	ErrInternal = errors.New("internal encode failure")

	// ErrIncomplete indicates a record is missing a field the format requires.
	ErrIncomplete = errors.New("record incomplete")

	// ErrInvalidKey indicates an encryption key has invalid size or format.
	ErrInvalidKey = errors.New("invalid key")
)

// Field names and positions, in wire order.
const (
	fieldInt   = "int"
	fieldFloat = "float"
	fieldText  = "text"
	fieldKind  = "kind"

	indexNone  = -1
	indexInt   = 0
	indexFloat = 1
	indexText  = 2
	indexKind  = 3
)

// maxInputContext bounds how much raw input a DecodeError quotes.
const maxInputContext = 64

// DecodeError represents a failure to decode bytes into a Record.
// It wraps a sentinel error with the offending field and raw input.
type DecodeError struct {
	Err   error  // Underlying sentinel error (ErrStructure, ErrFormat, ErrRange, ErrParse)
	Field string // Field name that failed, empty if not field-specific
	Index int    // Field position in wire order, -1 if not field-specific
	Input string // Offending raw input, truncated
	Cause error  // Original error from the parser or serializer
}

func (e *DecodeError) Error() string {
	msg := e.Err.Error()
	if e.Field != "" {
		msg = fmt.Sprintf("%s (field %s)", msg, e.Field)
	}
	if e.Input != "" {
		msg = fmt.Sprintf("%s: %q", msg, e.Input)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EncodeError represents a failure to encode a Record.
// ErrInternal means the serializer failed; any other sentinel means the
// record violated the format's contract.
type EncodeError struct {
	Err   error  // Underlying sentinel error (ErrInternal, ErrIncomplete, ErrRange)
	Field string // Field name that triggered the error
	Cause error  // Original error from the serializer
}

func (e *EncodeError) Error() string {
	msg := "encode: " + e.Err.Error()
	if e.Field != "" {
		msg = fmt.Sprintf("%s (field %s)", msg, e.Field)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// newDecodeError creates a DecodeError for a specific field.
func newDecodeError(sentinel error, field string, index int, input string, cause error) error {
	return &DecodeError{
		Err:   sentinel,
		Field: field,
		Index: index,
		Input: truncate(input),
		Cause: cause,
	}
}

// newEncodeError creates an EncodeError.
func newEncodeError(sentinel error, field string, cause error) error {
	return &EncodeError{
		Err:   sentinel,
		Field: field,
		Cause: cause,
	}
}

// truncate limits s to maxInputContext bytes.
func truncate(s string) string {
	if len(s) <= maxInputContext {
		return s
	}
	return s[:maxInputContext] + "..."
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
