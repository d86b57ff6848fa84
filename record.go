package ipc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// notSet is rendered in place of an absent field.
const notSet = "Not set"

// Optional holds a value that may be absent.
// The zero value is absent.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// None returns an absent Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether a value is present.
func (o Optional[T]) IsSet() bool {
	return o.set
}

// OrElse returns the value if present, otherwise d.
func (o Optional[T]) OrElse(d T) T {
	if o.set {
		return o.value
	}
	return d
}

// optionalPtr returns a pointer to a copy of the value, or nil when absent.
func optionalPtr[T any](o Optional[T]) *T {
	if !o.set {
		return nil
	}
	v := o.value
	return &v
}

// optionalFrom returns Some(*p), or None when p is nil.
func optionalFrom[T any](p *T) Optional[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

// Record is the unit exchanged between processes.
// Each field is independently present or absent; the zero Record is the
// empty record.
type Record struct {
	Int   Optional[int32]
	Float Optional[float32]
	Text  Optional[string]
	Kind  Optional[Kind]
}

// Equal reports whether r and o have the same fields present with the same
// values. Floats compare by bit pattern, so -0 and +0 differ and NaN
// equals an identical NaN.
func (r Record) Equal(o Record) bool {
	if r.Int != o.Int || r.Text != o.Text || r.Kind != o.Kind {
		return false
	}
	if r.Float.set != o.Float.set {
		return false
	}
	return !r.Float.set || math.Float32bits(r.Float.value) == math.Float32bits(o.Float.value)
}

// Complete reports whether all four fields are present.
func (r Record) Complete() bool {
	return r.Int.set && r.Float.set && r.Text.set && r.Kind.set
}

// Empty reports whether all four fields are absent.
func (r Record) Empty() bool {
	return !r.Int.set && !r.Float.set && !r.Text.set && !r.Kind.set
}

// String renders one line per field, with "Not set" for absent fields.
func (r Record) String() string {
	var b strings.Builder
	b.WriteString("  Int:    ")
	if v, ok := r.Int.Get(); ok {
		b.WriteString(strconv.FormatInt(int64(v), 10))
	} else {
		b.WriteString(notSet)
	}
	b.WriteString("\n  Float:  ")
	if v, ok := r.Float.Get(); ok {
		fmt.Fprintf(&b, "%f", v)
	} else {
		b.WriteString(notSet)
	}
	b.WriteString("\n  String: ")
	if v, ok := r.Text.Get(); ok {
		b.WriteString(v)
	} else {
		b.WriteString(notSet)
	}
	b.WriteString("\n  Type:   ")
	if v, ok := r.Kind.Get(); ok {
		b.WriteString(strconv.Itoa(int(v)))
	} else {
		b.WriteString(notSet)
	}
	b.WriteByte('\n')
	return b.String()
}
