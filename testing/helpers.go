// Package testing provides test utilities for ipc.
package testing

import (
	"fmt"
	"math"
	"testing"

	"github.com/jedlimke/ipc"
)

// TestKey returns a valid 32-byte key usable with every seal algorithm.
func TestKey(tb testing.TB) []byte {
	tb.Helper()
	return []byte("32-byte-key-for-aes-256-encrypt!")
}

// TestEncryptor returns an AES encryptor configured for testing.
func TestEncryptor(tb testing.TB) ipc.Encryptor {
	tb.Helper()
	enc, err := ipc.AES(TestKey(tb))
	if err != nil {
		tb.Fatalf("AES() error: %v", err)
	}
	return enc
}

// Kinds lists every defined Kind.
var Kinds = []ipc.Kind{ipc.KindA, ipc.KindB, ipc.KindC}

// Case is a named Record fixture.
type Case struct {
	Name   string
	Record ipc.Record
}

// PresenceSubsets returns one Record for each of the 16 combinations of
// present fields, repeated for every Kind where the kind field is present.
func PresenceSubsets() []Case {
	var cases []Case
	for mask := 0; mask < 16; mask++ {
		kinds := []ipc.Kind{ipc.KindA}
		if mask&8 != 0 {
			kinds = Kinds
		}
		for _, k := range kinds {
			var r ipc.Record
			name := ""
			if mask&1 != 0 {
				r.Int = ipc.Some(int32(-42))
				name += "int+"
			}
			if mask&2 != 0 {
				r.Float = ipc.Some(float32(3.25))
				name += "float+"
			}
			if mask&4 != 0 {
				r.Text = ipc.Some("hello")
				name += "text+"
			}
			if mask&8 != 0 {
				r.Kind = ipc.Some(k)
				name += fmt.Sprintf("kind%d+", k)
			}
			if name == "" {
				name = "empty"
			} else {
				name = name[:len(name)-1]
			}
			cases = append(cases, Case{Name: name, Record: r})
		}
	}
	return cases
}

// CompleteRecords returns fully populated Records covering boundary values
// and text that needs escaping.
func CompleteRecords() []Case {
	full := func(i int32, f float32, s string, k ipc.Kind) ipc.Record {
		return ipc.Record{
			Int:   ipc.Some(i),
			Float: ipc.Some(f),
			Text:  ipc.Some(s),
			Kind:  ipc.Some(k),
		}
	}
	return []Case{
		{"simple", full(42, 3.14, "hello", ipc.KindB)},
		{"zero", full(0, 0, "", ipc.KindA)},
		{"min int", full(math.MinInt32, -1.5, "min", ipc.KindC)},
		{"max int", full(math.MaxInt32, math.MaxFloat32, "max", ipc.KindA)},
		{"smallest float", full(1, math.SmallestNonzeroFloat32, "tiny", ipc.KindB)},
		{"delimiters", full(7, 0.5, "a|b|c", ipc.KindC)},
		{"backslashes", full(-7, 2, `C:\path\`, ipc.KindA)},
		{"escaped delimiter", full(1, 1, `\|`, ipc.KindB)},
		{"unicode", full(100, -0.25, "héllo wörld ✓", ipc.KindC)},
	}
}

// NonFiniteFloats returns fully populated Records whose float is an
// infinity or the canonical quiet NaN.
func NonFiniteFloats() []Case {
	r := func(f float32) ipc.Record {
		return ipc.Record{
			Int:   ipc.Some(int32(1)),
			Float: ipc.Some(f),
			Text:  ipc.Some("x"),
			Kind:  ipc.Some(ipc.KindA),
		}
	}
	return []Case{
		{"+inf", r(float32(math.Inf(1)))},
		{"-inf", r(float32(math.Inf(-1)))},
		{"nan", r(math.Float32frombits(0x7fc00000))},
	}
}
