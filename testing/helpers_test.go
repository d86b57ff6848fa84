package testing

import (
	"math"
	"testing"
)

func TestTestKey(t *testing.T) {
	key := TestKey(t)
	if len(key) != 32 {
		t.Errorf("TestKey() length = %d, want 32", len(key))
	}
}

func TestTestEncryptor(t *testing.T) {
	enc := TestEncryptor(t)
	if enc == nil {
		t.Fatal("TestEncryptor() should not return nil")
	}

	plaintext := []byte("test")
	ciphertext, err := enc.Encrypt(plaintext)
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}

	decrypted, err := enc.Decrypt(ciphertext)
	if err != nil {
		t.Fatalf("Decrypt() error: %v", err)
	}

	if string(decrypted) != string(plaintext) {
		t.Errorf("round-trip failed")
	}
}

func TestPresenceSubsets(t *testing.T) {
	cases := PresenceSubsets()

	// 8 masks without kind, 8 masks with kind times 3 kinds.
	if len(cases) != 8+8*3 {
		t.Fatalf("PresenceSubsets() len = %d, want %d", len(cases), 32)
	}

	seen := make(map[string]bool)
	for _, c := range cases {
		if seen[c.Name] {
			t.Errorf("duplicate case name %q", c.Name)
		}
		seen[c.Name] = true
	}

	if cases[0].Name != "empty" || !cases[0].Record.Empty() {
		t.Errorf("first case = %q, want the empty record", cases[0].Name)
	}
}

func TestCompleteRecords(t *testing.T) {
	for _, c := range CompleteRecords() {
		if !c.Record.Complete() {
			t.Errorf("%s: record is not complete", c.Name)
		}
	}
}

func TestNonFiniteFloats(t *testing.T) {
	for _, c := range NonFiniteFloats() {
		f, ok := c.Record.Float.Get()
		if !ok || !c.Record.Complete() {
			t.Errorf("%s: record is not complete", c.Name)
		}
		if !math.IsInf(float64(f), 0) && !math.IsNaN(float64(f)) {
			t.Errorf("%s: float %v is finite", c.Name, f)
		}
	}
}
