package ipc

// Kind is the enumerated type carried by a Record.
type Kind int32

const (
	// KindA is the first enumeration value.
	KindA Kind = 0

	// KindB is the second enumeration value.
	KindB Kind = 1

	// KindC is the third enumeration value.
	KindC Kind = 2
)

// Enumeration bounds, inclusive.
const (
	minKind = KindA
	maxKind = KindC
)

// kindNames maps each defined Kind to its name.
var kindNames = map[Kind]string{
	KindA: "KindA",
	KindB: "KindB",
	KindC: "KindC",
}

// Valid reports whether k is one of the defined enumeration values.
func (k Kind) Valid() bool {
	return k >= minKind && k <= maxKind
}

// String returns the enumeration name, or "Kind(n)" for undefined values.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(" + itoa(int64(k)) + ")"
}

// KindFromInt converts an integral wire value to a Kind.
// Values outside the defined enumeration fail with ErrRange.
func KindFromInt(v int64) (Kind, error) {
	if v < int64(minKind) || v > int64(maxKind) {
		return 0, newDecodeError(ErrRange, fieldKind, indexKind, itoa(v), nil)
	}
	return Kind(v), nil
}

// SealAlgo represents a supported payload encryption algorithm.
type SealAlgo string

const (
	// SealAES uses AES-GCM symmetric encryption.
	SealAES SealAlgo = "aes"

	// SealXChaCha20 uses XChaCha20-Poly1305 symmetric encryption.
	SealXChaCha20 SealAlgo = "xchacha20"
)

// validSealAlgos contains all valid seal algorithms for configuration validation.
var validSealAlgos = map[SealAlgo]bool{
	SealAES:       true,
	SealXChaCha20: true,
}

// IsValidSealAlgo returns true if the algorithm is a known seal algorithm.
func IsValidSealAlgo(algo SealAlgo) bool {
	return validSealAlgos[algo]
}
