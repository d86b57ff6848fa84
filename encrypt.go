package ipc

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// Encryption errors.
var (
	ErrCiphertextShort  = errors.New("ciphertext too short")
	ErrDecryptionFailed = errors.New("decryption failed")
)

// Encryptor handles encryption/decryption of whole payloads.
type Encryptor interface {
	// Encrypt encrypts plaintext and returns ciphertext.
	Encrypt(plaintext []byte) ([]byte, error)

	// Decrypt decrypts ciphertext and returns plaintext.
	Decrypt(ciphertext []byte) ([]byte, error)

	// Overhead returns how many bytes Encrypt adds to the plaintext.
	Overhead() int
}

// aeadEncryptor implements Encryptor over any AEAD, prepending a random nonce.
type aeadEncryptor struct {
	aead cipher.AEAD
}

// AES returns an AES-GCM encryptor.
// Key must be 16, 24, or 32 bytes for AES-128, AES-192, or AES-256.
func AES(key []byte) (Encryptor, error) {
	if len(key) != 16 && len(key) != 24 && len(key) != 32 {
		return nil, fmt.Errorf("%w: must be 16, 24, or 32 bytes, got %d", ErrInvalidKey, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &aeadEncryptor{aead: gcm}, nil
}

// XChaCha20 returns an XChaCha20-Poly1305 encryptor.
// Key must be 32 bytes.
func XChaCha20(key []byte) (Encryptor, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("%w: must be %d bytes, got %d", ErrInvalidKey, chacha20poly1305.KeySize, len(key))
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}

	return &aeadEncryptor{aead: aead}, nil
}

// NewEncryptor returns the Encryptor for algo.
func NewEncryptor(algo SealAlgo, key []byte) (Encryptor, error) {
	switch algo {
	case SealAES:
		return AES(key)
	case SealXChaCha20:
		return XChaCha20(key)
	default:
		return nil, fmt.Errorf("unknown seal algorithm %q", algo)
	}
}

func (e *aeadEncryptor) Encrypt(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, e.aead.NonceSize(), e.aead.NonceSize()+len(plaintext)+e.aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	// Prepend nonce to ciphertext
	return e.aead.Seal(nonce, nonce, plaintext, nil), nil
}

func (e *aeadEncryptor) Decrypt(ciphertext []byte) ([]byte, error) {
	nonceSize := e.aead.NonceSize()
	if len(ciphertext) < nonceSize+e.aead.Overhead() {
		return nil, ErrCiphertextShort
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := e.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}

	return plaintext, nil
}

func (e *aeadEncryptor) Overhead() int {
	return e.aead.NonceSize() + e.aead.Overhead()
}
