package ipc

// sealedCodec encrypts the output of another Codec.
type sealedCodec struct {
	inner Codec
	enc   Encryptor
}

// Seal wraps c so that encoded payloads are encrypted with enc.
// The sealed payload is enc.Overhead() bytes larger than c's output.
func Seal(c Codec, enc Encryptor) Codec {
	return &sealedCodec{inner: c, enc: enc}
}

// ContentType returns the inner content type with a "+sealed" suffix.
func (s *sealedCodec) ContentType() string {
	return s.inner.ContentType() + "+sealed"
}

// Encode encodes r with the inner codec and encrypts the result.
// Encryption failure is reported as ErrInternal.
func (s *sealedCodec) Encode(r Record) ([]byte, error) {
	plain, err := s.inner.Encode(r)
	if err != nil {
		return nil, err
	}

	sealed, err := s.enc.Encrypt(plain)
	if err != nil {
		return nil, newEncodeError(ErrInternal, "", err)
	}
	return sealed, nil
}

// Decode decrypts data and decodes it with the inner codec.
// Ciphertext that fails authentication is reported as ErrParse.
func (s *sealedCodec) Decode(data []byte) (Record, error) {
	plain, err := s.enc.Decrypt(data)
	if err != nil {
		return Record{}, newDecodeError(ErrParse, "", indexNone, "", err)
	}
	return s.inner.Decode(plain)
}
