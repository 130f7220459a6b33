package keystore

import (
	"github.com/gtank/cryptopasta"
	"github.com/pkg/errors"
)

// Sealer encrypts token values with AES-256-GCM. The 32-byte secret is
// expected to come from the host platform's keychain/secure-enclave
// equivalent; this package treats it as an opaque capability.
type Sealer struct {
	secret *[32]byte
}

// NewSealer copies the secret into place.
func NewSealer(secret [32]byte) *Sealer {
	s := &[32]byte{}
	copy(s[:], secret[:])
	return &Sealer{secret: s}
}

// Seal encrypts a token value for storage.
func (s *Sealer) Seal(plaintext string) ([]byte, error) {
	sealed, err := cryptopasta.Encrypt([]byte(plaintext), s.secret)
	if err != nil {
		return nil, errors.Wrap(err, "seal token")
	}
	return sealed, nil
}

// Open decrypts a stored token value.
func (s *Sealer) Open(ciphertext []byte) (string, error) {
	plain, err := cryptopasta.Decrypt(ciphertext, s.secret)
	if err != nil {
		return "", errors.Wrap(err, "open token")
	}
	return string(plain), nil
}
