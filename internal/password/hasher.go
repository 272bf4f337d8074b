package password

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/bft-labs/defendcode/internal/domain"
)

// Digest algorithm names accepted by NewHasher.
const (
	DigestSHA256   = "sha256"
	DigestArgon2id = "argon2id"
)

// Hasher derives a stable digest from a password and its salt. The same
// inputs always produce the same digest, across calls and processes.
type Hasher interface {
	Digest(password, salt string) string
	Name() string
}

// NewHasher returns the hasher registered under name.
func NewHasher(name string) (Hasher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", DigestSHA256:
		return SHA256Hasher{}, nil
	case DigestArgon2id:
		return DefaultArgon2Hasher(), nil
	default:
		return nil, fmt.Errorf("%w: unknown digest %q (want %s or %s)", domain.ErrInvalidConfig, name, DigestSHA256, DigestArgon2id)
	}
}

// SHA256Hasher hex-encodes SHA-256(salt || password).
type SHA256Hasher struct{}

// Digest implements Hasher.
func (SHA256Hasher) Digest(password, salt string) string {
	h := sha256.New()
	h.Write([]byte(salt))
	h.Write([]byte(password))
	return hex.EncodeToString(h.Sum(nil))
}

// Name implements Hasher.
func (SHA256Hasher) Name() string { return DigestSHA256 }

// Argon2Hasher hex-encodes an argon2id key derived from the password.
type Argon2Hasher struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	KeyLen  uint32
}

// DefaultArgon2Hasher uses the parameters recommended by the argon2 package
// documentation.
func DefaultArgon2Hasher() Argon2Hasher {
	return Argon2Hasher{Time: 1, Memory: 64 * 1024, Threads: 4, KeyLen: 32}
}

// Digest implements Hasher.
func (a Argon2Hasher) Digest(password, salt string) string {
	key := argon2.IDKey([]byte(password), []byte(salt), a.Time, a.Memory, a.Threads, a.KeyLen)
	return hex.EncodeToString(key)
}

// Name implements Hasher.
func (Argon2Hasher) Name() string { return DigestArgon2id }
