// Package password produces deterministic password digests.
//
// Both algorithms are unsalted per user, so identical passwords produce
// identical digests. The pbkdf2 variant mixes in a server-wide pepper and is
// slow to brute force, but does not hide equal passwords from each other.
package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	AlgorithmSHA256 = "sha256"
	AlgorithmPBKDF2 = "pbkdf2"

	pbkdf2KeyLength = 32
)

type Hasher interface {
	Hash(password string) string
	Verify(password, digest string) bool
}

// NewHasher selects the digest algorithm by name.
func NewHasher(algorithm, pepper string, iterations int) (Hasher, error) {
	switch algorithm {
	case "", AlgorithmSHA256:
		return SHA256Hasher{}, nil
	case AlgorithmPBKDF2:
		if iterations <= 0 {
			return nil, fmt.Errorf("pbkdf2 iterations must be positive, got %d", iterations)
		}
		return PBKDF2Hasher{Pepper: []byte(pepper), Iterations: iterations}, nil
	default:
		return nil, fmt.Errorf("unknown password hash algorithm %q", algorithm)
	}
}

// SHA256Hasher stores hex(sha256(password)).
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func (h SHA256Hasher) Verify(password, digest string) bool {
	return equal(h.Hash(password), digest)
}

type PBKDF2Hasher struct {
	Pepper     []byte
	Iterations int
}

func (h PBKDF2Hasher) Hash(password string) string {
	key := pbkdf2.Key([]byte(password), h.Pepper, h.Iterations, pbkdf2KeyLength, sha256.New)
	return hex.EncodeToString(key)
}

func (h PBKDF2Hasher) Verify(password, digest string) bool {
	return equal(h.Hash(password), digest)
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
