// Package cryptox implements the one-way credential transform used to store
// and verify passwords.
package cryptox

import (
	"crypto/subtle"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/argon2"
)

// Hasher turns a plaintext password into a digest. Implementations must be
// deterministic: verification recomputes the digest and compares.
type Hasher interface {
	Hash(plaintext string) string
	Verify(plaintext, digest string) bool
}

// Argon2Params tunes Argon2id. MemoryKiB is in kibibytes.
type Argon2Params struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
	KeyLen    uint32
}

// DefaultArgon2Params are the parameters the service ships with.
var DefaultArgon2Params = Argon2Params{Time: 1, MemoryKiB: 64 * 1024, Threads: 4, KeyLen: 32}

var ErrEmptyPepper = errors.New("password pepper must not be empty")

// Argon2Hasher derives digests with Argon2id keyed by one service-wide
// pepper, so equal passwords map to equal digests across users.
type Argon2Hasher struct {
	pepper []byte
	params Argon2Params
}

func NewArgon2Hasher(pepper string, params Argon2Params) (*Argon2Hasher, error) {
	if pepper == "" {
		return nil, ErrEmptyPepper
	}
	if params.Time == 0 || params.MemoryKiB == 0 || params.Threads == 0 || params.KeyLen == 0 {
		return nil, errors.New("argon2 parameters must be positive")
	}
	return &Argon2Hasher{pepper: []byte(pepper), params: params}, nil
}

// Hash returns the hex-encoded Argon2id key of plaintext.
func (h *Argon2Hasher) Hash(plaintext string) string {
	key := argon2.IDKey([]byte(plaintext), h.pepper, h.params.Time, h.params.MemoryKiB, h.params.Threads, h.params.KeyLen)
	return hex.EncodeToString(key)
}

// Verify recomputes the digest and compares in constant time.
func (h *Argon2Hasher) Verify(plaintext, digest string) bool {
	return subtle.ConstantTimeCompare([]byte(h.Hash(plaintext)), []byte(digest)) == 1
}
