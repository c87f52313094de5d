// Package cryptox implements password hashing for the credential store.
// Hashes are derived with Argon2id over a per-user random salt and compared
// in constant time.
package cryptox

import (
	"crypto/subtle"

	"golang.org/x/crypto/argon2"

	"studentdesk/internal/common"
)

const (
	// SaltSize is the per-user salt length in bytes.
	SaltSize = 16

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// HashPassword derives a hash from password under a freshly generated salt.
// Both the hash and the salt must be persisted with the user record.
func HashPassword(password string) (hash, salt []byte) {
	salt = common.GenerateRandByteArray(SaltSize)
	hash = DeriveHash([]byte(password), salt)
	return hash, salt
}

// DeriveHash computes the Argon2id hash of password under salt.
func DeriveHash(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// VerifyPassword reports whether password matches the stored hash/salt pair.
// The comparison is constant-time.
func VerifyPassword(password string, hash, salt []byte) bool {
	candidate := DeriveHash([]byte(password), salt)
	return subtle.ConstantTimeCompare(candidate, hash) == 1
}
