package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword_VerifyRoundTrip(t *testing.T) {
	hash, salt := HashPassword("s3cret")

	assert.Len(t, salt, SaltSize)
	assert.True(t, VerifyPassword("s3cret", hash, salt))
	assert.False(t, VerifyPassword("wrong", hash, salt))
}

func TestHashPassword_SaltsDiffer(t *testing.T) {
	h1, s1 := HashPassword("same-password")
	h2, s2 := HashPassword("same-password")

	assert.NotEqual(t, s1, s2)
	assert.NotEqual(t, h1, h2, "different salts must give different hashes")
}

func TestDeriveHash_Deterministic(t *testing.T) {
	salt := []byte("0123456789abcdef")
	h1 := DeriveHash([]byte("pw"), salt)
	h2 := DeriveHash([]byte("pw"), salt)
	assert.Equal(t, h1, h2)
}
