package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash := HashPassword("Abcd1234")

	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))
	assert.True(t, VerifyPassword("Abcd1234", hash))
	assert.False(t, VerifyPassword("abcd1234", hash))
	assert.False(t, VerifyPassword("Abcd1234", ""))
	assert.False(t, VerifyPassword("Abcd1234", "not-a-hash"))
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	a := HashPassword("Abcd1234")
	b := HashPassword("Abcd1234")

	assert.NotEqual(t, a, b)
	assert.True(t, VerifyPassword("Abcd1234", a))
	assert.True(t, VerifyPassword("Abcd1234", b))
}

func TestGenerateToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token := GenerateToken()
		assert.GreaterOrEqual(t, len(token), 43)
		assert.False(t, seen[token])
		seen[token] = true
	}
}

func TestGenerateRandomString(t *testing.T) {
	s := GenerateRandomString(40)
	assert.Len(t, s, 40)
	assert.NotEqual(t, s, GenerateRandomString(40))
}
