package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Str0ng?Pass")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "argon2id$"), "hash should carry the argon2id encoding prefix")
	assert.NotContains(t, hash, "Str0ng?Pass", "hash must not embed the plaintext")

	match, err := VerifyPassword("Str0ng?Pass", hash)
	require.NoError(t, err)
	assert.True(t, match)

	match, err = VerifyPassword("wrong-password", hash)
	require.NoError(t, err)
	assert.False(t, match)
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	first, err := HashPassword("Str0ng?Pass")
	require.NoError(t, err)
	second, err := HashPassword("Str0ng?Pass")
	require.NoError(t, err)
	assert.NotEqual(t, first, second, "two hashes of the same password should use distinct salts")
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	for _, encoded := range []string{
		"",
		"plaintext-password",
		"bcrypt$whatever",
		"argon2id$v=19$m=65536,t=1,p=4$not-enough-parts",
	} {
		_, err := VerifyPassword("anything", encoded)
		assert.Error(t, err, "encoded=%q", encoded)
	}
}

func TestValidatePasswordPolicy(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  string
	}{
		{"valid", "Str0ng?Pass", ""},
		{"too short", "S0?a", "at least 8 characters"},
		{"no uppercase", "weak0?pass", "uppercase"},
		{"no lowercase", "WEAK0?PASS", "lowercase"},
		{"no digit", "Weakk?Pass", "digit"},
		{"no symbol", "Weak0Pass1", "symbol"},
		{"symbol outside accepted set", "Weak0Pass#", "symbol"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePasswordPolicy(tt.password)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "John Silva", NormalizeName("  John   Silva "))
	assert.Equal(t, "", NormalizeName("   "))
}
