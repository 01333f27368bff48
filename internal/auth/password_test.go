package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewBcryptHasher(t *testing.T) {
	assert.Equal(t, bcrypt.MinCost, NewBcryptHasher(bcrypt.MinCost).cost)
	assert.Equal(t, BcryptCost, NewBcryptHasher(0).cost)
	assert.Equal(t, BcryptCost, NewBcryptHasher(bcrypt.MaxCost+1).cost)
}

func TestHash(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	t.Run("Hash password successfully", func(t *testing.T) {
		password := "MySecurePassword123"
		hash, err := hasher.Hash(password)
		require.NoError(t, err)
		assert.NotEmpty(t, hash)
		assert.NotEqual(t, password, hash, "Hash should not equal plaintext password")
	})

	t.Run("Hash produces different results each time", func(t *testing.T) {
		hash1, err := hasher.Hash("MySecurePassword123")
		require.NoError(t, err)

		hash2, err := hasher.Hash("MySecurePassword123")
		require.NoError(t, err)

		assert.NotEqual(t, hash1, hash2, "Multiple hashes of same password should be different due to salt")
	})

	t.Run("Hash empty password fails", func(t *testing.T) {
		_, err := hasher.Hash("")
		assert.ErrorIs(t, err, ErrEmptyPassword)
	})

	t.Run("Hash password over bcrypt limit fails", func(t *testing.T) {
		_, err := hasher.Hash(strings.Repeat("a", 73))
		assert.Error(t, err)
	})
}

func TestCompare(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("x")
	require.NoError(t, err)

	tests := []struct {
		name      string
		hash      string
		plaintext string
		want      bool
	}{
		{"matching password", hash, "x", true},
		{"wrong password", hash, "y", false},
		{"empty plaintext", hash, "", false},
		{"empty hash", "", "x", false},
		{"malformed hash", "not-a-bcrypt-hash", "x", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hasher.Compare(tt.hash, tt.plaintext))
		})
	}
}
