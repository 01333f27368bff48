package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// BcryptCost is the cost factor for bcrypt hashing
	BcryptCost = 12
)

// ErrEmptyPassword is returned when hashing an empty plaintext
var ErrEmptyPassword = errors.New("password must not be empty")

// PasswordHasher is a one-way password hashing capability
type PasswordHasher interface {
	// Hash returns an opaque hash of the plaintext
	Hash(plaintext string) (string, error)
	// Compare reports whether plaintext hashes to the stored value. It is
	// false for any mismatch, including a malformed or empty stored hash.
	Compare(hash, plaintext string) bool
}

// BcryptHasher implements PasswordHasher with bcrypt
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher with the given cost. Costs outside the
// range bcrypt accepts fall back to BcryptCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = BcryptCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash hashes a password using bcrypt
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Compare verifies a password against a hash
func (h *BcryptHasher) Compare(hash, plaintext string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
