package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Effiong06/Agri-Naija-Centre/internal/database/models"
)

func testSession(expiresIn time.Duration) *models.Session {
	now := time.Now()
	return &models.Session{
		ID:              "8a3c0f5e-1d2b-4c6a-9e7f-0b1a2c3d4e5f",
		AdministratorID: 42,
		CreatedAt:       now,
		ExpiresAt:       now.Add(expiresIn),
	}
}

func TestGenerateSessionToken(t *testing.T) {
	secret := "test-secret-key"
	issuer := "test-issuer"

	t.Run("Generate valid token", func(t *testing.T) {
		token, err := GenerateSessionToken(testSession(time.Hour), secret, issuer)
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("Different sessions produce different tokens", func(t *testing.T) {
		s1 := testSession(time.Hour)
		s2 := testSession(time.Hour)
		s2.ID = "0b9e6f4a-7c1d-4e2b-8a3f-5d6c7b8a9e0f"

		token1, err := GenerateSessionToken(s1, secret, issuer)
		require.NoError(t, err)
		token2, err := GenerateSessionToken(s2, secret, issuer)
		require.NoError(t, err)

		assert.NotEqual(t, token1, token2)
	})

	t.Run("Session without id fails", func(t *testing.T) {
		_, err := GenerateSessionToken(&models.Session{}, secret, issuer)
		assert.ErrorIs(t, err, ErrInvalidToken)

		_, err = GenerateSessionToken(nil, secret, issuer)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestParseSessionToken(t *testing.T) {
	secret := "test-secret-key"
	issuer := "test-issuer"

	t.Run("Parse valid token", func(t *testing.T) {
		session := testSession(time.Hour)
		token, err := GenerateSessionToken(session, secret, issuer)
		require.NoError(t, err)

		parsed, err := ParseSessionToken(token, secret, issuer)
		require.NoError(t, err)
		assert.Equal(t, session.ID, parsed.ID)
		assert.Equal(t, session.AdministratorID, parsed.AdministratorID)
		assert.WithinDuration(t, session.ExpiresAt, parsed.ExpiresAt, time.Second)
		assert.WithinDuration(t, session.CreatedAt, parsed.CreatedAt, time.Second)
	})

	t.Run("Parse token with wrong secret", func(t *testing.T) {
		token, err := GenerateSessionToken(testSession(time.Hour), secret, issuer)
		require.NoError(t, err)

		_, err = ParseSessionToken(token, "wrong-secret", issuer)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Parse token with wrong issuer", func(t *testing.T) {
		token, err := GenerateSessionToken(testSession(time.Hour), secret, issuer)
		require.NoError(t, err)

		_, err = ParseSessionToken(token, secret, "someone-else")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Parse expired token", func(t *testing.T) {
		token, err := GenerateSessionToken(testSession(-time.Hour), secret, issuer)
		require.NoError(t, err)

		_, err = ParseSessionToken(token, secret, issuer)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Parse garbage", func(t *testing.T) {
		for _, raw := range []string{"", "invalid-token-string", "header.payload.signature"} {
			_, err := ParseSessionToken(raw, secret, issuer)
			assert.ErrorIs(t, err, ErrInvalidToken, raw)
		}
	})

	t.Run("Unsigned token is rejected", func(t *testing.T) {
		claims := &SessionClaims{RegisteredClaims: jwt.RegisteredClaims{
			ID:        "abc",
			Subject:   "1",
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = ParseSessionToken(token, secret, issuer)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Token without expiry is rejected", func(t *testing.T) {
		claims := &SessionClaims{RegisteredClaims: jwt.RegisteredClaims{ID: "abc", Subject: "1", Issuer: issuer}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)

		_, err = ParseSessionToken(token, secret, issuer)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Token with non-numeric subject is rejected", func(t *testing.T) {
		claims := &SessionClaims{RegisteredClaims: jwt.RegisteredClaims{
			ID:        "abc",
			Subject:   "admin",
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)

		_, err = ParseSessionToken(token, secret, issuer)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestSessionTTL(t *testing.T) {
	now := time.Now()

	assert.Equal(t, time.Duration(0), SessionTTL(nil, now))
	assert.Equal(t, time.Hour, SessionTTL(&models.Session{ExpiresAt: now.Add(time.Hour)}, now))
	assert.Equal(t, time.Duration(0), SessionTTL(&models.Session{ExpiresAt: now.Add(-time.Minute)}, now))
}
