// Package auth provides authentication primitives for the CMS: bcrypt
// password hashing behind the PasswordHasher interface and the signed tokens
// that carry login sessions to the browser.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Effiong06/Agri-Naija-Centre/internal/database/models"
)

// ErrInvalidToken is returned for tokens that fail signature, expiry or
// shape checks
var ErrInvalidToken = errors.New("invalid session token")

// SessionClaims represents the JWT claims of a session cookie. The session id
// travels as the registered jti claim and the administrator id as sub.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// GenerateSessionToken signs a token for the session with HS256
func GenerateSessionToken(session *models.Session, secret, issuer string) (string, error) {
	if session == nil || session.ID == "" {
		return "", fmt.Errorf("%w: session has no id", ErrInvalidToken)
	}

	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Subject:   strconv.FormatInt(session.AdministratorID, 10),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseSessionToken validates a token and returns the session it names. The
// returned session only reflects the token; callers confirm it against the
// session store.
func ParseSessionToken(tokenString, secret, issuer string) (*models.Session, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, ErrInvalidToken
	}

	adminID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}

	session := &models.Session{
		ID:              claims.ID,
		AdministratorID: adminID,
		ExpiresAt:       claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		session.CreatedAt = claims.IssuedAt.Time
	}
	return session, nil
}

// SessionTTL returns how long a session cookie should live from now
func SessionTTL(session *models.Session, now time.Time) time.Duration {
	if session == nil {
		return 0
	}
	if ttl := session.ExpiresAt.Sub(now); ttl > 0 {
		return ttl
	}
	return 0
}
