package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the UID as the token's only domain claim.
type Claims struct {
	UID string `json:"uid"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies HS256 bearer tokens against a shared
// secret. The secret is injected at construction, never read from process
// globals, so the auth service and the verifier share one explicit value.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a TokenManager. A ttl of zero issues tokens
// without an expiration claim.
func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("token secret is empty")
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}, nil
}

// Issue signs a token carrying the given UID.
func (m *TokenManager) Issue(uid string) (string, error) {
	if uid == "" {
		return "", errors.New("uid is empty")
	}

	now := time.Now()
	claims := Claims{
		UID: uid,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  uid,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if m.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(m.ttl))
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify parses a token, checks its signature and expiry, and returns the
// UID claim. Any parse or signature failure is reported as a single error;
// callers treat it as unauthenticated without distinguishing the cause.
func (m *TokenManager) Verify(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.UID == "" {
		return "", errors.New("invalid token claims")
	}
	return claims.UID, nil
}
