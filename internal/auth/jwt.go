package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tokens signs and verifies the session tokens handed to the browser.
// A token only carries the workflow session ID; the state itself never
// leaves the server.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

// NewTokens creates a signer with the given HMAC secret and lifetime.
func NewTokens(secret string, ttl time.Duration) (*Tokens, error) {
	if len(secret) < 16 {
		return nil, errors.New("session secret must be at least 16 characters")
	}
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &Tokens{secret: []byte(secret), ttl: ttl}, nil
}

// GenerateToken creates a new JWT for a given session ID.
func (t *Tokens) GenerateToken(sessionID string) (string, error) {
	// 1. Build the claims: the session is the subject.
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}

	// 2. Sign it with HS256 and our secret.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// ValidateToken parses and validates a JWT token string.
// It returns the session ID (subject) if the token is valid.
func (t *Tokens) ValidateToken(tokenString string) (string, error) {
	// 1. Parse, refusing anything not signed with HMAC.
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil {
		return "", err
	}

	// 2. Extract the session ID.
	if !token.Valid || claims.Subject == "" {
		return "", errors.New("invalid token")
	}
	return claims.Subject, nil
}
