package jwtx

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Signer turns claims into a compact JWT.
type Signer interface {
	Sign(Claims) (string, error)
}

// HS256Signer signs with a secret derived from the claims being signed, so
// the verifier can re-derive it from the same claims.
type HS256Signer struct {
	secret SecretFunc
}

// NewSignerHS256 creates a signer using secret to pick the key per token.
func NewSignerHS256(secret SecretFunc) *HS256Signer {
	return &HS256Signer{secret: secret}
}

// Sign takes your claims and turns them into a signed JWT string.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	key, err := s.secret(&claims)
	if err != nil {
		return "", fmt.Errorf("jwtx: derive secret: %w", err)
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(key))
}
