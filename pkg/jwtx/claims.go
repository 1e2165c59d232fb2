package jwtx

import (
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token lifetimes. Access tokens are short because they carry a profile
// snapshot that is never re-checked against the store until they expire.
const (
	AccessTokenTTL  = 900 * time.Second
	RefreshTokenTTL = 30 * 24 * time.Hour
)

// Audience literals distinguishing the two token kinds.
const (
	AccessAudience  = "snip:access"
	RefreshAudience = "snip:refresh"
)

// Claims is the payload shared by access and refresh tokens. Refresh tokens
// only populate the registered claims.
type Claims struct {
	jwt.RegisteredClaims

	/* Profile snapshot, access tokens only */

	Email      string    `json:"email,omitempty"`
	Name       string    `json:"name,omitempty"`
	ProviderID string    `json:"providerId,omitempty"`
	AvatarURL  string    `json:"avatarUrl,omitempty"`
	CreatedAt  time.Time `json:"createdAt,omitzero"`
	UpdatedAt  time.Time `json:"updatedAt,omitzero"`
}

// Profile is the denormalised user snapshot embedded in access tokens.
type Profile struct {
	Email      string
	Name       string
	ProviderID string
	AvatarURL  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewAccessClaims builds access claims: sub is the user id, jti the provider
// id.
func NewAccessClaims(subject string, p Profile, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings{AccessAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        p.ProviderID,
		},
		Email:      p.Email,
		Name:       p.Name,
		ProviderID: p.ProviderID,
		AvatarURL:  p.AvatarURL,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// NewRefreshClaims builds refresh claims. The jti doubles as the salt of the
// refresh signing secret.
func NewRefreshClaims(subject, providerID, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings{RefreshAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        providerID,
		},
	}
}

// Profile returns the snapshot carried by access claims.
func (c *Claims) Profile() Profile {
	return Profile{
		Email:      c.Email,
		Name:       c.Name,
		ProviderID: c.ProviderID,
		AvatarURL:  c.AvatarURL,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateAudience checks if at least one expected audience is present.
func (c *Claims) ValidateAudience(expected []string) error {
	if len(expected) == 0 {
		return nil
	}

	for _, want := range expected {
		if slices.Contains(c.Audience, want) {
			return nil
		}
	}

	return ErrAudience
}

// ValidateExpiry checks exp and nbf against now with the given leeway.
// A token without exp is rejected.
func (c *Claims) ValidateExpiry(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt == nil {
		return ErrInvalidClaim
	}

	if now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}

	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}

	return nil
}
