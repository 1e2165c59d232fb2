package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/snip/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestValidateIssuer(t *testing.T) {
	c := &jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer: "snip",
		},
	}

	t.Run("matching issuer", func(t *testing.T) {
		require.NoError(t, c.ValidateIssuer("snip"))
	})

	t.Run("empty expected issuer", func(t *testing.T) {
		require.NoError(t, c.ValidateIssuer(""))
	})

	t.Run("mismatched issuer", func(t *testing.T) {
		require.ErrorIs(t, c.ValidateIssuer("someone-else"), jwtx.ErrIssuer)
	})
}

func TestValidateAudience(t *testing.T) {
	c := &jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Audience: []string{jwtx.AccessAudience},
		},
	}

	t.Run("access accepted", func(t *testing.T) {
		require.NoError(t, c.ValidateAudience([]string{jwtx.AccessAudience}))
	})

	t.Run("refresh audience refused", func(t *testing.T) {
		require.ErrorIs(t, c.ValidateAudience([]string{jwtx.RefreshAudience}), jwtx.ErrAudience)
	})

	t.Run("empty expected list", func(t *testing.T) {
		require.NoError(t, c.ValidateAudience(nil))
	})
}

func TestValidateExpiry(t *testing.T) {
	now := time.Unix(1_700_000_000, 0).UTC()

	claims := &jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now),
		},
	}

	t.Run("one second before exp", func(t *testing.T) {
		require.NoError(t, claims.ValidateExpiry(now.Add(-time.Second), 0))
	})

	t.Run("past exp", func(t *testing.T) {
		require.ErrorIs(t, claims.ValidateExpiry(now.Add(time.Second), 0), jwtx.ErrExpired)
	})

	t.Run("leeway", func(t *testing.T) {
		require.NoError(t, claims.ValidateExpiry(now.Add(time.Second), 5*time.Second))
	})

	t.Run("missing exp", func(t *testing.T) {
		require.ErrorIs(t, (&jwtx.Claims{}).ValidateExpiry(now, 0), jwtx.ErrInvalidClaim)
	})
}

func TestNewAccessClaims(t *testing.T) {
	now := time.Now().UTC()
	c := jwtx.NewAccessClaims("user-1", jwtx.Profile{
		Email:      "ada@example.com",
		Name:       "Ada",
		ProviderID: "google-42",
	}, "snip", jwtx.AccessTokenTTL, now)

	require.Equal(t, "user-1", c.Subject)
	require.Equal(t, "google-42", c.ID)
	require.Equal(t, "google-42", c.ProviderID)
	require.Equal(t, jwt.ClaimStrings{jwtx.AccessAudience}, c.Audience)
	require.Equal(t, 900*time.Second, c.ExpiresAt.Sub(c.IssuedAt.Time))
}
