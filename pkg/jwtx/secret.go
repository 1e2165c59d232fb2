package jwtx

const secretSeparator = "__"

// DeriveAccessSecret returns the HMAC secret for one user's access tokens.
// Rotating the master secret invalidates every access token at once.
func DeriveAccessSecret(master, principalID string) string {
	return master + secretSeparator + principalID
}

// DeriveRefreshSecret returns the HMAC secret for refresh tokens salted with
// the token's jti. The jti is the user's provider id, so all refresh tokens of
// one user share a secret and none can be revoked on its own.
func DeriveRefreshSecret(master, salt string) string {
	return master + secretSeparator + salt
}

// SecretFunc selects the signing secret for a token from its claims.
type SecretFunc func(c *Claims) (string, error)

// AccessSecret derives the access secret from the sub claim.
func AccessSecret(master string) SecretFunc {
	return func(c *Claims) (string, error) {
		if c.Subject == "" {
			return "", ErrInvalidClaim
		}
		return DeriveAccessSecret(master, c.Subject), nil
	}
}

// RefreshSecret derives the refresh secret from the jti claim.
func RefreshSecret(master string) SecretFunc {
	return func(c *Claims) (string, error) {
		if c.ID == "" {
			return "", ErrInvalidClaim
		}
		return DeriveRefreshSecret(master, c.ID), nil
	}
}
