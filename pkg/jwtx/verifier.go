package jwtx

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (*Claims, error)
}

// VerifyOptions captures common expectations used by verifiers.
type VerifyOptions struct {
	// Issuer the token must have (claims.iss). Empty means "don't care".
	Issuer string

	// Audience values the token must contain (claims.aud). Empty means "don't care".
	Audience []string

	// Leeway allows clock skew when validating exp/nbf. Snip runs with zero.
	Leeway time.Duration

	// Now overrides the clock, mostly for tests.
	Now func() time.Time
}

func (o VerifyOptions) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

var (
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrInvalidSig   = errors.New("jwtx: invalid signature")
	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrAudience     = errors.New("jwtx: audience mismatch")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// PeekClaimsUnverified decodes the payload without checking the signature.
// Nothing it returns may be trusted; it exists because the verification
// secret is derived from claims inside the token.
//
// Only a token that is not three dot separated segments yields ErrMalformed.
func PeekClaimsUnverified(token string) (*Claims, error) {
	if strings.Count(token, ".") != 2 {
		return nil, ErrMalformed
	}

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidClaim, err)
	}
	return claims, nil
}

// VerifyWithSecret checks the HS256 signature with secret, then issuer,
// audience and expiry.
func VerifyWithSecret(token, secret string, opts VerifyOptions) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(opts.Leeway),
		jwt.WithTimeFunc(opts.now),
	)

	parsed, err := parser.ParseWithClaims(token, &Claims{}, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
			return nil, ErrInvalidSig
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, ErrNotYetValid
		default:
			return nil, fmt.Errorf("%w: %v", ErrInvalidClaim, err)
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidClaim
	}

	// Now check all the claim requirements
	if err := claims.ValidateIssuer(opts.Issuer); err != nil {
		return nil, err
	}
	if err := claims.ValidateAudience(opts.Audience); err != nil {
		return nil, err
	}
	if err := claims.ValidateExpiry(opts.now(), opts.Leeway); err != nil {
		return nil, err
	}

	return claims, nil
}

// HS256Verifier runs the two passes: peek to find the salt, derive the
// secret, verify with it.
type HS256Verifier struct {
	secret SecretFunc
	opts   VerifyOptions
}

// NewVerifierHS256 creates a verifier deriving its key through secret.
func NewVerifierHS256(secret SecretFunc, opts VerifyOptions) *HS256Verifier {
	return &HS256Verifier{secret: secret, opts: opts}
}

// Verify validates the JWT string and returns its parsed Claims.
func (v *HS256Verifier) Verify(token string) (*Claims, error) {
	peeked, err := PeekClaimsUnverified(token)
	if err != nil {
		return nil, err
	}

	secret, err := v.secret(peeked)
	if err != nil {
		return nil, err
	}

	return VerifyWithSecret(token, secret, v.opts)
}
