package service

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/snip/internal/snip/domain"
	"github.com/aussiebroadwan/snip/pkg/errx"
	"github.com/aussiebroadwan/snip/pkg/jwtx"
	"github.com/aussiebroadwan/snip/pkg/slogx"
)

// TokenService issues and verifies the access/refresh pair. Both kinds are
// HS256 with a secret derived per user, so nothing is persisted.
type TokenService struct {
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// Now overrides the clock, mostly for tests.
	Now func() time.Time

	accessSigner    jwtx.Signer
	refreshSigner   jwtx.Signer
	accessVerifier  jwtx.Verifier
	refreshVerifier jwtx.Verifier
}

// NewTokenService wires signers and verifiers for the given master secrets.
func NewTokenService(issuer, accessMaster, refreshMaster string) *TokenService {
	s := &TokenService{
		Issuer:     issuer,
		AccessTTL:  jwtx.AccessTokenTTL,
		RefreshTTL: jwtx.RefreshTokenTTL,
	}

	accessSecret := jwtx.AccessSecret(accessMaster)
	refreshSecret := jwtx.RefreshSecret(refreshMaster)

	s.accessSigner = jwtx.NewSignerHS256(accessSecret)
	s.refreshSigner = jwtx.NewSignerHS256(refreshSecret)
	s.accessVerifier = jwtx.NewVerifierHS256(accessSecret, jwtx.VerifyOptions{
		Issuer:   issuer,
		Audience: []string{jwtx.AccessAudience},
		Now:      s.now,
	})
	s.refreshVerifier = jwtx.NewVerifierHS256(refreshSecret, jwtx.VerifyOptions{
		Issuer:   issuer,
		Audience: []string{jwtx.RefreshAudience},
		Now:      s.now,
	})

	return s
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// IssueAccessToken signs a short lived token carrying the user's profile.
func (s *TokenService) IssueAccessToken(u domain.User) (domain.AuthToken, error) {
	claims := jwtx.NewAccessClaims(u.ID, jwtx.Profile{
		Email:      u.Email,
		Name:       u.Name,
		ProviderID: u.ProviderID,
		AvatarURL:  u.AvatarURL,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}, s.Issuer, s.AccessTTL, s.now())

	return s.sign(s.accessSigner, claims, s.AccessTTL)
}

// IssueRefreshToken signs a long lived token with registered claims only.
func (s *TokenService) IssueRefreshToken(u domain.User) (domain.AuthToken, error) {
	claims := jwtx.NewRefreshClaims(u.ID, u.ProviderID, s.Issuer, s.RefreshTTL, s.now())
	return s.sign(s.refreshSigner, claims, s.RefreshTTL)
}

func (s *TokenService) sign(signer jwtx.Signer, claims jwtx.Claims, ttl time.Duration) (domain.AuthToken, error) {
	if claims.Subject == "" || claims.ID == "" {
		return domain.AuthToken{}, errx.Upstream("failed to issue token", errors.New("user id and provider id are required"))
	}

	token, err := signer.Sign(claims)
	if err != nil {
		return domain.AuthToken{}, errx.Upstream("failed to issue token", err)
	}

	return domain.AuthToken{
		Token:            token,
		ExpiresInSeconds: int64(ttl / time.Second),
	}, nil
}

// IssueAuthResponse issues an access token and, when issueRefresh is set, a
// refresh token. Without it RefreshToken is nil and the caller must keep
// the client's existing refresh token.
func (s *TokenService) IssueAuthResponse(u domain.User, issueRefresh bool) (domain.AuthResponse, error) {
	access, err := s.IssueAccessToken(u)
	if err != nil {
		return domain.AuthResponse{}, err
	}

	resp := domain.AuthResponse{User: u, AccessToken: access}
	if !issueRefresh {
		return resp, nil
	}

	refresh, err := s.IssueRefreshToken(u)
	if err != nil {
		return domain.AuthResponse{}, err
	}
	resp.RefreshToken = &refresh

	return resp, nil
}

// VerifyAccess returns the claims of a valid access token. An empty, expired
// or otherwise invalid token yields nil claims and a nil error; only a token
// that is not three segments yields jwtx.ErrMalformed.
func (s *TokenService) VerifyAccess(ctx context.Context, raw string) (*jwtx.Claims, error) {
	return s.verify(ctx, s.accessVerifier, raw, "access")
}

// VerifyRefresh is VerifyAccess for refresh tokens.
func (s *TokenService) VerifyRefresh(ctx context.Context, raw string) (*jwtx.Claims, error) {
	return s.verify(ctx, s.refreshVerifier, raw, "refresh")
}

func (s *TokenService) verify(ctx context.Context, v jwtx.Verifier, raw, kind string) (*jwtx.Claims, error) {
	if raw == "" {
		return nil, nil
	}

	claims, err := v.Verify(raw)
	if err != nil {
		if errors.Is(err, jwtx.ErrMalformed) {
			return nil, err
		}
		slogx.FromContext(ctx).DebugContext(ctx, "token rejected", "kind", kind, "reason", err)
		return nil, nil
	}
	return claims, nil
}

// UserFromClaims rebuilds the user snapshot carried by access claims.
func UserFromClaims(c *jwtx.Claims) domain.User {
	p := c.Profile()
	return domain.User{
		ID:         c.Subject,
		Email:      p.Email,
		Name:       p.Name,
		ProviderID: p.ProviderID,
		AvatarURL:  p.AvatarURL,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
