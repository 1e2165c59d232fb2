package service

import (
	"context"

	"github.com/aussiebroadwan/snip/internal/snip/domain"
	"github.com/aussiebroadwan/snip/pkg/errx"
	"github.com/aussiebroadwan/snip/pkg/jwtx"
	"github.com/aussiebroadwan/snip/pkg/slogx"
)

// SessionState is the outcome of resolving one request's credentials.
type SessionState int

const (
	SessionUnauthenticated SessionState = iota
	SessionAccessValid
	SessionRefreshedJustNow
	SessionRejected
)

func (s SessionState) String() string {
	switch s {
	case SessionUnauthenticated:
		return "unauthenticated"
	case SessionAccessValid:
		return "access_valid"
	case SessionRefreshedJustNow:
		return "refreshed"
	case SessionRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Session is the resolved principal of a request.
type Session struct {
	State SessionState

	// User is set for AccessValid and RefreshedJustNow. For AccessValid it is
	// the snapshot embedded in the access token.
	User *domain.User

	// Refreshed holds the newly issued access token after a silent refresh.
	// Its RefreshToken is always nil.
	Refreshed *domain.AuthResponse
}

// Authenticated reports whether a principal is attached.
func (s Session) Authenticated() bool { return s.User != nil }

// UserLookup resolves the subject of a refresh token to its current profile.
type UserLookup interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)
}

// SessionCoordinator runs the silent refresh flow.
type SessionCoordinator struct {
	Tokens *TokenService
	Users  UserLookup
}

// Resolve verifies both tokens and decides the session state. A valid access
// token wins outright. Otherwise a valid refresh token re-issues an access
// token for the subject's current profile. The returned error is non-nil only
// for SessionRejected; it is Unauthorized unless signing itself failed.
func (c *SessionCoordinator) Resolve(ctx context.Context, accessRaw, refreshRaw string) (Session, error) {
	l := slogx.FromContext(ctx)

	access, err := c.Tokens.VerifyAccess(ctx, accessRaw)
	if err != nil {
		l.WarnContext(ctx, "malformed access token", "error", err)
	}
	if access != nil {
		u := UserFromClaims(access)
		return Session{State: SessionAccessValid, User: &u}, nil
	}

	refresh, err := c.Tokens.VerifyRefresh(ctx, refreshRaw)
	if err != nil {
		l.WarnContext(ctx, "malformed refresh token", "error", err)
	}
	if refresh == nil {
		return Session{State: SessionUnauthenticated}, nil
	}

	resp, err := c.reissue(ctx, refresh)
	if err != nil {
		return Session{State: SessionRejected}, err
	}

	l.DebugContext(ctx, "access token silently refreshed", "user_id", resp.User.ID)
	return Session{State: SessionRefreshedJustNow, User: &resp.User, Refreshed: &resp}, nil
}

// Refresh is the explicit refresh operation: it requires a valid refresh
// token and returns a new access token only.
func (c *SessionCoordinator) Refresh(ctx context.Context, refreshRaw string) (domain.AuthResponse, error) {
	refresh, err := c.Tokens.VerifyRefresh(ctx, refreshRaw)
	if err != nil {
		slogx.FromContext(ctx).WarnContext(ctx, "malformed refresh token", "error", err)
	}
	if refresh == nil {
		return domain.AuthResponse{}, errx.Unauthorized("invalid refresh token")
	}
	return c.reissue(ctx, refresh)
}

func (c *SessionCoordinator) reissue(ctx context.Context, refresh *jwtx.Claims) (domain.AuthResponse, error) {
	l := slogx.FromContext(ctx)

	u, err := c.Users.GetUserByID(ctx, refresh.Subject)
	if err != nil {
		// Not retried: a retry could hide a deleted account.
		l.WarnContext(ctx, "refresh rejected, subject lookup failed",
			"user_id", refresh.Subject, "error", err)
		return domain.AuthResponse{}, errx.Unauthorized("invalid refresh token")
	}
	if u.ProviderID != refresh.ID {
		l.WarnContext(ctx, "refresh rejected, provider id mismatch", "user_id", u.ID)
		return domain.AuthResponse{}, errx.Unauthorized("invalid refresh token")
	}

	resp, err := c.Tokens.IssueAuthResponse(u, false)
	if err != nil {
		l.ErrorContext(ctx, "failed to issue refreshed access token", "error", err)
		return domain.AuthResponse{}, err
	}
	return resp, nil
}
