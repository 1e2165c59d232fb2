package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/aussiebroadwan/snip/internal/snip/domain"
	"github.com/aussiebroadwan/snip/internal/snip/store"
	"github.com/aussiebroadwan/snip/pkg/errx"
	"github.com/aussiebroadwan/snip/pkg/idx"
	"github.com/aussiebroadwan/snip/pkg/slogx"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type UserService struct {
	Store store.Store
	Now   func() time.Time
}

func (s *UserService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// GetUserByID fetches a user by id. It satisfies UserLookup.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, errx.NotFound("user not found")
		}
		return domain.User{}, errx.Upstream("failed to load user", err)
	}
	return u, nil
}

// GetProfile is GetUserByID for the signed in principal.
func (s *UserService) GetProfile(ctx context.Context, userID string) (domain.User, error) {
	if userID == "" {
		return domain.User{}, errx.Unauthorized("not signed in")
	}
	return s.GetUserByID(ctx, userID)
}

// SignInWithOAuth maps a provider profile to a user: created on first sign
// in, refreshed when the provider reports changes. The provider id never
// changes once stored. The lookups and the write share one transaction.
func (s *UserService) SignInWithOAuth(ctx context.Context, p domain.OAuthProfile) (domain.User, error) {
	p.ProviderID = strings.TrimSpace(p.ProviderID)
	p.Email = strings.TrimSpace(p.Email)
	p.Name = strings.TrimSpace(p.Name)

	if p.ProviderID == "" {
		return domain.User{}, errx.Validation("provider id is required")
	}
	if !emailPattern.MatchString(p.Email) {
		return domain.User{}, errx.Validation("invalid email")
	}

	var (
		u       domain.User
		created bool
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		users := tx.Users()

		existing, err := users.GetUserByProviderID(ctx, p.ProviderID)
		switch {
		case err == nil:
			u, err = s.refreshProfile(ctx, users, existing, p)
			return err
		case !errors.Is(err, store.ErrNotFound):
			return errx.Upstream("failed to load user", err)
		}

		switch _, err := users.GetUserByEmail(ctx, p.Email); {
		case err == nil:
			return errx.Conflict("a user with this email already exists")
		case !errors.Is(err, store.ErrNotFound):
			return errx.Upstream("failed to load user", err)
		}

		now := s.now()
		u = domain.User{
			ID:         idx.New().String(),
			Email:      p.Email,
			Name:       p.Name,
			ProviderID: p.ProviderID,
			AvatarURL:  p.AvatarURL,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := users.CreateUser(ctx, u); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return errx.Conflict("this account was created by a concurrent sign in")
			}
			return errx.Upstream("failed to create user", err)
		}
		created = true
		return nil
	})
	if err != nil {
		return domain.User{}, txErr(err, "failed to sign in")
	}

	if created {
		slogx.FromContext(ctx).InfoContext(ctx, "user signed up", "user_id", u.ID)
	}
	return u, nil
}

func (s *UserService) refreshProfile(ctx context.Context, users store.Users, u domain.User, p domain.OAuthProfile) (domain.User, error) {
	if u.Email == p.Email && u.Name == p.Name && u.AvatarURL == p.AvatarURL {
		return u, nil
	}

	u.Email = p.Email
	u.Name = p.Name
	u.AvatarURL = p.AvatarURL
	u.UpdatedAt = s.now()

	if err := users.UpdateUserProfile(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, errx.Conflict("a user with this email already exists")
		}
		return domain.User{}, errx.Upstream("failed to update user", err)
	}

	slogx.FromContext(ctx).InfoContext(ctx, "user profile refreshed", "user_id", u.ID)
	return u, nil
}
