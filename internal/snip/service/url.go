package service

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/aussiebroadwan/snip/internal/snip/domain"
	"github.com/aussiebroadwan/snip/internal/snip/store"
	"github.com/aussiebroadwan/snip/pkg/errx"
	"github.com/aussiebroadwan/snip/pkg/idx"
	"github.com/aussiebroadwan/snip/pkg/slogx"
)

// URLCache is the read-through cache in front of slug resolution. Failures
// are never fatal; the store stays the source of truth.
type URLCache interface {
	GetURL(ctx context.Context, slug string) (domain.URL, error)
	SetURL(ctx context.Context, u domain.URL) error
	DeleteSlugs(ctx context.Context, slugs ...string) error
}

// ShortenInput is a request to create a link. Slug is optional and UserID is
// empty for anonymous links.
type ShortenInput struct {
	URL    string
	Slug   string
	UserID string
}

// maxGeneratedAttempts bounds how many sequence values one Shorten call
// draws when custom links already hold the generated slugs.
const maxGeneratedAttempts = 8

type URLService struct {
	Store store.Store
	Slugs *SlugGenerator
	Cache URLCache // optional
	Now   func() time.Time

	// mutations counts committed slug changes and deletions. A lookup that
	// sees it move while filling the cache evicts its own entry.
	mutations atomic.Uint64
}

func (s *URLService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Shorten validates the target, settles the slug and stores the link.
// Custom slugs are checked and inserted in one transaction. Generated slugs
// skip ahead when a custom link already holds the sequence value.
func (s *URLService) Shorten(ctx context.Context, in ShortenInput) (domain.URL, error) {
	target, err := ValidateURL(in.URL)
	if err != nil {
		return domain.URL{}, err
	}

	now := s.now()
	u := domain.URL{
		ID:        idx.New().String(),
		URL:       target,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.UserID != "" {
		owner := in.UserID
		u.UserID = &owner
	}

	if slug := strings.TrimSpace(in.Slug); slug != "" {
		u.Slug = slug
		err = s.Store.WithTx(ctx, func(tx store.Tx) error {
			if err := s.Slugs.ValidateCustomSlug(ctx, slug, tx.URLs().GetURLBySlug); err != nil {
				return err
			}
			return createURL(ctx, tx.URLs(), u)
		})
		err = txErr(err, "failed to create url")
	} else {
		err = s.insertGenerated(ctx, &u)
	}
	if err != nil {
		return domain.URL{}, err
	}

	slogx.Annotate(ctx, "url_id", u.ID, "slug", u.Slug)
	return u, nil
}

func (s *URLService) insertGenerated(ctx context.Context, u *domain.URL) error {
	for attempt := 1; ; attempt++ {
		slug, err := s.Slugs.Generate(ctx)
		if err != nil {
			return err
		}
		u.Slug = slug

		err = createURL(ctx, s.Store.URLs(), *u)
		if err == nil || !errors.Is(err, errx.ErrConflict) || attempt == maxGeneratedAttempts {
			return err
		}
		slogx.FromContext(ctx).WarnContext(ctx, "generated slug held by a custom link", "slug", slug)
	}
}

func createURL(ctx context.Context, urls store.URLs, u domain.URL) error {
	if err := urls.CreateURL(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return errx.Conflict("slug %q is already taken", u.Slug)
		}
		return errx.Upstream("failed to create url", err)
	}
	return nil
}

// GetBySlug resolves a live link, consulting the cache first.
func (s *URLService) GetBySlug(ctx context.Context, slug string) (domain.URL, error) {
	if slug == "" {
		return domain.URL{}, errx.Validation("slug is required")
	}

	if s.Cache != nil {
		if u, err := s.Cache.GetURL(ctx, slug); err == nil {
			return u, nil
		}
	}

	seen := s.mutations.Load()
	u, err := s.Store.URLs().GetURLBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.URL{}, errx.NotFound("url not found")
		}
		return domain.URL{}, errx.Upstream("failed to load url", err)
	}

	if s.Cache != nil {
		_ = s.Cache.SetURL(ctx, u)
		// The link may have moved or gone after it was read, with the
		// eviction landing before this write.
		if s.mutations.Load() != seen {
			s.evict(ctx, u.Slug)
		}
	}
	return u, nil
}

// ListMine returns the caller's live links, newest first.
func (s *URLService) ListMine(ctx context.Context, userID string) ([]domain.URL, error) {
	if userID == "" {
		return nil, errx.Unauthorized("not signed in")
	}

	urls, err := s.Store.URLs().ListURLsByUser(ctx, userID)
	if err != nil {
		return nil, errx.Upstream("failed to list urls", err)
	}
	if urls == nil {
		urls = []domain.URL{}
	}
	return urls, nil
}

// UpdateSlug moves an owned link to a new custom slug. Ownership, the
// candidate and the write share one transaction.
func (s *URLService) UpdateSlug(ctx context.Context, userID, id, slug string) (domain.URL, error) {
	slug = strings.TrimSpace(slug)
	now := s.now()

	var u domain.URL
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		if u, err = loadOwned(ctx, tx.URLs(), userID, id); err != nil {
			return err
		}
		if slug == u.Slug {
			return errx.Validation("slug is unchanged")
		}
		if err := s.Slugs.ValidateCustomSlug(ctx, slug, tx.URLs().GetURLBySlug); err != nil {
			return err
		}

		if err := tx.URLs().UpdateURLSlug(ctx, u.ID, slug, now); err != nil {
			switch {
			case errors.Is(err, store.ErrAlreadyExists):
				return errx.Conflict("slug %q is already taken", slug)
			case errors.Is(err, store.ErrNotFound):
				return errx.NotFound("url not found")
			default:
				return errx.Upstream("failed to update url", err)
			}
		}
		return nil
	})
	if err != nil {
		return domain.URL{}, txErr(err, "failed to update url")
	}

	s.invalidate(ctx, u.Slug)

	u.Slug = slug
	u.UpdatedAt = now
	return u, nil
}

// Delete soft deletes an owned link. Links of other users read as missing.
func (s *URLService) Delete(ctx context.Context, userID, id string) error {
	var u domain.URL
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		u, err = tx.URLs().GetURLByID(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return errx.NotFound("url not found")
			}
			return errx.Upstream("failed to load url", err)
		}
		if !u.OwnedBy(userID) {
			return errx.NotFound("url not found")
		}

		if err := tx.URLs().SoftDeleteURL(ctx, id, userID, s.now()); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return errx.NotFound("url not found")
			}
			return errx.Upstream("failed to delete url", err)
		}
		return nil
	})
	if err != nil {
		return txErr(err, "failed to delete url")
	}

	s.invalidate(ctx, u.Slug)
	return nil
}

func loadOwned(ctx context.Context, urls store.URLs, userID, id string) (domain.URL, error) {
	if userID == "" {
		return domain.URL{}, errx.Unauthorized("not signed in")
	}

	u, err := urls.GetURLByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.URL{}, errx.NotFound("url not found")
		}
		return domain.URL{}, errx.Upstream("failed to load url", err)
	}
	if !u.OwnedBy(userID) {
		return domain.URL{}, errx.Unauthorized("url belongs to another user")
	}
	return u, nil
}

// invalidate runs after a change to the link holding slug has committed.
func (s *URLService) invalidate(ctx context.Context, slug string) {
	s.mutations.Add(1)
	s.evict(ctx, slug)
}

func (s *URLService) evict(ctx context.Context, slugs ...string) {
	if s.Cache == nil {
		return
	}
	_ = s.Cache.DeleteSlugs(ctx, slugs...)
}

// txErr passes classified errors from a transaction through and wraps
// begin or commit failures.
func txErr(err error, message string) error {
	if err == nil || errx.KindOf(err) != errx.KindUnknown {
		return err
	}
	return errx.Upstream(message, err)
}
