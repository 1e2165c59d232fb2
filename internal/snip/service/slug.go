package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/aussiebroadwan/snip/internal/snip/domain"
	"github.com/aussiebroadwan/snip/internal/snip/store"
	"github.com/aussiebroadwan/snip/pkg/base62"
	"github.com/aussiebroadwan/snip/pkg/errx"
)

// MaxSlugLength bounds caller supplied slugs.
const MaxSlugLength = 64

var (
	urlPattern  = regexp.MustCompile(`(?i)^(https?://)?((([a-z0-9-]+\.)+[a-z]{2,})|((25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)(\.(25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)){3}))(:\d+)?(/\S*)?$`)
	schemeRegex = regexp.MustCompile(`(?i)^https?://`)
	slugPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// reservedSlugs collide with fixed top level routes and would never resolve.
var reservedSlugs = map[string]struct{}{
	"health":  {},
	"livez":   {},
	"readyz":  {},
	"swagger": {},
	"v1":      {},
}

// SlugLookup finds a live link by slug. It must return store.ErrNotFound
// when no link holds the slug.
type SlugLookup func(ctx context.Context, slug string) (domain.URL, error)

// SlugGenerator hands out slugs for new links. Generated slugs come from the
// durable sequence and are never checked for uniqueness.
type SlugGenerator struct {
	Sequence store.Sequences
}

// Generate returns the base62 encoding of the next sequence value.
func (g *SlugGenerator) Generate(ctx context.Context) (string, error) {
	n, err := g.Sequence.NextValue(ctx)
	if err != nil {
		return "", errx.Upstream("failed to generate slug", err)
	}
	if n < 0 {
		return "", errx.Upstream("failed to generate slug", errors.New("negative sequence value"))
	}
	return base62.Encode(uint64(n)), nil
}

// ValidateCustomSlug checks the format of candidate and that no live link
// holds it.
func (g *SlugGenerator) ValidateCustomSlug(ctx context.Context, candidate string, lookup SlugLookup) error {
	if err := ValidateSlugFormat(candidate); err != nil {
		return err
	}

	existing, err := lookup(ctx, candidate)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil
	case err != nil:
		return errx.Upstream("failed to check slug", err)
	case existing.Deleted():
		return nil
	default:
		return errx.Conflict("slug %q is already taken", candidate)
	}
}

// ValidateSlugFormat enforces length and charset of a caller supplied slug.
func ValidateSlugFormat(slug string) error {
	if slug == "" || len(slug) > MaxSlugLength {
		return errx.Validation("slug must be between 1 and %d characters", MaxSlugLength)
	}
	if !slugPattern.MatchString(slug) {
		return errx.Validation("slug may only contain letters, digits, '-' and '_'")
	}
	if _, ok := reservedSlugs[strings.ToLower(slug)]; ok {
		return errx.Validation("slug %q is reserved", slug)
	}
	return nil
}

// IsSlugCharset reports whether slug only uses the characters allowed in
// custom slugs.
func IsSlugCharset(slug string) bool { return slugPattern.MatchString(slug) }

// ValidateURL checks raw against the accepted URL shape and returns it with
// an https scheme when none was given.
func ValidateURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errx.Validation("url is required")
	}
	if !urlPattern.MatchString(raw) {
		return "", errx.Validation("invalid url format")
	}
	if !schemeRegex.MatchString(raw) {
		raw = "https://" + raw
	}
	return raw, nil
}
