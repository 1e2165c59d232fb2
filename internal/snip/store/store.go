package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/snip/internal/snip/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and so a Tx can only be opened from the root store.
type Store interface {
	Users() Users
	URLs() URLs
	Visits() Visits
	Sequences() Sequences

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. An error from fn rolls back,
	// nil commits.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByProviderID is the OAuth sign-in lookup.
	GetUserByProviderID(ctx context.Context, providerID string) (domain.User, error)

	// GetUserByEmail lets sign in tell an email clash from a provider id clash.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Duplicate provider id or email yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUserProfile overwrites email, name, avatar_url and updated_at.
	// provider_id is never touched.
	UpdateUserProfile(ctx context.Context, u domain.User) error
}

type URLs interface {
	// CreateURL inserts a link. A slug held by another live link yields
	// ErrAlreadyExists.
	CreateURL(ctx context.Context, u domain.URL) error

	// GetURLByID and GetURLBySlug only see links that are not soft deleted.
	GetURLByID(ctx context.Context, id string) (domain.URL, error)
	GetURLBySlug(ctx context.Context, slug string) (domain.URL, error)

	// ListURLsByUser returns the user's live links, newest first.
	ListURLsByUser(ctx context.Context, userID string) ([]domain.URL, error)

	UpdateURLSlug(ctx context.Context, id, slug string, now time.Time) error

	// SoftDeleteURL marks a live link owned by userID as deleted. ErrNotFound
	// when nothing matched.
	SoftDeleteURL(ctx context.Context, id, userID string, now time.Time) error

	// PurgeDeletedURLs hard deletes links soft deleted before cutoff.
	PurgeDeletedURLs(ctx context.Context, cutoff time.Time) (int64, error)
}

type Visits interface {
	CreateVisit(ctx context.Context, v domain.Visit) error

	// ListVisitsByURL returns visits with from <= created_at <= to, oldest first.
	ListVisitsByURL(ctx context.Context, urlID string, from, to time.Time) ([]domain.Visit, error)

	// DeleteVisitsBefore is housekeeping for the retention window.
	DeleteVisitsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Sequences is the durable counter behind generated slugs. NextValue is a
// single atomic increment in the database, so concurrent callers on any
// number of instances never see the same value.
type Sequences interface {
	NextValue(ctx context.Context) (int64, error)
}

// SlugSequenceStart is the first value handed out, chosen so early slugs are
// already three characters long.
const SlugSequenceStart = 4567
