package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/snip/internal/snip/domain"
	"github.com/aussiebroadwan/snip/internal/snip/store"
	"github.com/aussiebroadwan/snip/internal/snip/store/drivers/sqlite/gen"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type Store struct {
	db  *sql.DB
	q   *gen.Queries
	dsn string
}

// NewStore opens dsn with the modernc driver. Times are written in the
// sqlite text format so range queries compare lexically.
func NewStore(dsn string) (*Store, error) {
	dsn = withTimeFormat(dsn)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// One writer at a time is all sqlite allows anyway, and a single
	// connection keeps ":memory:" databases alive for the store's lifetime.
	db.SetMaxOpenConns(1)

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:  db,
		q:   gen.New(db),
		dsn: dsn,
	}, nil
}

func withTimeFormat(dsn string) string {
	if strings.Contains(dsn, "_time_format=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_time_format=sqlite"
	}
	return dsn + "?_time_format=sqlite"
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) Users() store.Users         { return &usersRepo{q: s.q} }
func (s *Store) URLs() store.URLs           { return &urlsRepo{q: s.q} }
func (s *Store) Visits() store.Visits       { return &visitsRepo{q: s.q} }
func (s *Store) Sequences() store.Sequences { return &sequencesRepo{q: s.q} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapWriteErr turns unique constraint violations into ErrAlreadyExists.
func mapWriteErr(err error) error {
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return store.ErrAlreadyExists
		}
	}
	return err
}

func mapNullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func mapStringNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

func mapNullStringPtr(ns sql.NullString) *string {
	if ns.Valid {
		val := ns.String
		return &val
	}
	return nil
}

func mapOptionalString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: *s, Valid: true}
}

func mapNullTimePtr(nt sql.NullTime) *time.Time {
	if nt.Valid {
		val := nt.Time.UTC()
		return &val
	}
	return nil
}

func utc(t time.Time) time.Time { return t.UTC() }

func mapUser(row gen.User) domain.User {
	return domain.User{
		ID:         row.ID,
		Email:      row.Email,
		Name:       row.Name,
		ProviderID: row.ProviderID,
		AvatarURL:  mapNullString(row.AvatarUrl),
		CreatedAt:  row.CreatedAt.UTC(),
		UpdatedAt:  row.UpdatedAt.UTC(),
	}
}

func mapURL(row gen.Url) domain.URL {
	return domain.URL{
		ID:        row.ID,
		URL:       row.Url,
		Slug:      row.Slug,
		UserID:    mapNullStringPtr(row.UserID),
		CreatedAt: row.CreatedAt.UTC(),
		UpdatedAt: row.UpdatedAt.UTC(),
		DeletedAt: mapNullTimePtr(row.DeletedAt),
	}
}

func mapVisit(row gen.Visit) domain.Visit {
	return domain.Visit{
		ID:              row.ID,
		URLID:           row.UrlID,
		ReferrerDomain:  mapNullString(row.ReferrerDomain),
		Browser:         mapNullString(row.Browser),
		OperatingSystem: mapNullString(row.OperatingSystem),
		DeviceType:      row.DeviceType,
		Language:        mapNullString(row.Language),
		VisitorHash:     mapNullString(row.VisitorHash),
		CreatedAt:       row.CreatedAt.UTC(),
	}
}
