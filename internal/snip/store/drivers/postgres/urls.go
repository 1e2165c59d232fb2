package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/snip/internal/snip/domain"
	"github.com/aussiebroadwan/snip/internal/snip/store"
	"github.com/jackc/pgx/v5"
)

const urlColumns = `id, url, slug, user_id, created_at, updated_at, deleted_at`

type urlsRepo struct {
	db dbtx
}

func scanURL(row pgx.Row) (domain.URL, error) {
	var u domain.URL
	if err := row.Scan(&u.ID, &u.URL, &u.Slug, &u.UserID, &u.CreatedAt, &u.UpdatedAt, &u.DeletedAt); err != nil {
		return domain.URL{}, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	if u.DeletedAt != nil {
		d := u.DeletedAt.UTC()
		u.DeletedAt = &d
	}
	return u, nil
}

func (r *urlsRepo) CreateURL(ctx context.Context, u domain.URL) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO urls (id, url, slug, user_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.URL, u.Slug, u.UserID, u.CreatedAt, u.UpdatedAt,
	)
	return mapWriteErr(err)
}

func (r *urlsRepo) GetURLByID(ctx context.Context, id string) (domain.URL, error) {
	u, err := scanURL(r.db.QueryRow(ctx,
		`SELECT `+urlColumns+` FROM urls WHERE id = $1 AND deleted_at IS NULL`, id))
	return u, mapNotFound(err)
}

func (r *urlsRepo) GetURLBySlug(ctx context.Context, slug string) (domain.URL, error) {
	u, err := scanURL(r.db.QueryRow(ctx,
		`SELECT `+urlColumns+` FROM urls WHERE slug = $1 AND deleted_at IS NULL`, slug))
	return u, mapNotFound(err)
}

func (r *urlsRepo) ListURLsByUser(ctx context.Context, userID string) ([]domain.URL, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+urlColumns+` FROM urls WHERE user_id = $1 AND deleted_at IS NULL ORDER BY created_at DESC, id DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.URL{}
	for rows.Next() {
		u, err := scanURL(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *urlsRepo) UpdateURLSlug(ctx context.Context, id, slug string, now time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE urls SET slug = $1, updated_at = $2 WHERE id = $3 AND deleted_at IS NULL`,
		slug, now, id)
	if err != nil {
		return mapWriteErr(err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *urlsRepo) SoftDeleteURL(ctx context.Context, id, userID string, now time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE urls SET deleted_at = $1, updated_at = $1 WHERE id = $2 AND user_id = $3 AND deleted_at IS NULL`,
		now, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *urlsRepo) PurgeDeletedURLs(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM urls WHERE deleted_at IS NOT NULL AND deleted_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
