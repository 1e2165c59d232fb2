package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/snip/internal/snip/domain"
	"github.com/aussiebroadwan/snip/internal/snip/store"
	"github.com/aussiebroadwan/snip/internal/snip/store/drivers/sqlite/gen"
)

type urlsRepo struct {
	q *gen.Queries
}

func (r *urlsRepo) CreateURL(ctx context.Context, u domain.URL) error {
	err := r.q.CreateURL(ctx, gen.CreateURLParams{
		ID:        u.ID,
		Url:       u.URL,
		Slug:      u.Slug,
		UserID:    mapOptionalString(u.UserID),
		CreatedAt: utc(u.CreatedAt),
		UpdatedAt: utc(u.UpdatedAt),
	})
	return mapWriteErr(err)
}

func (r *urlsRepo) GetURLByID(ctx context.Context, id string) (domain.URL, error) {
	row, err := r.q.GetURLByID(ctx, id)
	if err != nil {
		return domain.URL{}, mapNotFound(err)
	}
	return mapURL(row), nil
}

func (r *urlsRepo) GetURLBySlug(ctx context.Context, slug string) (domain.URL, error) {
	row, err := r.q.GetURLBySlug(ctx, slug)
	if err != nil {
		return domain.URL{}, mapNotFound(err)
	}
	return mapURL(row), nil
}

func (r *urlsRepo) ListURLsByUser(ctx context.Context, userID string) ([]domain.URL, error) {
	rows, err := r.q.ListURLsByUser(ctx, mapStringNull(userID))
	if err != nil {
		return nil, err
	}

	out := make([]domain.URL, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapURL(row))
	}
	return out, nil
}

func (r *urlsRepo) UpdateURLSlug(ctx context.Context, id, slug string, now time.Time) error {
	n, err := r.q.UpdateURLSlug(ctx, gen.UpdateURLSlugParams{
		Slug:      slug,
		UpdatedAt: utc(now),
		ID:        id,
	})
	if err != nil {
		return mapWriteErr(err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *urlsRepo) SoftDeleteURL(ctx context.Context, id, userID string, now time.Time) error {
	n, err := r.q.SoftDeleteURL(ctx, gen.SoftDeleteURLParams{
		DeletedAt: sql.NullTime{Time: utc(now), Valid: true},
		UpdatedAt: utc(now),
		ID:        id,
		UserID:    mapStringNull(userID),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *urlsRepo) PurgeDeletedURLs(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.q.PurgeDeletedURLs(ctx, sql.NullTime{Time: utc(cutoff), Valid: true})
}
