package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/snip/internal/snip/domain"
	"github.com/aussiebroadwan/snip/internal/snip/store/drivers/sqlite/gen"
)

type visitsRepo struct {
	q *gen.Queries
}

func (r *visitsRepo) CreateVisit(ctx context.Context, v domain.Visit) error {
	err := r.q.CreateVisit(ctx, gen.CreateVisitParams{
		ID:              v.ID,
		UrlID:           v.URLID,
		ReferrerDomain:  mapStringNull(v.ReferrerDomain),
		Browser:         mapStringNull(v.Browser),
		OperatingSystem: mapStringNull(v.OperatingSystem),
		DeviceType:      v.DeviceType,
		Language:        mapStringNull(v.Language),
		VisitorHash:     mapStringNull(v.VisitorHash),
		CreatedAt:       utc(v.CreatedAt),
	})
	return mapWriteErr(err)
}

func (r *visitsRepo) ListVisitsByURL(ctx context.Context, urlID string, from, to time.Time) ([]domain.Visit, error) {
	rows, err := r.q.ListVisitsByURL(ctx, gen.ListVisitsByURLParams{
		UrlID:       urlID,
		CreatedAt:   utc(from),
		CreatedAt_2: utc(to),
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.Visit, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapVisit(row))
	}
	return out, nil
}

func (r *visitsRepo) DeleteVisitsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.q.DeleteVisitsBefore(ctx, utc(cutoff))
}
