package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/snip/internal/snip/domain"
)

type visitsRepo struct {
	db dbtx
}

func (r *visitsRepo) CreateVisit(ctx context.Context, v domain.Visit) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO visits (id, url_id, referrer_domain, browser, operating_system, device_type, language, visitor_hash, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		v.ID, v.URLID, nullable(v.ReferrerDomain), nullable(v.Browser), nullable(v.OperatingSystem),
		v.DeviceType, nullable(v.Language), nullable(v.VisitorHash), v.CreatedAt,
	)
	return mapWriteErr(err)
}

func (r *visitsRepo) ListVisitsByURL(ctx context.Context, urlID string, from, to time.Time) ([]domain.Visit, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, url_id, referrer_domain, browser, operating_system, device_type, language, visitor_hash, created_at
		 FROM visits WHERE url_id = $1 AND created_at >= $2 AND created_at <= $3
		 ORDER BY created_at ASC, id ASC`,
		urlID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Visit{}
	for rows.Next() {
		var (
			v                               domain.Visit
			referrer, browser, os, lang, vh *string
		)
		if err := rows.Scan(&v.ID, &v.URLID, &referrer, &browser, &os, &v.DeviceType, &lang, &vh, &v.CreatedAt); err != nil {
			return nil, err
		}
		v.ReferrerDomain = deref(referrer)
		v.Browser = deref(browser)
		v.OperatingSystem = deref(os)
		v.Language = deref(lang)
		v.VisitorHash = deref(vh)
		v.CreatedAt = v.CreatedAt.UTC()
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *visitsRepo) DeleteVisitsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM visits WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
