package gen

import (
	"context"
	"database/sql"
	"time"
)

const createVisit = `-- name: CreateVisit :exec
INSERT INTO visits (id, url_id, referrer_domain, browser, operating_system, device_type, language, visitor_hash, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type CreateVisitParams struct {
	ID              string
	UrlID           string
	ReferrerDomain  sql.NullString
	Browser         sql.NullString
	OperatingSystem sql.NullString
	DeviceType      string
	Language        sql.NullString
	VisitorHash     sql.NullString
	CreatedAt       time.Time
}

func (q *Queries) CreateVisit(ctx context.Context, arg CreateVisitParams) error {
	_, err := q.db.ExecContext(ctx, createVisit,
		arg.ID,
		arg.UrlID,
		arg.ReferrerDomain,
		arg.Browser,
		arg.OperatingSystem,
		arg.DeviceType,
		arg.Language,
		arg.VisitorHash,
		arg.CreatedAt,
	)
	return err
}

const deleteVisitsBefore = `-- name: DeleteVisitsBefore :execrows
DELETE FROM visits WHERE created_at < ?
`

func (q *Queries) DeleteVisitsBefore(ctx context.Context, createdAt time.Time) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteVisitsBefore, createdAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listVisitsByURL = `-- name: ListVisitsByURL :many
SELECT id, url_id, referrer_domain, browser, operating_system, device_type, language, visitor_hash, created_at
FROM visits WHERE url_id = ? AND created_at >= ? AND created_at <= ?
ORDER BY created_at ASC, id ASC
`

type ListVisitsByURLParams struct {
	UrlID       string
	CreatedAt   time.Time
	CreatedAt_2 time.Time
}

func (q *Queries) ListVisitsByURL(ctx context.Context, arg ListVisitsByURLParams) ([]Visit, error) {
	rows, err := q.db.QueryContext(ctx, listVisitsByURL, arg.UrlID, arg.CreatedAt, arg.CreatedAt_2)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Visit
	for rows.Next() {
		var i Visit
		if err := rows.Scan(
			&i.ID,
			&i.UrlID,
			&i.ReferrerDomain,
			&i.Browser,
			&i.OperatingSystem,
			&i.DeviceType,
			&i.Language,
			&i.VisitorHash,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
