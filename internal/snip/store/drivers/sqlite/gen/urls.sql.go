package gen

import (
	"context"
	"database/sql"
	"time"
)

const createURL = `-- name: CreateURL :exec
INSERT INTO urls (id, url, slug, user_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
`

type CreateURLParams struct {
	ID        string
	Url       string
	Slug      string
	UserID    sql.NullString
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (q *Queries) CreateURL(ctx context.Context, arg CreateURLParams) error {
	_, err := q.db.ExecContext(ctx, createURL,
		arg.ID,
		arg.Url,
		arg.Slug,
		arg.UserID,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getURLByID = `-- name: GetURLByID :one
SELECT id, url, slug, user_id, created_at, updated_at, deleted_at
FROM urls WHERE id = ? AND deleted_at IS NULL
`

func (q *Queries) GetURLByID(ctx context.Context, id string) (Url, error) {
	row := q.db.QueryRowContext(ctx, getURLByID, id)
	var i Url
	err := row.Scan(
		&i.ID,
		&i.Url,
		&i.Slug,
		&i.UserID,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.DeletedAt,
	)
	return i, err
}

const getURLBySlug = `-- name: GetURLBySlug :one
SELECT id, url, slug, user_id, created_at, updated_at, deleted_at
FROM urls WHERE slug = ? AND deleted_at IS NULL
`

func (q *Queries) GetURLBySlug(ctx context.Context, slug string) (Url, error) {
	row := q.db.QueryRowContext(ctx, getURLBySlug, slug)
	var i Url
	err := row.Scan(
		&i.ID,
		&i.Url,
		&i.Slug,
		&i.UserID,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.DeletedAt,
	)
	return i, err
}

const listURLsByUser = `-- name: ListURLsByUser :many
SELECT id, url, slug, user_id, created_at, updated_at, deleted_at
FROM urls WHERE user_id = ? AND deleted_at IS NULL
ORDER BY created_at DESC, id DESC
`

func (q *Queries) ListURLsByUser(ctx context.Context, userID sql.NullString) ([]Url, error) {
	rows, err := q.db.QueryContext(ctx, listURLsByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Url
	for rows.Next() {
		var i Url
		if err := rows.Scan(
			&i.ID,
			&i.Url,
			&i.Slug,
			&i.UserID,
			&i.CreatedAt,
			&i.UpdatedAt,
			&i.DeletedAt,
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

const purgeDeletedURLs = `-- name: PurgeDeletedURLs :execrows
DELETE FROM urls WHERE deleted_at IS NOT NULL AND deleted_at < ?
`

func (q *Queries) PurgeDeletedURLs(ctx context.Context, deletedAt sql.NullTime) (int64, error) {
	result, err := q.db.ExecContext(ctx, purgeDeletedURLs, deletedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const softDeleteURL = `-- name: SoftDeleteURL :execrows
UPDATE urls SET deleted_at = ?, updated_at = ?
WHERE id = ? AND user_id = ? AND deleted_at IS NULL
`

type SoftDeleteURLParams struct {
	DeletedAt sql.NullTime
	UpdatedAt time.Time
	ID        string
	UserID    sql.NullString
}

func (q *Queries) SoftDeleteURL(ctx context.Context, arg SoftDeleteURLParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, softDeleteURL,
		arg.DeletedAt,
		arg.UpdatedAt,
		arg.ID,
		arg.UserID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const updateURLSlug = `-- name: UpdateURLSlug :execrows
UPDATE urls SET slug = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL
`

type UpdateURLSlugParams struct {
	Slug      string
	UpdatedAt time.Time
	ID        string
}

func (q *Queries) UpdateURLSlug(ctx context.Context, arg UpdateURLSlugParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateURLSlug, arg.Slug, arg.UpdatedAt, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
