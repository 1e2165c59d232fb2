package gen

import (
	"context"
)

const nextSequenceValue = `-- name: NextSequenceValue :one
UPDATE sequences SET next_value = next_value + 1 WHERE name = ? RETURNING next_value - 1
`

func (q *Queries) NextSequenceValue(ctx context.Context, name string) (int64, error) {
	row := q.db.QueryRowContext(ctx, nextSequenceValue, name)
	var column_1 int64
	err := row.Scan(&column_1)
	return column_1, err
}
