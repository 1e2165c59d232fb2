package postgres

import "context"

type sequencesRepo struct {
	db dbtx
}

// NextValue uses a native sequence; nextval is atomic and never rolls back.
func (r *sequencesRepo) NextValue(ctx context.Context) (int64, error) {
	var v int64
	if err := r.db.QueryRow(ctx, `SELECT nextval('slug_sequence')`).Scan(&v); err != nil {
		return 0, err
	}
	return v, nil
}
