package sqlite

import (
	"context"

	"github.com/aussiebroadwan/snip/internal/snip/store/drivers/sqlite/gen"
)

const slugSequence = "slug"

type sequencesRepo struct {
	q *gen.Queries
}

// NextValue increments and returns in one statement; sqlite serialises
// writers so no two callers can read the same value.
func (r *sequencesRepo) NextValue(ctx context.Context) (int64, error) {
	v, err := r.q.NextSequenceValue(ctx, slugSequence)
	if err != nil {
		return 0, mapNotFound(err)
	}
	return v, nil
}
