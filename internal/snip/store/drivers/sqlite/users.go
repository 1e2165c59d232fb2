package sqlite

import (
	"context"

	"github.com/aussiebroadwan/snip/internal/snip/domain"
	"github.com/aussiebroadwan/snip/internal/snip/store"
	"github.com/aussiebroadwan/snip/internal/snip/store/drivers/sqlite/gen"
)

type usersRepo struct {
	q *gen.Queries
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row, err := r.q.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByProviderID(ctx context.Context, providerID string) (domain.User, error) {
	row, err := r.q.GetUserByProviderID(ctx, providerID)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row, err := r.q.GetUserByEmail(ctx, email)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	err := r.q.CreateUser(ctx, gen.CreateUserParams{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		ProviderID: u.ProviderID,
		AvatarUrl:  mapStringNull(u.AvatarURL),
		CreatedAt:  utc(u.CreatedAt),
		UpdatedAt:  utc(u.UpdatedAt),
	})
	return mapWriteErr(err)
}

func (r *usersRepo) UpdateUserProfile(ctx context.Context, u domain.User) error {
	n, err := r.q.UpdateUserProfile(ctx, gen.UpdateUserProfileParams{
		Email:     u.Email,
		Name:      u.Name,
		AvatarUrl: mapStringNull(u.AvatarURL),
		UpdatedAt: utc(u.UpdatedAt),
		ID:        u.ID,
	})
	if err != nil {
		return mapWriteErr(err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
