package postgres

import (
	"context"

	"github.com/aussiebroadwan/snip/internal/snip/domain"
	"github.com/aussiebroadwan/snip/internal/snip/store"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, email, name, provider_id, avatar_url, created_at, updated_at`

type usersRepo struct {
	db dbtx
}

func scanUser(row pgx.Row) (domain.User, error) {
	var (
		u      domain.User
		avatar *string
	)
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.ProviderID, &avatar, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.AvatarURL = deref(avatar)
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *usersRepo) GetUserByProviderID(ctx context.Context, providerID string) (domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE provider_id = $1`, providerID))
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Email, u.Name, u.ProviderID, nullable(u.AvatarURL), u.CreatedAt, u.UpdatedAt,
	)
	return mapWriteErr(err)
}

func (r *usersRepo) UpdateUserProfile(ctx context.Context, u domain.User) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET email = $1, name = $2, avatar_url = $3, updated_at = $4 WHERE id = $5`,
		u.Email, u.Name, nullable(u.AvatarURL), u.UpdatedAt, u.ID,
	)
	if err != nil {
		return mapWriteErr(err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
