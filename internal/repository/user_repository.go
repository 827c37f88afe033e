package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/miniorder-service/internal/domain"
	"github.com/spec-kit/miniorder-service/pkg/util"
)

// UserRepository defines persistence access for resolved identities.
type UserRepository interface {
	Upsert(ctx context.Context, user *domain.User) error
	GetByOpenID(ctx context.Context, openID string) (*domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

// Upsert inserts the user or overwrites all profile attributes in place.
// The single conditional statement keeps concurrent logins for the same
// openid from ever producing two rows.
func (r *userRepository) Upsert(ctx context.Context, user *domain.User) error {
	if r.pool == nil {
		return util.NewStorageError("store unavailable", nil)
	}

	const query = `
        INSERT INTO users (open_id, union_id, username, sex, birthday, consumption_level, avatar_url, role)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        ON CONFLICT (open_id) DO UPDATE SET
            union_id=EXCLUDED.union_id,
            username=EXCLUDED.username,
            sex=EXCLUDED.sex,
            birthday=EXCLUDED.birthday,
            consumption_level=EXCLUDED.consumption_level,
            avatar_url=EXCLUDED.avatar_url,
            role=EXCLUDED.role,
            updated_at=NOW()
        RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		user.OpenID,
		user.UnionID,
		user.Username,
		user.Sex,
		user.Birthday,
		user.ConsumptionLevel,
		user.AvatarURL,
		user.Role,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return util.NewStorageError("upsert user", err)
	}
	return nil
}

func (r *userRepository) GetByOpenID(ctx context.Context, openID string) (*domain.User, error) {
	if r.pool == nil {
		return nil, util.NewStorageError("store unavailable", nil)
	}

	const query = `
        SELECT open_id, union_id, username, sex, birthday, consumption_level, avatar_url, role, created_at, updated_at
        FROM users WHERE open_id=$1`

	var user domain.User
	err := r.pool.QueryRow(ctx, query, openID).Scan(
		&user.OpenID,
		&user.UnionID,
		&user.Username,
		&user.Sex,
		&user.Birthday,
		&user.ConsumptionLevel,
		&user.AvatarURL,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, util.NewNotFound("user")
	}
	if err != nil {
		return nil, util.NewStorageError("get user", err)
	}
	return &user, nil
}
