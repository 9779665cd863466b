package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/employee-service/internal/domain"
)

// IdentityRepository is a read-only lookup of provisioned identities.
type IdentityRepository interface {
	Find(ctx context.Context, username string) (*domain.Identity, error)
}

type identityRepository struct {
	pool *pgxpool.Pool
}

// NewIdentityRepository returns a Postgres-backed implementation.
func NewIdentityRepository(pool *pgxpool.Pool) IdentityRepository {
	return &identityRepository{pool: pool}
}

func (r *identityRepository) Find(ctx context.Context, username string) (*domain.Identity, error) {
	const query = `
        SELECT username, password_hash, disabled, created_at, updated_at
        FROM identities WHERE username=$1`

	var identity domain.Identity
	if err := r.pool.QueryRow(ctx, query, username).Scan(
		&identity.Username,
		&identity.PasswordHash,
		&identity.Disabled,
		&identity.CreatedAt,
		&identity.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &identity, nil
}
