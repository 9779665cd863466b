package repository

import (
	"context"
	"time"

	"github.com/spec-kit/employee-service/internal/domain"
)

// memoryIdentityRepository holds identities seeded at startup. The map is
// never written after construction, so lookups need no locking.
type memoryIdentityRepository struct {
	identities map[string]domain.Identity
}

// NewMemoryIdentityRepository builds an in-memory store from the given
// identities, keyed by username.
func NewMemoryIdentityRepository(identities []domain.Identity) IdentityRepository {
	byName := make(map[string]domain.Identity, len(identities))
	now := time.Now()
	for _, identity := range identities {
		if identity.CreatedAt.IsZero() {
			identity.CreatedAt = now
			identity.UpdatedAt = now
		}
		byName[identity.Username] = identity
	}
	return &memoryIdentityRepository{identities: byName}
}

func (r *memoryIdentityRepository) Find(_ context.Context, username string) (*domain.Identity, error) {
	identity, ok := r.identities[username]
	if !ok {
		return nil, ErrNotFound
	}
	return &identity, nil
}
