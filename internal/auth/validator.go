package auth

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/employee-service/internal/repository"
)

// Principal is the authenticated identity resolved from a validated token.
// It is derived per request and never persisted.
type Principal struct {
	Username  string
	Disabled  bool
	TokenID   string
	ExpiresAt time.Time
}

// RevocationList answers whether a token ID was revoked before its natural
// expiry. The zero deployment is purely stateless and uses NopRevocationList.
type RevocationList interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	Revoke(ctx context.Context, tokenID string, until time.Time) error
}

// NopRevocationList never revokes anything.
type NopRevocationList struct{}

func (NopRevocationList) IsRevoked(context.Context, string) (bool, error) { return false, nil }

func (NopRevocationList) Revoke(context.Context, string, time.Time) error {
	return errors.New("revocation list not configured")
}

// Validator turns bearer token strings into principals. Checks run in order:
// signature, structure, expiry, revocation, subject lookup, disabled flag,
// short-circuiting at the first failure. Subject state is re-read from the
// identity store on every call, never cached.
type Validator struct {
	tokens     *TokenManager
	identities repository.IdentityRepository
	revoked    RevocationList
}

// NewValidator constructs a validator. A nil revocation list disables
// revocation checks.
func NewValidator(tokens *TokenManager, identities repository.IdentityRepository, revoked RevocationList) *Validator {
	if revoked == nil {
		revoked = NopRevocationList{}
	}
	return &Validator{tokens: tokens, identities: identities, revoked: revoked}
}

// Validate resolves a token string to a principal or an auth error.
func (v *Validator) Validate(ctx context.Context, tokenStr string) (*Principal, error) {
	claims, err := v.tokens.Parse(tokenStr)
	if err != nil {
		return nil, err
	}

	if claims.ID != "" {
		revoked, err := v.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, ErrTokenRevoked
		}
	}

	identity, err := v.identities.Find(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnknownSubject
		}
		return nil, err
	}
	if identity.Disabled {
		return nil, ErrIdentityDisabled
	}

	return &Principal{
		Username:  identity.Username,
		Disabled:  false,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
