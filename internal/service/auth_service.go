package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/employee-service/internal/auth"
	"github.com/spec-kit/employee-service/internal/config"
	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/events"
	"github.com/spec-kit/employee-service/internal/repository"
)

// AuthService coordinates login and token revocation flows.
type AuthService struct {
	identities repository.IdentityRepository
	hasher     auth.Hasher
	tokenMgr   *auth.TokenManager
	validator  *auth.Validator
	revoked    auth.RevocationList
	dispatcher events.Dispatcher

	// decoyHash soaks up a verify on unknown usernames so that lookup misses
	// and password mismatches take comparable time.
	decoyHash string
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	IdentityRepo   repository.IdentityRepository
	RevocationList auth.RevocationList
	Dispatcher     events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	hasher := auth.NewMultiHasher(cfg.Auth.PasswordScheme, auth.Argon2Params{
		Memory:  uint32(cfg.Auth.Argon2Memory),
		Time:    uint32(cfg.Auth.Argon2Time),
		Threads: uint8(cfg.Auth.Argon2Threads),
	}, cfg.Auth.BcryptCost)

	tokenMgr := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	revoked := deps.RevocationList
	if revoked == nil {
		revoked = auth.NopRevocationList{}
	}

	decoy, err := hasher.Hash(uuid.NewString())
	if err != nil {
		decoy = ""
	}

	return &AuthService{
		identities: deps.IdentityRepo,
		hasher:     hasher,
		tokenMgr:   tokenMgr,
		validator:  auth.NewValidator(tokenMgr, deps.IdentityRepo, revoked),
		revoked:    revoked,
		dispatcher: deps.Dispatcher,
		decoyHash:  decoy,
	}
}

// Authenticate resolves a username/password pair to an identity. A lookup
// miss and a password mismatch are indistinguishable to the caller.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.Identity, error) {
	identity, err := s.identities.Find(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.hasher.Verify(password, s.decoyHash)
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.hasher.Verify(password, identity.PasswordHash) {
		return nil, auth.ErrInvalidCredentials
	}
	return identity, nil
}

// Login verifies credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	identity, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", time.Time{}, err
	}

	// Disabled identities may still obtain a token; the gate rejects them on
	// every protected request. Keeps login responses uniform.
	token, exp, err := s.tokenMgr.Issue(identity.Username, 0)
	if err != nil {
		return "", time.Time{}, err
	}

	s.publish(ctx, events.EventLoginSucceeded, identity.Username, events.LoginSucceededPayload{
		Username:  identity.Username,
		ExpiresAt: exp,
	})
	return token, exp, nil
}

// Revoke places the presented token on the denylist until its natural expiry.
func (s *AuthService) Revoke(ctx context.Context, principal *auth.Principal) error {
	if principal.TokenID == "" {
		return errors.New("token carries no id")
	}
	if err := s.revoked.Revoke(ctx, principal.TokenID, principal.ExpiresAt); err != nil {
		return err
	}
	s.publish(ctx, events.EventTokenRevoked, principal.Username, events.TokenRevokedPayload{
		TokenID:   principal.TokenID,
		ExpiresAt: principal.ExpiresAt,
	})
	return nil
}

// HashPassword exposes the configured hasher for provisioning tooling.
func (s *AuthService) HashPassword(plaintext string) (string, error) {
	return s.hasher.Hash(plaintext)
}

// Validator exposes the token validator for middleware usage.
func (s *AuthService) Validator() *auth.Validator {
	return s.validator
}

// TokenManager exposes the underlying token manager.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, actor string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     actor,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
