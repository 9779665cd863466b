package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

const principalKey = "auth_principal"

// AuthMiddleware is the access gate: it validates bearer tokens and loads
// principals before protected handlers run.
type AuthMiddleware struct {
	validator *Validator
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(validator *Validator) *AuthMiddleware {
	return &AuthMiddleware{validator: validator}
}

// Handle enforces authentication for protected routes. Every validation
// failure is reported as a uniform unauthorized response so that clients
// cannot probe which check failed; a disabled identity is the one exception,
// reported as an account-state error.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	principal, err := m.validator.Validate(c.Context(), parts[1])
	if err != nil {
		if errors.Is(err, ErrIdentityDisabled) {
			return apperrors.NewDomainError("IDENTITY_DISABLED", "inactive user", fiber.StatusBadRequest, nil)
		}
		if isAuthError(err) {
			return apperrors.NewUnauthorized("could not validate credentials")
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

func isAuthError(err error) bool {
	for _, known := range []error{
		ErrInvalidSignature,
		ErrMalformedToken,
		ErrTokenExpired,
		ErrTokenRevoked,
		ErrUnknownSubject,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
