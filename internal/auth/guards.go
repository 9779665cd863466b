package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Capability names a permission a route may require. This is a single-role
// system by design: every authenticated, non-disabled principal currently
// holds every capability. The guard exists so that multi-role authorization
// can be introduced without touching route registration.
type Capability string

const (
	CapabilityEmployeesWrite Capability = "employees:write"
	CapabilityTokenRevoke    Capability = "token:revoke"
)

// RequireAuthenticated ensures a principal was loaded by the access gate.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		return c.Next()
	}
}

// RequireCapability ensures the principal holds the given capability.
func RequireCapability(capability Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		if !principal.HasCapability(capability) {
			return fiber.NewError(http.StatusForbidden, "insufficient permissions")
		}
		return c.Next()
	}
}

// HasCapability reports whether the principal holds the capability. All
// authenticated principals are authorized for every protected operation.
func (p *Principal) HasCapability(Capability) bool {
	return !p.Disabled
}
