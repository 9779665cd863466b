package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-service/internal/api/dto"
	authpkg "github.com/spec-kit/employee-service/internal/auth"
	"github.com/spec-kit/employee-service/internal/observability"
	"github.com/spec-kit/employee-service/internal/service"
	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

// AuthHandler exposes the token endpoints.
type AuthHandler struct {
	auth    *service.AuthService
	metrics *observability.Metrics
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, metrics *observability.Metrics) *AuthHandler {
	return &AuthHandler{auth: authService, metrics: metrics}
}

// Token handles POST /token. Accepts form-encoded username and password,
// returns a bearer access token. A failed login never reveals whether the
// username existed.
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	var req dto.TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "username and password required")
	}

	token, _, err := h.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, authpkg.ErrInvalidCredentials) {
			h.metrics.RecordAuthFailure()
			c.Set("WWW-Authenticate", "Bearer")
			return apperrors.NewUnauthorized("incorrect username or password")
		}
		return apperrors.MapError(err)
	}

	h.metrics.RecordTokenIssued()
	return c.JSON(dto.TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Revoke handles POST /token/revoke. The presented token is denylisted until
// its natural expiry.
func (h *AuthHandler) Revoke(c *fiber.Ctx) error {
	principal, ok := authpkg.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	if err := h.auth.Revoke(c.Context(), principal); err != nil {
		return apperrors.NewDomainError("REVOCATION_UNAVAILABLE", err.Error(), http.StatusServiceUnavailable, nil)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "revoked"}})
}
