package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-service/internal/api/http/handlers"
	"github.com/spec-kit/employee-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Employees      *handlers.EmployeesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Reads are public; mutations sit behind
// the access gate.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Employee API is running"})
	})

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/token", cfg.Auth.Token)
	app.Post("/token/revoke",
		cfg.AuthMiddleware.Handle, auth.RequireCapability(auth.CapabilityTokenRevoke), cfg.Auth.Revoke)

	// static paths before the :employee_id parameter
	app.Get("/employees/avg-salary", cfg.Employees.AverageSalary)
	app.Get("/employees/search", cfg.Employees.Search)
	app.Get("/employees/:employee_id", cfg.Employees.Get)
	app.Get("/employees", cfg.Employees.List)

	protected := app.Group("/employees",
		cfg.AuthMiddleware.Handle, auth.RequireCapability(auth.CapabilityEmployeesWrite))
	protected.Post("", cfg.Employees.Create)
	protected.Put("/:employee_id", cfg.Employees.Update)
	protected.Delete("/:employee_id", cfg.Employees.Delete)
}
