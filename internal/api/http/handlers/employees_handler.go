package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-service/internal/api/dto"
	"github.com/spec-kit/employee-service/internal/auth"
	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/service"
	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

// EmployeesHandler exposes employee CRUD and query endpoints.
type EmployeesHandler struct {
	employees *service.EmployeeService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(employeeService *service.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{employees: employeeService}
}

// Create handles POST /employees.
func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.EmployeeID == "" || req.Name == "" || req.Department == "" || req.JoiningDate == "" {
		return fiber.NewError(http.StatusBadRequest, "employee_id, name, department, joining_date required")
	}

	employee := &domain.Employee{
		EmployeeID:  req.EmployeeID,
		Name:        req.Name,
		Department:  req.Department,
		Salary:      req.Salary,
		JoiningDate: req.JoiningDate,
		Skills:      req.Skills,
	}
	if err := h.employees.Create(c.Context(), actorName(c), employee); err != nil {
		return apperrors.MapError(err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"message": "Employee created successfully"})
}

// Get handles GET /employees/:employee_id.
func (h *EmployeesHandler) Get(c *fiber.Ctx) error {
	employee, err := h.employees.Get(c.Context(), c.Params("employee_id"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.NewEmployeeResponse(*employee))
}

// Update handles PUT /employees/:employee_id.
func (h *EmployeesHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	update := domain.EmployeeUpdate{
		Name:        req.Name,
		Department:  req.Department,
		Salary:      req.Salary,
		JoiningDate: req.JoiningDate,
		Skills:      req.Skills,
	}
	if err := h.employees.Update(c.Context(), actorName(c), c.Params("employee_id"), update); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"message": "Employee updated successfully"})
}

// Delete handles DELETE /employees/:employee_id.
func (h *EmployeesHandler) Delete(c *fiber.Ctx) error {
	if err := h.employees.Delete(c.Context(), actorName(c), c.Params("employee_id")); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"message": "Employee deleted successfully"})
}

// List handles GET /employees with optional department filter and pagination.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	var department *string
	if dept := c.Query("department"); dept != "" {
		department = &dept
	}
	page := queryInt(c, "page", 1)
	size := queryInt(c, "size", 10)

	employees, err := h.employees.List(c.Context(), department, page, size)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.NewEmployeeListResponse(employees))
}

// AverageSalary handles GET /employees/avg-salary.
func (h *EmployeesHandler) AverageSalary(c *fiber.Ctx) error {
	var department *string
	if dept := c.Query("department"); dept != "" {
		department = &dept
	}

	averages, err := h.employees.AverageSalary(c.Context(), department)
	if err != nil {
		return apperrors.MapError(err)
	}

	out := make([]dto.DepartmentSalaryResponse, 0, len(averages))
	for _, row := range averages {
		out = append(out, dto.DepartmentSalaryResponse{Department: row.Department, AvgSalary: row.AvgSalary})
	}
	return c.JSON(out)
}

// Search handles GET /employees/search?skills=a,b.
func (h *EmployeesHandler) Search(c *fiber.Ctx) error {
	employees, err := h.employees.SearchBySkills(c.Context(), c.Query("skills"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.NewEmployeeListResponse(employees))
}

func actorName(c *fiber.Ctx) string {
	if principal, ok := auth.PrincipalFromContext(c); ok {
		return principal.Username
	}
	return ""
}

func queryInt(c *fiber.Ctx, key string, fallback int) int {
	val := c.Query(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed < 1 {
		return fallback
	}
	return parsed
}
