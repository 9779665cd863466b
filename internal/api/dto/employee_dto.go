package dto

import "github.com/spec-kit/employee-service/internal/domain"

// CreateEmployeeRequest payload.
type CreateEmployeeRequest struct {
	EmployeeID  string   `json:"employee_id"`
	Name        string   `json:"name"`
	Department  string   `json:"department"`
	Salary      float64  `json:"salary"`
	JoiningDate string   `json:"joining_date"`
	Skills      []string `json:"skills"`
}

// UpdateEmployeeRequest payload; nil fields are left untouched.
type UpdateEmployeeRequest struct {
	Name        *string  `json:"name"`
	Department  *string  `json:"department"`
	Salary      *float64 `json:"salary"`
	JoiningDate *string  `json:"joining_date"`
	Skills      []string `json:"skills"`
}

// EmployeeResponse response.
type EmployeeResponse struct {
	EmployeeID  string   `json:"employee_id"`
	Name        string   `json:"name"`
	Department  string   `json:"department"`
	Salary      float64  `json:"salary"`
	JoiningDate string   `json:"joining_date"`
	Skills      []string `json:"skills"`
}

// DepartmentSalaryResponse aggregation row.
type DepartmentSalaryResponse struct {
	Department string  `json:"department"`
	AvgSalary  float64 `json:"avg_salary"`
}

// NewEmployeeResponse maps a domain employee to its response shape.
func NewEmployeeResponse(employee domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		EmployeeID:  employee.EmployeeID,
		Name:        employee.Name,
		Department:  employee.Department,
		Salary:      employee.Salary,
		JoiningDate: employee.JoiningDate,
		Skills:      employee.Skills,
	}
}

// NewEmployeeListResponse maps a slice of employees.
func NewEmployeeListResponse(employees []domain.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(employees))
	for _, employee := range employees {
		out = append(out, NewEmployeeResponse(employee))
	}
	return out
}
