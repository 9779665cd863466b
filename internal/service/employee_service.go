package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/events"
	"github.com/spec-kit/employee-service/internal/repository"
	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

// EmployeeService coordinates employee record workflows.
type EmployeeService struct {
	employees  repository.EmployeeRepository
	dispatcher events.Dispatcher
}

// NewEmployeeService constructs the service.
func NewEmployeeService(employees repository.EmployeeRepository, dispatcher events.Dispatcher) *EmployeeService {
	return &EmployeeService{employees: employees, dispatcher: dispatcher}
}

// Create inserts a new employee record, rejecting duplicate employee IDs.
func (s *EmployeeService) Create(ctx context.Context, actor string, employee *domain.Employee) error {
	if _, err := s.employees.GetByEmployeeID(ctx, employee.EmployeeID); err == nil {
		return apperrors.NewConflict("employee ID already exists", map[string]any{"employee_id": employee.EmployeeID})
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	if err := s.employees.Create(ctx, employee); err != nil {
		return err
	}
	s.publish(ctx, events.EventEmployeeCreated, actor, employee.EmployeeID, employee.Department)
	return nil
}

// Get fetches a single employee by its external ID.
func (s *EmployeeService) Get(ctx context.Context, employeeID string) (*domain.Employee, error) {
	employee, err := s.employees.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("employee", map[string]any{"employee_id": employeeID})
		}
		return nil, err
	}
	return employee, nil
}

// Update applies a partial update to an existing record.
func (s *EmployeeService) Update(ctx context.Context, actor, employeeID string, update domain.EmployeeUpdate) error {
	if update.IsEmpty() {
		return apperrors.NewValidationError("no fields to update", nil)
	}
	if err := s.employees.Update(ctx, employeeID, update); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("employee", map[string]any{"employee_id": employeeID})
		}
		return err
	}
	s.publish(ctx, events.EventEmployeeUpdated, actor, employeeID, "")
	return nil
}

// Delete removes an employee record.
func (s *EmployeeService) Delete(ctx context.Context, actor, employeeID string) error {
	if err := s.employees.Delete(ctx, employeeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("employee", map[string]any{"employee_id": employeeID})
		}
		return err
	}
	s.publish(ctx, events.EventEmployeeDeleted, actor, employeeID, "")
	return nil
}

// List returns a page of employees, optionally filtered by department,
// newest joiners first.
func (s *EmployeeService) List(ctx context.Context, department *string, page, size int) ([]domain.Employee, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}
	return s.employees.List(ctx, repository.EmployeeFilter{
		Department: department,
		Limit:      size,
		Offset:     (page - 1) * size,
	})
}

// AverageSalary aggregates average salary per department.
func (s *EmployeeService) AverageSalary(ctx context.Context, department *string) ([]domain.DepartmentSalary, error) {
	return s.employees.AverageSalaryByDepartment(ctx, department)
}

// SearchBySkills returns employees holding every requested skill.
func (s *EmployeeService) SearchBySkills(ctx context.Context, skillsCSV string) ([]domain.Employee, error) {
	skills := make([]string, 0)
	for _, skill := range strings.Split(skillsCSV, ",") {
		if trimmed := strings.TrimSpace(skill); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	if len(skills) == 0 {
		return nil, apperrors.NewValidationError("skills required", nil)
	}
	return s.employees.SearchBySkills(ctx, skills)
}

func (s *EmployeeService) publish(ctx context.Context, eventType events.EventType, actor, employeeID, department string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     actor,
		Timestamp: time.Now(),
		Payload: events.EmployeeMutationPayload{
			EmployeeID: employeeID,
			Department: department,
		},
	})
}
