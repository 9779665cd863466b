package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/repository"
	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

// fakeEmployeeRepo stores employees in a map and records listing filters.
type fakeEmployeeRepo struct {
	employees  map[string]domain.Employee
	lastFilter repository.EmployeeFilter
	lastSkills []string
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: map[string]domain.Employee{}}
}

func (r *fakeEmployeeRepo) Create(_ context.Context, employee *domain.Employee) error {
	r.employees[employee.EmployeeID] = *employee
	return nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, employeeID string, update domain.EmployeeUpdate) error {
	employee, ok := r.employees[employeeID]
	if !ok {
		return repository.ErrNotFound
	}
	if update.Name != nil {
		employee.Name = *update.Name
	}
	if update.Salary != nil {
		employee.Salary = *update.Salary
	}
	r.employees[employeeID] = employee
	return nil
}

func (r *fakeEmployeeRepo) Delete(_ context.Context, employeeID string) error {
	if _, ok := r.employees[employeeID]; !ok {
		return repository.ErrNotFound
	}
	delete(r.employees, employeeID)
	return nil
}

func (r *fakeEmployeeRepo) GetByEmployeeID(_ context.Context, employeeID string) (*domain.Employee, error) {
	employee, ok := r.employees[employeeID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &employee, nil
}

func (r *fakeEmployeeRepo) List(_ context.Context, filter repository.EmployeeFilter) ([]domain.Employee, error) {
	r.lastFilter = filter
	return nil, nil
}

func (r *fakeEmployeeRepo) AverageSalaryByDepartment(_ context.Context, _ *string) ([]domain.DepartmentSalary, error) {
	return []domain.DepartmentSalary{{Department: "Engineering", AvgSalary: 75000}}, nil
}

func (r *fakeEmployeeRepo) SearchBySkills(_ context.Context, skills []string) ([]domain.Employee, error) {
	r.lastSkills = skills
	return nil, nil
}

func sampleEmployee() *domain.Employee {
	return &domain.Employee{
		EmployeeID:  "E123",
		Name:        "John Doe",
		Department:  "Engineering",
		Salary:      75000,
		JoiningDate: "2023-01-15",
		Skills:      []string{"Go", "MongoDB"},
	}
}

func TestEmployeeService_CreateRejectsDuplicateID(t *testing.T) {
	repo := newFakeEmployeeRepo()
	svc := NewEmployeeService(repo, nil)

	require.NoError(t, svc.Create(context.Background(), "admin", sampleEmployee()))

	err := svc.Create(context.Background(), "admin", sampleEmployee())
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "CONFLICT", domainErr.Code)
}

func TestEmployeeService_GetMissing(t *testing.T) {
	svc := NewEmployeeService(newFakeEmployeeRepo(), nil)

	_, err := svc.Get(context.Background(), "E999")
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestEmployeeService_UpdateEmptySet(t *testing.T) {
	repo := newFakeEmployeeRepo()
	svc := NewEmployeeService(repo, nil)
	require.NoError(t, svc.Create(context.Background(), "admin", sampleEmployee()))

	err := svc.Update(context.Background(), "admin", "E123", domain.EmployeeUpdate{})
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}

func TestEmployeeService_UpdateApplied(t *testing.T) {
	repo := newFakeEmployeeRepo()
	svc := NewEmployeeService(repo, nil)
	require.NoError(t, svc.Create(context.Background(), "admin", sampleEmployee()))

	salary := 90000.0
	require.NoError(t, svc.Update(context.Background(), "admin", "E123", domain.EmployeeUpdate{Salary: &salary}))

	employee, err := svc.Get(context.Background(), "E123")
	require.NoError(t, err)
	assert.Equal(t, 90000.0, employee.Salary)
}

func TestEmployeeService_UpdateMissing(t *testing.T) {
	svc := NewEmployeeService(newFakeEmployeeRepo(), nil)

	name := "Nobody"
	err := svc.Update(context.Background(), "admin", "E999", domain.EmployeeUpdate{Name: &name})
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestEmployeeService_DeleteMissing(t *testing.T) {
	svc := NewEmployeeService(newFakeEmployeeRepo(), nil)

	err := svc.Delete(context.Background(), "admin", "E999")
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestEmployeeService_ListPaginationDefaults(t *testing.T) {
	repo := newFakeEmployeeRepo()
	svc := NewEmployeeService(repo, nil)

	_, err := svc.List(context.Background(), nil, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 10, repo.lastFilter.Limit)
	assert.Equal(t, 0, repo.lastFilter.Offset)

	_, err = svc.List(context.Background(), nil, 3, 25)
	require.NoError(t, err)
	assert.Equal(t, 25, repo.lastFilter.Limit)
	assert.Equal(t, 50, repo.lastFilter.Offset)
}

func TestEmployeeService_SearchSkillsParsing(t *testing.T) {
	repo := newFakeEmployeeRepo()
	svc := NewEmployeeService(repo, nil)

	_, err := svc.SearchBySkills(context.Background(), " Go , MongoDB ,")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "MongoDB"}, repo.lastSkills)

	_, err = svc.SearchBySkills(context.Background(), " , ")
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}
