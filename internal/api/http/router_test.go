package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/api/http/handlers"
	"github.com/spec-kit/employee-service/internal/auth"
	"github.com/spec-kit/employee-service/internal/config"
	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/observability"
	"github.com/spec-kit/employee-service/internal/repository"
	"github.com/spec-kit/employee-service/internal/service"
)

type stubEmployeeRepo struct {
	employees map[string]domain.Employee
}

func (r *stubEmployeeRepo) Create(_ context.Context, employee *domain.Employee) error {
	r.employees[employee.EmployeeID] = *employee
	return nil
}

func (r *stubEmployeeRepo) Update(_ context.Context, employeeID string, _ domain.EmployeeUpdate) error {
	if _, ok := r.employees[employeeID]; !ok {
		return repository.ErrNotFound
	}
	return nil
}

func (r *stubEmployeeRepo) Delete(_ context.Context, employeeID string) error {
	if _, ok := r.employees[employeeID]; !ok {
		return repository.ErrNotFound
	}
	delete(r.employees, employeeID)
	return nil
}

func (r *stubEmployeeRepo) GetByEmployeeID(_ context.Context, employeeID string) (*domain.Employee, error) {
	employee, ok := r.employees[employeeID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &employee, nil
}

func (r *stubEmployeeRepo) List(_ context.Context, _ repository.EmployeeFilter) ([]domain.Employee, error) {
	out := make([]domain.Employee, 0, len(r.employees))
	for _, employee := range r.employees {
		out = append(out, employee)
	}
	return out, nil
}

func (r *stubEmployeeRepo) AverageSalaryByDepartment(_ context.Context, _ *string) ([]domain.DepartmentSalary, error) {
	return []domain.DepartmentSalary{}, nil
}

func (r *stubEmployeeRepo) SearchBySkills(_ context.Context, _ []string) ([]domain.Employee, error) {
	return []domain.Employee{}, nil
}

func newTestApp(t *testing.T) (*fiber.App, *service.AuthService, *stubEmployeeRepo) {
	t.Helper()

	cfg := config.Config{Auth: config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		PasswordScheme:        "bcrypt",
		BcryptCost:            4,
	}}

	hasher := auth.NewBcryptHasher(4)
	hash, err := hasher.Hash("secret123")
	require.NoError(t, err)

	identityRepo := repository.NewMemoryIdentityRepository([]domain.Identity{
		{Username: "admin", PasswordHash: hash},
		{Username: "inactive", PasswordHash: hash, Disabled: true},
	})

	authService := service.NewAuthService(cfg, service.AuthDependencies{IdentityRepo: identityRepo})
	employeeRepo := &stubEmployeeRepo{employees: map[string]domain.Employee{}}
	employeeService := service.NewEmployeeService(employeeRepo, nil)

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("test", "dev", nil, nil, nil),
		Auth:           handlers.NewAuthHandler(authService, observability.NewMetrics()),
		Employees:      handlers.NewEmployeesHandler(employeeService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.Validator()),
	})
	return app, authService, employeeRepo
}

func loginForm(t *testing.T, app *fiber.App, username, password string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/token",
		strings.NewReader("username="+username+"&password="+password))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func obtainToken(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()
	resp := loginForm(t, app, username, password)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "bearer", body.TokenType)
	require.NotEmpty(t, body.AccessToken)
	return body.AccessToken
}

func TestRoot(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestTokenEndpoint_Success(t *testing.T) {
	app, _, _ := newTestApp(t)
	obtainToken(t, app, "admin", "secret123")
}

func TestTokenEndpoint_FailuresAreUniform(t *testing.T) {
	app, _, _ := newTestApp(t)

	wrongPassword := loginForm(t, app, "admin", "wrong")
	unknownUser := loginForm(t, app, "ghost", "whatever")

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.StatusCode)

	// response bodies must not reveal whether the username existed
	first, err := io.ReadAll(wrongPassword.Body)
	require.NoError(t, err)
	second, err := io.ReadAll(unknownUser.Body)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	app, _, _ := newTestApp(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/employees"},
		{http.MethodPut, "/employees/E123"},
		{http.MethodDelete, "/employees/E123"},
		{http.MethodPost, "/token/revoke"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestCreateEmployee_WithToken(t *testing.T) {
	app, _, repo := newTestApp(t)
	token := obtainToken(t, app, "admin", "secret123")

	payload := `{"employee_id":"E123","name":"John Doe","department":"Engineering","salary":75000,"joining_date":"2023-01-15","skills":["Go"]}`
	req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Contains(t, repo.employees, "E123")

	// duplicate id conflicts
	req = httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestGetEmployee_Public(t *testing.T) {
	app, _, repo := newTestApp(t)
	repo.employees["E123"] = domain.Employee{EmployeeID: "E123", Name: "John Doe"}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/employees/E123", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/employees/E999", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTamperedToken_Rejected(t *testing.T) {
	app, _, _ := newTestApp(t)
	token := obtainToken(t, app, "admin", "secret123")

	tampered := token[:len(token)-4] + "AAAA"
	req := httptest.NewRequest(http.MethodDelete, "/employees/E123", nil)
	req.Header.Set("Authorization", "Bearer "+tampered)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestDisabledIdentity_DistinctRejection(t *testing.T) {
	app, _, _ := newTestApp(t)
	token := obtainToken(t, app, "inactive", "secret123")

	req := httptest.NewRequest(http.MethodDelete, "/employees/E123", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "IDENTITY_DISABLED")
}

func TestTokenExpiry_EndToEnd(t *testing.T) {
	app, authService, repo := newTestApp(t)
	repo.employees["E123"] = domain.Employee{EmployeeID: "E123"}

	token := obtainToken(t, app, "admin", "secret123")

	use := func() int {
		req := httptest.NewRequest(http.MethodDelete, "/employees/E123", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusOK, use())

	// past the 60-minute lifetime the same token is rejected
	authService.TokenManager().WithClock(func() time.Time {
		return time.Now().Add(61 * time.Minute)
	})
	assert.Equal(t, http.StatusUnauthorized, use())
}
