package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/lamsaclean/site-api/internal/core/domain"
	"github.com/lamsaclean/site-api/internal/core/ports"
)

// permissionOracle implements ports.AuthService for RequirePermission tests.
type permissionOracle struct{}

func (permissionOracle) HasPermission(user *domain.User, module, action string) bool {
	if user == nil {
		return false
	}
	if user.Role == domain.RoleAdministrator {
		return true
	}
	for _, p := range user.Permissions {
		if p.Module != module {
			continue
		}
		for _, a := range p.Actions {
			if a == action {
				return true
			}
		}
	}
	return false
}

func (permissionOracle) HasRole(user *domain.User, role string) bool {
	return user != nil && user.Role == role
}

func (permissionOracle) Authenticate(_ context.Context, _, _ string) (*domain.User, error) {
	panic("not used")
}

func (permissionOracle) Register(_ context.Context, _ ports.RegisterInput) (*domain.User, error) {
	panic("not used")
}

func runRBAC(t *testing.T, role string, allowed ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set(CtxRole, role)
	}

	handler := RBAC(allowed...)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestRBAC_AllowedRole(t *testing.T) {
	rec := runRBAC(t, domain.RoleManager, domain.RoleAdministrator, domain.RoleManager)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRBAC_ForbiddenRole(t *testing.T) {
	rec := runRBAC(t, domain.RoleOperator, domain.RoleAdministrator, domain.RoleManager)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRBAC_MissingRole(t *testing.T) {
	rec := runRBAC(t, "", domain.RoleAdministrator)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 when role absent, got %d", rec.Code)
	}
}

func runRequirePermission(t *testing.T, user *domain.User) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(CtxUser, user)
	}

	handler := RequirePermission(permissionOracle{}, "users", domain.ActionCreate)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestRequirePermission_AdministratorBypasses(t *testing.T) {
	rec := runRequirePermission(t, &domain.User{Role: domain.RoleAdministrator})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequirePermission_GrantedEntry(t *testing.T) {
	rec := runRequirePermission(t, &domain.User{
		Role:        domain.RoleManager,
		Permissions: []domain.Permission{{Module: "users", Actions: []string{domain.ActionCreate}}},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequirePermission_MissingEntry(t *testing.T) {
	rec := runRequirePermission(t, &domain.User{Role: domain.RoleManager})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequirePermission_NoUser(t *testing.T) {
	rec := runRequirePermission(t, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without user, got %d", rec.Code)
	}
}
