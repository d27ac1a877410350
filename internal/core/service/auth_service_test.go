package service

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/lamsaclean/site-api/internal/core/domain"
	"github.com/lamsaclean/site-api/internal/core/ports"
	"github.com/lamsaclean/site-api/internal/infrastructure/store/memory"
)

func seededAuthService(t *testing.T) *AuthService {
	t.Helper()
	svc := NewAuthService(memory.NewUserStore(), NewPasswordHasherWithCost(bcrypt.MinCost))
	if err := svc.EnsureDefaultAdmin(context.Background(), "admin", "admin123"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return svc
}

func TestAuthService_AuthenticateSeededAdmin(t *testing.T) {
	svc := seededAuthService(t)

	user, err := svc.Authenticate(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.Role != domain.RoleAdministrator {
		t.Fatalf("expected administrator role, got %q", user.Role)
	}
	if user.ID == "" {
		t.Fatalf("expected assigned user id")
	}
}

func TestAuthService_AuthenticateNormalizesUsername(t *testing.T) {
	svc := seededAuthService(t)

	if _, err := svc.Authenticate(context.Background(), "  ADMIN  ", "admin123"); err != nil {
		t.Fatalf("expected normalized lookup to succeed, got %v", err)
	}
}

func TestAuthService_AuthenticateFailures(t *testing.T) {
	svc := seededAuthService(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "admin", "wrong"},
		{"unknown user", "ghost", "admin123"},
		{"empty username", "", "admin123"},
		{"empty password", "admin", ""},
	}
	for _, tc := range cases {
		if _, err := svc.Authenticate(ctx, tc.username, tc.password); err != domain.ErrInvalidCredentials {
			t.Fatalf("%s: expected ErrInvalidCredentials, got %v", tc.name, err)
		}
	}
}

func TestAuthService_EnsureDefaultAdminIsIdempotent(t *testing.T) {
	store := memory.NewUserStore()
	svc := NewAuthService(store, NewPasswordHasherWithCost(bcrypt.MinCost))
	ctx := context.Background()

	if err := svc.EnsureDefaultAdmin(ctx, "admin", "admin123"); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := svc.EnsureDefaultAdmin(ctx, "admin", "admin123"); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	n, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected exactly one seeded user, got %d", n)
	}
}

func TestAuthService_Register(t *testing.T) {
	svc := seededAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, ports.RegisterInput{
		Username: "Fatima",
		Password: "secret123",
		Role:     domain.RoleManager,
		Permissions: []domain.Permission{
			{Module: "bookings", Actions: []string{domain.ActionRead, domain.ActionUpdate}},
		},
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Username != "fatima" {
		t.Fatalf("expected normalized username, got %q", user.Username)
	}
	if user.PasswordHash == "" || user.PasswordHash == "secret123" {
		t.Fatalf("expected hashed credential, got %q", user.PasswordHash)
	}

	if _, err := svc.Register(ctx, ports.RegisterInput{Username: "fatima", Password: "other-pass", Role: domain.RoleOperator}); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists for duplicate username, got %v", err)
	}
	if _, err := svc.Register(ctx, ports.RegisterInput{Username: "someone", Password: "secret123", Role: "superuser"}); err != domain.ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestAuthService_HasPermission(t *testing.T) {
	svc := seededAuthService(t)

	admin := &domain.User{Role: domain.RoleAdministrator}
	manager := &domain.User{
		Role: domain.RoleManager,
		Permissions: []domain.Permission{
			{Module: "bookings", Actions: []string{domain.ActionRead, domain.ActionUpdate}},
		},
	}

	cases := []struct {
		name   string
		user   *domain.User
		module string
		action string
		want   bool
	}{
		{"admin bypasses entries", admin, "finance", domain.ActionDelete, true},
		{"granted action", manager, "bookings", domain.ActionRead, true},
		{"missing action", manager, "bookings", domain.ActionDelete, false},
		{"missing module", manager, "finance", domain.ActionRead, false},
		{"nil user", nil, "bookings", domain.ActionRead, false},
	}
	for _, tc := range cases {
		if got := svc.HasPermission(tc.user, tc.module, tc.action); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestAuthService_HasRole(t *testing.T) {
	svc := seededAuthService(t)
	manager := &domain.User{Role: domain.RoleManager}

	if !svc.HasRole(manager, domain.RoleManager) {
		t.Fatalf("expected exact match to pass")
	}
	if svc.HasRole(manager, domain.RoleAdministrator) {
		t.Fatalf("expected mismatch to fail, roles are exact")
	}
	if svc.HasRole(nil, domain.RoleManager) {
		t.Fatalf("expected nil user to fail")
	}
}
