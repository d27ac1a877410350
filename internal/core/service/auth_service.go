package service

import (
	"context"
	"time"

	"github.com/lamsaclean/site-api/internal/core/domain"
	"github.com/lamsaclean/site-api/internal/core/ports"
)

// AuthService implements credential authentication and role/permission checks.
type AuthService struct {
	store  ports.UserStore
	hasher *PasswordHasher
}

func NewAuthService(store ports.UserStore, hasher *PasswordHasher) *AuthService {
	if hasher == nil {
		hasher = NewPasswordHasher()
	}
	return &AuthService{store: store, hasher: hasher}
}

// Authenticate verifies username/password credentials. The username is
// normalized (trim + lowercase) before lookup. Unknown users and wrong
// passwords both return domain.ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	username = domain.NormalizeUsername(username)
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// Register creates a new back-office user with a hashed credential.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	username := domain.NormalizeUsername(input.Username)
	if username == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !domain.ValidRole(input.Role) {
		return nil, domain.ErrInvalidRole
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
		Permissions:  input.Permissions,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return s.store.Create(ctx, user)
}

// HasPermission reports whether the user may perform action on module.
// Administrators pass every check regardless of their permission entries.
func (s *AuthService) HasPermission(user *domain.User, module, action string) bool {
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

// HasRole reports an exact role match.
func (s *AuthService) HasRole(user *domain.User, role string) bool {
	return user != nil && user.Role == role
}

// EnsureDefaultAdmin seeds one administrator into an empty store. Called
// once at startup so the store is populated before the first request,
// rather than as a side effect of the first login attempt.
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context, username, password string) error {
	n, err := s.store.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	_, err = s.Register(ctx, ports.RegisterInput{
		Username: username,
		Password: password,
		Role:     domain.RoleAdministrator,
	})
	if err == domain.ErrUserExists {
		// Another instance seeded first.
		return nil
	}
	return err
}
