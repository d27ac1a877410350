package ports

import (
	"context"

	"github.com/lamsaclean/site-api/internal/core/domain"
)

// RegisterInput carries the fields needed to create a back-office user.
type RegisterInput struct {
	Username    string
	Password    string
	Email       string
	Role        string
	Permissions []domain.Permission
}

type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	HasPermission(user *domain.User, module, action string) bool
	HasRole(user *domain.User, role string) bool
}
