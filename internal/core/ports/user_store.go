package ports

import (
	"context"

	"github.com/lamsaclean/site-api/internal/core/domain"
)

// UserStore defines the interface for user persistence. The in-memory
// store is the default; a MongoDB-backed store is used when configured.
// Implementations assign the ID on Create when the user carries none.
type UserStore interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
}
