package ports

import (
	"time"

	"github.com/lamsaclean/site-api/internal/core/domain"
)

// SessionClaims is the verified payload of a session token.
type SessionClaims struct {
	UserID    string
	Username  string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService issues and verifies signed, time-limited session tokens.
// Verify collapses every failure mode (parse, signature, expiry) into
// domain.ErrInvalidToken so callers have a single branch to handle and
// no detail about why verification failed leaks outward.
type TokenService interface {
	Issue(user *domain.User) (string, error)
	Verify(token string) (*SessionClaims, error)
}
