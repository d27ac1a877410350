package domain

import "errors"

// Sentinel errors shared across services, stores and the HTTP layer.
// Unknown-user and wrong-password both collapse into ErrInvalidCredentials
// so the API response shape cannot be used to enumerate accounts.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidRole        = errors.New("invalid role")
	ErrForbidden          = errors.New("access forbidden")
	ErrRateLimited        = errors.New("too many requests")
)
