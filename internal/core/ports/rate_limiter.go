package ports

import (
	"context"
	"time"
)

// RateLimiter throttles sensitive endpoints per identifier (for example
// "login:<ip>"). The call that pushes the window counter past limit is
// the first one rejected. Different identifiers never interact.
type RateLimiter interface {
	Allow(ctx context.Context, identifier string, limit int, window time.Duration) (bool, error)
}
