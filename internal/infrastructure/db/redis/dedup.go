package redis

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lamsaclean/site-api/internal/core/domain"
)

const dedupTTL = time.Hour

// DuplicateChecker suppresses repeat contact submissions backed by Redis.
// Key format: contact:dedup:<sha256(email|message)>
type DuplicateChecker struct {
	client *redis.Client
}

// NewDuplicateChecker creates a DuplicateChecker wrapping the given Redis client.
func NewDuplicateChecker(client *redis.Client) *DuplicateChecker {
	return &DuplicateChecker{client: client}
}

// IsDuplicate reports whether the same sender already submitted this exact
// message within the dedup horizon.
func (d *DuplicateChecker) IsDuplicate(ctx context.Context, msg domain.ContactMessage) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(msg)).Result()
	if err != nil {
		return false, fmt.Errorf("duplicate check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this submission has been accepted (expires after dedupTTL).
func (d *DuplicateChecker) Mark(ctx context.Context, msg domain.ContactMessage) error {
	return d.client.Set(ctx, d.key(msg), "1", dedupTTL).Err()
}

func (d *DuplicateChecker) key(msg domain.ContactMessage) string {
	sum := sha256.Sum256([]byte(msg.Email + "|" + msg.Message))
	return fmt.Sprintf("contact:dedup:%x", sum)
}
