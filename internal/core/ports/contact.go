package ports

import (
	"context"

	"github.com/lamsaclean/site-api/internal/core/domain"
)

// ContactStore persists accepted contact-form submissions.
type ContactStore interface {
	Save(ctx context.Context, msg *domain.ContactMessage) error
}

// ContactService processes one submission end to end (duplicate check,
// persistence, metrics).
type ContactService interface {
	Process(ctx context.Context, msg domain.ContactMessage) error
}

// ContactQueue decouples the HTTP handler from submission processing.
// Implemented by the sharded worker dispatcher.
type ContactQueue interface {
	Enqueue(msg domain.ContactMessage)
}
