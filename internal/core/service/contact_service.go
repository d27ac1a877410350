package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lamsaclean/site-api/internal/core/domain"
	"github.com/lamsaclean/site-api/internal/core/ports"
)

// DuplicateChecker abstracts the repeat-submission store (Redis).
type DuplicateChecker interface {
	IsDuplicate(ctx context.Context, msg domain.ContactMessage) (bool, error)
	Mark(ctx context.Context, msg domain.ContactMessage) error
}

type contactService struct {
	store ports.ContactStore
	dedup DuplicateChecker
	log   zerolog.Logger
}

// NewContactService returns a ContactService implementation. dedup may be
// nil when no Redis backend is configured; duplicates are then accepted.
func NewContactService(store ports.ContactStore, dedup DuplicateChecker, log zerolog.Logger) ports.ContactService {
	return &contactService{store: store, dedup: dedup, log: log}
}

// Process deduplicates and persists a single contact-form submission.
func (s *contactService) Process(ctx context.Context, msg domain.ContactMessage) error {
	if s.dedup != nil {
		isDup, err := s.dedup.IsDuplicate(ctx, msg)
		if err != nil {
			s.log.Warn().Err(err).Str("email", msg.Email).Msg("duplicate check failed, processing anyway")
		} else if isDup {
			s.log.Debug().Str("email", msg.Email).Msg("duplicate submission skipped")
			return nil
		}

		if markErr := s.dedup.Mark(ctx, msg); markErr != nil {
			s.log.Warn().Err(markErr).Str("email", msg.Email).Msg("failed to set duplicate key")
		}
	}

	if err := s.store.Save(ctx, &msg); err != nil {
		return fmt.Errorf("process contact message: %w", err)
	}

	s.log.Info().
		Str("email", msg.Email).
		Str("name", msg.Name).
		Msg("contact message stored")

	return nil
}
