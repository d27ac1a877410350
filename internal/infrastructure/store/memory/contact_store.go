package memory

import (
	"context"
	"sync"

	"github.com/lamsaclean/site-api/internal/core/domain"
)

// ContactStore accumulates contact-form submissions in process memory.
type ContactStore struct {
	mu       sync.RWMutex
	messages []domain.ContactMessage
}

func NewContactStore() *ContactStore {
	return &ContactStore{}
}

func (s *ContactStore) Save(_ context.Context, msg *domain.ContactMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if msg.ID == "" {
		msg.ID = newID()
	}
	s.messages = append(s.messages, *msg)
	return nil
}

// Messages returns a snapshot of everything saved so far.
func (s *ContactStore) Messages() []domain.ContactMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.ContactMessage, len(s.messages))
	copy(out, s.messages)
	return out
}
