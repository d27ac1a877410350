// Package memory provides mutex-guarded in-memory stores. They are the
// default backends when no MongoDB is configured; contents are lost on
// restart.
package memory

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"

	"github.com/lamsaclean/site-api/internal/core/domain"
)

// UserStore keeps users in process memory, keyed by id with a secondary
// index on the normalized username.
type UserStore struct {
	mu         sync.RWMutex
	byID       map[string]*domain.User
	byUsername map[string]string
}

func NewUserStore() *UserStore {
	return &UserStore{
		byID:       make(map[string]*domain.User),
		byUsername: make(map[string]string),
	}
}

func (s *UserStore) FindByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(user), nil
}

func (s *UserStore) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byUsername[domain.NormalizeUsername(username)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(s.byID[id]), nil
}

func (s *UserStore) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	username := domain.NormalizeUsername(user.Username)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byUsername[username]; exists {
		return nil, domain.ErrUserExists
	}

	stored := cloneUser(user)
	stored.Username = username
	if stored.ID == "" {
		stored.ID = newID()
	}

	s.byID[stored.ID] = stored
	s.byUsername[username] = stored.ID
	return cloneUser(stored), nil
}

func (s *UserStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.byID)), nil
}

// cloneUser copies a record so callers never alias store-owned memory.
func cloneUser(u *domain.User) *domain.User {
	cp := *u
	if u.Permissions != nil {
		cp.Permissions = make([]domain.Permission, len(u.Permissions))
		copy(cp.Permissions, u.Permissions)
	}
	return &cp
}

// newID returns a 24-hex-char random identifier.
func newID() string {
	buf := make([]byte, 12)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
