package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"turbo/contexts/identity-access/identity-service/domain/entities"
	domainerrors "turbo/contexts/identity-access/identity-service/domain/errors"

	"github.com/google/uuid"
)

// Store is an in-memory adapter implementing the repository/clock/idgen ports.
// It is intended for tests and local development wiring.
type Store struct {
	mu    sync.RWMutex
	users map[string]entities.User // keyed by lowercase username
}

func NewStore() *Store {
	return &Store{users: make(map[string]entities.User)}
}

func (s *Store) CreateUser(_ context.Context, user entities.User) error {
	key := strings.ToLower(user.Username)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[key]; exists {
		return domainerrors.ErrUserAlreadyExists
	}
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return domainerrors.ErrUserAlreadyExists
		}
	}
	s.users[key] = user
	return nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (entities.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[strings.ToLower(username)]
	return user, ok, nil
}

func (s *Store) Now() time.Time { return time.Now().UTC() }

func (s *Store) NewID(context.Context) (string, error) {
	return uuid.NewString(), nil
}
