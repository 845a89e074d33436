package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	domainerrors "hearth/contexts/access/identity-service/domain/errors"
	"hearth/contexts/access/identity-service/ports"
)

// Store is an in-memory user repository for tests and local wiring.
type Store struct {
	mu sync.Mutex

	usersByID       map[string]ports.User
	userIDBySubject map[string]string

	sequence uint64
}

func NewStore() *Store {
	return &Store{
		usersByID:       make(map[string]ports.User),
		userIDBySubject: make(map[string]string),
	}
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sequence++
	return fmt.Sprintf("user_%06d", s.sequence), nil
}

func (s *Store) UpsertBySubject(ctx context.Context, user ports.User) (ports.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existingID, ok := s.userIDBySubject[user.ExternalSubject]; ok {
		existing := s.usersByID[existingID]
		existing.Email = user.Email
		existing.DisplayName = user.DisplayName
		existing.UpdatedAt = user.UpdatedAt
		s.usersByID[existingID] = existing
		return existing, nil
	}

	s.usersByID[user.UserID] = user
	s.userIDBySubject[user.ExternalSubject] = user.UserID
	return user, nil
}

func (s *Store) GetUser(ctx context.Context, userID string) (ports.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.usersByID[userID]
	if !ok {
		return ports.User{}, domainerrors.ErrUserNotFound
	}
	return user, nil
}

func (s *Store) ListUsers(ctx context.Context, userIDs []string) ([]ports.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]ports.User, 0, len(userIDs))
	for _, id := range userIDs {
		if user, ok := s.usersByID[id]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}
