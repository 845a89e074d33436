package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	domainerrors "hearth/contexts/workspace/motd-service/domain/errors"
	"hearth/contexts/workspace/motd-service/ports"
)

// Store is the in-memory motd repository used by tests and local wiring.
type Store struct {
	mu           sync.Mutex
	motdsByID    map[string]ports.Motd
	motdIDByPair map[string]string
	sequence     uint64
}

func NewStore() *Store {
	return &Store{
		motdsByID:    make(map[string]ports.Motd),
		motdIDByPair: make(map[string]string),
	}
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sequence++
	return fmt.Sprintf("motd_%06d", s.sequence), nil
}

func (s *Store) ListForUser(ctx context.Context, projectID string, toUserID string) ([]ports.Motd, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	motds := make([]ports.Motd, 0)
	for _, motd := range s.motdsByID {
		if motd.ProjectID == projectID && motd.ToUserID == toUserID {
			motds = append(motds, motd)
		}
	}
	sort.Slice(motds, func(i int, j int) bool {
		if motds[i].UpdatedAt.Equal(motds[j].UpdatedAt) {
			return motds[i].MotdID > motds[j].MotdID
		}
		return motds[i].UpdatedAt.After(motds[j].UpdatedAt)
	})
	return motds, nil
}

// Upsert replaces the message behind an existing (project, sender, addressee)
// row while keeping that row's ID and creation time.
func (s *Store) Upsert(ctx context.Context, motd ports.Motd) (ports.Motd, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey(motd.ProjectID, motd.FromUserID, motd.ToUserID)
	if existingID, ok := s.motdIDByPair[key]; ok {
		existing := s.motdsByID[existingID]
		existing.Message = motd.Message
		existing.UpdatedAt = motd.UpdatedAt
		s.motdsByID[existingID] = existing
		return existing, nil
	}

	s.motdsByID[motd.MotdID] = motd
	s.motdIDByPair[key] = motd.MotdID
	return motd, nil
}

func (s *Store) GetMotd(ctx context.Context, projectID string, motdID string) (ports.Motd, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(projectID, motdID)
}

func (s *Store) UpdateMessage(ctx context.Context, projectID string, motdID string, message string, now time.Time) (ports.Motd, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	motd, err := s.getLocked(projectID, motdID)
	if err != nil {
		return ports.Motd{}, err
	}
	motd.Message = message
	motd.UpdatedAt = now
	s.motdsByID[motd.MotdID] = motd
	return motd, nil
}

func (s *Store) DeleteMotd(ctx context.Context, projectID string, motdID string) (ports.Motd, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	motd, err := s.getLocked(projectID, motdID)
	if err != nil {
		return ports.Motd{}, err
	}
	delete(s.motdsByID, motd.MotdID)
	delete(s.motdIDByPair, pairKey(motd.ProjectID, motd.FromUserID, motd.ToUserID))
	return motd, nil
}

// getLocked scopes the lookup by project so foreign IDs read as absent.
func (s *Store) getLocked(projectID string, motdID string) (ports.Motd, error) {
	motd, ok := s.motdsByID[motdID]
	if !ok || motd.ProjectID != projectID {
		return ports.Motd{}, domainerrors.ErrMotdNotFound
	}
	return motd, nil
}

func pairKey(projectID string, fromUserID string, toUserID string) string {
	return projectID + "|" + fromUserID + "|" + toUserID
}
