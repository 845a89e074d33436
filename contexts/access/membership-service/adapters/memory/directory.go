package memory

import (
	"context"
	"sync"

	"hearth/contexts/access/membership-service/ports"
)

// Directory is an in-memory profile projection. The identity service pushes
// profile updates into it through SyncProfile, and member listings read it
// through ListProfiles. It is a projection, never the system of record.
type Directory struct {
	mu       sync.Mutex
	profiles map[string]ports.UserProfile
}

func NewDirectory() *Directory {
	return &Directory{
		profiles: map[string]ports.UserProfile{},
	}
}

func (d *Directory) SyncProfile(_ context.Context, userID string, email string, displayName string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.profiles[userID] = ports.UserProfile{
		UserID:      userID,
		Email:       email,
		DisplayName: displayName,
	}
	return nil
}

func (d *Directory) ListProfiles(_ context.Context, userIDs []string) ([]ports.UserProfile, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	profiles := make([]ports.UserProfile, 0, len(userIDs))
	for _, userID := range userIDs {
		if profile, ok := d.profiles[userID]; ok {
			profiles = append(profiles, profile)
		}
	}
	return profiles, nil
}
