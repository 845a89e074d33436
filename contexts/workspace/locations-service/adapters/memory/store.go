package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	domainerrors "hearth/contexts/workspace/locations-service/domain/errors"
	"hearth/contexts/workspace/locations-service/ports"
)

// Store is the in-memory location repository used by tests and local wiring.
type Store struct {
	mu           sync.Mutex
	visitedByID  map[string]ports.VisitedLocation
	wishlistByID map[string]ports.WishlistLocation
	sequence     uint64
}

func NewStore() *Store {
	return &Store{
		visitedByID:  make(map[string]ports.VisitedLocation),
		wishlistByID: make(map[string]ports.WishlistLocation),
	}
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sequence++
	return fmt.Sprintf("location_%06d", s.sequence), nil
}

func (s *Store) ListVisited(ctx context.Context, projectID string) ([]ports.VisitedLocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	locations := make([]ports.VisitedLocation, 0)
	for _, location := range s.visitedByID {
		if location.ProjectID == projectID {
			locations = append(locations, location)
		}
	}
	sort.Slice(locations, func(i int, j int) bool {
		if locations[i].Date.Equal(locations[j].Date) {
			return locations[i].LocationID > locations[j].LocationID
		}
		return locations[i].Date.After(locations[j].Date)
	})
	return locations, nil
}

func (s *Store) CreateVisited(ctx context.Context, location ports.VisitedLocation) (ports.VisitedLocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.visitedByID[location.LocationID] = location
	return location, nil
}

func (s *Store) GetVisited(ctx context.Context, projectID string, locationID string) (ports.VisitedLocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getVisitedLocked(projectID, locationID)
}

func (s *Store) UpdateVisited(ctx context.Context, projectID string, locationID string, input ports.UpdateVisitedInput, now time.Time) (ports.VisitedLocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	location, err := s.getVisitedLocked(projectID, locationID)
	if err != nil {
		return ports.VisitedLocation{}, err
	}
	if input.Name != nil {
		location.Name = *input.Name
	}
	if input.Date != nil {
		location.Date = input.Date.UTC()
	}
	if input.Notes != nil {
		location.Notes = *input.Notes
	}
	if input.Tags != nil {
		location.Tags = input.Tags
	}
	location.UpdatedAt = now
	s.visitedByID[location.LocationID] = location
	return location, nil
}

func (s *Store) DeleteVisited(ctx context.Context, projectID string, locationID string) (ports.VisitedLocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	location, err := s.getVisitedLocked(projectID, locationID)
	if err != nil {
		return ports.VisitedLocation{}, err
	}
	delete(s.visitedByID, location.LocationID)
	return location, nil
}

func (s *Store) ListWishlist(ctx context.Context, projectID string) ([]ports.WishlistLocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	locations := make([]ports.WishlistLocation, 0)
	for _, location := range s.wishlistByID {
		if location.ProjectID == projectID {
			locations = append(locations, location)
		}
	}
	sort.Slice(locations, func(i int, j int) bool {
		if locations[i].Priority == locations[j].Priority {
			return locations[i].LocationID < locations[j].LocationID
		}
		return locations[i].Priority < locations[j].Priority
	})
	return locations, nil
}

func (s *Store) CreateWishlist(ctx context.Context, location ports.WishlistLocation) (ports.WishlistLocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.wishlistByID[location.LocationID] = location
	return location, nil
}

func (s *Store) GetWishlist(ctx context.Context, projectID string, locationID string) (ports.WishlistLocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getWishlistLocked(projectID, locationID)
}

func (s *Store) UpdateWishlist(ctx context.Context, projectID string, locationID string, input ports.UpdateWishlistInput, now time.Time) (ports.WishlistLocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	location, err := s.getWishlistLocked(projectID, locationID)
	if err != nil {
		return ports.WishlistLocation{}, err
	}
	if input.Name != nil {
		location.Name = *input.Name
	}
	if input.Priority != nil {
		location.Priority = *input.Priority
	}
	if input.Notes != nil {
		location.Notes = *input.Notes
	}
	if input.Tags != nil {
		location.Tags = input.Tags
	}
	location.UpdatedAt = now
	s.wishlistByID[location.LocationID] = location
	return location, nil
}

func (s *Store) DeleteWishlist(ctx context.Context, projectID string, locationID string) (ports.WishlistLocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	location, err := s.getWishlistLocked(projectID, locationID)
	if err != nil {
		return ports.WishlistLocation{}, err
	}
	delete(s.wishlistByID, location.LocationID)
	return location, nil
}

// getVisitedLocked scopes the lookup by project so foreign IDs read as absent.
func (s *Store) getVisitedLocked(projectID string, locationID string) (ports.VisitedLocation, error) {
	location, ok := s.visitedByID[locationID]
	if !ok || location.ProjectID != projectID {
		return ports.VisitedLocation{}, domainerrors.ErrLocationNotFound
	}
	return location, nil
}

func (s *Store) getWishlistLocked(projectID string, locationID string) (ports.WishlistLocation, error) {
	location, ok := s.wishlistByID[locationID]
	if !ok || location.ProjectID != projectID {
		return ports.WishlistLocation{}, domainerrors.ErrLocationNotFound
	}
	return location, nil
}
