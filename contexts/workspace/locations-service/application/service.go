package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	domainerrors "hearth/contexts/workspace/locations-service/domain/errors"
	"hearth/contexts/workspace/locations-service/ports"
)

type Service struct {
	Repo        ports.Repository
	Authorizer  ports.Authorizer
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (s Service) ListVisited(ctx context.Context, projectID string, userID string) ([]ports.VisitedLocation, error) {
	if err := s.Authorizer.RequireMember(ctx, projectID, userID); err != nil {
		return nil, err
	}
	return s.Repo.ListVisited(ctx, strings.TrimSpace(projectID))
}

func (s Service) CreateVisited(ctx context.Context, projectID string, userID string, input ports.CreateVisitedInput) (ports.VisitedLocation, error) {
	if strings.TrimSpace(input.Name) == "" || input.Date.IsZero() {
		return ports.VisitedLocation{}, domainerrors.ErrInvalidRequest
	}
	if err := s.Authorizer.RequireMember(ctx, projectID, userID); err != nil {
		return ports.VisitedLocation{}, err
	}

	locationID, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return ports.VisitedLocation{}, err
	}
	now := s.now()
	location, err := s.Repo.CreateVisited(ctx, ports.VisitedLocation{
		LocationID: locationID,
		ProjectID:  strings.TrimSpace(projectID),
		AuthorID:   userID,
		Name:       strings.TrimSpace(input.Name),
		Date:       input.Date.UTC(),
		Notes:      input.Notes,
		Tags:       normalizeTags(input.Tags),
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return ports.VisitedLocation{}, err
	}

	resolveLogger(s.Logger).Info("visited location created",
		"event", "location_visited_created",
		"module", "workspace/locations-service",
		"layer", "application",
		"project_id", location.ProjectID,
		"location_id", location.LocationID,
	)
	return location, nil
}

func (s Service) GetVisited(ctx context.Context, projectID string, locationID string, userID string) (ports.VisitedLocation, error) {
	if err := s.Authorizer.RequireMember(ctx, projectID, userID); err != nil {
		return ports.VisitedLocation{}, err
	}
	return s.Repo.GetVisited(ctx, strings.TrimSpace(projectID), strings.TrimSpace(locationID))
}

func (s Service) UpdateVisited(ctx context.Context, projectID string, locationID string, userID string, input ports.UpdateVisitedInput) (ports.VisitedLocation, error) {
	location, err := s.GetVisited(ctx, projectID, locationID, userID)
	if err != nil {
		return ports.VisitedLocation{}, err
	}
	if err := s.Authorizer.RequireAuthorOrAdmin(ctx, projectID, userID, location.AuthorID); err != nil {
		return ports.VisitedLocation{}, err
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return ports.VisitedLocation{}, domainerrors.ErrInvalidRequest
	}
	if input.Tags != nil {
		input.Tags = normalizeTags(input.Tags)
	}
	return s.Repo.UpdateVisited(ctx, location.ProjectID, location.LocationID, input, s.now())
}

func (s Service) DeleteVisited(ctx context.Context, projectID string, locationID string, userID string) (ports.VisitedLocation, error) {
	location, err := s.GetVisited(ctx, projectID, locationID, userID)
	if err != nil {
		return ports.VisitedLocation{}, err
	}
	if err := s.Authorizer.RequireAuthorOrAdmin(ctx, projectID, userID, location.AuthorID); err != nil {
		return ports.VisitedLocation{}, err
	}
	return s.Repo.DeleteVisited(ctx, location.ProjectID, location.LocationID)
}

func (s Service) ListWishlist(ctx context.Context, projectID string, userID string) ([]ports.WishlistLocation, error) {
	if err := s.Authorizer.RequireMember(ctx, projectID, userID); err != nil {
		return nil, err
	}
	return s.Repo.ListWishlist(ctx, strings.TrimSpace(projectID))
}

func (s Service) CreateWishlist(ctx context.Context, projectID string, userID string, input ports.CreateWishlistInput) (ports.WishlistLocation, error) {
	if strings.TrimSpace(input.Name) == "" || input.Priority < 0 {
		return ports.WishlistLocation{}, domainerrors.ErrInvalidRequest
	}
	if err := s.Authorizer.RequireMember(ctx, projectID, userID); err != nil {
		return ports.WishlistLocation{}, err
	}

	locationID, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return ports.WishlistLocation{}, err
	}
	now := s.now()
	location, err := s.Repo.CreateWishlist(ctx, ports.WishlistLocation{
		LocationID: locationID,
		ProjectID:  strings.TrimSpace(projectID),
		AuthorID:   userID,
		Name:       strings.TrimSpace(input.Name),
		Priority:   input.Priority,
		Notes:      input.Notes,
		Tags:       normalizeTags(input.Tags),
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return ports.WishlistLocation{}, err
	}

	resolveLogger(s.Logger).Info("wishlist location created",
		"event", "location_wishlist_created",
		"module", "workspace/locations-service",
		"layer", "application",
		"project_id", location.ProjectID,
		"location_id", location.LocationID,
	)
	return location, nil
}

func (s Service) GetWishlist(ctx context.Context, projectID string, locationID string, userID string) (ports.WishlistLocation, error) {
	if err := s.Authorizer.RequireMember(ctx, projectID, userID); err != nil {
		return ports.WishlistLocation{}, err
	}
	return s.Repo.GetWishlist(ctx, strings.TrimSpace(projectID), strings.TrimSpace(locationID))
}

func (s Service) UpdateWishlist(ctx context.Context, projectID string, locationID string, userID string, input ports.UpdateWishlistInput) (ports.WishlistLocation, error) {
	location, err := s.GetWishlist(ctx, projectID, locationID, userID)
	if err != nil {
		return ports.WishlistLocation{}, err
	}
	if err := s.Authorizer.RequireAuthorOrAdmin(ctx, projectID, userID, location.AuthorID); err != nil {
		return ports.WishlistLocation{}, err
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return ports.WishlistLocation{}, domainerrors.ErrInvalidRequest
	}
	if input.Priority != nil && *input.Priority < 0 {
		return ports.WishlistLocation{}, domainerrors.ErrInvalidRequest
	}
	if input.Tags != nil {
		input.Tags = normalizeTags(input.Tags)
	}
	return s.Repo.UpdateWishlist(ctx, location.ProjectID, location.LocationID, input, s.now())
}

func (s Service) DeleteWishlist(ctx context.Context, projectID string, locationID string, userID string) (ports.WishlistLocation, error) {
	location, err := s.GetWishlist(ctx, projectID, locationID, userID)
	if err != nil {
		return ports.WishlistLocation{}, err
	}
	if err := s.Authorizer.RequireAuthorOrAdmin(ctx, projectID, userID, location.AuthorID); err != nil {
		return ports.WishlistLocation{}, err
	}
	return s.Repo.DeleteWishlist(ctx, location.ProjectID, location.LocationID)
}

func normalizeTags(tags []string) []string {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
