package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"hearth/contexts/workspace/locations-service/application"
	domainerrors "hearth/contexts/workspace/locations-service/domain/errors"
	"hearth/contexts/workspace/locations-service/ports"
	httptransport "hearth/contexts/workspace/locations-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) ListVisitedHandler(ctx context.Context, projectID string, userID string) (httptransport.VisitedListResponse, error) {
	locations, err := h.Service.ListVisited(ctx, strings.TrimSpace(projectID), userID)
	if err != nil {
		return httptransport.VisitedListResponse{}, err
	}
	resp := httptransport.VisitedListResponse{Status: "success", Data: []httptransport.VisitedPayload{}}
	for _, location := range locations {
		resp.Data = append(resp.Data, visitedPayload(location))
	}
	return resp, nil
}

func (h Handler) CreateVisitedHandler(ctx context.Context, projectID string, userID string, req httptransport.CreateVisitedRequest) (httptransport.VisitedResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return httptransport.VisitedResponse{}, err
	}
	location, err := h.Service.CreateVisited(ctx, strings.TrimSpace(projectID), userID, ports.CreateVisitedInput{
		Name:  strings.TrimSpace(req.Name),
		Date:  date,
		Notes: req.Notes,
		Tags:  req.Tags,
	})
	if err != nil {
		return httptransport.VisitedResponse{}, err
	}
	return httptransport.VisitedResponse{Status: "success", Data: visitedPayload(location)}, nil
}

func (h Handler) GetVisitedHandler(ctx context.Context, projectID string, locationID string, userID string) (httptransport.VisitedResponse, error) {
	location, err := h.Service.GetVisited(ctx, strings.TrimSpace(projectID), strings.TrimSpace(locationID), userID)
	if err != nil {
		return httptransport.VisitedResponse{}, err
	}
	return httptransport.VisitedResponse{Status: "success", Data: visitedPayload(location)}, nil
}

func (h Handler) UpdateVisitedHandler(ctx context.Context, projectID string, locationID string, userID string, req httptransport.UpdateVisitedRequest) (httptransport.VisitedResponse, error) {
	input := ports.UpdateVisitedInput{
		Name:  req.Name,
		Notes: req.Notes,
		Tags:  req.Tags,
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return httptransport.VisitedResponse{}, err
		}
		input.Date = &date
	}
	location, err := h.Service.UpdateVisited(ctx, strings.TrimSpace(projectID), strings.TrimSpace(locationID), userID, input)
	if err != nil {
		return httptransport.VisitedResponse{}, err
	}
	return httptransport.VisitedResponse{Status: "success", Data: visitedPayload(location)}, nil
}

func (h Handler) DeleteVisitedHandler(ctx context.Context, projectID string, locationID string, userID string) (httptransport.VisitedResponse, error) {
	location, err := h.Service.DeleteVisited(ctx, strings.TrimSpace(projectID), strings.TrimSpace(locationID), userID)
	if err != nil {
		return httptransport.VisitedResponse{}, err
	}
	return httptransport.VisitedResponse{Status: "success", Data: visitedPayload(location)}, nil
}

func (h Handler) ListWishlistHandler(ctx context.Context, projectID string, userID string) (httptransport.WishlistListResponse, error) {
	locations, err := h.Service.ListWishlist(ctx, strings.TrimSpace(projectID), userID)
	if err != nil {
		return httptransport.WishlistListResponse{}, err
	}
	resp := httptransport.WishlistListResponse{Status: "success", Data: []httptransport.WishlistPayload{}}
	for _, location := range locations {
		resp.Data = append(resp.Data, wishlistPayload(location))
	}
	return resp, nil
}

func (h Handler) CreateWishlistHandler(ctx context.Context, projectID string, userID string, req httptransport.CreateWishlistRequest) (httptransport.WishlistResponse, error) {
	location, err := h.Service.CreateWishlist(ctx, strings.TrimSpace(projectID), userID, ports.CreateWishlistInput{
		Name:     strings.TrimSpace(req.Name),
		Priority: req.Priority,
		Notes:    req.Notes,
		Tags:     req.Tags,
	})
	if err != nil {
		return httptransport.WishlistResponse{}, err
	}
	return httptransport.WishlistResponse{Status: "success", Data: wishlistPayload(location)}, nil
}

func (h Handler) GetWishlistHandler(ctx context.Context, projectID string, locationID string, userID string) (httptransport.WishlistResponse, error) {
	location, err := h.Service.GetWishlist(ctx, strings.TrimSpace(projectID), strings.TrimSpace(locationID), userID)
	if err != nil {
		return httptransport.WishlistResponse{}, err
	}
	return httptransport.WishlistResponse{Status: "success", Data: wishlistPayload(location)}, nil
}

func (h Handler) UpdateWishlistHandler(ctx context.Context, projectID string, locationID string, userID string, req httptransport.UpdateWishlistRequest) (httptransport.WishlistResponse, error) {
	location, err := h.Service.UpdateWishlist(ctx, strings.TrimSpace(projectID), strings.TrimSpace(locationID), userID, ports.UpdateWishlistInput{
		Name:     req.Name,
		Priority: req.Priority,
		Notes:    req.Notes,
		Tags:     req.Tags,
	})
	if err != nil {
		return httptransport.WishlistResponse{}, err
	}
	return httptransport.WishlistResponse{Status: "success", Data: wishlistPayload(location)}, nil
}

func (h Handler) DeleteWishlistHandler(ctx context.Context, projectID string, locationID string, userID string) (httptransport.WishlistResponse, error) {
	location, err := h.Service.DeleteWishlist(ctx, strings.TrimSpace(projectID), strings.TrimSpace(locationID), userID)
	if err != nil {
		return httptransport.WishlistResponse{}, err
	}
	return httptransport.WishlistResponse{Status: "success", Data: wishlistPayload(location)}, nil
}

// parseDate accepts RFC3339 timestamps or bare dates.
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	if parsed, err := time.Parse("2006-01-02", value); err == nil {
		return parsed, nil
	}
	return time.Time{}, domainerrors.ErrInvalidRequest
}

func visitedPayload(location ports.VisitedLocation) httptransport.VisitedPayload {
	tags := location.Tags
	if tags == nil {
		tags = []string{}
	}
	return httptransport.VisitedPayload{
		ID:        location.LocationID,
		ProjectID: location.ProjectID,
		AuthorID:  location.AuthorID,
		Name:      location.Name,
		Date:      location.Date.Format(time.RFC3339),
		Notes:     location.Notes,
		Tags:      tags,
		CreatedAt: location.CreatedAt.Format(time.RFC3339),
		UpdatedAt: location.UpdatedAt.Format(time.RFC3339),
	}
}

func wishlistPayload(location ports.WishlistLocation) httptransport.WishlistPayload {
	tags := location.Tags
	if tags == nil {
		tags = []string{}
	}
	return httptransport.WishlistPayload{
		ID:        location.LocationID,
		ProjectID: location.ProjectID,
		AuthorID:  location.AuthorID,
		Name:      location.Name,
		Priority:  location.Priority,
		Notes:     location.Notes,
		Tags:      tags,
		CreatedAt: location.CreatedAt.Format(time.RFC3339),
		UpdatedAt: location.UpdatedAt.Format(time.RFC3339),
	}
}
