package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	locationserrors "hearth/contexts/workspace/locations-service/domain/errors"
	locationshttp "hearth/contexts/workspace/locations-service/transport/http"
)

func (s *Server) handleListVisited(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}
	resp, err := s.locations.Handler.ListVisitedHandler(r.Context(), r.PathValue("project_id"), user.UserID)
	if err != nil {
		writeLocationsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateVisited(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}
	var req locationshttp.CreateVisitedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLocationsError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.locations.Handler.CreateVisitedHandler(r.Context(), r.PathValue("project_id"), user.UserID, req)
	if err != nil {
		writeLocationsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetVisited(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}
	resp, err := s.locations.Handler.GetVisitedHandler(r.Context(), r.PathValue("project_id"), r.PathValue("location_id"), user.UserID)
	if err != nil {
		writeLocationsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateVisited(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}
	var req locationshttp.UpdateVisitedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLocationsError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.locations.Handler.UpdateVisitedHandler(r.Context(), r.PathValue("project_id"), r.PathValue("location_id"), user.UserID, req)
	if err != nil {
		writeLocationsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteVisited(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}
	resp, err := s.locations.Handler.DeleteVisitedHandler(r.Context(), r.PathValue("project_id"), r.PathValue("location_id"), user.UserID)
	if err != nil {
		writeLocationsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListWishlist(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}
	resp, err := s.locations.Handler.ListWishlistHandler(r.Context(), r.PathValue("project_id"), user.UserID)
	if err != nil {
		writeLocationsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateWishlist(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}
	var req locationshttp.CreateWishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLocationsError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.locations.Handler.CreateWishlistHandler(r.Context(), r.PathValue("project_id"), user.UserID, req)
	if err != nil {
		writeLocationsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetWishlist(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}
	resp, err := s.locations.Handler.GetWishlistHandler(r.Context(), r.PathValue("project_id"), r.PathValue("location_id"), user.UserID)
	if err != nil {
		writeLocationsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateWishlist(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}
	var req locationshttp.UpdateWishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLocationsError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.locations.Handler.UpdateWishlistHandler(r.Context(), r.PathValue("project_id"), r.PathValue("location_id"), user.UserID, req)
	if err != nil {
		writeLocationsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteWishlist(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}
	resp, err := s.locations.Handler.DeleteWishlistHandler(r.Context(), r.PathValue("project_id"), r.PathValue("location_id"), user.UserID)
	if err != nil {
		writeLocationsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeLocationsDomainError(w http.ResponseWriter, err error) {
	if writeMembershipGateError(w, err) {
		return
	}
	switch {
	case errors.Is(err, locationserrors.ErrLocationNotFound):
		writeLocationsError(w, http.StatusNotFound, "location_not_found", err.Error())
	case errors.Is(err, locationserrors.ErrInvalidRequest):
		writeLocationsError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeLocationsError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeLocationsError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, locationshttp.ErrorResponse{Code: code, Message: message})
}
