package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	motderrors "hearth/contexts/workspace/motd-service/domain/errors"
	motdhttp "hearth/contexts/workspace/motd-service/transport/http"
)

func (s *Server) handleListMotds(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}
	resp, err := s.motd.Handler.ListMotdsHandler(r.Context(), r.PathValue("project_id"), user.UserID)
	if err != nil {
		writeMotdDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSetMotd(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}
	var req motdhttp.SetMotdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMotdError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.motd.Handler.SetMotdHandler(r.Context(), r.PathValue("project_id"), user.UserID, req)
	if err != nil {
		writeMotdDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateMotd(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}
	var req motdhttp.UpdateMotdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMotdError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.motd.Handler.UpdateMotdHandler(r.Context(), r.PathValue("project_id"), r.PathValue("motd_id"), user.UserID, req)
	if err != nil {
		writeMotdDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteMotd(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}
	resp, err := s.motd.Handler.DeleteMotdHandler(r.Context(), r.PathValue("project_id"), r.PathValue("motd_id"), user.UserID)
	if err != nil {
		writeMotdDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeMotdDomainError(w http.ResponseWriter, err error) {
	if writeMembershipGateError(w, err) {
		return
	}
	switch {
	case errors.Is(err, motderrors.ErrMotdNotFound):
		writeMotdError(w, http.StatusNotFound, "motd_not_found", err.Error())
	case errors.Is(err, motderrors.ErrTargetNotMember):
		writeMotdError(w, http.StatusNotFound, "target_not_member", err.Error())
	case errors.Is(err, motderrors.ErrInvalidRequest):
		writeMotdError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeMotdError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeMotdError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, motdhttp.ErrorResponse{Code: code, Message: message})
}
