package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	membershiperrors "hearth/contexts/access/membership-service/domain/errors"
	membershiphttp "hearth/contexts/access/membership-service/transport/http"
)

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}
	resp, err := s.membership.Handler.ListProjectsHandler(r.Context(), user.UserID)
	if err != nil {
		writeMembershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}
	var req membershiphttp.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMembershipError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.membership.Handler.CreateProjectHandler(r.Context(), user.UserID, req)
	if err != nil {
		writeMembershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}
	resp, err := s.membership.Handler.GetProjectHandler(r.Context(), r.PathValue("project_id"), user.UserID)
	if err != nil {
		writeMembershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}
	var req membershiphttp.UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMembershipError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.membership.Handler.UpdateProjectHandler(r.Context(), r.PathValue("project_id"), user.UserID, req)
	if err != nil {
		writeMembershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleArchiveProject(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}
	resp, err := s.membership.Handler.ArchiveProjectHandler(r.Context(), r.PathValue("project_id"), user.UserID)
	if err != nil {
		writeMembershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}
	resp, err := s.membership.Handler.ListMembersHandler(r.Context(), r.PathValue("project_id"), user.UserID)
	if err != nil {
		writeMembershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateMemberRole(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}
	var req membershiphttp.UpdateMemberRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMembershipError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.membership.Handler.UpdateMemberRoleHandler(
		r.Context(),
		r.PathValue("project_id"),
		r.PathValue("member_id"),
		user.UserID,
		req,
	)
	if err != nil {
		writeMembershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}
	resp, err := s.membership.Handler.RemoveMemberHandler(
		r.Context(),
		r.PathValue("project_id"),
		r.PathValue("member_id"),
		user.UserID,
	)
	if err != nil {
		writeMembershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListAuditLog(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}

	limit := 0
	if limitRaw := r.URL.Query().Get("limit"); limitRaw != "" {
		parsed, err := strconv.Atoi(limitRaw)
		if err != nil {
			writeMembershipError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return
		}
		limit = parsed
	}

	resp, err := s.membership.Handler.ListAuditLogHandler(r.Context(), r.PathValue("project_id"), user.UserID, limit)
	if err != nil {
		writeMembershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateInvite(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}
	var req membershiphttp.CreateInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMembershipError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.membership.Handler.CreateInviteHandler(r.Context(), r.PathValue("project_id"), user.UserID, req)
	if err != nil {
		writeMembershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleAcceptInviteByID(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}
	resp, err := s.membership.Handler.AcceptInviteByIDHandler(
		r.Context(),
		r.PathValue("project_id"),
		r.PathValue("invite_id"),
		user.UserID,
		user.Email,
	)
	if err != nil {
		writeMembershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeclineInviteByID(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}
	resp, err := s.membership.Handler.DeclineInviteByIDHandler(
		r.Context(),
		r.PathValue("project_id"),
		r.PathValue("invite_id"),
		user.UserID,
		user.Email,
	)
	if err != nil {
		writeMembershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAcceptInviteByCode(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}
	var req membershiphttp.RedeemCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMembershipError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.membership.Handler.AcceptInviteByCodeHandler(r.Context(), user.UserID, req)
	if err != nil {
		writeMembershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeclineInviteByCode(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}
	var req membershiphttp.RedeemCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMembershipError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.membership.Handler.DeclineInviteByCodeHandler(r.Context(), user.UserID, req)
	if err != nil {
		writeMembershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// writeMembershipGateError maps authorization failures raised by the
// membership service. Resource modules reuse it so the gates answer the same
// way on every route.
func writeMembershipGateError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, membershiperrors.ErrNotMember):
		writeMembershipError(w, http.StatusForbidden, "not_member", err.Error())
	case errors.Is(err, membershiperrors.ErrAdminRequired):
		writeMembershipError(w, http.StatusForbidden, "admin_required", err.Error())
	case errors.Is(err, membershiperrors.ErrAuthorOrAdmin):
		writeMembershipError(w, http.StatusForbidden, "author_or_admin_required", err.Error())
	case errors.Is(err, membershiperrors.ErrProjectNotFound):
		writeMembershipError(w, http.StatusNotFound, "project_not_found", err.Error())
	default:
		return false
	}
	return true
}

func writeMembershipDomainError(w http.ResponseWriter, err error) {
	if writeMembershipGateError(w, err) {
		return
	}
	switch {
	case errors.Is(err, membershiperrors.ErrMemberNotFound),
		errors.Is(err, membershiperrors.ErrInviteNotFound):
		writeMembershipError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, membershiperrors.ErrEmailMismatch):
		writeMembershipError(w, http.StatusForbidden, "email_mismatch", err.Error())
	case errors.Is(err, membershiperrors.ErrLastAdmin):
		writeMembershipError(w, http.StatusConflict, "last_admin", err.Error())
	case errors.Is(err, membershiperrors.ErrConflict),
		errors.Is(err, membershiperrors.ErrCodeCollision):
		writeMembershipError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, membershiperrors.ErrInvalidRequest):
		writeMembershipError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeMembershipError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeMembershipError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, membershiphttp.ErrorResponse{Code: code, Message: message})
}
