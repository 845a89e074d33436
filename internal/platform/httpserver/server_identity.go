package httpserver

import (
	"errors"
	"net/http"

	identityerrors "hearth/contexts/access/identity-service/domain/errors"
	identityhttp "hearth/contexts/access/identity-service/transport/http"
)

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}
	resp, err := s.identity.Handler.MeHandler(r.Context(), user.UserID)
	if err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeIdentityDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, identityerrors.ErrUnauthenticated):
		writeIdentityError(w, http.StatusUnauthorized, "unauthenticated", err.Error())
	case errors.Is(err, identityerrors.ErrInvalidRequest):
		writeIdentityError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, identityerrors.ErrUserNotFound):
		writeIdentityError(w, http.StatusNotFound, "user_not_found", err.Error())
	default:
		writeIdentityError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeIdentityError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, identityhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
