package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	noteserrors "hearth/contexts/workspace/notes-service/domain/errors"
	noteshttp "hearth/contexts/workspace/notes-service/transport/http"
)

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}
	resp, err := s.notes.Handler.ListNotesHandler(r.Context(), r.PathValue("project_id"), user.UserID)
	if err != nil {
		writeNotesDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}
	var req noteshttp.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeNotesError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.notes.Handler.CreateNoteHandler(r.Context(), r.PathValue("project_id"), user.UserID, req)
	if err != nil {
		writeNotesDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}
	resp, err := s.notes.Handler.GetNoteHandler(r.Context(), r.PathValue("project_id"), r.PathValue("note_id"), user.UserID)
	if err != nil {
		writeNotesDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}
	var req noteshttp.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeNotesError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.notes.Handler.UpdateNoteHandler(r.Context(), r.PathValue("project_id"), r.PathValue("note_id"), user.UserID, req)
	if err != nil {
		writeNotesDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}
	resp, err := s.notes.Handler.DeleteNoteHandler(r.Context(), r.PathValue("project_id"), r.PathValue("note_id"), user.UserID)
	if err != nil {
		writeNotesDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeNotesDomainError(w http.ResponseWriter, err error) {
	if writeMembershipGateError(w, err) {
		return
	}
	switch {
	case errors.Is(err, noteserrors.ErrNoteNotFound):
		writeNotesError(w, http.StatusNotFound, "note_not_found", err.Error())
	case errors.Is(err, noteserrors.ErrInvalidRequest):
		writeNotesError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeNotesError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeNotesError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, noteshttp.ErrorResponse{Code: code, Message: message})
}
