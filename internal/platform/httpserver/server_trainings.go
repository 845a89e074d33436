package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	trainingserrors "hearth/contexts/workspace/trainings-service/domain/errors"
	trainingshttp "hearth/contexts/workspace/trainings-service/transport/http"
)

func (s *Server) handleListTrainings(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}
	resp, err := s.trainings.Handler.ListTrainingsHandler(
		r.Context(),
		r.PathValue("project_id"),
		user.UserID,
		r.URL.Query().Get("authorId"),
	)
	if err != nil {
		writeTrainingsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateTraining(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}
	var req trainingshttp.CreateTrainingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTrainingsError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.trainings.Handler.CreateTrainingHandler(r.Context(), r.PathValue("project_id"), user.UserID, req)
	if err != nil {
		writeTrainingsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetTraining(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}
	resp, err := s.trainings.Handler.GetTrainingHandler(r.Context(), r.PathValue("project_id"), r.PathValue("training_id"), user.UserID)
	if err != nil {
		writeTrainingsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateTraining(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}
	var req trainingshttp.UpdateTrainingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTrainingsError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.trainings.Handler.UpdateTrainingHandler(r.Context(), r.PathValue("project_id"), r.PathValue("training_id"), user.UserID, req)
	if err != nil {
		writeTrainingsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteTraining(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}
	resp, err := s.trainings.Handler.DeleteTrainingHandler(r.Context(), r.PathValue("project_id"), r.PathValue("training_id"), user.UserID)
	if err != nil {
		writeTrainingsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeTrainingsDomainError(w http.ResponseWriter, err error) {
	if writeMembershipGateError(w, err) {
		return
	}
	switch {
	case errors.Is(err, trainingserrors.ErrTrainingNotFound):
		writeTrainingsError(w, http.StatusNotFound, "training_not_found", err.Error())
	case errors.Is(err, trainingserrors.ErrInvalidRequest):
		writeTrainingsError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeTrainingsError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeTrainingsError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, trainingshttp.ErrorResponse{Code: code, Message: message})
}
