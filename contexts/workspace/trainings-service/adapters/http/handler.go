package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"hearth/contexts/workspace/trainings-service/application"
	domainerrors "hearth/contexts/workspace/trainings-service/domain/errors"
	"hearth/contexts/workspace/trainings-service/ports"
	httptransport "hearth/contexts/workspace/trainings-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) ListTrainingsHandler(ctx context.Context, projectID string, userID string, authorFilter string) (httptransport.TrainingListResponse, error) {
	trainings, err := h.Service.ListTrainings(ctx, strings.TrimSpace(projectID), userID, ports.ListTrainingsFilter{
		AuthorID: strings.TrimSpace(authorFilter),
	})
	if err != nil {
		return httptransport.TrainingListResponse{}, err
	}
	resp := httptransport.TrainingListResponse{Status: "success", Data: []httptransport.TrainingPayload{}}
	for _, training := range trainings {
		resp.Data = append(resp.Data, trainingPayload(training))
	}
	return resp, nil
}

func (h Handler) CreateTrainingHandler(ctx context.Context, projectID string, userID string, req httptransport.CreateTrainingRequest) (httptransport.TrainingResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return httptransport.TrainingResponse{}, err
	}
	training, err := h.Service.CreateTraining(ctx, strings.TrimSpace(projectID), userID, ports.CreateTrainingInput{
		Title:     strings.TrimSpace(req.Title),
		Date:      date,
		Duration:  req.Duration,
		Type:      strings.TrimSpace(req.Type),
		Intensity: req.Intensity,
		Notes:     req.Notes,
		Tags:      req.Tags,
	})
	if err != nil {
		return httptransport.TrainingResponse{}, err
	}
	return httptransport.TrainingResponse{Status: "success", Data: trainingPayload(training)}, nil
}

func (h Handler) GetTrainingHandler(ctx context.Context, projectID string, trainingID string, userID string) (httptransport.TrainingResponse, error) {
	training, err := h.Service.GetTraining(ctx, strings.TrimSpace(projectID), strings.TrimSpace(trainingID), userID)
	if err != nil {
		return httptransport.TrainingResponse{}, err
	}
	return httptransport.TrainingResponse{Status: "success", Data: trainingPayload(training)}, nil
}

func (h Handler) UpdateTrainingHandler(ctx context.Context, projectID string, trainingID string, userID string, req httptransport.UpdateTrainingRequest) (httptransport.TrainingResponse, error) {
	input := ports.UpdateTrainingInput{
		Title:     req.Title,
		Duration:  req.Duration,
		Type:      req.Type,
		Intensity: req.Intensity,
		Notes:     req.Notes,
		Tags:      req.Tags,
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return httptransport.TrainingResponse{}, err
		}
		input.Date = &date
	}
	training, err := h.Service.UpdateTraining(ctx, strings.TrimSpace(projectID), strings.TrimSpace(trainingID), userID, input)
	if err != nil {
		return httptransport.TrainingResponse{}, err
	}
	return httptransport.TrainingResponse{Status: "success", Data: trainingPayload(training)}, nil
}

func (h Handler) DeleteTrainingHandler(ctx context.Context, projectID string, trainingID string, userID string) (httptransport.TrainingResponse, error) {
	training, err := h.Service.DeleteTraining(ctx, strings.TrimSpace(projectID), strings.TrimSpace(trainingID), userID)
	if err != nil {
		return httptransport.TrainingResponse{}, err
	}
	return httptransport.TrainingResponse{Status: "success", Data: trainingPayload(training)}, nil
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

func trainingPayload(training ports.Training) httptransport.TrainingPayload {
	tags := training.Tags
	if tags == nil {
		tags = []string{}
	}
	return httptransport.TrainingPayload{
		ID:        training.TrainingID,
		ProjectID: training.ProjectID,
		AuthorID:  training.AuthorID,
		Title:     training.Title,
		Date:      training.Date.Format(time.RFC3339),
		Duration:  training.Duration,
		Type:      training.Type,
		Intensity: training.Intensity,
		Notes:     training.Notes,
		Tags:      tags,
		CreatedAt: training.CreatedAt.Format(time.RFC3339),
		UpdatedAt: training.UpdatedAt.Format(time.RFC3339),
	}
}
