package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	domainerrors "hearth/contexts/workspace/trainings-service/domain/errors"
	"hearth/contexts/workspace/trainings-service/ports"
)

type Service struct {
	Repo        ports.Repository
	Authorizer  ports.Authorizer
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (s Service) ListTrainings(ctx context.Context, projectID string, userID string, filter ports.ListTrainingsFilter) ([]ports.Training, error) {
	if err := s.Authorizer.RequireMember(ctx, projectID, userID); err != nil {
		return nil, err
	}
	filter.AuthorID = strings.TrimSpace(filter.AuthorID)
	return s.Repo.ListTrainings(ctx, strings.TrimSpace(projectID), filter)
}

func (s Service) CreateTraining(ctx context.Context, projectID string, userID string, input ports.CreateTrainingInput) (ports.Training, error) {
	if strings.TrimSpace(input.Title) == "" || input.Date.IsZero() || input.Duration <= 0 || strings.TrimSpace(input.Type) == "" {
		return ports.Training{}, domainerrors.ErrInvalidRequest
	}
	if err := s.Authorizer.RequireMember(ctx, projectID, userID); err != nil {
		return ports.Training{}, err
	}

	trainingID, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return ports.Training{}, err
	}
	now := s.now()
	training, err := s.Repo.CreateTraining(ctx, ports.Training{
		TrainingID: trainingID,
		ProjectID:  strings.TrimSpace(projectID),
		AuthorID:   userID,
		Title:      strings.TrimSpace(input.Title),
		Date:       input.Date.UTC(),
		Duration:   input.Duration,
		Type:       strings.TrimSpace(input.Type),
		Intensity:  input.Intensity,
		Notes:      input.Notes,
		Tags:       normalizeTags(input.Tags),
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return ports.Training{}, err
	}

	resolveLogger(s.Logger).Info("training created",
		"event", "training_created",
		"module", "workspace/trainings-service",
		"layer", "application",
		"project_id", training.ProjectID,
		"training_id", training.TrainingID,
	)
	return training, nil
}

func (s Service) GetTraining(ctx context.Context, projectID string, trainingID string, userID string) (ports.Training, error) {
	if err := s.Authorizer.RequireMember(ctx, projectID, userID); err != nil {
		return ports.Training{}, err
	}
	return s.Repo.GetTraining(ctx, strings.TrimSpace(projectID), strings.TrimSpace(trainingID))
}

func (s Service) UpdateTraining(ctx context.Context, projectID string, trainingID string, userID string, input ports.UpdateTrainingInput) (ports.Training, error) {
	training, err := s.GetTraining(ctx, projectID, trainingID, userID)
	if err != nil {
		return ports.Training{}, err
	}
	if err := s.Authorizer.RequireAuthorOrAdmin(ctx, projectID, userID, training.AuthorID); err != nil {
		return ports.Training{}, err
	}
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return ports.Training{}, domainerrors.ErrInvalidRequest
	}
	if input.Duration != nil && *input.Duration <= 0 {
		return ports.Training{}, domainerrors.ErrInvalidRequest
	}
	if input.Tags != nil {
		input.Tags = normalizeTags(input.Tags)
	}
	return s.Repo.UpdateTraining(ctx, training.ProjectID, training.TrainingID, input, s.now())
}

func (s Service) DeleteTraining(ctx context.Context, projectID string, trainingID string, userID string) (ports.Training, error) {
	training, err := s.GetTraining(ctx, projectID, trainingID, userID)
	if err != nil {
		return ports.Training{}, err
	}
	if err := s.Authorizer.RequireAuthorOrAdmin(ctx, projectID, userID, training.AuthorID); err != nil {
		return ports.Training{}, err
	}

	deleted, err := s.Repo.DeleteTraining(ctx, training.ProjectID, training.TrainingID)
	if err != nil {
		return ports.Training{}, err
	}
	resolveLogger(s.Logger).Info("training deleted",
		"event", "training_deleted",
		"module", "workspace/trainings-service",
		"layer", "application",
		"project_id", deleted.ProjectID,
		"training_id", deleted.TrainingID,
	)
	return deleted, nil
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
