package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	domainerrors "hearth/contexts/workspace/trainings-service/domain/errors"
	"hearth/contexts/workspace/trainings-service/ports"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) ListTrainings(ctx context.Context, projectID string, filter ports.ListTrainingsFilter) ([]ports.Training, error) {
	query := r.db.WithContext(ctx).
		Where("project_id = ?", projectID)
	if filter.AuthorID != "" {
		query = query.Where("author_id = ?", filter.AuthorID)
	}

	var rows []trainingModel
	err := query.
		Order("date DESC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	trainings := make([]ports.Training, 0, len(rows))
	for _, row := range rows {
		trainings = append(trainings, row.toEntity())
	}
	return trainings, nil
}

func (r *Repository) CreateTraining(ctx context.Context, training ports.Training) (ports.Training, error) {
	row := trainingModelFromEntity(training)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return ports.Training{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetTraining(ctx context.Context, projectID string, trainingID string) (ports.Training, error) {
	var row trainingModel
	err := r.db.WithContext(ctx).
		Where("training_id = ? AND project_id = ?", trainingID, projectID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Training{}, domainerrors.ErrTrainingNotFound
		}
		return ports.Training{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateTraining(ctx context.Context, projectID string, trainingID string, input ports.UpdateTrainingInput, now time.Time) (ports.Training, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row trainingModel
		err := tx.
			Where("training_id = ? AND project_id = ?", trainingID, projectID).
			First(&row).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrTrainingNotFound
			}
			return err
		}

		if input.Title != nil {
			row.Title = *input.Title
		}
		if input.Date != nil {
			row.Date = input.Date.UTC()
		}
		if input.Duration != nil {
			row.Duration = *input.Duration
		}
		if input.Type != nil {
			row.Type = *input.Type
		}
		if input.Intensity != nil {
			row.Intensity = input.Intensity
		}
		if input.Notes != nil {
			row.Notes = *input.Notes
		}
		if input.Tags != nil {
			row.Tags = input.Tags
		}
		row.UpdatedAt = now.UTC()
		return tx.Save(&row).Error
	})
	if err != nil {
		return ports.Training{}, err
	}
	return r.GetTraining(ctx, projectID, trainingID)
}

func (r *Repository) DeleteTraining(ctx context.Context, projectID string, trainingID string) (ports.Training, error) {
	training, err := r.GetTraining(ctx, projectID, trainingID)
	if err != nil {
		return ports.Training{}, err
	}

	result := r.db.WithContext(ctx).
		Where("training_id = ? AND project_id = ?", trainingID, projectID).
		Delete(&trainingModel{})
	if result.Error != nil {
		return ports.Training{}, result.Error
	}
	if result.RowsAffected == 0 {
		return ports.Training{}, domainerrors.ErrTrainingNotFound
	}
	return training, nil
}

type trainingModel struct {
	TrainingID string    `gorm:"column:training_id;primaryKey"`
	ProjectID  string    `gorm:"column:project_id;index"`
	AuthorID   string    `gorm:"column:author_id;index"`
	Title      string    `gorm:"column:title"`
	Date       time.Time `gorm:"column:date"`
	Duration   int       `gorm:"column:duration"`
	Type       string    `gorm:"column:type"`
	Intensity  *int      `gorm:"column:intensity"`
	Notes      string    `gorm:"column:notes"`
	Tags       []string  `gorm:"column:tags;serializer:json"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (trainingModel) TableName() string {
	return "trainings"
}

func (m trainingModel) toEntity() ports.Training {
	return ports.Training{
		TrainingID: m.TrainingID,
		ProjectID:  m.ProjectID,
		AuthorID:   m.AuthorID,
		Title:      m.Title,
		Date:       m.Date,
		Duration:   m.Duration,
		Type:       m.Type,
		Intensity:  m.Intensity,
		Notes:      m.Notes,
		Tags:       m.Tags,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func trainingModelFromEntity(item ports.Training) trainingModel {
	return trainingModel{
		TrainingID: item.TrainingID,
		ProjectID:  item.ProjectID,
		AuthorID:   item.AuthorID,
		Title:      item.Title,
		Date:       item.Date.UTC(),
		Duration:   item.Duration,
		Type:       item.Type,
		Intensity:  item.Intensity,
		Notes:      item.Notes,
		Tags:       item.Tags,
		CreatedAt:  item.CreatedAt.UTC(),
		UpdatedAt:  item.UpdatedAt.UTC(),
	}
}
