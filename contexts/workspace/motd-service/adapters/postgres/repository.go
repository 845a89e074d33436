package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domainerrors "hearth/contexts/workspace/motd-service/domain/errors"
	"hearth/contexts/workspace/motd-service/ports"
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

func (r *Repository) ListForUser(ctx context.Context, projectID string, toUserID string) ([]ports.Motd, error) {
	var rows []motdModel
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND to_user_id = ?", projectID, toUserID).
		Order("updated_at DESC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	motds := make([]ports.Motd, 0, len(rows))
	for _, row := range rows {
		motds = append(motds, row.toEntity())
	}
	return motds, nil
}

// Upsert relies on the unique index over (project_id, from_user_id,
// to_user_id). The conflict path keeps the existing row's ID and creation
// time and only replaces the message.
func (r *Repository) Upsert(ctx context.Context, motd ports.Motd) (ports.Motd, error) {
	row := motdModelFromEntity(motd)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "project_id"}, {Name: "from_user_id"}, {Name: "to_user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"message", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return ports.Motd{}, err
	}

	var current motdModel
	err = r.db.WithContext(ctx).
		Where("project_id = ? AND from_user_id = ? AND to_user_id = ?", motd.ProjectID, motd.FromUserID, motd.ToUserID).
		First(&current).
		Error
	if err != nil {
		return ports.Motd{}, err
	}
	return current.toEntity(), nil
}

func (r *Repository) GetMotd(ctx context.Context, projectID string, motdID string) (ports.Motd, error) {
	var row motdModel
	err := r.db.WithContext(ctx).
		Where("motd_id = ? AND project_id = ?", motdID, projectID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Motd{}, domainerrors.ErrMotdNotFound
		}
		return ports.Motd{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateMessage(ctx context.Context, projectID string, motdID string, message string, now time.Time) (ports.Motd, error) {
	result := r.db.WithContext(ctx).
		Model(&motdModel{}).
		Where("motd_id = ? AND project_id = ?", motdID, projectID).
		Updates(map[string]any{
			"message":    message,
			"updated_at": now.UTC(),
		})
	if result.Error != nil {
		return ports.Motd{}, result.Error
	}
	if result.RowsAffected == 0 {
		return ports.Motd{}, domainerrors.ErrMotdNotFound
	}
	return r.GetMotd(ctx, projectID, motdID)
}

func (r *Repository) DeleteMotd(ctx context.Context, projectID string, motdID string) (ports.Motd, error) {
	motd, err := r.GetMotd(ctx, projectID, motdID)
	if err != nil {
		return ports.Motd{}, err
	}

	result := r.db.WithContext(ctx).
		Where("motd_id = ? AND project_id = ?", motdID, projectID).
		Delete(&motdModel{})
	if result.Error != nil {
		return ports.Motd{}, result.Error
	}
	if result.RowsAffected == 0 {
		return ports.Motd{}, domainerrors.ErrMotdNotFound
	}
	return motd, nil
}

type motdModel struct {
	MotdID     string    `gorm:"column:motd_id;primaryKey"`
	ProjectID  string    `gorm:"column:project_id;uniqueIndex:idx_motd_pair"`
	FromUserID string    `gorm:"column:from_user_id;uniqueIndex:idx_motd_pair"`
	ToUserID   string    `gorm:"column:to_user_id;uniqueIndex:idx_motd_pair"`
	Message    string    `gorm:"column:message"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (motdModel) TableName() string {
	return "motds"
}

func (m motdModel) toEntity() ports.Motd {
	return ports.Motd{
		MotdID:     m.MotdID,
		ProjectID:  m.ProjectID,
		FromUserID: m.FromUserID,
		ToUserID:   m.ToUserID,
		Message:    m.Message,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func motdModelFromEntity(item ports.Motd) motdModel {
	return motdModel{
		MotdID:     item.MotdID,
		ProjectID:  item.ProjectID,
		FromUserID: item.FromUserID,
		ToUserID:   item.ToUserID,
		Message:    item.Message,
		CreatedAt:  item.CreatedAt.UTC(),
		UpdatedAt:  item.UpdatedAt.UTC(),
	}
}
