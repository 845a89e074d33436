package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domainerrors "hearth/contexts/access/identity-service/domain/errors"
	"hearth/contexts/access/identity-service/ports"
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

// UpsertBySubject inserts on first sight of the subject and refreshes
// email/display name otherwise. The conflict target keeps the original
// user_id stable across logins.
func (r *Repository) UpsertBySubject(ctx context.Context, user ports.User) (ports.User, error) {
	row := userModelFromEntity(user)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "external_subject"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "display_name", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return ports.User{}, err
	}

	var current userModel
	err = r.db.WithContext(ctx).
		Where("external_subject = ?", user.ExternalSubject).
		First(&current).
		Error
	if err != nil {
		return ports.User{}, err
	}
	return current.toEntity(), nil
}

func (r *Repository) GetUser(ctx context.Context, userID string) (ports.User, error) {
	var row userModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.User{}, domainerrors.ErrUserNotFound
		}
		return ports.User{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListUsers(ctx context.Context, userIDs []string) ([]ports.User, error) {
	if len(userIDs) == 0 {
		return []ports.User{}, nil
	}
	var rows []userModel
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	users := make([]ports.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toEntity())
	}
	return users, nil
}

type userModel struct {
	UserID          string    `gorm:"column:user_id;primaryKey"`
	ExternalSubject string    `gorm:"column:external_subject;uniqueIndex"`
	Email           string    `gorm:"column:email"`
	DisplayName     string    `gorm:"column:display_name"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string {
	return "users"
}

func (m userModel) toEntity() ports.User {
	return ports.User{
		UserID:          m.UserID,
		ExternalSubject: m.ExternalSubject,
		Email:           m.Email,
		DisplayName:     m.DisplayName,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func userModelFromEntity(item ports.User) userModel {
	return userModel{
		UserID:          item.UserID,
		ExternalSubject: item.ExternalSubject,
		Email:           item.Email,
		DisplayName:     item.DisplayName,
		CreatedAt:       item.CreatedAt.UTC(),
		UpdatedAt:       item.UpdatedAt.UTC(),
	}
}
