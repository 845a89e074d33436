package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	domainerrors "hearth/contexts/workspace/locations-service/domain/errors"
	"hearth/contexts/workspace/locations-service/ports"
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

func (r *Repository) ListVisited(ctx context.Context, projectID string) ([]ports.VisitedLocation, error) {
	var rows []visitedModel
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("date DESC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	locations := make([]ports.VisitedLocation, 0, len(rows))
	for _, row := range rows {
		locations = append(locations, row.toEntity())
	}
	return locations, nil
}

func (r *Repository) CreateVisited(ctx context.Context, location ports.VisitedLocation) (ports.VisitedLocation, error) {
	row := visitedModelFromEntity(location)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return ports.VisitedLocation{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetVisited(ctx context.Context, projectID string, locationID string) (ports.VisitedLocation, error) {
	var row visitedModel
	err := r.db.WithContext(ctx).
		Where("location_id = ? AND project_id = ?", locationID, projectID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.VisitedLocation{}, domainerrors.ErrLocationNotFound
		}
		return ports.VisitedLocation{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateVisited(ctx context.Context, projectID string, locationID string, input ports.UpdateVisitedInput, now time.Time) (ports.VisitedLocation, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row visitedModel
		err := tx.
			Where("location_id = ? AND project_id = ?", locationID, projectID).
			First(&row).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrLocationNotFound
			}
			return err
		}

		if input.Name != nil {
			row.Name = *input.Name
		}
		if input.Date != nil {
			row.Date = input.Date.UTC()
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
		return ports.VisitedLocation{}, err
	}
	return r.GetVisited(ctx, projectID, locationID)
}

func (r *Repository) DeleteVisited(ctx context.Context, projectID string, locationID string) (ports.VisitedLocation, error) {
	location, err := r.GetVisited(ctx, projectID, locationID)
	if err != nil {
		return ports.VisitedLocation{}, err
	}

	result := r.db.WithContext(ctx).
		Where("location_id = ? AND project_id = ?", locationID, projectID).
		Delete(&visitedModel{})
	if result.Error != nil {
		return ports.VisitedLocation{}, result.Error
	}
	if result.RowsAffected == 0 {
		return ports.VisitedLocation{}, domainerrors.ErrLocationNotFound
	}
	return location, nil
}

func (r *Repository) ListWishlist(ctx context.Context, projectID string) ([]ports.WishlistLocation, error) {
	var rows []wishlistModel
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("priority ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	locations := make([]ports.WishlistLocation, 0, len(rows))
	for _, row := range rows {
		locations = append(locations, row.toEntity())
	}
	return locations, nil
}

func (r *Repository) CreateWishlist(ctx context.Context, location ports.WishlistLocation) (ports.WishlistLocation, error) {
	row := wishlistModelFromEntity(location)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return ports.WishlistLocation{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetWishlist(ctx context.Context, projectID string, locationID string) (ports.WishlistLocation, error) {
	var row wishlistModel
	err := r.db.WithContext(ctx).
		Where("location_id = ? AND project_id = ?", locationID, projectID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.WishlistLocation{}, domainerrors.ErrLocationNotFound
		}
		return ports.WishlistLocation{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateWishlist(ctx context.Context, projectID string, locationID string, input ports.UpdateWishlistInput, now time.Time) (ports.WishlistLocation, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row wishlistModel
		err := tx.
			Where("location_id = ? AND project_id = ?", locationID, projectID).
			First(&row).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrLocationNotFound
			}
			return err
		}

		if input.Name != nil {
			row.Name = *input.Name
		}
		if input.Priority != nil {
			row.Priority = *input.Priority
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
		return ports.WishlistLocation{}, err
	}
	return r.GetWishlist(ctx, projectID, locationID)
}

func (r *Repository) DeleteWishlist(ctx context.Context, projectID string, locationID string) (ports.WishlistLocation, error) {
	location, err := r.GetWishlist(ctx, projectID, locationID)
	if err != nil {
		return ports.WishlistLocation{}, err
	}

	result := r.db.WithContext(ctx).
		Where("location_id = ? AND project_id = ?", locationID, projectID).
		Delete(&wishlistModel{})
	if result.Error != nil {
		return ports.WishlistLocation{}, result.Error
	}
	if result.RowsAffected == 0 {
		return ports.WishlistLocation{}, domainerrors.ErrLocationNotFound
	}
	return location, nil
}
