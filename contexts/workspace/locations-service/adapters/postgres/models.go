package postgresadapter

import (
	"time"

	"hearth/contexts/workspace/locations-service/ports"
)

type visitedModel struct {
	LocationID string    `gorm:"column:location_id;primaryKey"`
	ProjectID  string    `gorm:"column:project_id;index"`
	AuthorID   string    `gorm:"column:author_id"`
	Name       string    `gorm:"column:name"`
	Date       time.Time `gorm:"column:date"`
	Notes      string    `gorm:"column:notes"`
	Tags       []string  `gorm:"column:tags;serializer:json"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (visitedModel) TableName() string {
	return "locations_visited"
}

func (m visitedModel) toEntity() ports.VisitedLocation {
	return ports.VisitedLocation{
		LocationID: m.LocationID,
		ProjectID:  m.ProjectID,
		AuthorID:   m.AuthorID,
		Name:       m.Name,
		Date:       m.Date,
		Notes:      m.Notes,
		Tags:       m.Tags,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func visitedModelFromEntity(item ports.VisitedLocation) visitedModel {
	return visitedModel{
		LocationID: item.LocationID,
		ProjectID:  item.ProjectID,
		AuthorID:   item.AuthorID,
		Name:       item.Name,
		Date:       item.Date.UTC(),
		Notes:      item.Notes,
		Tags:       item.Tags,
		CreatedAt:  item.CreatedAt.UTC(),
		UpdatedAt:  item.UpdatedAt.UTC(),
	}
}

type wishlistModel struct {
	LocationID string    `gorm:"column:location_id;primaryKey"`
	ProjectID  string    `gorm:"column:project_id;index"`
	AuthorID   string    `gorm:"column:author_id"`
	Name       string    `gorm:"column:name"`
	Priority   int       `gorm:"column:priority"`
	Notes      string    `gorm:"column:notes"`
	Tags       []string  `gorm:"column:tags;serializer:json"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (wishlistModel) TableName() string {
	return "locations_wishlist"
}

func (m wishlistModel) toEntity() ports.WishlistLocation {
	return ports.WishlistLocation{
		LocationID: m.LocationID,
		ProjectID:  m.ProjectID,
		AuthorID:   m.AuthorID,
		Name:       m.Name,
		Priority:   m.Priority,
		Notes:      m.Notes,
		Tags:       m.Tags,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func wishlistModelFromEntity(item ports.WishlistLocation) wishlistModel {
	return wishlistModel{
		LocationID: item.LocationID,
		ProjectID:  item.ProjectID,
		AuthorID:   item.AuthorID,
		Name:       item.Name,
		Priority:   item.Priority,
		Notes:      item.Notes,
		Tags:       item.Tags,
		CreatedAt:  item.CreatedAt.UTC(),
		UpdatedAt:  item.UpdatedAt.UTC(),
	}
}
