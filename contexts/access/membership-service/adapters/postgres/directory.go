package postgresadapter

import (
	"context"

	"gorm.io/gorm"

	"hearth/contexts/access/membership-service/ports"
)

// Directory reads user profiles for member listings. The users table is
// owned by the identity service; this adapter only ever selects from it.
type Directory struct {
	db *gorm.DB
}

func NewDirectory(db *gorm.DB) *Directory {
	return &Directory{db: db}
}

type directoryRow struct {
	UserID      string `gorm:"column:user_id"`
	Email       string `gorm:"column:email"`
	DisplayName string `gorm:"column:display_name"`
}

func (d *Directory) ListProfiles(ctx context.Context, userIDs []string) ([]ports.UserProfile, error) {
	if len(userIDs) == 0 {
		return []ports.UserProfile{}, nil
	}
	var rows []directoryRow
	err := d.db.WithContext(ctx).
		Table("users").
		Select("user_id", "email", "display_name").
		Where("user_id IN ?", userIDs).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	profiles := make([]ports.UserProfile, 0, len(rows))
	for _, row := range rows {
		profiles = append(profiles, ports.UserProfile{
			UserID:      row.UserID,
			Email:       row.Email,
			DisplayName: row.DisplayName,
		})
	}
	return profiles, nil
}
