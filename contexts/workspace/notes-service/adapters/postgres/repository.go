package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	domainerrors "hearth/contexts/workspace/notes-service/domain/errors"
	"hearth/contexts/workspace/notes-service/ports"
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

func (r *Repository) ListNotes(ctx context.Context, projectID string) ([]ports.Note, error) {
	var rows []noteModel
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	notes := make([]ports.Note, 0, len(rows))
	for _, row := range rows {
		notes = append(notes, row.toEntity())
	}
	return notes, nil
}

func (r *Repository) CreateNote(ctx context.Context, note ports.Note) (ports.Note, error) {
	row := noteModelFromEntity(note)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return ports.Note{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetNote(ctx context.Context, projectID string, noteID string) (ports.Note, error) {
	var row noteModel
	err := r.db.WithContext(ctx).
		Where("note_id = ? AND project_id = ?", noteID, projectID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Note{}, domainerrors.ErrNoteNotFound
		}
		return ports.Note{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateNote(ctx context.Context, projectID string, noteID string, input ports.UpdateNoteInput, now time.Time) (ports.Note, error) {
	updates := map[string]any{"updated_at": now.UTC()}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Body != nil {
		updates["body"] = *input.Body
	}
	if input.Pinned != nil {
		updates["pinned"] = *input.Pinned
	}

	result := r.db.WithContext(ctx).
		Model(&noteModel{}).
		Where("note_id = ? AND project_id = ?", noteID, projectID).
		Updates(updates)
	if result.Error != nil {
		return ports.Note{}, result.Error
	}
	if result.RowsAffected == 0 {
		return ports.Note{}, domainerrors.ErrNoteNotFound
	}
	return r.GetNote(ctx, projectID, noteID)
}

func (r *Repository) DeleteNote(ctx context.Context, projectID string, noteID string) (ports.Note, error) {
	note, err := r.GetNote(ctx, projectID, noteID)
	if err != nil {
		return ports.Note{}, err
	}

	result := r.db.WithContext(ctx).
		Where("note_id = ? AND project_id = ?", noteID, projectID).
		Delete(&noteModel{})
	if result.Error != nil {
		return ports.Note{}, result.Error
	}
	if result.RowsAffected == 0 {
		return ports.Note{}, domainerrors.ErrNoteNotFound
	}
	return note, nil
}

type noteModel struct {
	NoteID    string    `gorm:"column:note_id;primaryKey"`
	ProjectID string    `gorm:"column:project_id;index"`
	AuthorID  string    `gorm:"column:author_id"`
	Title     string    `gorm:"column:title"`
	Body      string    `gorm:"column:body"`
	Pinned    bool      `gorm:"column:pinned"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (noteModel) TableName() string {
	return "notes"
}

func (m noteModel) toEntity() ports.Note {
	return ports.Note{
		NoteID:    m.NoteID,
		ProjectID: m.ProjectID,
		AuthorID:  m.AuthorID,
		Title:     m.Title,
		Body:      m.Body,
		Pinned:    m.Pinned,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func noteModelFromEntity(item ports.Note) noteModel {
	return noteModel{
		NoteID:    item.NoteID,
		ProjectID: item.ProjectID,
		AuthorID:  item.AuthorID,
		Title:     item.Title,
		Body:      item.Body,
		Pinned:    item.Pinned,
		CreatedAt: item.CreatedAt.UTC(),
		UpdatedAt: item.UpdatedAt.UTC(),
	}
}
