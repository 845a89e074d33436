package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	domainerrors "hearth/contexts/workspace/notes-service/domain/errors"
	"hearth/contexts/workspace/notes-service/ports"
)

type Service struct {
	Repo        ports.Repository
	Authorizer  ports.Authorizer
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (s Service) ListNotes(ctx context.Context, projectID string, userID string) ([]ports.Note, error) {
	if err := s.Authorizer.RequireMember(ctx, projectID, userID); err != nil {
		return nil, err
	}
	return s.Repo.ListNotes(ctx, strings.TrimSpace(projectID))
}

func (s Service) CreateNote(ctx context.Context, projectID string, userID string, input ports.CreateNoteInput) (ports.Note, error) {
	if strings.TrimSpace(input.Title) == "" {
		return ports.Note{}, domainerrors.ErrInvalidRequest
	}
	if err := s.Authorizer.RequireMember(ctx, projectID, userID); err != nil {
		return ports.Note{}, err
	}

	noteID, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return ports.Note{}, err
	}
	now := s.now()
	note, err := s.Repo.CreateNote(ctx, ports.Note{
		NoteID:    noteID,
		ProjectID: strings.TrimSpace(projectID),
		AuthorID:  userID,
		Title:     strings.TrimSpace(input.Title),
		Body:      input.Body,
		Pinned:    input.Pinned,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return ports.Note{}, err
	}

	resolveLogger(s.Logger).Info("note created",
		"event", "note_created",
		"module", "workspace/notes-service",
		"layer", "application",
		"project_id", note.ProjectID,
		"note_id", note.NoteID,
	)
	return note, nil
}

func (s Service) GetNote(ctx context.Context, projectID string, noteID string, userID string) (ports.Note, error) {
	if err := s.Authorizer.RequireMember(ctx, projectID, userID); err != nil {
		return ports.Note{}, err
	}
	return s.Repo.GetNote(ctx, strings.TrimSpace(projectID), strings.TrimSpace(noteID))
}

func (s Service) UpdateNote(ctx context.Context, projectID string, noteID string, userID string, input ports.UpdateNoteInput) (ports.Note, error) {
	note, err := s.GetNote(ctx, projectID, noteID, userID)
	if err != nil {
		return ports.Note{}, err
	}
	if err := s.Authorizer.RequireAuthorOrAdmin(ctx, projectID, userID, note.AuthorID); err != nil {
		return ports.Note{}, err
	}
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return ports.Note{}, domainerrors.ErrInvalidRequest
	}
	return s.Repo.UpdateNote(ctx, note.ProjectID, note.NoteID, input, s.now())
}

func (s Service) DeleteNote(ctx context.Context, projectID string, noteID string, userID string) (ports.Note, error) {
	note, err := s.GetNote(ctx, projectID, noteID, userID)
	if err != nil {
		return ports.Note{}, err
	}
	if err := s.Authorizer.RequireAuthorOrAdmin(ctx, projectID, userID, note.AuthorID); err != nil {
		return ports.Note{}, err
	}

	deleted, err := s.Repo.DeleteNote(ctx, note.ProjectID, note.NoteID)
	if err != nil {
		return ports.Note{}, err
	}
	resolveLogger(s.Logger).Info("note deleted",
		"event", "note_deleted",
		"module", "workspace/notes-service",
		"layer", "application",
		"project_id", deleted.ProjectID,
		"note_id", deleted.NoteID,
	)
	return deleted, nil
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
