package ports

import (
	"context"
	"time"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// Authorizer is the slice of the membership service this module depends on.
type Authorizer interface {
	RequireMember(ctx context.Context, projectID string, userID string) error
	RequireAuthorOrAdmin(ctx context.Context, projectID string, userID string, authorID string) error
}

type Note struct {
	NoteID    string
	ProjectID string
	AuthorID  string
	Title     string
	Body      string
	Pinned    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreateNoteInput struct {
	Title  string
	Body   string
	Pinned bool
}

type UpdateNoteInput struct {
	Title  *string
	Body   *string
	Pinned *bool
}

// Repository lookups are always scoped by project. A note ID from another
// project must behave exactly like an ID that never existed.
type Repository interface {
	ListNotes(ctx context.Context, projectID string) ([]Note, error)
	CreateNote(ctx context.Context, note Note) (Note, error)
	GetNote(ctx context.Context, projectID string, noteID string) (Note, error)
	UpdateNote(ctx context.Context, projectID string, noteID string, input UpdateNoteInput, now time.Time) (Note, error)
	DeleteNote(ctx context.Context, projectID string, noteID string) (Note, error)
}
