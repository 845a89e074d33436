package application

import (
	"context"
	"errors"
	"testing"

	"hearth/contexts/workspace/notes-service/adapters/memory"
	domainerrors "hearth/contexts/workspace/notes-service/domain/errors"
	"hearth/contexts/workspace/notes-service/ports"
)

var (
	errNotMember     = errors.New("not a member")
	errAuthorOrAdmin = errors.New("author or admin required")
)

// fakeAuthorizer models the membership slice: members maps userID to role.
type fakeAuthorizer struct {
	members map[string]string
}

func (f fakeAuthorizer) RequireMember(ctx context.Context, projectID string, userID string) error {
	if _, ok := f.members[userID]; !ok {
		return errNotMember
	}
	return nil
}

func (f fakeAuthorizer) RequireAuthorOrAdmin(ctx context.Context, projectID string, userID string, authorID string) error {
	if userID == authorID {
		return nil
	}
	if f.members[userID] == "admin" {
		return nil
	}
	if _, ok := f.members[userID]; !ok {
		return errNotMember
	}
	return errAuthorOrAdmin
}

func newNotesService() Service {
	store := memory.NewStore()
	return Service{
		Repo: store,
		Authorizer: fakeAuthorizer{members: map[string]string{
			"user_admin":  "admin",
			"user_author": "member",
			"user_other":  "member",
		}},
		Clock:       store,
		IDGenerator: store,
	}
}

func mustCreateNote(t *testing.T, service Service, userID string, title string) ports.Note {
	t.Helper()
	note, err := service.CreateNote(context.Background(), "proj_1", userID, ports.CreateNoteInput{Title: title})
	if err != nil {
		t.Fatalf("create note failed: %v", err)
	}
	return note
}

func TestCreateNoteStampsAuthor(t *testing.T) {
	service := newNotesService()
	note := mustCreateNote(t, service, "user_author", "Groceries")

	if note.AuthorID != "user_author" {
		t.Fatalf("expected author user_author, got %s", note.AuthorID)
	}
	if _, err := service.CreateNote(context.Background(), "proj_1", "user_author", ports.CreateNoteInput{Title: "  "}); !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for blank title, got %v", err)
	}
	if _, err := service.CreateNote(context.Background(), "proj_1", "user_stranger", ports.CreateNoteInput{Title: "x"}); !errors.Is(err, errNotMember) {
		t.Fatalf("expected membership gate, got %v", err)
	}
}

func TestListNotesGatedByMembership(t *testing.T) {
	service := newNotesService()
	mustCreateNote(t, service, "user_author", "Groceries")

	if _, err := service.ListNotes(context.Background(), "proj_1", "user_stranger"); !errors.Is(err, errNotMember) {
		t.Fatalf("expected membership gate, got %v", err)
	}
	notes, err := service.ListNotes(context.Background(), "proj_1", "user_other")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(notes))
	}
}

func TestUpdateNoteOwnership(t *testing.T) {
	service := newNotesService()
	note := mustCreateNote(t, service, "user_author", "Groceries")

	ctx := context.Background()
	title := "Groceries v2"

	// A member who is not the author cannot edit.
	if _, err := service.UpdateNote(ctx, "proj_1", note.NoteID, "user_other", ports.UpdateNoteInput{Title: &title}); !errors.Is(err, errAuthorOrAdmin) {
		t.Fatalf("expected ownership gate, got %v", err)
	}

	// The author can.
	updated, err := service.UpdateNote(ctx, "proj_1", note.NoteID, "user_author", ports.UpdateNoteInput{Title: &title})
	if err != nil {
		t.Fatalf("author update failed: %v", err)
	}
	if updated.Title != "Groceries v2" {
		t.Fatalf("expected updated title, got %q", updated.Title)
	}

	// So can an admin.
	pinned := true
	updated, err = service.UpdateNote(ctx, "proj_1", note.NoteID, "user_admin", ports.UpdateNoteInput{Pinned: &pinned})
	if err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
	if !updated.Pinned {
		t.Fatal("expected pinned note")
	}
}

func TestDeleteNoteOwnership(t *testing.T) {
	service := newNotesService()
	note := mustCreateNote(t, service, "user_author", "Groceries")

	ctx := context.Background()
	if _, err := service.DeleteNote(ctx, "proj_1", note.NoteID, "user_other"); !errors.Is(err, errAuthorOrAdmin) {
		t.Fatalf("expected ownership gate, got %v", err)
	}
	if _, err := service.DeleteNote(ctx, "proj_1", note.NoteID, "user_admin"); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
	if _, err := service.GetNote(ctx, "proj_1", note.NoteID, "user_author"); !errors.Is(err, domainerrors.ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound after delete, got %v", err)
	}
}

func TestNoteIDsScopedByProject(t *testing.T) {
	service := newNotesService()
	note := mustCreateNote(t, service, "user_author", "Groceries")

	// The note is invisible through any other project scope, even for its author.
	if _, err := service.GetNote(context.Background(), "proj_2", note.NoteID, "user_author"); !errors.Is(err, domainerrors.ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound across projects, got %v", err)
	}
	if _, err := service.UpdateNote(context.Background(), "proj_2", note.NoteID, "user_author", ports.UpdateNoteInput{}); !errors.Is(err, domainerrors.ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound across projects, got %v", err)
	}
}
