package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	domainerrors "hearth/contexts/workspace/notes-service/domain/errors"
	"hearth/contexts/workspace/notes-service/ports"
)

// Store is the in-memory note repository used by tests and local wiring.
type Store struct {
	mu        sync.Mutex
	notesByID map[string]ports.Note
	sequence  uint64
}

func NewStore() *Store {
	return &Store{
		notesByID: make(map[string]ports.Note),
	}
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sequence++
	return fmt.Sprintf("note_%06d", s.sequence), nil
}

func (s *Store) ListNotes(ctx context.Context, projectID string) ([]ports.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes := make([]ports.Note, 0)
	for _, note := range s.notesByID {
		if note.ProjectID == projectID {
			notes = append(notes, note)
		}
	}
	sort.Slice(notes, func(i int, j int) bool {
		if notes[i].CreatedAt.Equal(notes[j].CreatedAt) {
			return notes[i].NoteID > notes[j].NoteID
		}
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})
	return notes, nil
}

func (s *Store) CreateNote(ctx context.Context, note ports.Note) (ports.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notesByID[note.NoteID] = note
	return note, nil
}

func (s *Store) GetNote(ctx context.Context, projectID string, noteID string) (ports.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(projectID, noteID)
}

func (s *Store) UpdateNote(ctx context.Context, projectID string, noteID string, input ports.UpdateNoteInput, now time.Time) (ports.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, err := s.getLocked(projectID, noteID)
	if err != nil {
		return ports.Note{}, err
	}
	if input.Title != nil {
		note.Title = *input.Title
	}
	if input.Body != nil {
		note.Body = *input.Body
	}
	if input.Pinned != nil {
		note.Pinned = *input.Pinned
	}
	note.UpdatedAt = now
	s.notesByID[note.NoteID] = note
	return note, nil
}

func (s *Store) DeleteNote(ctx context.Context, projectID string, noteID string) (ports.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, err := s.getLocked(projectID, noteID)
	if err != nil {
		return ports.Note{}, err
	}
	delete(s.notesByID, note.NoteID)
	return note, nil
}

// getLocked scopes the lookup by project so foreign IDs read as absent.
func (s *Store) getLocked(projectID string, noteID string) (ports.Note, error) {
	note, ok := s.notesByID[noteID]
	if !ok || note.ProjectID != projectID {
		return ports.Note{}, domainerrors.ErrNoteNotFound
	}
	return note, nil
}
