package httpserver

import (
	"net/http"
	"testing"
)

func createNote(t *testing.T, server *Server, projectID string, subject string, email string, title string) string {
	t.Helper()
	rr := do(t, server, http.MethodPost, "/projects/"+projectID+"/notes", subject, email, `{"title":"`+title+`"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create note failed: %d body=%s", rr.Code, rr.Body.String())
	}
	note := struct {
		ID string `json:"id"`
	}{}
	decodeData(t, rr, &note)
	return note.ID
}

func TestNotesRequireMembership(t *testing.T) {
	server := newTestServer()
	projectID := createProject(t, server, "auth0|alice", "alice@example.com", "Household")

	rr := do(t, server, http.MethodGet, "/projects/"+projectID+"/notes", "auth0|mallory", "mallory@example.com", "")
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
	if code := errorCode(t, rr); code != "not_member" {
		t.Fatalf("expected not_member, got %s", code)
	}
}

func TestNoteEditOwnershipOverHTTP(t *testing.T) {
	server := newTestServer()
	projectID := createProject(t, server, "auth0|alice", "alice@example.com", "Household")
	joinByCodeInvite(t, server, projectID, "auth0|alice", "alice@example.com", "auth0|bob", "bob@example.com")
	joinByCodeInvite(t, server, projectID, "auth0|alice", "alice@example.com", "auth0|carol", "carol@example.com")

	noteID := createNote(t, server, projectID, "auth0|bob", "bob@example.com", "Groceries")
	notePath := "/projects/" + projectID + "/notes/" + noteID

	// Another plain member cannot edit bob's note.
	rr := do(t, server, http.MethodPatch, notePath, "auth0|carol", "carol@example.com", `{"title":"Hijacked"}`)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
	if code := errorCode(t, rr); code != "author_or_admin_required" {
		t.Fatalf("expected author_or_admin_required, got %s", code)
	}

	// The author can.
	rr = do(t, server, http.MethodPatch, notePath, "auth0|bob", "bob@example.com", `{"title":"Groceries v2"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("author edit failed: %d body=%s", rr.Code, rr.Body.String())
	}

	// The admin can delete it.
	rr = do(t, server, http.MethodDelete, notePath, "auth0|alice", "alice@example.com", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("admin delete failed: %d body=%s", rr.Code, rr.Body.String())
	}
	rr = do(t, server, http.MethodGet, notePath, "auth0|bob", "bob@example.com", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestNoteIDsDoNotCrossProjects(t *testing.T) {
	server := newTestServer()
	first := createProject(t, server, "auth0|alice", "alice@example.com", "Household")
	second := createProject(t, server, "auth0|alice", "alice@example.com", "Side Project")

	noteID := createNote(t, server, first, "auth0|alice", "alice@example.com", "Groceries")

	rr := do(t, server, http.MethodGet, "/projects/"+second+"/notes/"+noteID, "auth0|alice", "alice@example.com", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 across projects, got %d body=%s", rr.Code, rr.Body.String())
	}
	if code := errorCode(t, rr); code != "note_not_found" {
		t.Fatalf("expected note_not_found, got %s", code)
	}
}

func TestInvalidJSONRejected(t *testing.T) {
	server := newTestServer()
	projectID := createProject(t, server, "auth0|alice", "alice@example.com", "Household")

	rr := do(t, server, http.MethodPost, "/projects/"+projectID+"/notes", "auth0|alice", "alice@example.com", `{"title":`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
	if code := errorCode(t, rr); code != "invalid_json" {
		t.Fatalf("expected invalid_json, got %s", code)
	}
}
