package httpserver

import (
	"net/http"
	"testing"
)

func TestMotdTargetMustBeMember(t *testing.T) {
	server := newTestServer()
	projectID := createProject(t, server, "auth0|alice", "alice@example.com", "Household")
	outsiderID := userID(t, server, "auth0|mallory", "mallory@example.com")

	rr := do(t, server, http.MethodPost, "/projects/"+projectID+"/motd", "auth0|alice", "alice@example.com", `{"toUserId":"`+outsiderID+`","message":"hi"}`)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
	if code := errorCode(t, rr); code != "target_not_member" {
		t.Fatalf("expected target_not_member, got %s", code)
	}
}

func TestMotdDeliveredToAddressee(t *testing.T) {
	server := newTestServer()
	projectID := createProject(t, server, "auth0|alice", "alice@example.com", "Household")
	joinByCodeInvite(t, server, projectID, "auth0|alice", "alice@example.com", "auth0|bob", "bob@example.com")
	bobID := userID(t, server, "auth0|bob", "bob@example.com")

	rr := do(t, server, http.MethodPost, "/projects/"+projectID+"/motd", "auth0|alice", "alice@example.com", `{"toUserId":"`+bobID+`","message":"good morning"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("set motd failed: %d body=%s", rr.Code, rr.Body.String())
	}
	motd := struct {
		ID string `json:"id"`
	}{}
	decodeData(t, rr, &motd)

	// Replacing the message keeps the record.
	rr = do(t, server, http.MethodPost, "/projects/"+projectID+"/motd", "auth0|alice", "alice@example.com", `{"toUserId":"`+bobID+`","message":"good evening"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("replace motd failed: %d body=%s", rr.Code, rr.Body.String())
	}
	replaced := struct {
		ID      string `json:"id"`
		Message string `json:"message"`
	}{}
	decodeData(t, rr, &replaced)
	if replaced.ID != motd.ID || replaced.Message != "good evening" {
		t.Fatalf("expected same record with new message, got %+v", replaced)
	}

	// Bob sees it, alice does not.
	rr = do(t, server, http.MethodGet, "/projects/"+projectID+"/motd", "auth0|bob", "bob@example.com", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("list failed: %d body=%s", rr.Code, rr.Body.String())
	}
	inbox := []struct {
		Message string `json:"message"`
	}{}
	decodeData(t, rr, &inbox)
	if len(inbox) != 1 || inbox[0].Message != "good evening" {
		t.Fatalf("unexpected inbox: %+v", inbox)
	}

	rr = do(t, server, http.MethodGet, "/projects/"+projectID+"/motd", "auth0|alice", "alice@example.com", "")
	empty := []struct{}{}
	decodeData(t, rr, &empty)
	if len(empty) != 0 {
		t.Fatalf("sender must not receive their own message, got %d entries", len(empty))
	}
}

func TestMotdEditOwnershipOverHTTP(t *testing.T) {
	server := newTestServer()
	projectID := createProject(t, server, "auth0|alice", "alice@example.com", "Household")
	joinByCodeInvite(t, server, projectID, "auth0|alice", "alice@example.com", "auth0|bob", "bob@example.com")
	joinByCodeInvite(t, server, projectID, "auth0|alice", "alice@example.com", "auth0|carol", "carol@example.com")
	bobID := userID(t, server, "auth0|bob", "bob@example.com")

	rr := do(t, server, http.MethodPost, "/projects/"+projectID+"/motd", "auth0|carol", "carol@example.com", `{"toUserId":"`+bobID+`","message":"from carol"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("set motd failed: %d body=%s", rr.Code, rr.Body.String())
	}
	motd := struct {
		ID string `json:"id"`
	}{}
	decodeData(t, rr, &motd)
	motdPath := "/projects/" + projectID + "/motd/" + motd.ID

	// The addressee cannot rewrite a message sent to them.
	rr = do(t, server, http.MethodPatch, motdPath, "auth0|bob", "bob@example.com", `{"message":"rewritten"}`)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}

	// The admin can remove it.
	rr = do(t, server, http.MethodDelete, motdPath, "auth0|alice", "alice@example.com", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("admin delete failed: %d body=%s", rr.Code, rr.Body.String())
	}
}
