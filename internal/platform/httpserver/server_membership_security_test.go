package httpserver

import (
	"net/http"
	"testing"
)

func TestProjectInvisibleToOutsiders(t *testing.T) {
	server := newTestServer()
	projectID := createProject(t, server, "auth0|alice", "alice@example.com", "Household")

	rr := do(t, server, http.MethodGet, "/projects/"+projectID, "auth0|mallory", "mallory@example.com", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
	if code := errorCode(t, rr); code != "project_not_found" {
		t.Fatalf("expected project_not_found, got %s", code)
	}

	rr = do(t, server, http.MethodGet, "/projects/"+projectID+"/members", "auth0|mallory", "mallory@example.com", "")
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 on member listing, got %d body=%s", rr.Code, rr.Body.String())
	}
	if code := errorCode(t, rr); code != "not_member" {
		t.Fatalf("expected not_member, got %s", code)
	}
}

func TestCodeInviteFlow(t *testing.T) {
	server := newTestServer()
	projectID := createProject(t, server, "auth0|alice", "alice@example.com", "Household")

	// A plain member cannot issue invites.
	joinByCodeInvite(t, server, projectID, "auth0|alice", "alice@example.com", "auth0|bob", "bob@example.com")
	rr := do(t, server, http.MethodPost, "/projects/"+projectID+"/invites", "auth0|bob", "bob@example.com", `{}`)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
	if code := errorCode(t, rr); code != "admin_required" {
		t.Fatalf("expected admin_required, got %s", code)
	}

	// The new member sees the project.
	rr = do(t, server, http.MethodGet, "/projects/"+projectID, "auth0|bob", "bob@example.com", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCodeInviteSecondRedemptionReads404(t *testing.T) {
	server := newTestServer()
	projectID := createProject(t, server, "auth0|alice", "alice@example.com", "Household")

	rr := do(t, server, http.MethodPost, "/projects/"+projectID+"/invites", "auth0|alice", "alice@example.com", `{}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create invite failed: %d body=%s", rr.Code, rr.Body.String())
	}
	invite := struct {
		Code string `json:"code"`
	}{}
	decodeData(t, rr, &invite)

	rr = do(t, server, http.MethodPost, "/invites/accept", "auth0|bob", "bob@example.com", `{"code":"`+invite.Code+`"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("first accept failed: %d body=%s", rr.Code, rr.Body.String())
	}
	rr = do(t, server, http.MethodPost, "/invites/accept", "auth0|carol", "carol@example.com", `{"code":"`+invite.Code+`"}`)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for used code, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestEmailInviteFlow(t *testing.T) {
	server := newTestServer()
	projectID := createProject(t, server, "auth0|alice", "alice@example.com", "Household")

	rr := do(t, server, http.MethodPost, "/projects/"+projectID+"/invites", "auth0|alice", "alice@example.com", `{"email":"bob@example.com"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create invite failed: %d body=%s", rr.Code, rr.Body.String())
	}
	invite := struct {
		InviteID string `json:"invite_id"`
		Mode     string `json:"mode"`
	}{}
	decodeData(t, rr, &invite)
	if invite.Mode != "email" {
		t.Fatalf("expected email mode, got %s", invite.Mode)
	}

	acceptPath := "/projects/" + projectID + "/invites/" + invite.InviteID + "/accept"

	// The wrong account cannot redeem, and the invite survives the attempt.
	rr = do(t, server, http.MethodPost, acceptPath, "auth0|carol", "carol@example.com", "")
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
	if code := errorCode(t, rr); code != "email_mismatch" {
		t.Fatalf("expected email_mismatch, got %s", code)
	}

	rr = do(t, server, http.MethodPost, acceptPath, "auth0|bob", "Bob@Example.COM", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("accept failed: %d body=%s", rr.Code, rr.Body.String())
	}

	// Replay reads as absent.
	rr = do(t, server, http.MethodPost, acceptPath, "auth0|bob", "bob@example.com", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on replay, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestMemberListingJoinsProfiles(t *testing.T) {
	server := newTestServer()
	projectID := createProject(t, server, "auth0|alice", "alice@example.com", "Household")
	joinByCodeInvite(t, server, projectID, "auth0|alice", "alice@example.com", "auth0|bob", "bob@example.com")

	rr := do(t, server, http.MethodGet, "/projects/"+projectID+"/members", "auth0|bob", "bob@example.com", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("list members failed: %d body=%s", rr.Code, rr.Body.String())
	}
	members := []struct {
		UserID string `json:"user_id"`
		Role   string `json:"role"`
		Email  string `json:"email"`
	}{}
	decodeData(t, rr, &members)
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}
	emails := map[string]string{}
	for _, member := range members {
		emails[member.Email] = member.Role
	}
	if emails["alice@example.com"] != "admin" || emails["bob@example.com"] != "member" {
		t.Fatalf("unexpected member listing: %+v", members)
	}
}

func TestLastAdminBlockedOverHTTP(t *testing.T) {
	server := newTestServer()
	projectID := createProject(t, server, "auth0|alice", "alice@example.com", "Household")
	joinByCodeInvite(t, server, projectID, "auth0|alice", "alice@example.com", "auth0|bob", "bob@example.com")

	rr := do(t, server, http.MethodGet, "/projects/"+projectID+"/members", "auth0|alice", "alice@example.com", "")
	members := []struct {
		MembershipID string `json:"membership_id"`
		Role         string `json:"role"`
	}{}
	decodeData(t, rr, &members)

	var adminMembershipID string
	for _, member := range members {
		if member.Role == "admin" {
			adminMembershipID = member.MembershipID
		}
	}
	rr = do(t, server, http.MethodDelete, "/projects/"+projectID+"/members/"+adminMembershipID, "auth0|alice", "alice@example.com", "")
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", rr.Code, rr.Body.String())
	}
	if code := errorCode(t, rr); code != "last_admin" {
		t.Fatalf("expected last_admin, got %s", code)
	}
}

func TestAuditLogAdminOnlyOverHTTP(t *testing.T) {
	server := newTestServer()
	projectID := createProject(t, server, "auth0|alice", "alice@example.com", "Household")
	joinByCodeInvite(t, server, projectID, "auth0|alice", "alice@example.com", "auth0|bob", "bob@example.com")

	rr := do(t, server, http.MethodGet, "/projects/"+projectID+"/audit", "auth0|bob", "bob@example.com", "")
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = do(t, server, http.MethodGet, "/projects/"+projectID+"/audit", "auth0|alice", "alice@example.com", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	entries := []struct {
		Action string `json:"action"`
	}{}
	decodeData(t, rr, &entries)
	if len(entries) == 0 {
		t.Fatal("expected audit entries")
	}
}
