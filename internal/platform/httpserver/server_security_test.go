package httpserver

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	identityservice "hearth/contexts/access/identity-service"
	membershipservice "hearth/contexts/access/membership-service"
	membershipmemory "hearth/contexts/access/membership-service/adapters/memory"
	locationsservice "hearth/contexts/workspace/locations-service"
	motdservice "hearth/contexts/workspace/motd-service"
	notesservice "hearth/contexts/workspace/notes-service"
	trainingsservice "hearth/contexts/workspace/trainings-service"
)

func newTestServer() *Server {
	directory := membershipmemory.NewDirectory()
	identity := identityservice.NewInMemoryModule(slog.Default(), directory)
	membership := membershipservice.NewInMemoryModule(slog.Default(), directory)
	authorizer := membership.Service
	return New(Modules{
		Identity:   identity,
		Membership: membership,
		Notes:      notesservice.NewInMemoryModule(slog.Default(), authorizer),
		Trainings:  trainingsservice.NewInMemoryModule(slog.Default(), authorizer),
		Locations:  locationsservice.NewInMemoryModule(slog.Default(), authorizer),
		Motd:       motdservice.NewInMemoryModule(slog.Default(), authorizer),
	}, slog.Default(), ":0")
}

// do issues a request as the given user. An empty subject sends no identity
// headers at all.
func do(t *testing.T, server *Server, method string, path string, subject string, email string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
		req.Header.Set("Content-Type", "application/json")
	}
	if subject != "" {
		req.Header.Set("X-User-Sub", subject)
		req.Header.Set("X-User-Email", email)
	}
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	return rr
}

func decodeData(t *testing.T, rr *httptest.ResponseRecorder, out any) {
	t.Helper()
	envelope := struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}{}
	if err := json.Unmarshal(rr.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v body=%s", err, rr.Body.String())
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		t.Fatalf("decode data: %v body=%s", err, rr.Body.String())
	}
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	payload := struct {
		Code string `json:"code"`
	}{}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error: %v body=%s", err, rr.Body.String())
	}
	return payload.Code
}

// userID resolves the stable ID the identity service assigned to a subject.
func userID(t *testing.T, server *Server, subject string, email string) string {
	t.Helper()
	rr := do(t, server, http.MethodGet, "/me", subject, email, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("me failed: %d body=%s", rr.Code, rr.Body.String())
	}
	user := struct {
		ID string `json:"id"`
	}{}
	decodeData(t, rr, &user)
	return user.ID
}

func createProject(t *testing.T, server *Server, subject string, email string, name string) string {
	t.Helper()
	rr := do(t, server, http.MethodPost, "/projects", subject, email, `{"name":"`+name+`"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create project failed: %d body=%s", rr.Code, rr.Body.String())
	}
	project := struct {
		ProjectID string `json:"project_id"`
	}{}
	decodeData(t, rr, &project)
	return project.ProjectID
}

func joinByCodeInvite(t *testing.T, server *Server, projectID string, adminSubject string, adminEmail string, subject string, email string) {
	t.Helper()
	rr := do(t, server, http.MethodPost, "/projects/"+projectID+"/invites", adminSubject, adminEmail, `{}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create invite failed: %d body=%s", rr.Code, rr.Body.String())
	}
	invite := struct {
		Code string `json:"code"`
	}{}
	decodeData(t, rr, &invite)

	rr = do(t, server, http.MethodPost, "/invites/accept", subject, email, `{"code":"`+invite.Code+`"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("accept invite failed: %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestHealthzNeedsNoIdentity(t *testing.T) {
	server := newTestServer()
	rr := do(t, server, http.MethodGet, "/healthz", "", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestRoutesRequireIdentity(t *testing.T) {
	server := newTestServer()

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/me"},
		{http.MethodGet, "/projects"},
		{http.MethodPost, "/projects"},
		{http.MethodGet, "/projects/proj_1/notes"},
		{http.MethodPost, "/invites/accept"},
	}
	for _, p := range paths {
		rr := do(t, server, p.method, p.path, "", "", "")
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d body=%s", p.method, p.path, rr.Code, rr.Body.String())
		}
		if code := errorCode(t, rr); code != "unauthenticated" {
			t.Fatalf("%s %s: expected unauthenticated, got %s", p.method, p.path, code)
		}
	}
}

func TestMeReturnsStableUser(t *testing.T) {
	server := newTestServer()

	first := userID(t, server, "auth0|alice", "alice@example.com")
	second := userID(t, server, "auth0|alice", "alice@example.com")
	if first != second {
		t.Fatalf("user ID changed between requests: %s vs %s", first, second)
	}
	other := userID(t, server, "auth0|bob", "bob@example.com")
	if other == first {
		t.Fatal("distinct subjects must get distinct users")
	}
}
