package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	identityservice "hearth/contexts/access/identity-service"
	identityports "hearth/contexts/access/identity-service/ports"
	membershipservice "hearth/contexts/access/membership-service"
	locationsservice "hearth/contexts/workspace/locations-service"
	motdservice "hearth/contexts/workspace/motd-service"
	notesservice "hearth/contexts/workspace/notes-service"
	trainingsservice "hearth/contexts/workspace/trainings-service"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "hearth/internal/platform/httpserver/docs"
)

type Server struct {
	mux        *http.ServeMux
	logger     *slog.Logger
	addr       string
	identity   identityservice.Module
	membership membershipservice.Module
	notes      notesservice.Module
	trainings  trainingsservice.Module
	locations  locationsservice.Module
	motd       motdservice.Module
}

type Modules struct {
	Identity   identityservice.Module
	Membership membershipservice.Module
	Notes      notesservice.Module
	Trainings  trainingsservice.Module
	Locations  locationsservice.Module
	Motd       motdservice.Module
}

func New(modules Modules, logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:        http.NewServeMux(),
		logger:     logger,
		addr:       addr,
		identity:   modules.Identity,
		membership: modules.Membership,
		notes:      modules.Notes,
		trainings:  modules.Trainings,
		locations:  modules.Locations,
		motd:       modules.Motd,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the mux for httptest servers.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("GET /healthz", s.handleHealthz)
	s.mux.HandleFunc("GET /me", s.handleMe)

	s.mux.HandleFunc("GET /projects", s.handleListProjects)
	s.mux.HandleFunc("POST /projects", s.handleCreateProject)
	s.mux.HandleFunc("GET /projects/{project_id}", s.handleGetProject)
	s.mux.HandleFunc("PATCH /projects/{project_id}", s.handleUpdateProject)
	s.mux.HandleFunc("POST /projects/{project_id}/archive", s.handleArchiveProject)
	s.mux.HandleFunc("GET /projects/{project_id}/members", s.handleListMembers)
	s.mux.HandleFunc("PATCH /projects/{project_id}/members/{member_id}", s.handleUpdateMemberRole)
	s.mux.HandleFunc("DELETE /projects/{project_id}/members/{member_id}", s.handleRemoveMember)
	s.mux.HandleFunc("GET /projects/{project_id}/audit", s.handleListAuditLog)

	s.mux.HandleFunc("POST /projects/{project_id}/invites", s.handleCreateInvite)
	s.mux.HandleFunc("POST /projects/{project_id}/invites/{invite_id}/accept", s.handleAcceptInviteByID)
	s.mux.HandleFunc("POST /projects/{project_id}/invites/{invite_id}/decline", s.handleDeclineInviteByID)
	s.mux.HandleFunc("POST /invites/accept", s.handleAcceptInviteByCode)
	s.mux.HandleFunc("POST /invites/decline", s.handleDeclineInviteByCode)

	s.mux.HandleFunc("GET /projects/{project_id}/notes", s.handleListNotes)
	s.mux.HandleFunc("POST /projects/{project_id}/notes", s.handleCreateNote)
	s.mux.HandleFunc("GET /projects/{project_id}/notes/{note_id}", s.handleGetNote)
	s.mux.HandleFunc("PATCH /projects/{project_id}/notes/{note_id}", s.handleUpdateNote)
	s.mux.HandleFunc("DELETE /projects/{project_id}/notes/{note_id}", s.handleDeleteNote)

	s.mux.HandleFunc("GET /projects/{project_id}/trainings", s.handleListTrainings)
	s.mux.HandleFunc("POST /projects/{project_id}/trainings", s.handleCreateTraining)
	s.mux.HandleFunc("GET /projects/{project_id}/trainings/{training_id}", s.handleGetTraining)
	s.mux.HandleFunc("PATCH /projects/{project_id}/trainings/{training_id}", s.handleUpdateTraining)
	s.mux.HandleFunc("DELETE /projects/{project_id}/trainings/{training_id}", s.handleDeleteTraining)

	s.mux.HandleFunc("GET /projects/{project_id}/locations/visited", s.handleListVisited)
	s.mux.HandleFunc("POST /projects/{project_id}/locations/visited", s.handleCreateVisited)
	s.mux.HandleFunc("GET /projects/{project_id}/locations/visited/{location_id}", s.handleGetVisited)
	s.mux.HandleFunc("PATCH /projects/{project_id}/locations/visited/{location_id}", s.handleUpdateVisited)
	s.mux.HandleFunc("DELETE /projects/{project_id}/locations/visited/{location_id}", s.handleDeleteVisited)

	s.mux.HandleFunc("GET /projects/{project_id}/locations/wishlist", s.handleListWishlist)
	s.mux.HandleFunc("POST /projects/{project_id}/locations/wishlist", s.handleCreateWishlist)
	s.mux.HandleFunc("GET /projects/{project_id}/locations/wishlist/{location_id}", s.handleGetWishlist)
	s.mux.HandleFunc("PATCH /projects/{project_id}/locations/wishlist/{location_id}", s.handleUpdateWishlist)
	s.mux.HandleFunc("DELETE /projects/{project_id}/locations/wishlist/{location_id}", s.handleDeleteWishlist)

	s.mux.HandleFunc("GET /projects/{project_id}/motd", s.handleListMotds)
	s.mux.HandleFunc("POST /projects/{project_id}/motd", s.handleSetMotd)
	s.mux.HandleFunc("PATCH /projects/{project_id}/motd/{motd_id}", s.handleUpdateMotd)
	s.mux.HandleFunc("DELETE /projects/{project_id}/motd/{motd_id}", s.handleDeleteMotd)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// resolveUser authenticates the request and returns the stable user record.
// Every route except healthz and swagger goes through here, so the user row
// exists before any domain handler runs.
func (s *Server) resolveUser(w http.ResponseWriter, r *http.Request) (identityports.User, bool) {
	credential := identityports.Credential{
		HeaderSubject: r.Header.Get("X-User-Sub"),
		HeaderEmail:   r.Header.Get("X-User-Email"),
		HeaderName:    r.Header.Get("X-User-Name"),
	}
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		credential.BearerToken = strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}

	user, err := s.identity.Service.Resolve(r.Context(), credential)
	if err != nil {
		writeIdentityDomainError(w, err)
		return identityports.User{}, false
	}
	return user, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
