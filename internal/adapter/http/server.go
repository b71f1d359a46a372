// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"noteful/internal/app"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	accounts *app.AccountService
	tokens   *app.TokenService
	notes    *app.NoteService
	folders  *app.FolderService
	tags     *app.TagService
	sso      *SSOConfig
	log      zerolog.Logger
}

// New creates a Server wired to the given application services.
func New(accounts *app.AccountService, tokens *app.TokenService, notes *app.NoteService, folders *app.FolderService, tags *app.TagService, log zerolog.Logger) *Server {
	return &Server{
		accounts: accounts,
		tokens:   tokens,
		notes:    notes,
		folders:  folders,
		tags:     tags,
		log:      log,
	}
}

// WithSSO enables the OIDC login routes.
func (s *Server) WithSSO(sso *SSOConfig) *Server {
	s.sso = sso
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}).Methods(http.MethodGet)

	api.HandleFunc("/users", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	if s.sso != nil {
		api.HandleFunc("/sso/login", s.handleSSOLogin).Methods(http.MethodGet)
		api.HandleFunc("/sso/callback", s.handleSSOCallback).Methods(http.MethodGet)
	}

	// Everything below requires a valid bearer token. The identity embedded
	// in the token is the scoping key for every downstream call; owner ids
	// supplied by the request itself are never trusted.
	authed := api.NewRoute().Subrouter()
	authed.Use(s.requireAuth)

	authed.HandleFunc("/refresh", s.handleRefresh).Methods(http.MethodPost)

	authed.HandleFunc("/notes", s.handleListNotes).Methods(http.MethodGet)
	authed.HandleFunc("/notes", s.handleCreateNote).Methods(http.MethodPost)
	authed.HandleFunc("/notes/{id}", s.handleGetNote).Methods(http.MethodGet)
	authed.HandleFunc("/notes/{id}", s.handleUpdateNote).Methods(http.MethodPut)
	authed.HandleFunc("/notes/{id}", s.handleDeleteNote).Methods(http.MethodDelete)

	authed.HandleFunc("/folders", s.handleListFolders).Methods(http.MethodGet)
	authed.HandleFunc("/folders", s.handleCreateFolder).Methods(http.MethodPost)
	authed.HandleFunc("/folders/{id}", s.handleGetFolder).Methods(http.MethodGet)
	authed.HandleFunc("/folders/{id}", s.handleRenameFolder).Methods(http.MethodPut)
	authed.HandleFunc("/folders/{id}", s.handleDeleteFolder).Methods(http.MethodDelete)

	authed.HandleFunc("/tags", s.handleListTags).Methods(http.MethodGet)
	authed.HandleFunc("/tags", s.handleCreateTag).Methods(http.MethodPost)
	authed.HandleFunc("/tags/{id}", s.handleGetTag).Methods(http.MethodGet)
	authed.HandleFunc("/tags/{id}", s.handleRenameTag).Methods(http.MethodPut)
	authed.HandleFunc("/tags/{id}", s.handleDeleteTag).Methods(http.MethodDelete)

	return r
}
