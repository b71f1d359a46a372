package adapthttp

import (
	"net/http"

	"github.com/gorilla/mux"

	"noteful/internal/app"
	"noteful/internal/domain"
)

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())
	q := r.URL.Query()

	notes, err := s.notes.List(r.Context(), identity.ID, app.ListFilter{
		Search:   q.Get("searchTerm"),
		FolderID: q.Get("folderId"),
		TagID:    q.Get("tagId"),
	})
	if err != nil {
		s.writeServiceError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())

	note, err := s.notes.Get(r.Context(), mux.Vars(r)["id"], identity.ID)
	if err != nil {
		s.writeServiceError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())

	var req struct {
		Title    string   `json:"title"`
		Content  string   `json:"content"`
		FolderID string   `json:"folderId"`
		Tags     []string `json:"tags"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	note, err := s.notes.Create(r.Context(), identity.ID, app.CreateNote{
		Title:    req.Title,
		Content:  req.Content,
		FolderID: req.FolderID,
		TagIDs:   req.Tags,
	})
	if err != nil {
		s.writeServiceError(w, err, http.StatusBadRequest)
		return
	}

	w.Header().Set("Location", "/api/notes/"+note.ID)
	writeJSON(w, http.StatusCreated, note)
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())

	// Pointer fields distinguish an omitted field from one explicitly
	// cleared, which the folder-unset behavior depends on.
	var req struct {
		Title    *string   `json:"title"`
		Content  *string   `json:"content"`
		FolderID *string   `json:"folderId"`
		Tags     *[]string `json:"tags"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	note, err := s.notes.Update(r.Context(), mux.Vars(r)["id"], identity.ID, domain.NotePatch{
		Title:    req.Title,
		Content:  req.Content,
		FolderID: req.FolderID,
		TagIDs:   req.Tags,
	})
	if err != nil {
		s.writeServiceError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())

	if err := s.notes.Delete(r.Context(), mux.Vars(r)["id"], identity.ID); err != nil {
		s.writeServiceError(w, err, http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
