package adapthttp

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())

	tags, err := s.tags.List(r.Context(), identity.ID)
	if err != nil {
		s.writeServiceError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, tags)
}

func (s *Server) handleGetTag(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())

	tag, err := s.tags.Get(r.Context(), mux.Vars(r)["id"], identity.ID)
	if err != nil {
		s.writeServiceError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, tag)
}

func (s *Server) handleCreateTag(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())

	var req struct {
		Name string `json:"name"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tag, err := s.tags.Create(r.Context(), identity.ID, req.Name)
	if err != nil {
		s.writeServiceError(w, err, http.StatusBadRequest)
		return
	}
	w.Header().Set("Location", "/api/tags/"+tag.ID)
	writeJSON(w, http.StatusCreated, tag)
}

func (s *Server) handleRenameTag(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())

	var req struct {
		Name string `json:"name"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tag, err := s.tags.Rename(r.Context(), mux.Vars(r)["id"], identity.ID, req.Name)
	if err != nil {
		s.writeServiceError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, tag)
}

func (s *Server) handleDeleteTag(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())

	if err := s.tags.Delete(r.Context(), mux.Vars(r)["id"], identity.ID); err != nil {
		s.writeServiceError(w, err, http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
