package adapthttp

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (s *Server) handleListFolders(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())

	folders, err := s.folders.List(r.Context(), identity.ID)
	if err != nil {
		s.writeServiceError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, folders)
}

func (s *Server) handleGetFolder(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())

	folder, err := s.folders.Get(r.Context(), mux.Vars(r)["id"], identity.ID)
	if err != nil {
		s.writeServiceError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, folder)
}

func (s *Server) handleCreateFolder(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())

	var req struct {
		Name string `json:"name"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	folder, err := s.folders.Create(r.Context(), identity.ID, req.Name)
	if err != nil {
		s.writeServiceError(w, err, http.StatusBadRequest)
		return
	}
	w.Header().Set("Location", "/api/folders/"+folder.ID)
	writeJSON(w, http.StatusCreated, folder)
}

func (s *Server) handleRenameFolder(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())

	var req struct {
		Name string `json:"name"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	folder, err := s.folders.Rename(r.Context(), mux.Vars(r)["id"], identity.ID, req.Name)
	if err != nil {
		s.writeServiceError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, folder)
}

func (s *Server) handleDeleteFolder(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())

	if err := s.folders.Delete(r.Context(), mux.Vars(r)["id"], identity.ID); err != nil {
		s.writeServiceError(w, err, http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
