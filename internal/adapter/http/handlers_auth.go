package adapthttp

import (
	"encoding/json"
	"errors"
	"net/http"

	"noteful/internal/app"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username    *string `json:"username"`
		Password    *string `json:"password"`
		DisplayName string  `json:"displayName"`
	}
	if err := parseJSON(r, &req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"code":     http.StatusUnprocessableEntity,
				"reason":   "ValidationError",
				"message":  "Incorrect field type: expected string",
				"location": typeErr.Field,
			})
			return
		}
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == nil {
		s.writeServiceError(w, app.MissingField("username"), http.StatusUnprocessableEntity)
		return
	}
	if req.Password == nil {
		s.writeServiceError(w, app.MissingField("password"), http.StatusUnprocessableEntity)
		return
	}

	account, err := s.accounts.Register(r.Context(), *req.Username, *req.Password, req.DisplayName)
	if err != nil {
		s.writeServiceError(w, err, http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Location", "/api/users/"+account.ID)
	writeJSON(w, http.StatusCreated, account)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	account, err := s.accounts.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeServiceError(w, err, http.StatusBadRequest)
		return
	}

	token, err := s.tokens.Issue(app.IdentityOf(account))
	if err != nil {
		s.writeServiceError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"authToken": token})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	token, err := s.tokens.Refresh(identity)
	if err != nil {
		s.writeServiceError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"authToken": token})
}
