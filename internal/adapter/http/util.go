package adapthttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"noteful/internal/app"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"code": status, "message": message})
}

func parseJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

// writeServiceError maps application errors onto HTTP responses.
// fieldStatus is the status used for validation failures; registration keeps
// the historical 422 while note mutations report 400.
func (s *Server) writeServiceError(w http.ResponseWriter, err error, fieldStatus int) {
	var fieldErr *app.FieldError
	switch {
	case errors.As(err, &fieldErr):
		writeJSON(w, fieldStatus, map[string]any{
			"code":     fieldStatus,
			"reason":   "ValidationError",
			"message":  fieldErr.Message,
			"location": fieldErr.Location,
		})
	case errors.Is(err, app.ErrDuplicateUsername):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"code":     http.StatusUnprocessableEntity,
			"reason":   "ValidationError",
			"message":  "The username already exists",
			"location": "username",
		})
	case errors.Is(err, app.ErrInvalidReference), errors.Is(err, app.ErrNameTaken):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Not Found")
	case errors.Is(err, app.ErrUnauthorized):
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
	default:
		// The only kind logged with full detail; the caller sees an opaque
		// message.
		s.log.Error().Err(err).Msg("internal error")
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
