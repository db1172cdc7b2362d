package server

import (
	"encoding/json"
	"net/http"

	errs "github.com/jrsteele09/go-session-auth/internal/errors"
)

type apiResponse struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, body apiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

func (s *Server) respondSuccess(w http.ResponseWriter, statusCode int, data any) {
	writeJSON(w, statusCode, apiResponse{Status: "success", Data: data})
}

func (s *Server) respondMessage(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, apiResponse{Status: "success", Message: message})
}

// respondError maps a flow error to an HTTP status. Anything without an
// explicit mapping is treated as internal and the detail stays in the logs.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	statusCode, message := statusForError(err)
	if statusCode == http.StatusInternalServerError {
		s.logger.Error().Err(err).Msg("request failed")
	}
	writeJSON(w, statusCode, apiResponse{Status: "error", Message: message, Code: statusCode})
}

func (s *Server) respondBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, apiResponse{Status: "error", Message: message, Code: http.StatusBadRequest})
}

func statusForError(err error) (int, string) {
	switch {
	case errs.Is(err, errs.ErrInvalidCredentials):
		return http.StatusBadRequest, errs.ErrInvalidCredentials.Error()
	case errs.Is(err, errs.ErrNotVerified):
		return http.StatusForbidden, errs.ErrNotVerified.Error()
	case errs.Is(err, errs.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errs.Is(err, errs.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errs.Is(err, errs.ErrConflict):
		return http.StatusConflict, errs.ErrConflict.Error()
	case errs.Is(err, errs.ErrBadRequest), errs.Is(err, errs.ErrNotFound):
		return http.StatusBadRequest, "bad request"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
