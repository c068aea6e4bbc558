// internal/server/respond.go
package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"tara/internal/common/errors"
)

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// respondError maps the error taxonomy onto HTTP statuses and returns the
// StandardError body as-is.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	var stdErr *errors.StandardError
	if !stderrors.As(err, &stdErr) {
		stdErr = errors.NewTransportFailure("internal", err)
	}

	status := http.StatusInternalServerError
	switch stdErr.Code {
	case errors.ErrCodeUserInput, errors.ErrCodeRequestInvalid:
		status = http.StatusBadRequest
	case errors.ErrCodeWorkflowState:
		status = http.StatusConflict
	case errors.ErrCodeStoreUnavailable:
		status = http.StatusServiceUnavailable
	case errors.ErrCodeVisaFreeCheck, errors.ErrCodeWorkflowAborted, errors.ErrCodeTransportFailure:
		status = http.StatusBadGateway
	}

	s.logger.Warn("request failed", map[string]interface{}{
		"code":    string(stdErr.Code),
		"message": stdErr.Message,
		"status":  status,
	})
	s.respondJSON(w, status, map[string]interface{}{"error": stdErr})
}
