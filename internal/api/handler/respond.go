// internal/api/handler/respond.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"fintrack/internal/api/types"
	"fintrack/internal/util"
)

// DefaultTimeout bounds request handling at the router level.
const DefaultTimeout = 60 * time.Second

// respondWithJSON sends a payload wrapped in the success envelope.
func respondWithJSON(w http.ResponseWriter, logger *slog.Logger, code int, envelope types.Envelope) {
	response, err := json.Marshal(envelope)
	if err != nil {
		logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithError maps a service error to its HTTP status and sends the
// failure envelope. Storage errors pass their message through verbatim.
func respondWithError(w http.ResponseWriter, logger *slog.Logger, err error) {
	statusCode := http.StatusInternalServerError
	message := err.Error()

	switch {
	case util.IsError(err, util.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		message = "Unauthorized"
	case util.IsError(err, util.ErrUserNotFound):
		statusCode = http.StatusUnauthorized
		message = "User not found"
	case util.IsError(err, util.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "Resource not found"
	case util.IsError(err, util.ErrInvalidAmount), util.IsError(err, util.ErrInvalidInput):
		statusCode = http.StatusBadRequest
	default:
		logger.Error("Unhandled service error", "error", err)
	}

	respondWithJSON(w, logger, statusCode, types.Fail(message))
}
