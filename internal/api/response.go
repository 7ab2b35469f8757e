package api

import (
	"encoding/json"
	"net/http"

	"github.com/medatlas/medatlas/pkg/apperrors"
	"github.com/rs/zerolog/log"
)

type envelope struct {
	Success bool          `json:"success"`
	Data    interface{}   `json:"data,omitempty"`
	Error   *errorPayload `json:"error,omitempty"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// writeData writes the success envelope.
func writeData(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: true, Data: data}); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// writeError maps an application error to its HTTP status and writes the
// failure envelope. Upstream and internal detail stays in the logs.
func writeError(w http.ResponseWriter, err error) {
	status := statusFor(apperrors.KindOf(err))
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Msg("Request failed")
	} else {
		log.Warn().Err(err).Msg("Request rejected")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encodeErr := json.NewEncoder(w).Encode(envelope{
		Success: false,
		Error:   &errorPayload{Message: apperrors.MessageOf(err)},
	}); encodeErr != nil {
		log.Error().Err(encodeErr).Msg("Failed to encode error response")
	}
}

// writeMessage writes a failure envelope with an explicit status and message.
func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{
		Success: false,
		Error:   &errorPayload{Message: message},
	}); err != nil {
		log.Error().Err(err).Msg("Failed to encode error response")
	}
}

func statusFor(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindInvalidInput, apperrors.KindLocationUnresolved:
		return http.StatusBadRequest
	case apperrors.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
