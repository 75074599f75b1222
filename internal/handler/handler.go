package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"kitchen-guide/internal/model"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeDomainError maps a domain error to an HTTP status and writes it.
// Backend failures are reported generically; user-correctable errors carry
// their message through.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		writeError(w, http.StatusInternalServerError, "internal server error", logger)
		return
	}

	status := http.StatusInternalServerError
	message := domainErr.Message

	switch domainErr.Code {
	case model.ErrCodeValidation:
		status = http.StatusBadRequest
	case model.ErrCodeConflict:
		status = http.StatusConflict
	case model.ErrCodeUnsupportedMediaType:
		status = http.StatusUnsupportedMediaType
	case model.ErrCodePayloadTooLarge:
		status = http.StatusRequestEntityTooLarge
	case model.ErrCodeAuthenticationFailed:
		status = http.StatusUnauthorized
	case model.ErrCodeTimeout:
		status = http.StatusServiceUnavailable
	case model.ErrCodeNotFound:
		status = http.StatusNotFound
	case model.ErrCodeStorageUnavailable:
		// I/O details stay in the logs.
		message = "internal server error"
	}

	logger.Error().Str("code", domainErr.Code).Int("status", status).Msg(domainErr.Message)
	writeJSON(w, status, ErrorResponse{Error: message, Code: domainErr.Code})
}

// writeHTML writes a static HTML document.
func writeHTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(body))
}
