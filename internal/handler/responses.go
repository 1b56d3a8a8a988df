package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/zhaomaota/word-stone/internal/domain"
	"github.com/zhaomaota/word-stone/internal/logger"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"` + ErrMsgGenericServerError + `"}` + "\n"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs err and answers with the mapped status and message
func respondServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(LogMsgServiceError, "op", op, "status", status, "error", err)
	} else {
		log.Warn(LogMsgServiceError, "op", op, "status", status, "error", err)
	}
	respondError(w, status, msg)
}

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and
// messages users can act on
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, ErrMsgTokenExpiredError
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, ErrMsgUnauthorizedError
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, ErrMsgSessionNotFoundErr
	case errors.Is(err, domain.ErrNoPacks):
		return http.StatusConflict, ErrMsgNoPacksError
	case errors.Is(err, domain.ErrNotPersisted):
		return http.StatusConflict, ErrMsgNotPersistedError
	case errors.Is(err, domain.ErrWordNotOwned):
		return http.StatusNotFound, ErrMsgWordNotOwnedError
	case errors.Is(err, domain.ErrCheatsDisabled):
		return http.StatusForbidden, ErrMsgCheatsDisabledErr
	case errors.Is(err, domain.ErrRelayOffline):
		return http.StatusServiceUnavailable, ErrMsgRelayOfflineError
	case errors.Is(err, domain.ErrRemoteCallFailed):
		return http.StatusBadGateway, ErrMsgRemoteCallError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
