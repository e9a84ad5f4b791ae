package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/LootCrates_Go/internal/domain"
	"github.com/osse101/LootCrates_Go/internal/logger"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

// encodeBuffers are reused across responses
var encodeBuffers = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload any) {
	buf := encodeBuffers.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		encodeBuffers.Put(buf)
	}()

	// encode first so a failure can still become a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, LogFieldError, err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, LogFieldError, err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs err with its action and sends the mapped user-facing message
func respondServiceError(w http.ResponseWriter, r *http.Request, action string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(LogMsgServiceError, LogFieldAction, action, LogFieldError, err)
	} else {
		log.Warn(LogMsgServiceError, LogFieldAction, action, LogFieldError, err)
	}
	respondError(w, status, msg)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgCrateNotFoundError    = "Crate not found"
	ErrMsgCrateUnavailableError = "That crate is not available right now"
	ErrMsgNoKeyError            = "You need a key for that crate"
	ErrMsgOnCooldownError       = "That crate is on cooldown. Try again later"
	ErrMsgNoPermissionError     = "You do not have permission to open that crate"
	ErrMsgDailyLimitError       = "Daily open limit reached"
	ErrMsgWrongOpenMethodError  = "That crate cannot be opened this way"
	ErrMsgMaintenanceError      = "Crates are under maintenance"
	ErrMsgNoRewardsError        = "That crate has no rewards configured"
	ErrMsgVetoedError           = "Opening was blocked"
	ErrMsgInvalidInputError     = "Invalid request. Please check your inputs."
)

// mapServiceErrorToUserMessage converts engine errors to an HTTP status and a message
// the caller can act on. Storage and configuration detail is never echoed.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, domain.ErrCrateNotFound):
		return http.StatusNotFound, ErrMsgCrateNotFoundError
	case errors.Is(err, domain.ErrNoKey):
		return http.StatusConflict, ErrMsgNoKeyError
	case errors.Is(err, domain.ErrOnCooldown):
		return http.StatusTooManyRequests, ErrMsgOnCooldownError
	case errors.Is(err, domain.ErrDailyLimitReached):
		return http.StatusTooManyRequests, ErrMsgDailyLimitError
	case errors.Is(err, domain.ErrNoPermission):
		return http.StatusForbidden, ErrMsgNoPermissionError
	case errors.Is(err, domain.ErrWrongOpenMethod):
		return http.StatusBadRequest, ErrMsgWrongOpenMethodError
	case errors.Is(err, domain.ErrMaintenance):
		return http.StatusServiceUnavailable, ErrMsgMaintenanceError
	case errors.Is(err, domain.ErrEmptyRewardPool):
		return http.StatusUnprocessableEntity, ErrMsgNoRewardsError
	case errors.Is(err, domain.ErrRejectedByHook):
		return http.StatusForbidden, ErrMsgVetoedError
	case errors.Is(err, domain.ErrCrateUnavailable):
		return http.StatusConflict, ErrMsgCrateUnavailableError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
