package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/LootCrates_Go/internal/logger"
)

// DecodeAndValidateRequest decodes a JSON request body into req and validates it.
// If this function returns an error, the HTTP response has already been written and the handler should return.
//
// Example usage:
//
//	var req OpenCrateRequest
//	if err := DecodeAndValidateRequest(r, w, &req, "Open crate"); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req any, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Warn(LogMsgDecodeFailed, LogFieldAction, actionName, LogFieldError, err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}
	log.Debug(LogMsgRequestDecoded, LogFieldAction, actionName)

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}
	return nil
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// GetQueryParam retrieves a required query parameter and checks it against tag when tag is set.
// If ok is false, the HTTP response has already been written and the handler should return.
func GetQueryParam(r *http.Request, w http.ResponseWriter, paramName, tag string) (string, bool) {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		logger.FromContext(r.Context()).Warn(LogMsgMissingParam, LogFieldParam, paramName)
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, paramName))
		return "", false
	}
	return checkParam(r, w, paramName, value, tag)
}

// GetPathParam retrieves a required chi route parameter and checks it against tag when tag is set.
// If ok is false, the HTTP response has already been written and the handler should return.
func GetPathParam(r *http.Request, w http.ResponseWriter, paramName, tag string) (string, bool) {
	value := chi.URLParam(r, paramName)
	if value == "" {
		logger.FromContext(r.Context()).Warn(LogMsgMissingParam, LogFieldParam, paramName)
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingPathParam, paramName))
		return "", false
	}
	return checkParam(r, w, paramName, value, tag)
}

func checkParam(r *http.Request, w http.ResponseWriter, paramName, value, tag string) (string, bool) {
	if tag == "" {
		return value, true
	}
	if err := GetValidator().ValidateVar(value, tag); err != nil {
		logger.FromContext(r.Context()).Warn(LogMsgInvalidParam, LogFieldParam, paramName, LogFieldError, err)
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidParam, paramName))
		return "", false
	}
	return value, true
}
