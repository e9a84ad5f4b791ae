package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/osse101/LootCrates_Go/internal/logger"
)

// readinessTimeout bounds the storage ping of /readyz
const readinessTimeout = 2 * time.Second

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message,omitempty"`
	Crates      int    `json:"crates,omitempty"`
	Maintenance bool   `json:"maintenance,omitempty"`
}

// Pinger reports whether storage is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HandleHealthz provides a basic liveness check
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: StatusOK})
	}
}

// HandleReadyz reports ready once storage answers a ping.
// The crate count and maintenance flag are included for operators.
func HandleReadyz(store Pinger, catalog CrateCatalog, svc CrateService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			logger.FromContext(r.Context()).Error(LogMsgReadinessFailed, LogFieldError, err)
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status:  StatusUnavailable,
				Message: ErrMsgDatabaseUnavailable,
			})
			return
		}

		respondJSON(w, http.StatusOK, HealthResponse{
			Status:      StatusOK,
			Crates:      len(catalog.Crates()),
			Maintenance: svc.Maintenance(),
		})
	}
}
