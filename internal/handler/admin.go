package handler

import (
	"net/http"

	"github.com/osse101/LootCrates_Go/internal/logger"
)

// ReloadResponse summarises a registry reload
type ReloadResponse struct {
	Loaded  int      `json:"loaded"`
	Sources []string `json:"sources"`
	Errors  []string `json:"errors,omitempty"`
}

// MaintenanceRequest toggles maintenance mode
type MaintenanceRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

// MaintenanceResponse reports the maintenance flag after a change
type MaintenanceResponse struct {
	Message string `json:"message"`
	Enabled bool   `json:"enabled"`
}

// AdminHandler serves the operator endpoints
type AdminHandler struct {
	svc     CrateService
	catalog CrateCatalog
	actors  Flusher
}

// NewAdminHandler creates the operator endpoints
func NewAdminHandler(svc CrateService, catalog CrateCatalog, actors Flusher) *AdminHandler {
	return &AdminHandler{svc: svc, catalog: catalog, actors: actors}
}

// HandleReload re-reads the crate configuration. Invalid definitions are reported, not fatal;
// unreadable sources leave the current crates in place and answer 500.
func (h *AdminHandler) HandleReload(w http.ResponseWriter, r *http.Request) {
	report, err := h.catalog.Reload(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error(ErrMsgReloadFailed, LogFieldError, err)
		respondError(w, http.StatusInternalServerError, ErrMsgReloadFailed)
		return
	}

	resp := ReloadResponse{Loaded: report.Loaded, Sources: report.Sources}
	for _, cerr := range report.Errors {
		resp.Errors = append(resp.Errors, cerr.Error())
	}
	logger.FromContext(r.Context()).Info(LogMsgRegistryReloaded,
		LogFieldCount, report.Loaded, LogFieldErrors, len(report.Errors))
	respondJSON(w, http.StatusOK, resp)
}

// HandleMaintenance turns maintenance mode on or off
func (h *AdminHandler) HandleMaintenance(w http.ResponseWriter, r *http.Request) {
	var req MaintenanceRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Maintenance"); err != nil {
		return
	}

	h.svc.SetMaintenance(r.Context(), *req.Enabled)
	logger.FromContext(r.Context()).Info(LogMsgMaintenanceToggled, LogFieldEnabled, *req.Enabled)

	msg := MsgMaintenanceOff
	if *req.Enabled {
		msg = MsgMaintenanceEnabled
	}
	respondJSON(w, http.StatusOK, MaintenanceResponse{Message: msg, Enabled: h.svc.Maintenance()})
}

// HandleFlush writes every cached actor record to storage now
func (h *AdminHandler) HandleFlush(w http.ResponseWriter, r *http.Request) {
	if err := h.actors.FlushAll(r.Context()); err != nil {
		logger.FromContext(r.Context()).Error(ErrMsgFlushFailed, LogFieldError, err)
		respondError(w, http.StatusInternalServerError, ErrMsgFlushFailed)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgActorDataFlushed})
}
