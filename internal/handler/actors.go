package handler

import (
	"net/http"

	"github.com/osse101/LootCrates_Go/internal/cooldown"
	"github.com/osse101/LootCrates_Go/internal/domain"
)

// CooldownResponse reports the wait before an actor may open a crate again
type CooldownResponse struct {
	ActorID           string `json:"actor_id"`
	CrateID           string `json:"crate_id"`
	OnCooldown        bool   `json:"on_cooldown"`
	RemainingMillis   int64  `json:"remaining_ms"`
	RemainingText     string `json:"remaining_text,omitempty"`
	DailyOpens        int    `json:"daily_opens"`
	DailyLimit        int    `json:"daily_limit"`
	DailyLimitReached bool   `json:"daily_limit_reached"`
}

// PityResponse reports an actor's miss streak on a crate
type PityResponse struct {
	ActorID   string `json:"actor_id"`
	CrateID   string `json:"crate_id"`
	Count     int    `json:"count"`
	Enabled   bool   `json:"enabled"`
	Threshold int    `json:"threshold,omitempty"`
	Remaining int    `json:"remaining,omitempty"`
}

// ActorHandler serves the per-actor reporting endpoints
type ActorHandler struct {
	svc     CrateService
	catalog CrateCatalog
}

// NewActorHandler creates the actor endpoints
func NewActorHandler(svc CrateService, catalog CrateCatalog) *ActorHandler {
	return &ActorHandler{svc: svc, catalog: catalog}
}

// HandleGetStats returns the actor's cumulative statistics
func (h *ActorHandler) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	actorID, ok := GetPathParam(r, w, ParamActorID, TagActorID)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, h.svc.ActorStats(r.Context(), actorID))
}

// HandleGetCooldown returns the cooldown and today's opens for one crate
func (h *ActorHandler) HandleGetCooldown(w http.ResponseWriter, r *http.Request) {
	actorID, crate, ok := h.actorAndCrate(w, r)
	if !ok {
		return
	}

	remaining := h.svc.CooldownRemaining(r.Context(), actorID, crate.ID)
	opens := h.svc.DailyOpens(actorID, crate.ID)
	resp := CooldownResponse{
		ActorID:           actorID,
		CrateID:           crate.ID,
		OnCooldown:        remaining > 0,
		RemainingMillis:   remaining.Milliseconds(),
		DailyOpens:        opens,
		DailyLimit:        crate.DailyLimit,
		DailyLimitReached: crate.HasDailyLimit() && opens >= crate.DailyLimit,
	}
	if remaining > 0 {
		resp.RemainingText = cooldown.FormatRemaining(remaining.Milliseconds())
	}
	respondJSON(w, http.StatusOK, resp)
}

// HandleGetPity returns the actor's miss streak and how many opens remain until the guarantee
func (h *ActorHandler) HandleGetPity(w http.ResponseWriter, r *http.Request) {
	actorID, crate, ok := h.actorAndCrate(w, r)
	if !ok {
		return
	}

	count := h.svc.PityCount(actorID, crate.ID)
	resp := PityResponse{
		ActorID: actorID,
		CrateID: crate.ID,
		Count:   count,
		Enabled: crate.Pity.Enabled,
	}
	if crate.Pity.Enabled {
		resp.Threshold = crate.Pity.Threshold
		resp.Remaining = max(0, crate.Pity.Threshold-count)
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *ActorHandler) actorAndCrate(w http.ResponseWriter, r *http.Request) (string, *domain.Crate, bool) {
	actorID, ok := GetPathParam(r, w, ParamActorID, TagActorID)
	if !ok {
		return "", nil, false
	}
	crateID, ok := GetPathParam(r, w, ParamCrate, TagCrateID)
	if !ok {
		return "", nil, false
	}
	crate, found := h.catalog.Get(crateID)
	if !found {
		respondError(w, http.StatusNotFound, ErrMsgCrateNotFoundError)
		return "", nil, false
	}
	return actorID, crate, true
}
