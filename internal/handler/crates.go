package handler

import (
	"net/http"
	"time"

	"github.com/osse101/LootCrates_Go/internal/cooldown"
	"github.com/osse101/LootCrates_Go/internal/domain"
	"github.com/osse101/LootCrates_Go/internal/logger"
)

// RewardView is the public description of one reward
type RewardView struct {
	ID     string  `json:"id"`
	Type   string  `json:"type"`
	Tier   string  `json:"tier"`
	Weight int     `json:"weight"`
	Chance float64 `json:"chance"`
	Rare   bool    `json:"rare"`
}

// CrateView is the public description of a crate
type CrateView struct {
	ID                 string       `json:"id"`
	Display            string       `json:"display"`
	Tier               string       `json:"tier"`
	OpenMethod         string       `json:"open_method"`
	Enabled            bool         `json:"enabled"`
	Available          bool         `json:"available"`
	CooldownSeconds    int64        `json:"cooldown_seconds"`
	DailyLimit         int          `json:"daily_limit"`
	RequiredPermission string       `json:"required_permission,omitempty"`
	PityEnabled        bool         `json:"pity_enabled"`
	PityThreshold      int          `json:"pity_threshold,omitempty"`
	AvailableFrom      *time.Time   `json:"available_from,omitempty"`
	AvailableUntil     *time.Time   `json:"available_until,omitempty"`
	Rewards            []RewardView `json:"rewards,omitempty"`
}

// NewCrateView describes c as of now. Rewards are listed only when withRewards is set.
func NewCrateView(c *domain.Crate, now time.Time, withRewards bool) CrateView {
	v := CrateView{
		ID:                 c.ID,
		Display:            c.Display,
		Tier:               c.Tier,
		OpenMethod:         string(c.OpenMethod),
		Enabled:            c.Enabled,
		Available:          c.IsAvailable(now),
		CooldownSeconds:    c.CooldownSeconds,
		DailyLimit:         c.DailyLimit,
		RequiredPermission: c.RequiredPermission,
		PityEnabled:        c.Pity.Enabled,
		AvailableFrom:      c.AvailableFrom,
		AvailableUntil:     c.AvailableUntil,
	}
	if c.Pity.Enabled {
		v.PityThreshold = c.Pity.Threshold
	}
	if !withRewards {
		return v
	}

	total := c.TotalWeight()
	v.Rewards = make([]RewardView, 0, len(c.Rewards))
	for i := range c.Rewards {
		rw := &c.Rewards[i]
		chance := 0.0
		if total > 0 {
			chance = float64(rw.Weight) / float64(total)
		}
		v.Rewards = append(v.Rewards, RewardView{
			ID:     rw.ID,
			Type:   string(rw.Type),
			Tier:   rw.Tier,
			Weight: rw.Weight,
			Chance: chance,
			Rare:   rw.IsRare(),
		})
	}
	return v
}

// OpenCrateRequest is the body of an open or force-open call
type OpenCrateRequest struct {
	ActorID          string `json:"actor_id" validate:"required,actor_id"`
	Username         string `json:"username" validate:"actor_id"`
	UsingPhysicalKey bool   `json:"using_physical_key"`
}

// OpenCrateResponse reports the terminal state of an attempt
type OpenCrateResponse struct {
	*domain.OpenResult
	RemainingText string `json:"remaining_text,omitempty"`
	RewardTier    string `json:"reward_tier,omitempty"`
	RewardType    string `json:"reward_type,omitempty"`
}

// GiveKeysRequest is the body of a key grant
type GiveKeysRequest struct {
	ActorID string `json:"actor_id" validate:"required,actor_id"`
	Amount  int    `json:"amount" validate:"required,min=1,max=2304"`
}

// KeysResponse reports an actor's key balance for one crate
type KeysResponse struct {
	ActorID string `json:"actor_id"`
	CrateID string `json:"crate_id"`
	Keys    int    `json:"keys"`
}

// CrateHandler serves the crate endpoints
type CrateHandler struct {
	svc     CrateService
	catalog CrateCatalog
	now     func() time.Time
}

// NewCrateHandler creates the crate endpoints over svc and catalog
func NewCrateHandler(svc CrateService, catalog CrateCatalog) *CrateHandler {
	return &CrateHandler{svc: svc, catalog: catalog, now: time.Now}
}

// HandleListCrates lists every loaded crate without its rewards
func (h *CrateHandler) HandleListCrates(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	crates := h.catalog.Crates()
	views := make([]CrateView, 0, len(crates))
	for _, c := range crates {
		views = append(views, NewCrateView(c, now, false))
	}
	respondJSON(w, http.StatusOK, DataResponse{Data: views})
}

// HandleGetCrate describes one crate including its reward odds
func (h *CrateHandler) HandleGetCrate(w http.ResponseWriter, r *http.Request) {
	id, ok := GetPathParam(r, w, ParamCrateID, TagCrateID)
	if !ok {
		return
	}
	c, found := h.catalog.Get(id)
	if !found {
		respondError(w, http.StatusNotFound, ErrMsgCrateNotFoundError)
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Data: NewCrateView(c, h.now(), true)})
}

// HandleOpenCrate runs a normal open attempt.
// A rejection is answered with the mapped status and the attempt result.
func (h *CrateHandler) HandleOpenCrate(w http.ResponseWriter, r *http.Request) {
	h.open(w, r, false)
}

// HandleForceOpenCrate opens without a key or any access check
func (h *CrateHandler) HandleForceOpenCrate(w http.ResponseWriter, r *http.Request) {
	h.open(w, r, true)
}

func (h *CrateHandler) open(w http.ResponseWriter, r *http.Request, force bool) {
	id, ok := GetPathParam(r, w, ParamCrateID, TagCrateID)
	if !ok {
		return
	}
	var req OpenCrateRequest
	if err := DecodeAndValidateRequest(r, w, &req, ErrMsgOpenCrateFailed); err != nil {
		return
	}

	var (
		result *domain.OpenResult
		err    error
	)
	if force {
		result, err = h.svc.ForceOpen(r.Context(), req.ActorID, req.Username, id)
	} else {
		result, err = h.svc.Open(r.Context(), domain.OpenRequest{
			ActorID:          req.ActorID,
			Username:         req.Username,
			CrateID:          id,
			UsingPhysicalKey: req.UsingPhysicalKey,
		})
	}
	if result == nil {
		respondServiceError(w, r, ErrMsgOpenCrateFailed, err)
		return
	}

	logger.FromContext(r.Context()).Info(LogMsgOpenAttempt,
		LogFieldActor, result.ActorID, LogFieldCrate, result.CrateID,
		LogFieldState, result.State, LogFieldReason, result.Reason)

	resp := openResponse(result)
	if err != nil {
		status, _ := mapServiceErrorToUserMessage(err)
		respondJSON(w, status, resp)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func openResponse(result *domain.OpenResult) OpenCrateResponse {
	resp := OpenCrateResponse{OpenResult: result}
	if result.Remaining > 0 {
		resp.RemainingText = cooldown.FormatRemaining(result.Remaining.Milliseconds())
	}
	if result.Reward != nil {
		resp.RewardTier = result.Reward.Tier
		resp.RewardType = string(result.Reward.Type)
	}
	return resp
}

// HandleGiveKeys mints keys for a crate into an actor's inventory
func (h *CrateHandler) HandleGiveKeys(w http.ResponseWriter, r *http.Request) {
	id, ok := GetPathParam(r, w, ParamCrateID, TagCrateID)
	if !ok {
		return
	}
	var req GiveKeysRequest
	if err := DecodeAndValidateRequest(r, w, &req, ErrMsgGiveKeysFailed); err != nil {
		return
	}

	if err := h.svc.GiveKeys(r.Context(), req.ActorID, id, req.Amount); err != nil {
		respondServiceError(w, r, ErrMsgGiveKeysFailed, err)
		return
	}
	logger.FromContext(r.Context()).Info(LogMsgKeysGiven,
		LogFieldActor, req.ActorID, LogFieldCrate, id, LogFieldAmount, req.Amount)
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgKeysGiven})
}

// HandleGetKeys counts the keys an actor holds for a crate
func (h *CrateHandler) HandleGetKeys(w http.ResponseWriter, r *http.Request) {
	id, ok := GetPathParam(r, w, ParamCrateID, TagCrateID)
	if !ok {
		return
	}
	actorID, ok := GetQueryParam(r, w, QueryActorID, TagActorID)
	if !ok {
		return
	}

	n, err := h.svc.KeyCount(r.Context(), actorID, id)
	if err != nil {
		respondServiceError(w, r, ErrMsgKeyCountFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, KeysResponse{ActorID: actorID, CrateID: domain.NormalizeCrateID(id), Keys: n})
}
