// Package opening runs crate open attempts from the request to the final notification.
package opening

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/text/language"

	"github.com/osse101/LootCrates_Go/internal/actordata"
	"github.com/osse101/LootCrates_Go/internal/clock"
	"github.com/osse101/LootCrates_Go/internal/concurrency"
	"github.com/osse101/LootCrates_Go/internal/cooldown"
	"github.com/osse101/LootCrates_Go/internal/domain"
	"github.com/osse101/LootCrates_Go/internal/host"
	"github.com/osse101/LootCrates_Go/internal/logger"
	"github.com/osse101/LootCrates_Go/internal/metrics"
	"github.com/osse101/LootCrates_Go/internal/notify"
	"github.com/osse101/LootCrates_Go/internal/pity"
	"github.com/osse101/LootCrates_Go/internal/repository"
	"github.com/osse101/LootCrates_Go/internal/selection"
)

// Registry resolves crate ids, case-insensitively
type Registry interface {
	Get(id string) (*domain.Crate, bool)
}

// PreHook may veto an attempt before any key is taken
type PreHook interface {
	BeforeOpen(ctx context.Context, req domain.OpenRequest, crate *domain.Crate) error
}

// PostHook observes every finished attempt, rejected or not. crate is nil for unknown ids.
type PostHook interface {
	AfterOpen(ctx context.Context, req domain.OpenRequest, crate *domain.Crate, result *domain.OpenResult)
}

// PreHookFunc adapts a function into a PreHook
type PreHookFunc func(ctx context.Context, req domain.OpenRequest, crate *domain.Crate) error

func (f PreHookFunc) BeforeOpen(ctx context.Context, req domain.OpenRequest, crate *domain.Crate) error {
	return f(ctx, req, crate)
}

// PostHookFunc adapts a function into a PostHook
type PostHookFunc func(ctx context.Context, req domain.OpenRequest, crate *domain.Crate, result *domain.OpenResult)

func (f PostHookFunc) AfterOpen(ctx context.Context, req domain.OpenRequest, crate *domain.Crate, result *domain.OpenResult) {
	f(ctx, req, crate, result)
}

// Deps are the collaborators of an Orchestrator. Only Registry is required.
type Deps struct {
	Registry     Registry
	Capabilities host.Capabilities
	Pity         *pity.Tracker
	Cooldowns    *cooldown.Tracker
	Actors       *actordata.Store
	Queue        repository.OfflineQueue
	Notifier     *notify.Notifier
	RNG          selection.RNG
	Clock        clock.Clock
}

// Orchestrator drives the open state machine.
//
// Everything between the cooldown check and recording the open runs under an
// exclusive section keyed by (actor, crate), so overlapping requests for the same
// pair are serialized while other actors proceed in parallel.
type Orchestrator struct {
	registry  Registry
	caps      host.Capabilities
	pity      *pity.Tracker
	cooldowns *cooldown.Tracker
	actors    *actordata.Store
	queue     repository.OfflineQueue
	notifier  *notify.Notifier
	rng       selection.RNG
	clock     clock.Clock

	locks       *concurrency.LockManager
	daily       *expirable.LRU[string, int]
	maintenance atomic.Bool

	pre  []PreHook
	post []PostHook
}

// New creates an orchestrator, filling missing collaborators with in-memory defaults
func New(deps Deps) *Orchestrator {
	clk := deps.Clock
	if clk == nil {
		clk = clock.NewRealClock()
	}
	o := &Orchestrator{
		registry:  deps.Registry,
		caps:      deps.Capabilities.WithDefaults(),
		pity:      deps.Pity,
		cooldowns: deps.Cooldowns,
		actors:    deps.Actors,
		queue:     deps.Queue,
		notifier:  deps.Notifier,
		rng:       deps.RNG,
		clock:     clk,
		locks:     concurrency.NewLockManager(),
		daily:     expirable.NewLRU[string, int](DefaultDailyCounterSize, nil, DailyCounterTTL),
	}
	if o.pity == nil {
		o.pity = pity.NewTracker(nil, nil)
	}
	if o.cooldowns == nil {
		o.cooldowns = cooldown.NewTracker(nil, nil, clk)
	}
	if o.actors == nil {
		o.actors = actordata.NewStore(nil, nil, clk)
	}
	if o.notifier == nil {
		o.notifier = notify.NewNotifier(notify.NewCatalog(language.English, nil), nil)
	}
	if o.rng == nil {
		o.rng = selection.NewRNG(0)
	}
	return o
}

// AddPreHooks appends veto hooks. Register hooks before the first open.
func (o *Orchestrator) AddPreHooks(hooks ...PreHook) {
	o.pre = append(o.pre, hooks...)
}

// AddPostHooks appends observers. Register hooks before the first open.
func (o *Orchestrator) AddPostHooks(hooks ...PostHook) {
	o.post = append(o.post, hooks...)
}

// SetMaintenance toggles maintenance mode; while on, only admins may open crates
func (o *Orchestrator) SetMaintenance(ctx context.Context, enabled bool) {
	if o.maintenance.Swap(enabled) != enabled {
		logger.FromContext(ctx).Info(LogMsgMaintenanceChanged, LogFieldEnabled, enabled)
	}
}

// Maintenance reports whether maintenance mode is on
func (o *Orchestrator) Maintenance() bool {
	return o.maintenance.Load()
}

// Open runs one attempt for req.
//
// A rejected attempt returns its result together with a *domain.RejectionError.
// A completed attempt returns a nil error even when part of the payout failed;
// those failures are listed in the result.
func (o *Orchestrator) Open(ctx context.Context, req domain.OpenRequest) (*domain.OpenResult, error) {
	if req.ActorID == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgActorRequired)
	}
	if req.CrateID == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgCrateRequired)
	}

	start := time.Now()
	result := &domain.OpenResult{
		ActorID: req.ActorID,
		CrateID: domain.NormalizeCrateID(req.CrateID),
		State:   domain.StateRequested,
	}

	crate, ok := o.registry.Get(req.CrateID)
	if ok {
		result.CrateID = crate.ID
	} else {
		crate = nil
	}

	err := o.attempt(ctx, req, crate, result)

	outcome := metrics.OutcomeComplete
	if err != nil {
		outcome = metrics.OutcomeRejected
	}
	metrics.OpenDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())

	for _, h := range o.post {
		h.AfterOpen(ctx, req, crate, result)
	}
	return result, err
}

// ForceOpen opens a crate without a key, ignoring cooldown, permission, daily limit and maintenance
func (o *Orchestrator) ForceOpen(ctx context.Context, actorID, username, crateID string) (*domain.OpenResult, error) {
	logger.FromContext(ctx).Info(LogMsgForceOpen, LogFieldActor, actorID, LogFieldCrate, crateID)
	return o.Open(ctx, domain.OpenRequest{
		ActorID:  actorID,
		Username: username,
		CrateID:  crateID,
		Force:    true,
	})
}

func (o *Orchestrator) attempt(ctx context.Context, req domain.OpenRequest, crate *domain.Crate, result *domain.OpenResult) error {
	log := logger.FromContext(ctx)

	// Requested
	if crate == nil {
		return o.reject(ctx, req, nil, result, domain.RejectNotFound, result.CrateID)
	}
	if !crate.IsAvailable(o.clock.Now()) {
		return o.reject(ctx, req, crate, result, domain.RejectUnavailable, "")
	}
	if !req.Force {
		perms := o.caps.Permissions
		if o.maintenance.Load() && !perms.HasPermission(ctx, req.ActorID, host.PermissionAdmin) {
			return o.reject(ctx, req, crate, result, domain.RejectMaintenance, "")
		}
		if crate.RequiredPermission != "" && !perms.HasPermission(ctx, req.ActorID, crate.RequiredPermission) {
			return o.reject(ctx, req, crate, result, domain.RejectNoPermission, crate.RequiredPermission)
		}
		if !crate.AllowsOpen(req.UsingPhysicalKey) {
			return o.reject(ctx, req, crate, result, domain.RejectWrongOpenMethod, string(crate.OpenMethod))
		}
	}
	if len(crate.Rewards) == 0 {
		log.Error(LogMsgEmptyRewardPool, LogFieldCrate, crate.ID)
		return o.reject(ctx, req, crate, result, domain.RejectNoRewardsConfigured, crate.ID)
	}
	for _, h := range o.pre {
		if err := h.BeforeOpen(ctx, req, crate); err != nil {
			return o.reject(ctx, req, crate, result, domain.RejectVetoed, err.Error())
		}
	}

	release := o.locks.Lock(req.ActorID + keySeparator + crate.ID)
	defer release()

	if !req.Force {
		// Cooldown and daily limit are checked before the key is taken so a rejected
		// attempt never costs a key. The lock keeps both stable until the open is recorded.
		bypass := o.caps.Permissions.HasPermission(ctx, req.ActorID, host.PermissionCooldownBypass)
		if o.cooldowns.HasCooldown(ctx, req.ActorID, crate.ID, bypass) {
			result.Remaining = o.cooldowns.Remaining(req.ActorID, crate.ID)
			return o.reject(ctx, req, crate, result, domain.RejectOnCooldown, cooldown.FormatRemaining(result.Remaining.Milliseconds()))
		}
		if crate.HasDailyLimit() && o.DailyOpens(req.ActorID, crate.ID) >= crate.DailyLimit {
			return o.reject(ctx, req, crate, result, domain.RejectDailyLimitReached, strconv.Itoa(crate.DailyLimit))
		}

		mainHandOnly := req.UsingPhysicalKey && crate.OpenMethod.AllowsPhysical()
		took, err := o.caps.Inventory.TakeMatching(ctx, req.ActorID, crate.Key.Matches, 1, mainHandOnly)
		if err != nil {
			log.Error(LogMsgKeyTakeFailed, LogFieldActor, req.ActorID, LogFieldCrate, crate.ID, LogFieldError, err)
			return o.reject(ctx, req, crate, result, domain.RejectUnavailable, "")
		}
		if !took {
			return o.reject(ctx, req, crate, result, domain.RejectNoKey, "")
		}
		result.State = domain.StateKeyValidated
	}
	result.State = domain.StateCooldownChecked

	// RewardSelected
	reward, pityApplied, err := o.pity.Select(ctx, req.ActorID, crate, o.rng)
	if err != nil {
		log.Error(LogMsgEmptyRewardPool, LogFieldCrate, crate.ID, LogFieldError, err)
		return o.reject(ctx, req, crate, result, domain.RejectNoRewardsConfigured, crate.ID)
	}
	result.State = domain.StateRewardSelected
	result.Reward = reward
	result.RewardID = reward.ID
	result.PityApplied = pityApplied

	// The reward is rolled: from here on the attempt finishes even if the caller goes away.
	ctx = context.WithoutCancel(ctx)

	// Distributed
	failures := o.distribute(ctx, req, crate, reward)
	if len(failures) > 0 {
		derr := &domain.DistributionError{RewardID: reward.ID, Failures: failures}
		log.Warn(LogMsgPartialDistribution,
			LogFieldActor, req.ActorID,
			LogFieldCrate, crate.ID,
			LogFieldRewardType, string(reward.Type),
			LogFieldError, derr)
		for _, f := range failures {
			var perr *domain.PayoutError
			if errors.As(f, &perr) {
				result.Failures = append(result.Failures, perr.Part)
			}
		}
	}
	result.State = domain.StateDistributed

	// Recorded
	o.actors.RecordOpen(ctx, req.ActorID, req.Username, reward.CurrencyPaid(), reward.ItemCount(), reward.IsRare())
	if !req.Force {
		if crate.CooldownSeconds > 0 {
			o.cooldowns.Set(ctx, req.ActorID, crate.ID, crate.CooldownSeconds)
		}
		if crate.HasDailyLimit() {
			o.countDailyOpen(req.ActorID, crate.ID)
		}
	}
	result.State = domain.StateRecorded

	// Complete
	o.notifyReward(ctx, req, crate, reward, pityApplied)
	result.State = domain.StateComplete

	log.Info(LogMsgOpenCompleted,
		LogFieldActor, req.ActorID,
		LogFieldCrate, crate.ID,
		LogFieldReward, reward.ID,
		LogFieldPity, pityApplied,
		LogFieldForce, req.Force)
	return nil
}

// rejectionMessages maps reasons to the message shown to the actor; vetoes are reported by the hook itself
var rejectionMessages = map[domain.RejectReason]string{
	domain.RejectNotFound:            notify.KeyInvalidCrate,
	domain.RejectUnavailable:         notify.KeyCrateUnavailable,
	domain.RejectNoPermission:        notify.KeyNoPermission,
	domain.RejectNoKey:               notify.KeyNoKey,
	domain.RejectOnCooldown:          notify.KeyCooldownActive,
	domain.RejectNoRewardsConfigured: notify.KeyNoRewards,
	domain.RejectDailyLimitReached:   notify.KeyDailyLimit,
	domain.RejectWrongOpenMethod:     notify.KeyWrongOpenMethod,
	domain.RejectMaintenance:         notify.KeyMaintenance,
}

func (o *Orchestrator) reject(ctx context.Context, req domain.OpenRequest, crate *domain.Crate, result *domain.OpenResult, reason domain.RejectReason, detail string) error {
	result.State = domain.StateRejected
	result.Reason = reason

	logger.FromContext(ctx).Info(LogMsgOpenRejected,
		LogFieldActor, req.ActorID,
		LogFieldCrate, result.CrateID,
		LogFieldReason, string(reason))

	if key, ok := rejectionMessages[reason]; ok {
		ph := map[string]string{
			notify.PhCrate:        result.CrateID,
			notify.PhCrateDisplay: result.CrateID,
			notify.PhTime:         cooldown.FormatRemaining(result.Remaining.Milliseconds()),
		}
		if crate != nil {
			ph[notify.PhCrateDisplay] = crate.Display
			ph[notify.PhLimit] = strconv.Itoa(crate.DailyLimit)
		}
		o.notifier.Send(ctx, req.ActorID, key, ph)
	}
	return domain.Reject(reason, detail)
}

func (o *Orchestrator) notifyReward(ctx context.Context, req domain.OpenRequest, crate *domain.Crate, reward *domain.Reward, pityApplied bool) {
	ph := map[string]string{
		notify.PhPlayer:       playerName(req),
		notify.PhCrate:        crate.ID,
		notify.PhCrateDisplay: crate.Display,
		notify.PhReward:       reward.DisplayName(),
		notify.PhTier:         reward.Tier,
	}
	if pityApplied {
		o.notifier.Send(ctx, req.ActorID, notify.KeyPityTriggered, ph)
	}
	o.notifier.Send(ctx, req.ActorID, notify.KeyRewardReceived, ph)
	if reward.IsRare() {
		o.notifier.Broadcast(ctx, notify.KeyRareBroadcast, reward.Tier, ph)
	}
}

func playerName(req domain.OpenRequest) string {
	if req.Username != "" {
		return req.Username
	}
	return req.ActorID
}
