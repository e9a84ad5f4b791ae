package opening

import (
	"context"
	"time"

	"github.com/osse101/LootCrates_Go/internal/domain"
	"github.com/osse101/LootCrates_Go/internal/logger"
)

// ActorStats builds the read-only statistics view of an actor
func (o *Orchestrator) ActorStats(ctx context.Context, actorID string) domain.ActorStatsReport {
	data := o.actors.Get(ctx, actorID, "")
	report := domain.ActorStatsReport{
		ActorData:     data,
		LuckRatio:     data.LuckRatio(),
		AveragePayout: data.AveragePayout(),
	}
	if o.queue != nil {
		n, err := o.queue.CountQueuedRewards(ctx, actorID)
		if err != nil {
			logger.FromContext(ctx).Error(ErrMsgQueueCount, LogFieldActor, actorID, LogFieldError, err)
		}
		report.PendingRewards = n
	}
	return report
}

// PityCount is the actor's current miss streak on a crate
func (o *Orchestrator) PityCount(actorID, crateID string) int {
	return o.pity.Get(actorID, crateID)
}

// CooldownRemaining is how long the actor must still wait, zero when free
func (o *Orchestrator) CooldownRemaining(ctx context.Context, actorID, crateID string) time.Duration {
	if !o.cooldowns.HasCooldown(ctx, actorID, crateID, false) {
		return 0
	}
	return o.cooldowns.Remaining(actorID, crateID)
}

// DailyOpens counts the actor's successful non-forced opens of a crate today (UTC)
func (o *Orchestrator) DailyOpens(actorID, crateID string) int {
	n, _ := o.daily.Get(o.dailyKey(actorID, crateID))
	return n
}

// countDailyOpen is called under the (actor, crate) lock
func (o *Orchestrator) countDailyOpen(actorID, crateID string) {
	k := o.dailyKey(actorID, crateID)
	n, _ := o.daily.Get(k)
	o.daily.Add(k, n+1)
}

func (o *Orchestrator) dailyKey(actorID, crateID string) string {
	return actorID + keySeparator + domain.NormalizeCrateID(crateID) + keySeparator + o.clock.Now().UTC().Format(dayLayout)
}
