package opening

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/osse101/LootCrates_Go/internal/domain"
	"github.com/osse101/LootCrates_Go/internal/logger"
	"github.com/osse101/LootCrates_Go/internal/metrics"
)

// delivery pays out one reward, collecting failures instead of stopping at the first
type delivery struct {
	o        *Orchestrator
	actorID  string
	crate    *domain.Crate
	reward   *domain.Reward
	online   bool
	failures []error
}

func (d *delivery) fail(part string, err error) {
	metrics.DistributionFailures.WithLabelValues(string(d.reward.Type)).Inc()
	d.failures = append(d.failures, &domain.PayoutError{Part: part, Err: err})
}

// distribute dispatches every payout of reward and returns the parts that failed.
// Already delivered parts are never rolled back.
func (o *Orchestrator) distribute(ctx context.Context, req domain.OpenRequest, crate *domain.Crate, reward *domain.Reward) []error {
	d := &delivery{
		o:       o,
		actorID: req.ActorID,
		crate:   crate,
		reward:  reward,
		online:  o.caps.Presence.IsOnline(ctx, req.ActorID),
	}
	if !d.online {
		logger.FromContext(ctx).Info(LogMsgActorLeftMidOpen, LogFieldActor, req.ActorID, LogFieldCrate, crate.ID)
	}

	switch reward.Type {
	case domain.RewardCurrency:
		d.deposit(ctx, reward.CurrencyAmount)
	case domain.RewardExperience:
		d.experience(ctx, reward.Experience)
	case domain.RewardItem:
		d.give(ctx, reward.Items)
	case domain.RewardBundle:
		d.give(ctx, reward.Items)
		d.deposit(ctx, reward.CurrencyAmount)
		d.experience(ctx, reward.Experience)
	case domain.RewardCommand:
		d.dispatch(ctx, playerName(req))
	case domain.RewardKeyGrant:
		target := reward.KeyCrateID
		if target == "" {
			target = crate.ID
		}
		if err := o.GiveKeys(ctx, req.ActorID, target, reward.KeyAmount); err != nil {
			d.fail("key grant", err)
		}
	case domain.RewardGenericCurrency:
		if reward.CurrencyAmount > 0 {
			if err := o.caps.GenericCurrency.Add(ctx, req.ActorID, reward.CurrencyType, reward.CurrencyAmount); err != nil {
				d.fail("generic currency", err)
			}
		}
	case domain.RewardSpecialItem:
		d.special(ctx)
	default:
		d.give(ctx, reward.Items)
	}
	return d.failures
}

func (d *delivery) deposit(ctx context.Context, amount float64) {
	if amount <= 0 {
		return
	}
	if err := d.o.caps.Currency.Deposit(ctx, d.actorID, amount); err != nil {
		d.fail("currency", err)
	}
}

func (d *delivery) experience(ctx context.Context, amount int) {
	if amount <= 0 {
		return
	}
	if err := d.o.caps.Experience.GiveExperience(ctx, d.actorID, amount); err != nil {
		d.fail("experience", err)
	}
}

// give hands items to the actor, dropping what does not fit.
// Items for an actor who has left go to the offline queue when one is configured.
func (d *delivery) give(ctx context.Context, items []domain.ItemStack) {
	if len(items) == 0 {
		return
	}
	if !d.online && d.o.queue != nil && d.enqueue(ctx, items) {
		return
	}

	overflow, err := d.o.caps.Inventory.Give(ctx, d.actorID, items...)
	if err != nil {
		d.fail("items", err)
		return
	}
	if len(overflow) == 0 {
		return
	}
	logger.FromContext(ctx).Info(LogMsgItemsDropped, LogFieldActor, d.actorID, LogFieldCount, len(overflow))
	if err := d.o.caps.Inventory.DropNear(ctx, d.actorID, overflow...); err != nil {
		d.fail("overflow drop", err)
	}
}

func (d *delivery) enqueue(ctx context.Context, items []domain.ItemStack) bool {
	log := logger.FromContext(ctx)
	payload, err := json.Marshal(items)
	if err != nil {
		log.Error(LogMsgRewardQueued, LogFieldActor, d.actorID, LogFieldError, err)
		return false
	}
	_, err = d.o.queue.EnqueueReward(ctx, &domain.QueuedReward{
		ActorID:   d.actorID,
		CrateID:   d.crate.ID,
		RewardID:  d.reward.ID,
		Payload:   payload,
		CreatedAt: d.o.clock.Now(),
	})
	if err != nil {
		log.Error(LogMsgRewardQueued, LogFieldActor, d.actorID, LogFieldError, err)
		return false
	}
	log.Info(LogMsgRewardQueued, LogFieldActor, d.actorID, LogFieldReward, d.reward.ID, LogFieldCount, len(items))
	return true
}

func (d *delivery) dispatch(ctx context.Context, player string) {
	r := strings.NewReplacer(
		"{player}", player,
		"{crate}", d.crate.ID,
		"{crate_display}", d.crate.Display,
	)
	for _, cmd := range d.reward.Commands {
		if err := d.o.caps.Commands.Dispatch(ctx, r.Replace(cmd)); err != nil {
			d.fail("command", err)
		}
	}
}

// special mints the reward's templates through the item provider.
// Without a provider the parsed stand-in item for the template is given instead.
func (d *delivery) special(ctx context.Context) {
	templates := d.reward.SpecialTemplates
	if len(templates) == 0 {
		d.give(ctx, d.reward.Items)
		return
	}

	var picks []int
	switch d.reward.SpecialMode {
	case domain.SpecialSet:
		for i := range templates {
			picks = append(picks, i)
		}
	case domain.SpecialChoice:
		picks = []int{d.o.rng.IntN(len(templates))}
	default:
		picks = []int{0}
	}

	var items []domain.ItemStack
	for _, i := range picks {
		item, err := d.o.caps.SpecialItems.Create(ctx, templates[i], d.reward.SpecialLevel, d.reward.SpecialExperience)
		switch {
		case err == nil:
			items = append(items, item)
		case errors.Is(err, domain.ErrCapabilityUnavailable):
			logger.FromContext(ctx).Warn(LogMsgSpecialFallback, LogFieldTemplate, templates[i])
			if i < len(d.reward.Items) {
				items = append(items, d.reward.Items[i])
			}
		default:
			d.fail("special item", fmt.Errorf("template %s: %w", templates[i], err))
		}
	}
	d.give(ctx, items)
}
