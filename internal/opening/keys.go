package opening

import (
	"context"
	"fmt"

	"github.com/osse101/LootCrates_Go/internal/domain"
	"github.com/osse101/LootCrates_Go/internal/logger"
	"github.com/osse101/LootCrates_Go/internal/notify"
)

// GiveKeys mints amount keys for a crate (at least one) and hands them to the actor.
// Keys that do not fit are dropped near the actor.
func (o *Orchestrator) GiveKeys(ctx context.Context, actorID, crateID string, amount int) error {
	log := logger.FromContext(ctx)

	crate, ok := o.registry.Get(crateID)
	if !ok {
		log.Warn(domain.ErrMsgCrateNotFound, LogFieldCrate, crateID)
		return fmt.Errorf("%w: %s", domain.ErrCrateNotFound, crateID)
	}

	key := crate.Key.Item(amount)
	overflow, err := o.caps.Inventory.Give(ctx, actorID, key)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgGiveKeyFailed, err)
	}
	if len(overflow) > 0 {
		log.Info(LogMsgKeysDropped, LogFieldActor, actorID, LogFieldCrate, crate.ID)
		if err := o.caps.Inventory.DropNear(ctx, actorID, overflow...); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgGiveKeyFailed, err)
		}
	}

	log.Info(LogMsgKeysGiven, LogFieldActor, actorID, LogFieldCrate, crate.ID, LogFieldAmount, key.Amount)
	o.notifier.Send(ctx, actorID, notify.KeyKeysGiven, map[string]string{
		notify.PhAmount:       o.notifier.Catalog().Count(int64(key.Amount)),
		notify.PhCrate:        crate.ID,
		notify.PhCrateDisplay: crate.Display,
	})
	return nil
}

// KeyCount totals the actor's keys for a crate across the whole inventory
func (o *Orchestrator) KeyCount(ctx context.Context, actorID, crateID string) (int, error) {
	crate, ok := o.registry.Get(crateID)
	if !ok {
		return 0, fmt.Errorf("%w: %s", domain.ErrCrateNotFound, crateID)
	}
	contents, err := o.caps.Inventory.Contents(ctx, actorID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgKeyLookupFailed, err)
	}
	n := 0
	for _, s := range contents {
		if crate.Key.Matches(s) {
			n += s.Amount
		}
	}
	return n, nil
}

// HasKey reports whether the actor holds at least one key for the crate
func (o *Orchestrator) HasKey(ctx context.Context, actorID, crateID string) (bool, error) {
	n, err := o.KeyCount(ctx, actorID, crateID)
	return n > 0, err
}
