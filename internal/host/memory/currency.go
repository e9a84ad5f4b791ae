package memory

import (
	"context"
	"fmt"

	"github.com/osse101/LootCrates_Go/internal/domain"
	"github.com/osse101/LootCrates_Go/internal/host"
)

// currency and genericCurrency adapt Host to the two economy interfaces, whose method names collide

type currency struct{ h *Host }

func (c currency) Balance(_ context.Context, actorID string) (float64, error) {
	c.h.mu.Lock()
	defer c.h.mu.Unlock()
	if err := c.h.failures[CapCurrency]; err != nil {
		return 0, err
	}
	return c.h.actorLocked(actorID).balance, nil
}

func (c currency) Deposit(_ context.Context, actorID string, amount float64) error {
	if amount < 0 {
		return fmt.Errorf("%w: negative deposit", domain.ErrInvalidInput)
	}
	c.h.mu.Lock()
	defer c.h.mu.Unlock()
	if err := c.h.failures[CapCurrency]; err != nil {
		return err
	}
	c.h.actorLocked(actorID).balance += amount
	return nil
}

func (c currency) Withdraw(_ context.Context, actorID string, amount float64) error {
	c.h.mu.Lock()
	defer c.h.mu.Unlock()
	if err := c.h.failures[CapCurrency]; err != nil {
		return err
	}
	a := c.h.actorLocked(actorID)
	if a.balance < amount {
		return host.ErrInsufficientFunds
	}
	a.balance -= amount
	return nil
}

type genericCurrency struct{ h *Host }

func (g genericCurrency) Balance(_ context.Context, actorID, currencyType string) (float64, error) {
	g.h.mu.Lock()
	defer g.h.mu.Unlock()
	if err := g.h.failures[CapGenericCurrency]; err != nil {
		return 0, err
	}
	return g.h.actorLocked(actorID).generic[currencyType], nil
}

func (g genericCurrency) Add(_ context.Context, actorID, currencyType string, amount float64) error {
	g.h.mu.Lock()
	defer g.h.mu.Unlock()
	if err := g.h.failures[CapGenericCurrency]; err != nil {
		return err
	}
	g.h.actorLocked(actorID).generic[currencyType] += amount
	return nil
}

func (g genericCurrency) Take(_ context.Context, actorID, currencyType string, amount float64) error {
	g.h.mu.Lock()
	defer g.h.mu.Unlock()
	if err := g.h.failures[CapGenericCurrency]; err != nil {
		return err
	}
	a := g.h.actorLocked(actorID)
	if a.generic[currencyType] < amount {
		return host.ErrInsufficientFunds
	}
	a.generic[currencyType] -= amount
	return nil
}

// Balance is a direct read for tests and reporting
func (h *Host) Balance(actorID string) float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.actorLocked(actorID).balance
}

// GenericBalance is a direct read for tests and reporting
func (h *Host) GenericBalance(actorID, currencyType string) float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.actorLocked(actorID).generic[currencyType]
}
