// Package host declares the capabilities the crate engine consumes from the environment it runs in.
// Each capability has an Unavailable implementation used when the environment does not provide it.
package host

import (
	"context"

	"github.com/osse101/LootCrates_Go/internal/domain"
)

// Permission nodes checked by the engine
const (
	PermissionAdmin          = "lootcrates.admin"
	PermissionForceOpen      = "lootcrates.admin.force"
	PermissionGiveKey        = "lootcrates.admin.givekey"
	PermissionCooldownBypass = "lootcrates.bypass.cooldown"
)

// Matcher selects inventory stacks
type Matcher func(domain.ItemStack) bool

// Inventory reads and changes what an actor holds
type Inventory interface {
	Contents(ctx context.Context, actorID string) ([]domain.ItemStack, error)
	MainHand(ctx context.Context, actorID string) (domain.ItemStack, error)
	// TakeMatching removes amount matching items in one step, from the main hand only or from anywhere.
	// It reports false and removes nothing when fewer than amount are held.
	TakeMatching(ctx context.Context, actorID string, match Matcher, amount int, mainHandOnly bool) (bool, error)
	// Give adds items and returns whatever did not fit
	Give(ctx context.Context, actorID string, items ...domain.ItemStack) ([]domain.ItemStack, error)
	// DropNear ejects items into the actor's surroundings
	DropNear(ctx context.Context, actorID string, items ...domain.ItemStack) error
}

// Currency is the primary economy
type Currency interface {
	Balance(ctx context.Context, actorID string) (float64, error)
	Deposit(ctx context.Context, actorID string, amount float64) error
	// Withdraw fails with ErrInsufficientFunds when the balance is too low
	Withdraw(ctx context.Context, actorID string, amount float64) error
}

// GenericCurrency is a secondary, named-currency economy (points, gems)
type GenericCurrency interface {
	Balance(ctx context.Context, actorID, currencyType string) (float64, error)
	Add(ctx context.Context, actorID, currencyType string, amount float64) error
	Take(ctx context.Context, actorID, currencyType string, amount float64) error
}

type Experience interface {
	GiveExperience(ctx context.Context, actorID string, amount int) error
}

type Permissions interface {
	HasPermission(ctx context.Context, actorID, permission string) bool
}

// Presence reports whether an actor is currently connected
type Presence interface {
	IsOnline(ctx context.Context, actorID string) bool
}

// CommandDispatcher runs a console command on the host
type CommandDispatcher interface {
	Dispatch(ctx context.Context, command string) error
}

// SpecialItems mints items from a named template of an item provider
type SpecialItems interface {
	Create(ctx context.Context, template string, level int, experience int64) (domain.ItemStack, error)
}

// Capabilities is the full set handed to the engine. Nil fields are replaced by Unavailable implementations.
type Capabilities struct {
	Inventory       Inventory
	Currency        Currency
	GenericCurrency GenericCurrency
	Experience      Experience
	Permissions     Permissions
	Presence        Presence
	Commands        CommandDispatcher
	SpecialItems    SpecialItems
}

// WithDefaults fills every missing capability with its Unavailable implementation
func (c Capabilities) WithDefaults() Capabilities {
	if c.Inventory == nil {
		c.Inventory = UnavailableInventory{}
	}
	if c.Currency == nil {
		c.Currency = UnavailableCurrency{}
	}
	if c.GenericCurrency == nil {
		c.GenericCurrency = UnavailableGenericCurrency{}
	}
	if c.Experience == nil {
		c.Experience = UnavailableExperience{}
	}
	if c.Permissions == nil {
		c.Permissions = DenyAllPermissions{}
	}
	if c.Presence == nil {
		c.Presence = AlwaysOnline{}
	}
	if c.Commands == nil {
		c.Commands = UnavailableCommands{}
	}
	if c.SpecialItems == nil {
		c.SpecialItems = UnavailableSpecialItems{}
	}
	return c
}
