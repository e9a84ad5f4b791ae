package domain

import (
	"strings"
	"time"
)

// OpenMethod controls which entry points may open a crate
type OpenMethod string

const (
	OpenMethodMenu          OpenMethod = "menu"
	OpenMethodPhysicalBlock OpenMethod = "physical_block"
	OpenMethodEither        OpenMethod = "either"
)

// AllowsPhysical reports whether a crate may be opened by interacting with a placed block
func (m OpenMethod) AllowsPhysical() bool {
	return m == OpenMethodPhysicalBlock || m == OpenMethodEither
}

// AllowsMenu reports whether a crate may be opened from a menu or command
func (m OpenMethod) AllowsMenu() bool {
	return m == OpenMethodMenu || m == OpenMethodEither
}

// KeyDefinition is the template used to mint and recognise a crate's key item.
type KeyDefinition struct {
	Display         string
	Material        string
	CustomModelData *int
	Lore            []string
	Glow            bool
}

// Item builds a key stack of the given size (clamped to at least one).
func (k KeyDefinition) Item(amount int) ItemStack {
	if amount < 1 {
		amount = 1
	}
	lore := make([]string, len(k.Lore))
	copy(lore, k.Lore)
	return ItemStack{
		Material:        k.Material,
		Name:            k.Display,
		Lore:            lore,
		CustomModelData: k.CustomModelData,
		Glow:            k.Glow,
		Amount:          amount,
	}
}

// Matches reports whether stack is a key minted from this definition
func (k KeyDefinition) Matches(stack ItemStack) bool {
	return stack.Amount > 0 && stack.Similar(k.Item(1))
}

// PityConfig configures the consecutive-miss guarantee for a crate
type PityConfig struct {
	Enabled              bool
	Threshold            int
	RareWeightMultiplier float64
}

// Crate is a named, weighted reward pool with access rules.
// Crates are built by the registry and must be treated as read-only once published;
// a reload replaces them wholesale.
type Crate struct {
	ID         string
	Display    string
	Tier       string
	Key        KeyDefinition
	OpenMethod OpenMethod
	Rewards    []Reward
	Enabled    bool
	Source     string

	CooldownSeconds    int64
	DailyLimit         int // -1 = unlimited
	RequiredPermission string

	Pity PityConfig

	AvailableFrom  *time.Time
	AvailableUntil *time.Time
}

// IsAvailable reports whether the crate is enabled and now falls inside its availability window.
// Both bounds are inclusive and either may be absent.
func (c *Crate) IsAvailable(now time.Time) bool {
	if c == nil || !c.Enabled {
		return false
	}
	if c.AvailableFrom != nil && now.Before(*c.AvailableFrom) {
		return false
	}
	if c.AvailableUntil != nil && now.After(*c.AvailableUntil) {
		return false
	}
	return true
}

// AllowsOpen reports whether the crate accepts an open through the given entry point
func (c *Crate) AllowsOpen(usingPhysicalKey bool) bool {
	if usingPhysicalKey {
		return c.OpenMethod.AllowsPhysical()
	}
	return c.OpenMethod.AllowsMenu()
}

// HasDailyLimit reports whether opens per day are capped
func (c *Crate) HasDailyLimit() bool {
	return c.DailyLimit > 0
}

// TotalWeight sums the reward weights
func (c *Crate) TotalWeight() int {
	total := 0
	for i := range c.Rewards {
		total += c.Rewards[i].Weight
	}
	return total
}

// NormalizeCrateID case-folds a crate identifier for registry lookups.
func NormalizeCrateID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
