// Package memory is an in-process host: inventories, balances and permissions kept in maps.
// The service binary runs on it and tests use it to observe payouts.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/osse101/LootCrates_Go/internal/domain"
	"github.com/osse101/LootCrates_Go/internal/host"
)

const (
	DefaultSlots    = 36
	DefaultMaxStack = 64
)

// Capability names accepted by Fail
const (
	CapInventory       = "inventory"
	CapCurrency        = "currency"
	CapGenericCurrency = "generic_currency"
	CapExperience      = "experience"
	CapCommands        = "commands"
	CapSpecialItems    = "special_items"
)

type actor struct {
	slots      []domain.ItemStack
	mainHand   int
	balance    float64
	experience int
	generic    map[string]float64
	perms      map[string]bool
	offline    bool
}

// Host implements every host capability in memory
type Host struct {
	mu       sync.Mutex
	slots    int
	maxStack int
	actors   map[string]*actor
	drops    map[string][]domain.ItemStack
	commands []string
	failures map[string]error
}

// New returns an empty host with default inventory geometry
func New() *Host {
	return &Host{
		slots:    DefaultSlots,
		maxStack: DefaultMaxStack,
		actors:   make(map[string]*actor),
		drops:    make(map[string][]domain.ItemStack),
		failures: make(map[string]error),
	}
}

// WithInventorySize changes the slot count for actors created afterwards
func (h *Host) WithInventorySize(slots, maxStack int) *Host {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.slots = max(1, slots)
	h.maxStack = max(1, maxStack)
	return h
}

// Capabilities exposes the host through every capability interface
func (h *Host) Capabilities() host.Capabilities {
	return host.Capabilities{
		Inventory:       h,
		Currency:        currency{h},
		GenericCurrency: genericCurrency{h},
		Experience:      h,
		Permissions:     h,
		Presence:        h,
		Commands:        h,
		SpecialItems:    h,
	}
}

// Fail makes a capability return err until cleared with a nil err
func (h *Host) Fail(capability string, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err == nil {
		delete(h.failures, capability)
		return
	}
	h.failures[capability] = err
}

// actorLocked returns the actor's state, creating it. Caller holds h.mu.
func (h *Host) actorLocked(id string) *actor {
	a, ok := h.actors[id]
	if !ok {
		a = &actor{
			slots:   make([]domain.ItemStack, h.slots),
			generic: make(map[string]float64),
			perms:   make(map[string]bool),
		}
		h.actors[id] = a
	}
	return a
}

// ============================================================================
// Inventory
// ============================================================================

func (h *Host) Contents(_ context.Context, actorID string) ([]domain.ItemStack, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.failures[CapInventory]; err != nil {
		return nil, err
	}
	var out []domain.ItemStack
	for _, s := range h.actorLocked(actorID).slots {
		if !s.IsEmpty() {
			out = append(out, s.WithAmount(s.Amount))
		}
	}
	return out, nil
}

func (h *Host) MainHand(_ context.Context, actorID string) (domain.ItemStack, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.failures[CapInventory]; err != nil {
		return domain.ItemStack{}, err
	}
	a := h.actorLocked(actorID)
	return a.slots[a.mainHand], nil
}

// SetMainHand puts stack in the held slot, replacing what was there
func (h *Host) SetMainHand(actorID string, stack domain.ItemStack) {
	h.mu.Lock()
	defer h.mu.Unlock()
	a := h.actorLocked(actorID)
	a.slots[a.mainHand] = stack
}

// SelectSlot changes which slot counts as the main hand
func (h *Host) SelectSlot(actorID string, slot int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	a := h.actorLocked(actorID)
	if slot < 0 || slot >= len(a.slots) {
		return fmt.Errorf("%w: slot %d", domain.ErrInvalidInput, slot)
	}
	a.mainHand = slot
	return nil
}

func (h *Host) TakeMatching(_ context.Context, actorID string, match host.Matcher, amount int, mainHandOnly bool) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.failures[CapInventory]; err != nil {
		return false, err
	}
	amount = max(1, amount)
	a := h.actorLocked(actorID)

	if mainHandOnly {
		held := &a.slots[a.mainHand]
		if held.IsEmpty() || !match(*held) || held.Amount < amount {
			return false, nil
		}
		held.Amount -= amount
		if held.Amount == 0 {
			*held = domain.ItemStack{}
		}
		return true, nil
	}

	total := 0
	for _, s := range a.slots {
		if !s.IsEmpty() && match(s) {
			total += s.Amount
		}
	}
	if total < amount {
		return false, nil
	}
	// held slot first, then the rest in order
	order := append([]int{a.mainHand}, slotsExcept(len(a.slots), a.mainHand)...)
	for _, i := range order {
		s := &a.slots[i]
		if amount == 0 {
			break
		}
		if s.IsEmpty() || !match(*s) {
			continue
		}
		n := min(s.Amount, amount)
		s.Amount -= n
		amount -= n
		if s.Amount == 0 {
			*s = domain.ItemStack{}
		}
	}
	return true, nil
}

func slotsExcept(n, skip int) []int {
	out := make([]int, 0, n-1)
	for i := 0; i < n; i++ {
		if i != skip {
			out = append(out, i)
		}
	}
	return out
}

func (h *Host) Give(_ context.Context, actorID string, items ...domain.ItemStack) ([]domain.ItemStack, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.failures[CapInventory]; err != nil {
		return items, err
	}
	a := h.actorLocked(actorID)

	var overflow []domain.ItemStack
	for _, item := range items {
		left := item.Amount
		for i := range a.slots {
			if left == 0 {
				break
			}
			s := &a.slots[i]
			if !s.IsEmpty() && s.Similar(item) && s.Amount < h.maxStack {
				n := min(h.maxStack-s.Amount, left)
				s.Amount += n
				left -= n
			}
		}
		for i := range a.slots {
			if left == 0 {
				break
			}
			if a.slots[i].IsEmpty() {
				n := min(h.maxStack, left)
				a.slots[i] = item.WithAmount(n)
				left -= n
			}
		}
		if left > 0 {
			overflow = append(overflow, item.WithAmount(left))
		}
	}
	return overflow, nil
}

func (h *Host) DropNear(_ context.Context, actorID string, items ...domain.ItemStack) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.failures[CapInventory]; err != nil {
		return err
	}
	h.drops[actorID] = append(h.drops[actorID], items...)
	return nil
}

// Drops lists what was ejected around the actor
func (h *Host) Drops(actorID string) []domain.ItemStack {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.drops[actorID])
}

// ============================================================================
// Experience, permissions, presence, commands, special items
// ============================================================================

func (h *Host) GiveExperience(_ context.Context, actorID string, amount int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.failures[CapExperience]; err != nil {
		return err
	}
	h.actorLocked(actorID).experience += amount
	return nil
}

// ExperienceOf is the actor's accumulated experience
func (h *Host) ExperienceOf(actorID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.actorLocked(actorID).experience
}

func (h *Host) HasPermission(_ context.Context, actorID, permission string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	perms := h.actorLocked(actorID).perms
	return perms[permission] || perms[host.PermissionAdmin]
}

// SetPermission grants or revokes a permission node
func (h *Host) SetPermission(actorID, permission string, granted bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.actorLocked(actorID).perms[permission] = granted
}

func (h *Host) IsOnline(_ context.Context, actorID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return !h.actorLocked(actorID).offline
}

// SetOnline marks an actor as connected or not
func (h *Host) SetOnline(actorID string, online bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.actorLocked(actorID).offline = !online
}

func (h *Host) Dispatch(_ context.Context, command string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.failures[CapCommands]; err != nil {
		return err
	}
	h.commands = append(h.commands, command)
	return nil
}

// Commands lists every dispatched command in order
func (h *Host) Commands() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.commands)
}

func (h *Host) Create(_ context.Context, template string, level int, experience int64) (domain.ItemStack, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.failures[CapSpecialItems]; err != nil {
		return domain.ItemStack{}, err
	}
	return domain.ItemStack{
		Material: "SPECIAL_" + template,
		Name:     template,
		Lore:     []string{fmt.Sprintf("Level %d", level), fmt.Sprintf("Experience %d", experience)},
		Amount:   1,
	}, nil
}
