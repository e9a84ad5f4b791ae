package host

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/LootCrates_Go/internal/domain"
)

// ErrInsufficientFunds is returned by Withdraw and Take
var ErrInsufficientFunds = errors.New("insufficient funds")

func unavailable(name string) error {
	return fmt.Errorf("%w: %s", domain.ErrCapabilityUnavailable, name)
}

type UnavailableInventory struct{}

func (UnavailableInventory) Contents(context.Context, string) ([]domain.ItemStack, error) {
	return nil, unavailable("inventory")
}

func (UnavailableInventory) MainHand(context.Context, string) (domain.ItemStack, error) {
	return domain.ItemStack{}, unavailable("inventory")
}

func (UnavailableInventory) TakeMatching(context.Context, string, Matcher, int, bool) (bool, error) {
	return false, unavailable("inventory")
}

func (UnavailableInventory) Give(_ context.Context, _ string, items ...domain.ItemStack) ([]domain.ItemStack, error) {
	return items, unavailable("inventory")
}

func (UnavailableInventory) DropNear(context.Context, string, ...domain.ItemStack) error {
	return unavailable("inventory")
}

type UnavailableCurrency struct{}

func (UnavailableCurrency) Balance(context.Context, string) (float64, error) {
	return 0, unavailable("currency")
}

func (UnavailableCurrency) Deposit(context.Context, string, float64) error {
	return unavailable("currency")
}

func (UnavailableCurrency) Withdraw(context.Context, string, float64) error {
	return unavailable("currency")
}

type UnavailableGenericCurrency struct{}

func (UnavailableGenericCurrency) Balance(context.Context, string, string) (float64, error) {
	return 0, unavailable("generic currency")
}

func (UnavailableGenericCurrency) Add(context.Context, string, string, float64) error {
	return unavailable("generic currency")
}

func (UnavailableGenericCurrency) Take(context.Context, string, string, float64) error {
	return unavailable("generic currency")
}

type UnavailableExperience struct{}

func (UnavailableExperience) GiveExperience(context.Context, string, int) error {
	return unavailable("experience")
}

// DenyAllPermissions grants nothing
type DenyAllPermissions struct{}

func (DenyAllPermissions) HasPermission(context.Context, string, string) bool { return false }

// AlwaysOnline treats every actor as present
type AlwaysOnline struct{}

func (AlwaysOnline) IsOnline(context.Context, string) bool { return true }

type UnavailableCommands struct{}

func (UnavailableCommands) Dispatch(context.Context, string) error {
	return unavailable("commands")
}

type UnavailableSpecialItems struct{}

func (UnavailableSpecialItems) Create(context.Context, string, int, int64) (domain.ItemStack, error) {
	return domain.ItemStack{}, unavailable("special items")
}
