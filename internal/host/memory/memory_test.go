package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LootCrates_Go/internal/domain"
	"github.com/osse101/LootCrates_Go/internal/host"
)

var voteKey = domain.KeyDefinition{Display: "Vote Key", Material: "TRIPWIRE_HOOK"}

func TestGive_StacksThenOverflows(t *testing.T) {
	h := New().WithInventorySize(2, 64)
	ctx := context.Background()

	overflow, err := h.Give(ctx, "a", domain.ItemStack{Material: "DIAMOND", Amount: 100})
	require.NoError(t, err)
	assert.Empty(t, overflow)

	overflow, err = h.Give(ctx, "a", domain.ItemStack{Material: "DIAMOND", Amount: 40})
	require.NoError(t, err)
	require.Len(t, overflow, 1)
	assert.Equal(t, 12, overflow[0].Amount)

	contents, err := h.Contents(ctx, "a")
	require.NoError(t, err)
	require.Len(t, contents, 2)
	assert.Equal(t, 64, contents[0].Amount)
	assert.Equal(t, 64, contents[1].Amount)
}

func TestTakeMatching(t *testing.T) {
	ctx := context.Background()
	match := voteKey.Matches

	t.Run("main hand only", func(t *testing.T) {
		h := New()
		_, err := h.Give(ctx, "a", voteKey.Item(1))
		require.NoError(t, err)
		require.NoError(t, h.SelectSlot("a", 5))

		ok, err := h.TakeMatching(ctx, "a", match, 1, true)
		require.NoError(t, err)
		assert.False(t, ok, "key is not in the held slot")

		ok, err = h.TakeMatching(ctx, "a", match, 1, false)
		require.NoError(t, err)
		assert.True(t, ok)

		contents, _ := h.Contents(ctx, "a")
		assert.Empty(t, contents)
	})

	t.Run("held stack decrements", func(t *testing.T) {
		h := New()
		h.SetMainHand("a", voteKey.Item(2))

		ok, err := h.TakeMatching(ctx, "a", match, 1, true)
		require.NoError(t, err)
		require.True(t, ok)

		held, err := h.MainHand(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, 1, held.Amount)
	})

	t.Run("not enough removes nothing", func(t *testing.T) {
		h := New()
		h.SetMainHand("a", voteKey.Item(1))

		ok, err := h.TakeMatching(ctx, "a", match, 2, false)
		require.NoError(t, err)
		assert.False(t, ok)

		held, _ := h.MainHand(ctx, "a")
		assert.Equal(t, 1, held.Amount)
	})
}

func TestCurrency(t *testing.T) {
	h := New()
	caps := h.Capabilities()
	ctx := context.Background()

	require.NoError(t, caps.Currency.Deposit(ctx, "a", 10))
	assert.ErrorIs(t, caps.Currency.Withdraw(ctx, "a", 11), host.ErrInsufficientFunds)
	require.NoError(t, caps.Currency.Withdraw(ctx, "a", 4))
	assert.InDelta(t, 6.0, h.Balance("a"), 0.0001)

	require.NoError(t, caps.GenericCurrency.Add(ctx, "a", "GEMS", 3))
	bal, err := caps.GenericCurrency.Balance(ctx, "a", "GEMS")
	require.NoError(t, err)
	assert.InDelta(t, 3.0, bal, 0.0001)
	assert.ErrorIs(t, caps.GenericCurrency.Take(ctx, "a", "GEMS", 5), host.ErrInsufficientFunds)
}

func TestFail(t *testing.T) {
	h := New()
	boom := errors.New("economy offline")
	h.Fail(CapCurrency, boom)

	err := h.Capabilities().Currency.Deposit(context.Background(), "a", 1)
	assert.ErrorIs(t, err, boom)

	h.Fail(CapCurrency, nil)
	assert.NoError(t, h.Capabilities().Currency.Deposit(context.Background(), "a", 1))
}

func TestPermissions_AdminImpliesAll(t *testing.T) {
	h := New()
	ctx := context.Background()
	assert.False(t, h.HasPermission(ctx, "a", host.PermissionCooldownBypass))

	h.SetPermission("a", host.PermissionAdmin, true)
	assert.True(t, h.HasPermission(ctx, "a", host.PermissionCooldownBypass))
}

func TestWithDefaults_FillsUnavailable(t *testing.T) {
	caps := host.Capabilities{}.WithDefaults()
	ctx := context.Background()

	assert.ErrorIs(t, caps.Currency.Deposit(ctx, "a", 1), domain.ErrCapabilityUnavailable)
	assert.ErrorIs(t, caps.Experience.GiveExperience(ctx, "a", 1), domain.ErrCapabilityUnavailable)
	assert.False(t, caps.Permissions.HasPermission(ctx, "a", host.PermissionAdmin))
	assert.True(t, caps.Presence.IsOnline(ctx, "a"))

	overflow, err := caps.Inventory.Give(ctx, "a", domain.ItemStack{Material: "STONE", Amount: 1})
	assert.ErrorIs(t, err, domain.ErrCapabilityUnavailable)
	assert.Len(t, overflow, 1)
}
