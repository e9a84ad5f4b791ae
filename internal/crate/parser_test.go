package crate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LootCrates_Go/internal/domain"
)

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	p, err := NewParser()
	require.NoError(t, err)
	return p
}

func parseString(t *testing.T, doc string) ParseResult {
	t.Helper()
	return newTestParser(t).Parse(context.Background(), BytesSource("test.yml", []byte(doc)))
}

func TestParse_ConfigFile(t *testing.T) {
	src, err := FileSource("testdata/config.yml")
	require.NoError(t, err)

	res := newTestParser(t).Parse(context.Background(), src)
	require.Empty(t, res.Errors)
	require.Len(t, res.Crates, 2)

	vote := res.Crates[0]
	assert.Equal(t, "VOTE", vote.ID)
	assert.Equal(t, "&aVote Crate", vote.Display)
	assert.Equal(t, domain.OpenMethodMenu, vote.OpenMethod)
	assert.Equal(t, int64(60), vote.CooldownSeconds)
	assert.Equal(t, -1, vote.DailyLimit)
	assert.True(t, vote.Enabled)
	assert.Equal(t, "TRIPWIRE_HOOK", vote.Key.Material)
	assert.Equal(t, []string{"&7Opens a vote crate"}, vote.Key.Lore)
	assert.Equal(t, "testdata/config.yml", vote.Source)

	require.Len(t, vote.Rewards, 2)
	coins := vote.Rewards[0]
	assert.Equal(t, domain.RewardCurrency, coins.Type)
	assert.InDelta(t, 250.0, coins.CurrencyAmount, 0.001)
	assert.Equal(t, 70, coins.Weight)
	assert.Equal(t, "GOLD_INGOT", coins.Display.Material)

	gem := vote.Rewards[1]
	assert.Equal(t, domain.RewardItem, gem.Type)
	assert.True(t, gem.IsRare())
	require.Len(t, gem.Items, 1)
	assert.Equal(t, "DIAMOND", gem.Items[0].Material)
	assert.Equal(t, 3, gem.Items[0].Amount)
	assert.Equal(t, 1, gem.Display.Amount)

	legendary := res.Crates[1]
	assert.Equal(t, "LEGENDARY", legendary.ID)
	assert.Equal(t, domain.OpenMethodEither, legendary.OpenMethod)
	assert.Equal(t, 3, legendary.DailyLimit)
	assert.Equal(t, "lootcrates.crate.legendary", legendary.RequiredPermission)
	assert.True(t, legendary.Pity.Enabled)
	assert.Equal(t, 5, legendary.Pity.Threshold)
	assert.InDelta(t, 2.0, legendary.Pity.RareWeightMultiplier, 0.001)
	require.NotNil(t, legendary.AvailableFrom)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), *legendary.AvailableFrom)
	assert.Nil(t, legendary.AvailableUntil, "invalid date is treated as absent")

	// mapping-form rewards keep document order and take their key as id
	require.Len(t, legendary.Rewards, 2)
	assert.Equal(t, "common_xp", legendary.Rewards[0].ID)
	assert.Equal(t, 100, legendary.Rewards[0].Experience)
	crown := legendary.Rewards[1]
	assert.Equal(t, "crown", crown.ID)
	assert.Equal(t, domain.RewardSpecialItem, crown.Type)
	assert.Equal(t, domain.SpecialChoice, crown.SpecialMode)
	assert.Equal(t, []string{"crown", "scepter"}, crown.SpecialTemplates)
	assert.Equal(t, 3, crown.SpecialLevel)
	assert.True(t, crown.IsRare())
}

func TestParse_Defaults(t *testing.T) {
	res := parseString(t, `
crates:
  basic:
    rewards:
      - type: COMMAND
        commands: ["say hi {player}"]
`)
	require.Empty(t, res.Errors)
	require.Len(t, res.Crates, 1)

	c := res.Crates[0]
	assert.Equal(t, "BASIC", c.ID)
	assert.Equal(t, "basic", c.Display)
	assert.Equal(t, DefaultTier, c.Tier)
	assert.True(t, c.Enabled)
	assert.Equal(t, domain.OpenMethodPhysicalBlock, c.OpenMethod)
	assert.Equal(t, DefaultKeyDisplay, c.Key.Display)
	assert.Equal(t, DefaultKeyMaterial, c.Key.Material)
	assert.Equal(t, int64(0), c.CooldownSeconds)
	assert.Equal(t, DefaultDailyLimit, c.DailyLimit)
	assert.False(t, c.Pity.Enabled)
	assert.Equal(t, DefaultPityThreshold, c.Pity.Threshold)
	assert.Nil(t, c.AvailableFrom)

	r := c.Rewards[0]
	assert.Equal(t, DefaultRewardID, r.ID)
	assert.Equal(t, DefaultRewardWeight, r.Weight)
	assert.Equal(t, DefaultTier, r.Tier)
	assert.Equal(t, domain.RewardCommand, r.Type)
	assert.Equal(t, []string{"say hi {player}"}, r.Commands)
}

func TestParse_RewardTypes(t *testing.T) {
	res := parseString(t, `
crates:
  mixed:
    rewards:
      - id: mx
        type: money_xp
        money: 12.5
        xp: 7
      - id: bundle
        type: BUNDLE
        money: 3
        experience: 4
        items:
          - material: bread
            amount: 0
      - id: pts
        type: CURRENCY
        amount: 9
      - id: gems
        type: CURRENCY
        currency_type: GEMS
        amount: 2
      - id: key_direct
        type: KEY
        crate: vote
        amount: 4
      - id: key_self
        type: KEY
      - id: mystery
        type: TELEPORT
      - id: special
        type: SPECIAL_ITEM
        template: sword
        amount: 2
`)
	require.Empty(t, res.Errors)
	rewards := res.Crates[0].Rewards
	require.Len(t, rewards, 8)

	assert.Equal(t, domain.RewardBundle, rewards[0].Type)
	assert.InDelta(t, 12.5, rewards[0].CurrencyAmount, 0.001)
	assert.Equal(t, 7, rewards[0].Experience)
	assert.Empty(t, rewards[0].BundleName)

	assert.Equal(t, DefaultBundleName, rewards[1].BundleName)
	assert.InDelta(t, 3.0, rewards[1].CurrencyPaid(), 0.001)
	assert.Equal(t, 4, rewards[1].Experience)
	require.Len(t, rewards[1].Items, 1)
	assert.Equal(t, "BREAD", rewards[1].Items[0].Material)
	assert.Equal(t, 1, rewards[1].Items[0].Amount, "amount clamps to one")

	assert.Equal(t, domain.RewardGenericCurrency, rewards[2].Type)
	assert.Equal(t, DefaultCurrencyType, rewards[2].CurrencyType)
	assert.Equal(t, "GEMS", rewards[3].CurrencyType)
	assert.Zero(t, rewards[3].CurrencyPaid())

	assert.Equal(t, "VOTE", rewards[4].KeyCrateID)
	assert.Equal(t, 4, rewards[4].KeyAmount)
	assert.Empty(t, rewards[5].KeyCrateID)
	assert.Equal(t, 1, rewards[5].KeyAmount)

	assert.Equal(t, domain.RewardItem, rewards[6].Type, "unknown type falls back to item")
	require.Len(t, rewards[6].Items, 1)
	assert.Equal(t, DefaultItemMaterial, rewards[6].Items[0].Material)

	assert.Equal(t, domain.SpecialSingle, rewards[7].SpecialMode)
	assert.Equal(t, []string{"sword"}, rewards[7].SpecialTemplates)
	require.Len(t, rewards[7].Items, 1)
	assert.Equal(t, 2, rewards[7].Items[0].Amount)
}

func TestParse_BadRewardSkippedCrateKept(t *testing.T) {
	res := parseString(t, `
crates:
  partial:
    rewards:
      - id: ok
        type: MONEY
        amount: 1
      - id: negative
        weight: -3
      - "just a string"
      - id: ok2
        type: EXPERIENCE
        amount: 5
`)
	require.Len(t, res.Crates, 1)
	assert.Len(t, res.Crates[0].Rewards, 2)

	require.Len(t, res.Errors, 2)
	assert.Equal(t, 1, res.Errors[0].RewardIndex)
	assert.Equal(t, 2, res.Errors[1].RewardIndex)
	for _, e := range res.Errors {
		assert.Equal(t, "PARTIAL", e.CrateID)
		assert.True(t, errors.Is(e, domain.ErrInvalidDefinition))
	}
}

func TestParse_BadCrateSkipped(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"negative cooldown", "cooldown: -1"},
		{"invalid open method", "open_method: TELEPATHY"},
		{"daily limit below minus one", "daily_limit: -2"},
		{"enabled not a bool", "enabled: sometimes"},
		{"negative pity multiplier", "pity: {enabled: true, rare_weight_multiplier: -1}"},
		{"rewards scalar", "rewards: 5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := parseString(t, "crates:\n  bad:\n    "+tt.body+"\n  good:\n    rewards: []\n")
			require.Len(t, res.Crates, 1)
			assert.Equal(t, "GOOD", res.Crates[0].ID)
			require.Len(t, res.Errors, 1)
			assert.Equal(t, "BAD", res.Errors[0].CrateID)
			assert.Equal(t, -1, res.Errors[0].RewardIndex)
		})
	}
}

func TestParse_MalformedDocument(t *testing.T) {
	res := parseString(t, "crates: [unclosed")
	assert.Empty(t, res.Crates)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "test.yml", res.Errors[0].Source)

	res = parseString(t, "")
	assert.Empty(t, res.Crates)
	assert.Empty(t, res.Errors)

	res = parseString(t, "crates: 3")
	require.Len(t, res.Errors, 1)
}

func TestParse_JSONSource(t *testing.T) {
	src, err := FileSource("testdata/extra.json")
	require.NoError(t, err)

	res := newTestParser(t).Parse(context.Background(), src)
	require.Len(t, res.Crates, 1)
	assert.Equal(t, "STARTER", res.Crates[0].ID)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "BROKEN", res.Errors[0].CrateID)

	rewards := res.Crates[0].Rewards
	require.Len(t, rewards, 2)
	assert.Equal(t, 16, rewards[0].Items[0].Amount)
	assert.Equal(t, "VOTE", rewards[1].KeyCrateID)
	assert.Equal(t, 2, rewards[1].KeyAmount)
}

func TestParseOpenMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.OpenMethod
		wantErr bool
	}{
		{"", domain.OpenMethodPhysicalBlock, false},
		{"block", domain.OpenMethodPhysicalBlock, false},
		{"Physical_Block", domain.OpenMethodPhysicalBlock, false},
		{"GUI", domain.OpenMethodMenu, false},
		{"menu", domain.OpenMethodMenu, false},
		{"BOTH", domain.OpenMethodEither, false},
		{"either", domain.OpenMethodEither, false},
		{"portal", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseOpenMethod(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
