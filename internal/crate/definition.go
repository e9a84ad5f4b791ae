package crate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/osse101/LootCrates_Go/internal/domain"
)

// scalarString accepts a JSON string or number, e.g. reward ids written as bare integers
type scalarString string

func (s *scalarString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = scalarString(str)
		return nil
	}
	*s = scalarString(string(data))
	return nil
}

type rawKey struct {
	Display         *string  `json:"display"`
	Material        string   `json:"material"`
	CustomModelData *int     `json:"custom_model_data"`
	Lore            []string `json:"lore"`
	Glow            bool     `json:"glow"`
}

type rawPity struct {
	Enabled              bool     `json:"enabled"`
	Threshold            *int     `json:"threshold"`
	RareWeightMultiplier *float64 `json:"rare_weight_multiplier" validate:"omitempty,gte=0"`
}

type rawCrate struct {
	Display            *string         `json:"display"`
	Tier               string          `json:"tier"`
	Enabled            *bool           `json:"enabled"`
	Key                *rawKey         `json:"key"`
	OpenMethod         string          `json:"open_method"`
	Cooldown           int64           `json:"cooldown" validate:"gte=0"`
	DailyLimit         *int            `json:"daily_limit" validate:"omitempty,gte=-1"`
	RequiredPermission string          `json:"required_permission" validate:"max=256"`
	Pity               *rawPity        `json:"pity"`
	AvailableFrom      string          `json:"available_from"`
	AvailableUntil     string          `json:"available_until"`
	Rewards            json.RawMessage `json:"rewards"`
}

type rawItem struct {
	Material        string   `json:"material"`
	Amount          *int     `json:"amount"`
	Name            string   `json:"name"`
	Lore            []string `json:"lore"`
	CustomModelData *int     `json:"custom_model_data"`
	Enchantments    []string `json:"enchantments"`
	Flags           []string `json:"flags"`
}

type rawKeyGrant struct {
	Crate  string `json:"crate"`
	Amount *int   `json:"amount"`
}

type rawReward struct {
	ID           *scalarString `json:"id"`
	Weight       *int          `json:"weight" validate:"omitempty,gte=0"`
	Type         string        `json:"type"`
	Tier         string        `json:"tier"`
	Amount       *float64      `json:"amount"`
	Money        float64       `json:"money"`
	XP           int           `json:"xp"`
	Experience   int64         `json:"experience"`
	Items        []rawItem     `json:"items"`
	Item         *rawItem      `json:"item"`
	Commands     []string      `json:"commands" validate:"dive,required"`
	Key          *rawKeyGrant  `json:"key"`
	Crate        string        `json:"crate"`
	CurrencyType string        `json:"currency_type"`
	BundleName   *string       `json:"bundle_name"`
	Template     string        `json:"template"`
	Templates    []string      `json:"templates"`
	Level        *int          `json:"level"`
	Display      *rawItem      `json:"display"`
}

// toItemStack applies the item defaults: PAPER and at least one
func (ri *rawItem) toItemStack() domain.ItemStack {
	if ri == nil {
		return domain.ItemStack{Material: DefaultItemMaterial, Amount: 1}
	}
	material := strings.ToUpper(strings.TrimSpace(ri.Material))
	if material == "" {
		material = DefaultItemMaterial
	}
	amount := 1
	if ri.Amount != nil {
		amount = max(1, *ri.Amount)
	}
	return domain.ItemStack{
		Material:        material,
		Name:            ri.Name,
		Lore:            ri.Lore,
		CustomModelData: ri.CustomModelData,
		Enchantments:    ri.Enchantments,
		Flags:           ri.Flags,
		Amount:          amount,
	}
}

func (rk *rawKey) toKeyDefinition() domain.KeyDefinition {
	key := domain.KeyDefinition{Display: DefaultKeyDisplay, Material: DefaultKeyMaterial}
	if rk == nil {
		return key
	}
	if rk.Display != nil {
		key.Display = *rk.Display
	}
	if m := strings.ToUpper(strings.TrimSpace(rk.Material)); m != "" {
		key.Material = m
	}
	key.CustomModelData = rk.CustomModelData
	key.Lore = rk.Lore
	key.Glow = rk.Glow
	return key
}

func (rp *rawPity) toPityConfig() domain.PityConfig {
	cfg := domain.PityConfig{Threshold: DefaultPityThreshold, RareWeightMultiplier: DefaultRareWeightMultiplier}
	if rp == nil {
		return cfg
	}
	cfg.Enabled = rp.Enabled
	if rp.Threshold != nil {
		cfg.Threshold = *rp.Threshold
	}
	if rp.RareWeightMultiplier != nil {
		cfg.RareWeightMultiplier = *rp.RareWeightMultiplier
	}
	return cfg
}

// parseOpenMethod accepts both the legacy GUI/BLOCK/BOTH names and the current ones
func parseOpenMethod(s string) (domain.OpenMethod, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "BLOCK", "PHYSICAL_BLOCK":
		return domain.OpenMethodPhysicalBlock, nil
	case "GUI", "MENU":
		return domain.OpenMethodMenu, nil
	case "BOTH", "EITHER":
		return domain.OpenMethodEither, nil
	}
	return "", fmt.Errorf("%s: %q", ErrMsgInvalidOpenMethod, s)
}

// parseRewardType maps a configured type string to the reward union.
// MONEY_XP is a bundle with money and xp; unknown names fall back to item.
func parseRewardType(s string) (domain.RewardType, domain.SpecialMode) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "MONEY":
		return domain.RewardCurrency, ""
	case "MONEY_XP", "BUNDLE":
		return domain.RewardBundle, ""
	case "EXPERIENCE":
		return domain.RewardExperience, ""
	case "COMMAND":
		return domain.RewardCommand, ""
	case "KEY", "KEY_GRANT":
		return domain.RewardKeyGrant, ""
	case "CURRENCY", "GENERIC_CURRENCY":
		return domain.RewardGenericCurrency, ""
	case "SPECIAL_ITEM", "SPECIALITEM":
		return domain.RewardSpecialItem, domain.SpecialSingle
	case "SPECIALITEM_CHOICE":
		return domain.RewardSpecialItem, domain.SpecialChoice
	case "SPECIALITEM_SET":
		return domain.RewardSpecialItem, domain.SpecialSet
	default:
		return domain.RewardItem, ""
	}
}

// toReward builds a domain reward. fallbackID names rewards declared in mapping form without an id.
func (rr *rawReward) toReward(fallbackID string) domain.Reward {
	typ, mode := parseRewardType(rr.Type)
	r := domain.Reward{
		ID:     DefaultRewardID,
		Weight: DefaultRewardWeight,
		Type:   typ,
		Tier:   DefaultTier,
	}
	switch {
	case rr.ID != nil && *rr.ID != "":
		r.ID = string(*rr.ID)
	case fallbackID != "":
		r.ID = fallbackID
	}
	if rr.Weight != nil {
		r.Weight = *rr.Weight
	}
	if rr.Tier != "" {
		r.Tier = rr.Tier
	}

	amount := 0.0
	if rr.Amount != nil {
		amount = *rr.Amount
	}

	switch typ {
	case domain.RewardCurrency:
		r.CurrencyAmount = amount
	case domain.RewardExperience:
		r.Experience = int(amount)
	case domain.RewardItem:
		r.Items = rr.itemList(amount)
	case domain.RewardCommand:
		r.Commands = rr.Commands
	case domain.RewardKeyGrant:
		r.KeyAmount = 1
		if rr.Key != nil {
			r.KeyCrateID = domain.NormalizeCrateID(rr.Key.Crate)
			if rr.Key.Amount != nil {
				r.KeyAmount = *rr.Key.Amount
			}
		} else {
			r.KeyCrateID = domain.NormalizeCrateID(rr.Crate)
			if rr.Amount != nil {
				r.KeyAmount = int(amount)
			}
		}
	case domain.RewardBundle:
		if strings.EqualFold(strings.TrimSpace(rr.Type), "MONEY_XP") {
			r.CurrencyAmount = rr.Money
			r.Experience = rr.XP
			break
		}
		r.BundleName = DefaultBundleName
		if rr.BundleName != nil {
			r.BundleName = *rr.BundleName
		}
		for i := range rr.Items {
			r.Items = append(r.Items, rr.Items[i].toItemStack())
		}
		r.CurrencyAmount = rr.Money
		r.Experience = int(rr.Experience)
	case domain.RewardGenericCurrency:
		r.CurrencyType = DefaultCurrencyType
		if rr.CurrencyType != "" {
			r.CurrencyType = rr.CurrencyType
		}
		r.CurrencyAmount = amount
	case domain.RewardSpecialItem:
		r.SpecialMode = mode
		r.SpecialLevel = DefaultSpecialLevel
		if rr.Level != nil {
			r.SpecialLevel = *rr.Level
		}
		r.SpecialExperience = rr.Experience
		if mode == domain.SpecialSingle {
			if rr.Template != "" {
				r.SpecialTemplates = []string{rr.Template}
			}
		} else {
			r.SpecialTemplates = rr.Templates
		}
		count := 1
		if rr.Amount != nil {
			count = max(1, int(amount))
		}
		// Stand-ins handed out when no special item provider is present
		for _, tmpl := range r.SpecialTemplates {
			r.Items = append(r.Items, domain.ItemStack{Material: DefaultItemMaterial, Name: tmpl, Amount: count})
		}
	}

	if rr.Display != nil {
		r.Display = rr.Display.toItemStack().WithAmount(1)
	} else {
		r.Display = defaultDisplay(&r)
	}
	return r
}

// itemList reads either the items list or the single legacy item + amount form
func (rr *rawReward) itemList(amount float64) []domain.ItemStack {
	if rr.Items != nil {
		out := make([]domain.ItemStack, 0, len(rr.Items))
		for i := range rr.Items {
			out = append(out, rr.Items[i].toItemStack())
		}
		return out
	}
	stack := rr.Item.toItemStack()
	if rr.Amount != nil {
		stack.Amount = max(1, int(amount))
	}
	return []domain.ItemStack{stack}
}

func defaultDisplay(r *domain.Reward) domain.ItemStack {
	material := DisplayMaterialCommand
	switch r.Type {
	case domain.RewardCurrency:
		material = DisplayMaterialCurrency
	case domain.RewardExperience:
		material = DisplayMaterialExperience
	case domain.RewardItem:
		if len(r.Items) > 0 {
			return r.Items[0].WithAmount(1)
		}
		material = DisplayMaterialContainer
	case domain.RewardBundle:
		if r.BundleName == "" {
			material = DisplayMaterialCurrency
		} else {
			material = DisplayMaterialContainer
		}
	case domain.RewardKeyGrant:
		material = DisplayMaterialKey
	case domain.RewardGenericCurrency:
		material = DisplayMaterialGeneric
	case domain.RewardSpecialItem:
		material = DisplayMaterialSpecial
	}
	return domain.ItemStack{Material: material, Amount: 1}
}
