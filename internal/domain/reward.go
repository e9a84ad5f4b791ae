package domain

import "strings"

// RewardType tags which payout fields of a Reward are meaningful
type RewardType string

const (
	RewardCurrency        RewardType = "currency"
	RewardExperience      RewardType = "experience"
	RewardItem            RewardType = "item"
	RewardBundle          RewardType = "bundle"
	RewardCommand         RewardType = "command"
	RewardKeyGrant        RewardType = "key_grant"
	RewardGenericCurrency RewardType = "generic_currency"
	RewardSpecialItem     RewardType = "special_item"
)

// SpecialMode says how the templates of a special_item reward are granted
type SpecialMode string

const (
	SpecialSingle SpecialMode = "single"
	SpecialChoice SpecialMode = "choice" // one template picked at random
	SpecialSet    SpecialMode = "set"    // every template
)

// IsSpecial reports whether the type belongs to the guaranteed/special set that pity may always pick
func (t RewardType) IsSpecial() bool {
	return t == RewardSpecialItem
}

// Tier keywords that classify a reward as rare-or-above. Matching is a case-insensitive substring test.
var RareTierKeywords = []string{"rare", "legendary", "mythic"}

// IsRareTier reports whether a free-form tier label is rare-or-above
func IsRareTier(tier string) bool {
	t := strings.ToLower(tier)
	for _, kw := range RareTierKeywords {
		if strings.Contains(t, kw) {
			return true
		}
	}
	return false
}

// Reward is one weighted outcome of a crate.
//
// Payout fields by Type:
//   - currency:          CurrencyAmount
//   - experience:        Experience
//   - item:              Items
//   - bundle:            BundleName, Items, CurrencyAmount, Experience
//   - command:           Commands (supports {player}, {crate}, {crate_display})
//   - key_grant:         KeyCrateID (empty = the opened crate), KeyAmount
//   - generic_currency:  CurrencyType, CurrencyAmount
//   - special_item:      SpecialTemplates, SpecialMode, SpecialLevel, SpecialExperience, Items (fallback)
type Reward struct {
	ID     string
	Weight int
	Type   RewardType
	Tier   string

	CurrencyAmount float64
	Experience     int
	Items          []ItemStack
	Commands       []string
	KeyCrateID     string
	KeyAmount      int
	CurrencyType   string
	BundleName     string

	SpecialTemplates  []string
	SpecialMode       SpecialMode
	SpecialLevel      int
	SpecialExperience int64

	Display ItemStack
}

// IsRare reports whether landing this reward counts as a rare find
func (r *Reward) IsRare() bool {
	return IsRareTier(r.Tier) || r.Type.IsSpecial()
}

// ItemCount is the number of configured item stacks, delivered or not
func (r *Reward) ItemCount() int {
	return len(r.Items)
}

// CurrencyPaid is the primary-currency amount the reward pays out
func (r *Reward) CurrencyPaid() float64 {
	switch r.Type {
	case RewardCurrency, RewardBundle:
		return r.CurrencyAmount
	default:
		return 0
	}
}

// DisplayName is the label shown to the actor when the reward lands
func (r *Reward) DisplayName() string {
	if r.Display.Name != "" {
		return r.Display.Name
	}
	return r.ID
}
