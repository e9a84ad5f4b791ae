package domain

import "slices"

// ItemStack is a host-agnostic description of an inventory item
type ItemStack struct {
	Material        string   `json:"material"`
	Name            string   `json:"name,omitempty"`
	Lore            []string `json:"lore,omitempty"`
	CustomModelData *int     `json:"custom_model_data,omitempty"`
	Enchantments    []string `json:"enchantments,omitempty"`
	Flags           []string `json:"flags,omitempty"`
	Glow            bool     `json:"glow,omitempty"`
	Amount          int      `json:"amount"`
}

// IsEmpty reports whether the slot holds nothing
func (s ItemStack) IsEmpty() bool {
	return s.Material == "" || s.Amount <= 0
}

// Similar compares two stacks ignoring their amounts
func (s ItemStack) Similar(other ItemStack) bool {
	if s.Material != other.Material || s.Name != other.Name || s.Glow != other.Glow {
		return false
	}
	if (s.CustomModelData == nil) != (other.CustomModelData == nil) {
		return false
	}
	if s.CustomModelData != nil && *s.CustomModelData != *other.CustomModelData {
		return false
	}
	return slices.Equal(s.Lore, other.Lore) &&
		slices.Equal(s.Enchantments, other.Enchantments) &&
		slices.Equal(s.Flags, other.Flags)
}

// WithAmount returns a copy of the stack holding amount items
func (s ItemStack) WithAmount(amount int) ItemStack {
	c := s
	c.Lore = slices.Clone(s.Lore)
	c.Enchantments = slices.Clone(s.Enchantments)
	c.Flags = slices.Clone(s.Flags)
	c.Amount = amount
	return c
}
