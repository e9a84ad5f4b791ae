package crate

// ============================================================================
// Configuration document layout
// ============================================================================

const (
	// SectionCrates is the top-level mapping of crate id to crate section
	SectionCrates = "crates"

	// DateLayout is the format of available_from / available_until
	DateLayout = "2006-01-02 15:04:05"

	SchemaCrate  = "crate.schema.json"
	SchemaReward = "reward.schema.json"
)

// Recognised crate definition file extensions
var definitionExtensions = []string{".yml", ".yaml", ".json"}

// ============================================================================
// Defaults
// ============================================================================

const (
	DefaultTier                 = "common"
	DefaultKeyDisplay           = "&eKey"
	DefaultKeyMaterial          = "TRIPWIRE_HOOK"
	DefaultDailyLimit           = -1
	DefaultPityThreshold        = 10
	DefaultRareWeightMultiplier = 2.0

	DefaultRewardID     = "unknown"
	DefaultRewardWeight = 1
	DefaultItemMaterial = "PAPER"
	DefaultBundleName   = "Reward Bundle"
	DefaultCurrencyType = "PLAYER_POINTS"
	DefaultSpecialLevel = 1
)

// Display materials used when a reward has no display section
const (
	DisplayMaterialCurrency   = "GOLD_INGOT"
	DisplayMaterialExperience = "EXPERIENCE_BOTTLE"
	DisplayMaterialContainer  = "CHEST"
	DisplayMaterialCommand    = "PAPER"
	DisplayMaterialKey        = "TRIPWIRE_HOOK"
	DisplayMaterialGeneric    = "EMERALD"
	DisplayMaterialSpecial    = "NETHER_STAR"
)

// ============================================================================
// Error messages
// ============================================================================

const (
	ErrMsgReadSourceFailed    = "failed to read crate source"
	ErrMsgReadDirFailed       = "failed to read crates directory"
	ErrMsgParseDocument       = "failed to parse crate document"
	ErrMsgSectionNotMapping   = "'crates' must be a mapping of id to crate section"
	ErrMsgCrateNotMapping     = "crate section must be a mapping"
	ErrMsgEmptyCrateID        = "crate id is empty"
	ErrMsgRewardsShape        = "rewards must be a list or a mapping"
	ErrMsgInvalidOpenMethod   = "invalid open_method"
	ErrMsgSchemaRegistration  = "failed to register crate schemas"
	ErrMsgUnsupportedYAMLNode = "unsupported YAML node"
)

// ============================================================================
// Log messages and fields
// ============================================================================

const (
	LogMsgCrateLoaded        = "Crate loaded"
	LogMsgDefinitionSkipped  = "Skipping invalid crate definition"
	LogMsgRewardSkipped      = "Skipping invalid reward"
	LogMsgInvalidDate        = "Invalid availability date, treating as absent"
	LogMsgSourceUnreadable   = "Skipping unreadable crate source"
	LogMsgRegistryReloaded   = "Crate registry reloaded"
	LogMsgDuplicateCrate     = "Crate redefined by later source"
	LogMsgCrateWithoutReward = "Crate has no usable rewards"

	LogFieldSource  = "source"
	LogFieldCrateID = "crate_id"
	LogFieldReward  = "reward_index"
	LogFieldField   = "field"
	LogFieldValue   = "value"
	LogFieldError   = "error"
	LogFieldCount   = "count"
	LogFieldErrors  = "errors"
	LogFieldSources = "sources"

	LogFieldPrevSource = "previous_source"
)
