package notify

// Message keys
const (
	KeyPrefix             = "general.prefix"
	KeyNoPermission       = "general.no_permission"
	KeyInvalidCrate       = "general.invalid_crate"
	KeyMaintenance        = "general.maintenance_enabled"
	KeyCrateUnavailable   = "crates.unavailable"
	KeyDailyLimit         = "crates.daily_limit"
	KeyWrongOpenMethod    = "crates.wrong_open_method"
	KeyNoRewards          = "crates.no_rewards"
	KeyOpenFailed         = "crates.open_failed"
	KeyNoKey              = "keys.no_key"
	KeyKeysGiven          = "keys.keys_given"
	KeyCooldownActive     = "cooldowns.active"
	KeyRewardReceived     = "rewards.reward_received"
	KeyRareBroadcast      = "rewards.rare_broadcast"
	KeyPityTriggered      = "rewards.pity_triggered"
	KeyOfflineRewards     = "queue.offline_rewards"
	KeyMaintenanceEnabled = "admin.maintenance_enabled"
	KeyMaintenanceOff     = "admin.maintenance_disabled"
)

// Placeholder names
const (
	PhPlayer       = "player"
	PhCrate        = "crate"
	PhCrateDisplay = "crate_display"
	PhReward       = "reward"
	PhTier         = "tier"
	PhAmount       = "amount"
	PhTime         = "time"
	PhLimit        = "limit"
	PhCount        = "count"
)

// defaultMessages is the built-in catalog; a messages file may override any entry
var defaultMessages = map[string]string{
	KeyPrefix:             "&8[&6LootCrates&8] &r",
	KeyNoPermission:       "&cYou don't have permission to do that.",
	KeyInvalidCrate:       "&cUnknown crate: {crate}",
	KeyMaintenance:        "&cCrates are under maintenance. Try again later.",
	KeyCrateUnavailable:   "&c{crate_display} &cis not available right now.",
	KeyDailyLimit:         "&cYou've opened {crate_display} &c{limit} times today.",
	KeyWrongOpenMethod:    "&c{crate_display} &ccan't be opened that way.",
	KeyNoRewards:          "&c{crate_display} &chas no rewards configured.",
	KeyOpenFailed:         "&cSomething went wrong opening {crate_display}&c.",
	KeyNoKey:              "&cYou need a key for {crate_display}&c!",
	KeyKeysGiven:          "&aYou received {amount} key(s) for {crate_display}&a.",
	KeyCooldownActive:     "&cYou must wait {time} before opening {crate_display} &cagain.",
	KeyRewardReceived:     "&aYou won {reward} &afrom {crate_display}&a!",
	KeyRareBroadcast:      "&6{player} &efound {reward} &e({tier}) in {crate_display}&e!",
	KeyPityTriggered:      "&dPity protection kicked in!",
	KeyOfflineRewards:     "&eYou have {count} rewards waiting.",
	KeyMaintenanceEnabled: "&cMaintenance mode enabled.",
	KeyMaintenanceOff:     "&aMaintenance mode disabled.",
}

// Discord embed colours
const (
	ColorRare      = 0xf1c40f
	ColorLegendary = 0xe67e22
	ColorMythic    = 0x9b59b6
	ColorDefault   = 0x2ecc71
)

const (
	ErrMsgReadCatalog  = "failed to read messages file"
	ErrMsgParseCatalog = "failed to parse messages file"
	ErrMsgDiscordSend  = "failed to send discord message"

	LogMsgNotification   = "Notification"
	LogMsgNotifyFailed   = "Notification delivery failed"
	LogMsgMissingMessage = "Message key not found"

	LogFieldActor = "actor_id"
	LogFieldKey   = "key"
	LogFieldText  = "text"
	LogFieldError = "error"
)
