package sqlite

// DSNParams are appended to the database path when opening
const DSNParams = "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"

const EmptyPayloadJSON = `{}`

// Error messages, also used as StorageError.Op
const (
	ErrMsgPathRequired = "sqlite path is required"
	ErrMsgOpenFailed   = "open sqlite db"
	ErrMsgPingFailed   = "ping sqlite db"

	OpGetActorData         = "get actor data"
	OpUpsertActorData      = "upsert actor data"
	OpUpsertActorDataBatch = "upsert actor data batch"
	OpLoadCooldowns        = "load cooldowns"
	OpUpsertCooldown       = "upsert cooldown"
	OpDeleteCooldown       = "delete cooldown"
	OpDeleteExpired        = "delete expired cooldowns"
	OpLoadPity             = "load pity counters"
	OpUpsertPity           = "upsert pity counter"
	OpDeletePity           = "delete pity counter"
	OpEnqueueReward        = "enqueue reward"
	OpCountQueued          = "count queued rewards"
	OpListQueued           = "list queued rewards"
	OpPing                 = "ping"
)

// ============================================================================
// SQL (timestamps are unix milliseconds, UTC)
// ============================================================================

const (
	sqlGetActorData = `
SELECT actor_id, username, total_opens, currency_earned, items_received, rare_finds,
       last_open_at, created_at, updated_at, version
FROM lc_player_data
WHERE actor_id = ?`

	sqlUpsertActorData = `
INSERT INTO lc_player_data (actor_id, username, total_opens, currency_earned, items_received,
                            rare_finds, last_open_at, created_at, updated_at, version)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (actor_id) DO UPDATE SET
    username        = excluded.username,
    total_opens     = excluded.total_opens,
    currency_earned = excluded.currency_earned,
    items_received  = excluded.items_received,
    rare_finds      = excluded.rare_finds,
    last_open_at    = excluded.last_open_at,
    updated_at      = excluded.updated_at,
    version         = excluded.version
WHERE lc_player_data.version <= excluded.version`

	sqlLoadActiveCooldowns = `SELECT actor_id, crate_id, expires_at FROM lc_cooldowns WHERE expires_at > ?`

	sqlUpsertCooldown = `
INSERT INTO lc_cooldowns (actor_id, crate_id, expires_at) VALUES (?, ?, ?)
ON CONFLICT (actor_id, crate_id) DO UPDATE SET expires_at = excluded.expires_at`

	sqlDeleteCooldown = `DELETE FROM lc_cooldowns WHERE actor_id = ? AND crate_id = ?`

	sqlDeleteExpiredCooldown = `DELETE FROM lc_cooldowns WHERE actor_id = ? AND crate_id = ? AND expires_at <= ?`

	sqlDeleteExpiredCooldowns = `DELETE FROM lc_cooldowns WHERE expires_at <= ?`

	sqlLoadPityCounters = `SELECT actor_id, crate_id, count FROM lc_pity_counters`

	sqlUpsertPityCounter = `
INSERT INTO lc_pity_counters (actor_id, crate_id, count, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT (actor_id, crate_id) DO UPDATE SET count = excluded.count, updated_at = excluded.updated_at`

	sqlDeletePityCounter = `DELETE FROM lc_pity_counters WHERE actor_id = ? AND crate_id = ?`

	sqlEnqueueReward = `
INSERT INTO lc_offline_queue (actor_id, crate_id, reward_id, payload, created_at) VALUES (?, ?, ?, ?, ?)`

	sqlCountQueuedRewards = `SELECT COUNT(*) FROM lc_offline_queue WHERE actor_id = ?`

	sqlListQueuedRewards = `
SELECT id, actor_id, crate_id, reward_id, payload, created_at
FROM lc_offline_queue
WHERE actor_id = ?
ORDER BY id`
)
