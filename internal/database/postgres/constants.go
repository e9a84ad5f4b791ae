package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Queue payload written when a reward carries none
const EmptyPayloadJSON = `{}`

// Error Messages - store operations, used as StorageError.Op
const (
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
// SQL
// ============================================================================

const (
	sqlGetActorData = `
SELECT actor_id, username, total_opens, currency_earned, items_received, rare_finds,
       last_open_at, created_at, updated_at, version
FROM lc_player_data
WHERE actor_id = $1`

	// Rows only move forward; a late write of an older snapshot version is ignored.
	sqlUpsertActorData = `
INSERT INTO lc_player_data (actor_id, username, total_opens, currency_earned, items_received,
                            rare_finds, last_open_at, created_at, updated_at, version)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (actor_id) DO UPDATE SET
    username        = EXCLUDED.username,
    total_opens     = EXCLUDED.total_opens,
    currency_earned = EXCLUDED.currency_earned,
    items_received  = EXCLUDED.items_received,
    rare_finds      = EXCLUDED.rare_finds,
    last_open_at    = EXCLUDED.last_open_at,
    updated_at      = EXCLUDED.updated_at,
    version         = EXCLUDED.version
WHERE lc_player_data.version <= EXCLUDED.version`

	sqlLoadActiveCooldowns = `
SELECT actor_id, crate_id, expires_at
FROM lc_cooldowns
WHERE expires_at > $1`

	sqlUpsertCooldown = `
INSERT INTO lc_cooldowns (actor_id, crate_id, expires_at)
VALUES ($1, $2, $3)
ON CONFLICT (actor_id, crate_id) DO UPDATE SET expires_at = EXCLUDED.expires_at`

	sqlDeleteCooldown = `DELETE FROM lc_cooldowns WHERE actor_id = $1 AND crate_id = $2`

	sqlDeleteExpiredCooldown = `
DELETE FROM lc_cooldowns
WHERE actor_id = $1 AND crate_id = $2 AND expires_at <= $3`

	sqlDeleteExpiredCooldowns = `DELETE FROM lc_cooldowns WHERE expires_at <= $1`

	sqlLoadPityCounters = `SELECT actor_id, crate_id, count FROM lc_pity_counters`

	sqlUpsertPityCounter = `
INSERT INTO lc_pity_counters (actor_id, crate_id, count, updated_at)
VALUES ($1, $2, $3, NOW())
ON CONFLICT (actor_id, crate_id) DO UPDATE SET count = EXCLUDED.count, updated_at = NOW()`

	sqlDeletePityCounter = `DELETE FROM lc_pity_counters WHERE actor_id = $1 AND crate_id = $2`

	sqlEnqueueReward = `
INSERT INTO lc_offline_queue (actor_id, crate_id, reward_id, payload, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`

	sqlCountQueuedRewards = `SELECT COUNT(*) FROM lc_offline_queue WHERE actor_id = $1`

	sqlListQueuedRewards = `
SELECT id, actor_id, crate_id, reward_id, payload, created_at
FROM lc_offline_queue
WHERE actor_id = $1
ORDER BY id`
)
