package cooldown

import "time"

// ActionSummon keys the per-user wait between forced spawns.
const ActionSummon = "summon"

const (
	DefaultCooldownDuration = 5 * time.Minute
	// DefaultSummonCooldown applies to users without an elevated role.
	DefaultSummonCooldown = time.Hour

	// MemoryCacheSize caps tracked (user, action) pairs in the sqlite/memory backend.
	MemoryCacheSize = 10000

	SecondsPerMinute = 60
)

// Advisory lock key derivation.
const (
	HashSeparator         = ":"
	HashMaskPositiveInt64 = 0x7FFFFFFFFFFFFFFF
)

// Queries against user_cooldowns.
const (
	SQLAdvisoryLock   = "SELECT pg_advisory_xact_lock($1)"
	SQLSelectLastUsed = `SELECT last_used_at FROM user_cooldowns WHERE user_id = $1 AND action_name = $2`
	SQLDeleteCooldown = `DELETE FROM user_cooldowns WHERE user_id = $1 AND action_name = $2`
	SQLUpsertCooldown = `
INSERT INTO user_cooldowns (user_id, action_name, last_used_at)
VALUES ($1, $2, $3)
ON CONFLICT (user_id, action_name) DO UPDATE SET last_used_at = EXCLUDED.last_used_at`
)

const (
	ErrMsgCheckCooldownFailed     = "check cooldown: %w"
	ErrMsgBeginTransactionFailed  = "begin cooldown tx: %w"
	ErrMsgAcquireLockFailed       = "acquire cooldown lock: %w"
	ErrMsgGetCooldownTxFailed     = "read cooldown under lock: %w"
	ErrMsgUpdateCooldownFailed    = "record cooldown: %w"
	ErrMsgCommitTransactionFailed = "commit cooldown tx: %w"
	ErrMsgResetCooldownFailed     = "reset cooldown: %w"
	ErrMsgGetLastUsedFailed       = "read last used: %w"

	// Shown to the user, so phrased as a sentence.
	ErrFmtCooldownWithMinutes = "You can %s again in %dm %ds"
	ErrFmtCooldownSecondsOnly = "You can %s again in %ds"
)

const (
	LogMsgRaceConditionDetected = "Concurrent summon lost the cooldown race"
	LogMsgCooldownEnforced      = "Cooldown recorded"
)
