package postgres

// Spawn rule queries
const (
	SQLListSpawnRules = `
		SELECT channel_id, guild_id, probability, interval_seconds
		FROM spawn_rules
		ORDER BY channel_id
	`

	SQLUpsertSpawnRule = `
		INSERT INTO spawn_rules (channel_id, guild_id, probability, interval_seconds, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (channel_id) DO UPDATE
		SET guild_id = EXCLUDED.guild_id,
		    probability = EXCLUDED.probability,
		    interval_seconds = EXCLUDED.interval_seconds,
		    updated_at = NOW()
	`

	SQLDeleteSpawnRule = `DELETE FROM spawn_rules WHERE channel_id = $1`
)

// Inventory queries
const (
	SQLAddItem = `
		INSERT INTO inventories (user_id, item_key, quantity, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, item_key) DO UPDATE
		SET quantity = inventories.quantity + EXCLUDED.quantity,
		    updated_at = NOW()
	`

	SQLGetInventory = `
		SELECT user_id, item_key, quantity
		FROM inventories
		WHERE user_id = $1 AND quantity > 0
		ORDER BY item_key
	`

	SQLGetLeaderboard = `
		SELECT user_id, COUNT(*) AS distinct_items
		FROM inventories
		WHERE quantity > 0
		GROUP BY user_id
		ORDER BY distinct_items DESC, user_id ASC
		LIMIT $1
	`

	SQLPruneItems = `DELETE FROM inventories WHERE NOT (item_key = ANY($1))`
)

// Role queries
const (
	SQLListRoles = `SELECT user_id, role FROM user_roles ORDER BY role, user_id`

	SQLGetUserRoles = `SELECT role FROM user_roles WHERE user_id = $1 ORDER BY role`

	SQLAddRole = `
		INSERT INTO user_roles (user_id, role) VALUES ($1, $2)
		ON CONFLICT (user_id, role) DO NOTHING
	`

	SQLRemoveRole = `DELETE FROM user_roles WHERE user_id = $1 AND role = $2`
)

// Error messages
const (
	ErrMsgListSpawnRules  = "failed to list spawn rules: %w"
	ErrMsgUpsertSpawnRule = "failed to upsert spawn rule: %w"
	ErrMsgDeleteSpawnRule = "failed to delete spawn rule: %w"
	ErrMsgAddItem         = "failed to add item: %w"
	ErrMsgGetInventory    = "failed to get inventory: %w"
	ErrMsgGetLeaderboard  = "failed to get leaderboard: %w"
	ErrMsgPruneItems      = "failed to prune items: %w"
	ErrMsgListRoles       = "failed to list roles: %w"
	ErrMsgGetUserRoles    = "failed to get user roles: %w"
	ErrMsgAddRole         = "failed to add role: %w"
	ErrMsgRemoveRole      = "failed to remove role: %w"
	ErrMsgScanRow         = "failed to scan row: %w"
)
