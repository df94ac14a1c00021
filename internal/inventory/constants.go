package inventory

import "time"

// Owned-items cache sizing
const (
	OwnedCacheSize = 1024
	OwnedCacheTTL  = 5 * time.Minute
)

// CatchQuantity is the amount credited per catch
const CatchQuantity = 1

// DefaultLeaderboardLimit is used when a caller asks for a non-positive limit
const DefaultLeaderboardLimit = 10

// Log messages
const (
	LogMsgCatchRecorded  = "Catch recorded"
	LogMsgPersistFailed  = "Failed to persist catch"
	LogMsgPublishFailed  = "Failed to publish persist failure"
	LogMsgPruned         = "Pruned inventory rows for removed items"
	LogMsgUnknownInvItem = "Inventory holds an item missing from the catalog"
)
