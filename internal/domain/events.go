package domain

// Event type names published on the event bus
const (
	EventSpawnActivated     = "spawn.activated"
	EventSpawnExpired       = "spawn.expired"
	EventItemCaught         = "catch.caught"
	EventNearMiss           = "catch.near_miss"
	EventCatchPersistFailed = "catch.persist_failed"
	EventRuleChanged        = "rule.changed"
)
