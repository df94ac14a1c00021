package spawn

// MsgSpawnAnnouncement is posted to a channel when an item becomes catchable
const MsgSpawnAnnouncement = "A new Math object dropped! `%s`. Catch it by saying its name!"

// Log messages
const (
	LogMsgSpawnActivated     = "Spawn activated"
	LogMsgIntervalArmed      = "Interval spawn timer armed"
	LogMsgIntervalCancelled  = "Interval spawn timer cancelled"
	LogMsgIntervalSkipped    = "Interval firing skipped, channel occupied"
	LogMsgAnnounceFailed     = "Failed to announce spawn"
	LogMsgPublishFailed      = "Failed to publish spawn event"
	LogMsgEmptyCatalog       = "Cannot spawn, item catalog is empty"
	LogMsgTimersArmed        = "Interval spawn timers armed"
	LogMsgRuleEventDecodeErr = "Failed to decode rule change event"
)
