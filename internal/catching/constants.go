package catching

// Reply texts
const (
	MsgCaughtFmt = "Caught %s -> %s"
	MsgNearMiss  = "That is not the right name.."
)

// Fuzzy matching limits by normalized name length
const (
	ExactOnlyMaxLen  = 4
	OneEditMaxLen    = 8
	MaxEditsLongName = 2
)

// Log messages
const (
	LogMsgCaught        = "Item caught"
	LogMsgNearMiss      = "Near miss"
	LogMsgLostRace      = "Catch lost to an earlier claim"
	LogMsgReplyFailed   = "Failed to send catch reply"
	LogMsgPublishFailed = "Failed to publish catch event"
	LogMsgRecordFailed  = "Catch happened but could not be recorded"
)
