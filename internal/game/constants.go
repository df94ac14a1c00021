package game

// MinNewItemChance is the floor on the chance that a summon picks an item the user does not own
const MinNewItemChance = 0.2

// Messages shown to users
const (
	MsgChannelActive = "There is already an active spawn here"
)

// Log messages
const (
	LogMsgIgnoredCommand     = "Ignoring prefixed command message"
	LogMsgSummoned           = "Spawn summoned"
	LogMsgOwnedLookupFailed  = "Falling back to uniform summon selection"
	LogMsgCatchPersistFailed = "Catch stands but was not recorded"
)
