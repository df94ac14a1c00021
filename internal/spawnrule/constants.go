package spawnrule

// Error message formats
const (
	ErrMsgProbabilityRangeFmt = "probability must be in (0, 1], got %v"
	ErrMsgIntervalRangeFmt    = "interval must be in [%d, %d] seconds, got %d"
	ErrMsgNothingEnabled      = "probability and interval cannot both be disabled"
	ErrMsgNegativeValue       = "probability and interval must not be negative"
	ErrMsgMissingChannel      = "channel id is required"
	ErrMsgImportDecode        = "failed to decode rule file"
	ErrMsgImportRuleFmt       = "rule for channel %s"
)

// Log messages
const (
	LogMsgRulesLoaded     = "Spawn rules loaded"
	LogMsgRuleSet         = "Spawn rule set"
	LogMsgRuleRemoved     = "Spawn rule removed"
	LogMsgRuleWriteFailed = "Failed to persist spawn rule"
	LogMsgPublishFailed   = "Failed to publish rule change"
)
