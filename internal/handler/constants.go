package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidLimit          = "Invalid limit parameter"
	ErrMsgInvalidChannelID      = "Invalid channel id"
	ErrMsgInvalidUserID         = "Invalid user id"
	ErrMsgRuleNotFound          = "No spawn rule for that channel"

	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgInvalidRuleError   = "Invalid spawn rule. Probability must be 0..1, interval 0..604800, and at least one enabled."
	ErrMsgNotPermittedError  = "You are not allowed to do that"
	ErrMsgOnCooldownError    = "Action is on cooldown. Try again later"
	ErrMsgUnavailableError   = "Storage is temporarily unavailable. Please try again later."
	ErrMsgChannelActiveError = "There is already an active spawn here"
	ErrMsgEmptyCatalogError  = "The item catalog is empty"
)

// Success messages for API responses
const (
	MsgRuleRemoved = "Spawn rule removed"
)

// Health responses
const (
	HealthStatusOK          = "ok"
	HealthStatusUnavailable = "unavailable"
	HealthMsgDatabaseFailed = "database connection failed"
)

// Query parameters and defaults
const (
	QueryParamGuildID  = "guild_id"
	QueryParamLimit    = "limit"
	QueryParamLanguage = "lang"

	URLParamChannelID = "channelID"
	URLParamUserID    = "userID"

	DefaultLeaderboardLimit = 10
	MaxLeaderboardLimit     = 100
	MaxIDLength             = 32
)

// Log messages
const (
	LogMsgReadinessFailed   = "Readiness check failed"
	LogMsgEncodeFailed      = "Failed to encode JSON response"
	LogMsgWriteFailed       = "Failed to write response buffer"
	LogMsgDecodeFailed      = "Failed to decode request"
	LogMsgRequestDecoded    = "Request decoded"
	LogMsgServiceError      = "Service error"
	LogMsgRuleSetViaAPI     = "Spawn rule set via API"
	LogMsgRuleRemovedViaAPI = "Spawn rule removed via API"
)
