package discord

import "github.com/bwmarrin/discordgo"

// Friendly message constants for Discord responses
const (
	MsgNotPermitted   = "🔒 **Not Allowed**\nOnly spawn admins can do that."
	MsgCooldownActive = "⏳ **Whoa there!**\nYou need to wait a bit before doing that again."
	MsgChannelActive  = "🎯 There is already an active spawn here"
	MsgEmptyCatalog   = "📭 **No Items**\nThe item catalog is empty."
	MsgInvalidRule    = "⚠️ **Invalid Rule**\nProbability must be between 0 and 1 and the interval between 0 and 604800 seconds."
	MsgInvalidRole    = "⚠️ **Unknown Role**"
	MsgUnavailable    = "💾 **Storage Unavailable**\nPlease try again in a moment."
	MsgGenericError   = "❌ Something went wrong."

	MsgPong              = "Pong! 🏓"
	MsgSummoned          = "🔮 A Math object has been summoned!"
	MsgRuleRemoved       = "Spawn rule removed for this channel."
	MsgNoRule            = "This channel has no spawn rule."
	MsgNoRules           = "No spawn rules in this server."
	MsgInventoryEmpty    = "Nothing caught yet."
	MsgNothingRemaining  = "Everything has been caught! 🎉"
	MsgLeaderboardEmpty  = "Nobody has caught anything yet."
	MsgRoleGrantedFmt    = "Granted **%s** to <@%s>."
	MsgRoleRevokedFmt    = "Revoked **%s** from <@%s>."
	MsgRolesReset        = "All stored roles cleared."
	MsgProbabilitySetFmt = "Spawn probability set to **%g** in <#%s>."
	MsgIntervalSetFmt    = "Interval spawns every **%ds** in <#%s>."
	MsgCountObjectsFmt   = "There are **%s** Math objects to catch."
	MsgCompletionFmt     = "<@%s> has caught **%s** of **%s** Math objects (%.2f%%)."
	MsgWaitForFmt        = "%s\nWait for: **%s**"
	MsgTruncated         = "\n…"
)

// Embed colors
const (
	ColorInfo    = 0x3498db
	ColorSuccess = 0x2ecc71
	ColorWarn    = 0xf39c12
	ColorPurple  = 0x9b59b6
)

// Footer constants for standardized embed footers
const (
	FooterMathCatch      = "MathCatch"
	FooterMathCatchAdmin = "MathCatch Admin"
)

// Limits imposed by Discord
const (
	MaxEmbedDescription = 4096
	MaxEmbedFieldValue  = 1024
	MaxEmbedFields      = 25
)

// Command and option names
const (
	CmdPing         = "ping"
	CmdSpawnRules   = "spawnrules"
	CmdSummon       = "summon"
	CmdInventory    = "inventory"
	CmdCompletion   = "completion"
	CmdRemaining    = "remaining"
	CmdLeaderboard  = "leaderboard"
	CmdCountObjects = "countobjects"
	CmdRole         = "role"

	SubProbability = "probability"
	SubTime        = "time"
	SubRemove      = "remove"
	SubList        = "list"
	SubStatus      = "status"
	SubAdd         = "add"
	SubReset       = "reset"

	OptValue   = "value"
	OptSeconds = "seconds"
	OptUser    = "user"
	OptRole    = "role"
	OptLimit   = "limit"
)

// DefaultLeaderboardSize is the number of users /leaderboard shows without a limit option
const DefaultLeaderboardSize = 10

// Intents the bot needs: slash commands plus reading channel messages for catches
const Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent

// Log messages
const (
	LogMsgBotReady          = "Bot is ready"
	LogMsgBotRunning        = "Discord bot is now running"
	LogMsgCommandsChecking  = "Checking Discord commands..."
	LogMsgCommandsForced    = "Force update enabled - replacing all commands"
	LogMsgCommandsUnchanged = "Commands unchanged, skipping registration"
	LogMsgCommandsChanged   = "Commands changed, updating..."
	LogMsgCommandsUpdated   = "Commands updated successfully"
	LogMsgDeferFailed       = "Failed to send deferred response"
	LogMsgEditFailed        = "Failed to edit interaction response"
	LogMsgRespondFailed     = "Failed to respond to interaction"
	LogMsgCommandFailed     = "Command failed"
	LogMsgUnknownCommand    = "Unknown command"
)
