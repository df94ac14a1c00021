package event

// Event schema versioning
const (
	// EventSchemaVersion is the current event schema version
	EventSchemaVersion = "1.0"
)

// MetadataKeyRequestID carries the publishing request's id so handlers and the dead-letter file can correlate
const MetadataKeyRequestID = "request_id"

// Dead letter file configuration
const (
	// DeadLetterFilePermissions is the file permission mode for dead-letter files
	DeadLetterFilePermissions = 0644
)

// Log message constants
const (
	LogMsgHandlerErrorFormat   = "%d handler(s) failed for event %s: %w"
	LogMsgDeadLettered         = "Event dead-lettered"
	LogMsgDeadLetterDecodeFail = "Failed to decode dead-letter payload"
)
