package bootstrap

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files (read/write for owner, read for group/others)
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of older log files kept next to the new session file
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingMathCatch   = "Starting MathCatch"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file %s: %v\n"
)

// =============================================================================
// Storage
// =============================================================================

const (
	LogMsgStorageOpened     = "Storage opened"
	LogMsgMigrationsSkipped = "Migrations skipped, MIGRATE_ON_STARTUP is false"
	ErrMsgUnknownDriver     = "unknown database driver"
	ErrMsgOpenPostgres      = "failed to connect to postgres"
	ErrMsgOpenSQLite        = "failed to open sqlite database"
	ErrMsgMigrate           = "failed to apply migrations"
)

// =============================================================================
// Catalog
// =============================================================================

const (
	LogMsgCatalogLoaded   = "Item catalog loaded"
	LogMsgInventoryPruned = "Pruned inventory rows for items no longer in the catalog"
	ErrMsgLoadCatalog     = "failed to load item catalog"
	ErrMsgCatalogEmpty    = "item catalog has no items"
)

// =============================================================================
// Event System Configuration
// =============================================================================

const (
	LogMsgEventSystemInitialized    = "Event system initialized"
	LogMsgFailedCreateDeadLetterDir = "failed to create dead-letter directory"
	LogMsgFailedOpenDeadLetter      = "failed to open dead-letter file"
)

// Log messages for event handler registration
const (
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgDeadLetterSubscribed       = "Dead-letter writer subscribed"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
	ErrMsgFailedRegisterGauges       = "failed to register state gauges"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgShuttingDownBot      = "Disconnecting from Discord..."
	LogMsgStoppingTimers       = "Stopping spawn timers..."
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgBotCloseFailed       = "Discord session close failed"
	LogMsgExpiryShutdownFailed = "Expiry worker shutdown failed"
	LogMsgDeadLetterCloseFail  = "Dead-letter file close failed"
)
