package logger

// Accepted values for Config.Level; "warning" is an alias of "warn".
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

const (
	DefaultServiceName = "mathcatch"
	DefaultVersion     = "dev"
)

// Environments that turn on source locations.
const (
	EnvironmentDev         = "dev"
	EnvironmentDevelopment = "development"
)

// Attribute keys stamped on every record.
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
)
