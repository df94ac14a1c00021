package database

// Storage drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Database Connection Pool Constants
const (
	// DefaultMinConnections is the minimum number of connections to maintain in the pool
	DefaultMinConnections = 2
)

// SQLite connection settings
const (
	// SQLiteDSNParams enables WAL and waits on a locked database instead of failing
	SQLiteDSNParams = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	// SQLiteMaxOpenConns serializes writers; sqlite allows one at a time
	SQLiteMaxOpenConns = 1
)

// Migration directories inside the embedded filesystem
const (
	MigrationsDirPostgres = "migrations/postgres"
	MigrationsDirSQLite   = "migrations/sqlite"
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgSQLitePathRequired      = "sqlite path is required"
	ErrMsgFailedToOpenSQLite      = "failed to open sqlite database"
	ErrMsgUnknownDriver           = "unknown storage driver"
	ErrMsgFailedToLoadMigrations  = "failed to load migrations"
	ErrMsgMigrationFailed         = "migration failed"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgOpenedSQLite                    = "Opened sqlite database"
	LogMsgMigrationApplied                = "Applied migration"
	LogMsgMigrationsUpToDate              = "Database schema is up to date"
)
