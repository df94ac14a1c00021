package config

import "time"

const (
	// Configuration file paths
	ConfigPathItems = "configs/items.csv"
)

// Storage drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Defaults
const (
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
	DefaultLogDir         = "logs"
	DefaultDeadLetterPath = "logs/catch_deadletter.jsonl"
	DefaultEnvironment    = "dev"
	DefaultVersion        = "dev"

	DefaultDBName             = "mathcatch"
	DefaultSQLitePath         = "data/mathcatch.db"
	DefaultDBMaxConns         = 10
	DefaultDBMaxConnIdleTime  = 5 * time.Minute
	DefaultDBMaxConnLifetime  = time.Hour
	DefaultFallbackDropChance = 0.02
	DefaultSummonCooldown     = time.Hour
	DefaultCommandPrefix      = "!"

	DefaultWorkerCount     = 4
	DefaultWorkerQueueSize = 256
)

// DefaultCatchKeywords are the words that signal a catch attempt
var DefaultCatchKeywords = []string{"catch", "guess"}
