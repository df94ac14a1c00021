package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int    `validate:"min=1,max=65535"`
	LogLevel    string `validate:"oneof=debug info warn warning error DEBUG INFO WARN WARNING ERROR"`
	LogFormat   string `validate:"oneof=json text"`
	LogDir      string
	Environment string
	Version     string
	APIKey      string // API key for the admin HTTP API

	// TrustedProxies may set X-Forwarded-For
	TrustedProxies []string
	DeadLetterPath string

	// Discord
	DiscordToken       string
	DiscordAppID       string
	DiscordForceUpdate bool

	// Storage
	DBDriver          string `validate:"oneof=postgres sqlite"`
	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int           `validate:"min=1"`
	DBMaxConnIdleTime time.Duration `validate:"gte=0"`
	DBMaxConnLifetime time.Duration `validate:"gte=0"`
	SQLitePath        string
	MigrateOnStartup  bool

	// Game
	ItemsPath          string        `validate:"required"`
	SpawnExpiry        time.Duration `validate:"gte=0"`
	FallbackDropChance float64       `validate:"gte=0,lte=1"`
	AllowedChannels    []string
	SummonCooldown     time.Duration `validate:"gte=0"`
	AdminIDs           []string
	CatchKeywords      []string `validate:"min=1,dive,required"`
	FuzzyMatching      bool
	CommandPrefix      string

	// Workers
	WorkerCount     int `validate:"min=1"`
	WorkerQueueSize int `validate:"min=1"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   getEnv("LOG_FORMAT", DefaultLogFormat),
		LogDir:      getEnv("LOG_DIR", DefaultLogDir),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		Version:     getEnv("VERSION", DefaultVersion),
		APIKey:      getEnv("API_KEY", ""),

		TrustedProxies: getEnvAsList("TRUSTED_PROXIES", nil),
		DeadLetterPath: getEnv("DEAD_LETTER_PATH", DefaultDeadLetterPath),

		DiscordToken:       getEnv("DISCORD_TOKEN", ""),
		DiscordAppID:       getEnv("DISCORD_APP_ID", ""),
		DiscordForceUpdate: getEnvAsBool("DISCORD_FORCE_UPDATE", false),

		ItemsPath:          getEnv("ITEMS_PATH", ConfigPathItems),
		SpawnExpiry:        getEnvAsDuration("SPAWN_EXPIRY", 0),
		FallbackDropChance: getEnvAsFloat("FALLBACK_DROP_CHANCE", DefaultFallbackDropChance),
		AllowedChannels:    getEnvAsList("ALLOWED_CHANNELS", nil),
		SummonCooldown:     getEnvAsDuration("SUMMON_COOLDOWN", DefaultSummonCooldown),
		AdminIDs:           getEnvAsList("ADMIN_IDS", nil),
		CatchKeywords:      getEnvAsList("CATCH_KEYWORDS", DefaultCatchKeywords),
		FuzzyMatching:      getEnvAsBool("FUZZY_MATCHING", true),
		CommandPrefix:      getEnv("COMMAND_PREFIX", DefaultCommandPrefix),

		WorkerCount:     getEnvAsInt("WORKER_COUNT", DefaultWorkerCount),
		WorkerQueueSize: getEnvAsInt("WORKER_QUEUE_SIZE", DefaultWorkerQueueSize),
	}

	loadStorage(cfg)

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadStorage reads only the storage and catalog settings, for tools that never serve traffic
func LoadStorage() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{ItemsPath: getEnv("ITEMS_PATH", ConfigPathItems)}
	loadStorage(cfg)
	if err := validator.New().StructPartial(cfg, "DBDriver", "DBMaxConns"); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func loadStorage(cfg *Config) {
	cfg.DBDriver = getEnv("DB_DRIVER", DriverPostgres)
	cfg.DBUser = getEnv("DB_USER", "postgres")
	cfg.DBPassword = getEnv("DB_PASSWORD", "postgres")
	cfg.DBHost = getEnv("DB_HOST", "localhost")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.DBName = getEnv("DB_NAME", DefaultDBName)
	cfg.DBMaxConns = getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns)
	cfg.DBMaxConnIdleTime = getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime)
	cfg.DBMaxConnLifetime = getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime)
	cfg.SQLitePath = getEnv("SQLITE_PATH", DefaultSQLitePath)
	cfg.MigrateOnStartup = getEnvAsBool("MIGRATE_ON_STARTUP", true)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an integer environment variable, falling back on parse errors
func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsFloat retrieves a float environment variable, falling back on parse errors
func getEnvAsFloat(key string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool retrieves a boolean environment variable, falling back on parse errors
func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration retrieves a Go duration string ("90s", "1h"), falling back on parse errors
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return d
}

// getEnvAsList splits a comma separated variable, dropping blanks
func getEnvAsList(key string, defaultValue []string) []string {
	raw, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(raw) == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
