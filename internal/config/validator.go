package config

import (
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion must match ENV_SCHEMA_VERSION in the deployment's .env.
const ExpectedEnvSchemaVersion = "1.0"

// RequiredEnvVars are needed regardless of storage driver. The schema
// version comes first and is checked separately.
var RequiredEnvVars = []string{
	"ENV_SCHEMA_VERSION",
	"API_KEY",
	"DISCORD_TOKEN",
	"DISCORD_APP_ID",
}

// RequiredPostgresEnvVars apply only when DB_DRIVER is empty or postgres.
var RequiredPostgresEnvVars = []string{
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
}

// placeholderValues are the sample values shipped in .env.example.
var placeholderValues = map[string]string{
	"DB_PASSWORD": "change_this_secure_password",
	"API_KEY":     "generate_with_openssl_rand_hex_32",
}

// CheckEnv fails when the environment cannot start the bot and otherwise
// returns advisories worth logging at startup.
func CheckEnv() ([]string, error) {
	switch v := os.Getenv("ENV_SCHEMA_VERSION"); v {
	case "":
		return nil, fmt.Errorf("ENV_SCHEMA_VERSION is not set (expected %s)", ExpectedEnvSchemaVersion)
	case ExpectedEnvSchemaVersion:
	default:
		return nil, fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s", ExpectedEnvSchemaVersion, v)
	}

	required := RequiredEnvVars[1:]
	if driver := os.Getenv("DB_DRIVER"); driver == "" || driver == DriverPostgres {
		required = append(append([]string{}, required...), RequiredPostgresEnvVars...)
	}
	var missing []string
	for _, name := range required {
		if os.Getenv(name) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	var warnings []string
	for _, name := range []string{"DB_PASSWORD", "API_KEY"} {
		if os.Getenv(name) == placeholderValues[name] {
			warnings = append(warnings, name+" still holds the .env.example placeholder")
		}
	}
	if os.Getenv("SPAWN_EXPIRY") == "" {
		warnings = append(warnings, "SPAWN_EXPIRY is not set; spawns stay active until caught")
	}
	return warnings, nil
}
