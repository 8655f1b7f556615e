package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config captures environment driven configuration values for the registry
// service.
type Config struct {
	HTTPPort      int
	DBDriver      string
	DBDSN         string
	StrictCompose bool
}

// Load parses configuration values from the current process environment.
// A .env file in the working directory is merged in first when present,
// without overriding variables already set.
//
// The loader applies defaults for optional fields and reports every invalid
// entry at once.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPPort: 8080,
		DBDriver: "sqlite",
		DBDSN:    "file:registry.db",
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("REGISTRY_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "REGISTRY_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if driver := strings.TrimSpace(os.Getenv("REGISTRY_DB_DRIVER")); driver != "" {
		switch driver {
		case "sqlite", "postgres":
			cfg.DBDriver = driver
		default:
			invalid = append(invalid, "REGISTRY_DB_DRIVER")
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("REGISTRY_DB_DSN")); dsn != "" {
		cfg.DBDSN = dsn
	}

	if strictValue := strings.TrimSpace(os.Getenv("REGISTRY_STRICT_COMPOSE")); strictValue != "" {
		strict, err := strconv.ParseBool(strictValue)
		if err != nil {
			invalid = append(invalid, "REGISTRY_STRICT_COMPOSE")
		} else {
			cfg.StrictCompose = strict
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
