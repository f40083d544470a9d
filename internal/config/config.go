// Package config loads process settings from the environment through viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Database drivers understood by the database package.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds the runtime settings read from the environment.
type Config struct {
	AppPort string

	DBDriver      string
	DatabaseDSN   string
	DBAutoMigrate bool
	DBSeed        bool

	RabbitMQURL     string
	RabbitMQConsume bool

	LogMode  string
	LogLevel string
	LogFile  string
}

// EventsEnabled reports whether a broker URL was configured.
func (c *Config) EventsEnabled() bool {
	return c.RabbitMQURL != ""
}

// SetDefaults registers every key with its default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DSN", "file:catalog.db?cache=shared")
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("DB_SEED", false)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_CONSUME", false)
	v.SetDefault("LOG_MODE", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "")
}

// Load reads the configuration from environment variables layered over defaults.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.AutomaticEnv() // Load environment variables

	cfg := &Config{
		AppPort:         v.GetString("APP_PORT"),
		DBDriver:        strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseDSN:     v.GetString("DATABASE_DSN"),
		DBAutoMigrate:   v.GetBool("DB_AUTO_MIGRATE"),
		DBSeed:          v.GetBool("DB_SEED"),
		RabbitMQURL:     v.GetString("RABBITMQ_URL"),
		RabbitMQConsume: v.GetBool("RABBITMQ_CONSUME"),
		LogMode:         v.GetString("LOG_MODE"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		LogFile:         v.GetString("LOG_FILE"),
	}
	if !strings.HasPrefix(cfg.AppPort, ":") && !strings.Contains(cfg.AppPort, ":") {
		cfg.AppPort = ":" + cfg.AppPort
	}

	switch cfg.DBDriver {
	case DriverSQLite, DriverPostgres, DriverMemory:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	return cfg, nil
}
