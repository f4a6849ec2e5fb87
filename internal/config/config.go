package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"roboadvisor/internal/validator"
)

// Ledger backends.
const (
	LedgerMemory = "memory"
	LedgerSQLite = "sqlite"
)

// Config holds application configuration
type Config struct {
	// Server
	Env      string `yaml:"env"`
	Port     string `yaml:"port" validate:"required,numeric"`
	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`

	// Order engine
	DefaultPrecision int     `yaml:"default_precision" validate:"gte=0,lte=15"`
	DefaultPrice     float64 `yaml:"default_price" validate:"gt=0"`
	Currency         string  `yaml:"currency" validate:"required,iso4217"`
	MarketTimezone   string  `yaml:"market_timezone" validate:"required"`
	ItemIDVersion    int     `yaml:"item_id_version" validate:"oneof=4 7"`

	// Ledger
	LedgerBackend string `yaml:"ledger_backend" validate:"oneof=memory sqlite"`
	SQLiteDSN     string `yaml:"sqlite_dsn"`
}

// Defaults returns the configuration used when nothing is overridden.
func Defaults() *Config {
	return &Config{
		Env:              "development",
		Port:             "8080",
		DefaultPrecision: 3,
		DefaultPrice:     100,
		Currency:         "USD",
		MarketTimezone:   "UTC",
		ItemIDVersion:    4,
		LedgerBackend:    LedgerMemory,
		SQLiteDSN:        "file:ledger?mode=memory&cache=shared",
	}
}

// Load loads configuration from an optional YAML file (CONFIG_FILE), then
// from the .env file and environment variables, which take precedence.
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, config); err != nil {
			return nil, err
		}
	}

	config.Env = getEnv("ENV", config.Env)
	config.Port = getEnv("PORT", config.Port)
	config.LogLevel = getEnv("LOG_LEVEL", config.LogLevel)
	config.Currency = strings.ToUpper(getEnv("CURRENCY", config.Currency))
	config.MarketTimezone = getEnv("MARKET_TIMEZONE", config.MarketTimezone)
	config.LedgerBackend = getEnv("LEDGER_BACKEND", config.LedgerBackend)
	config.SQLiteDSN = getEnv("SQLITE_DSN", config.SQLiteDSN)

	var err error
	if config.DefaultPrecision, err = getEnvInt("DEFAULT_PRECISION", config.DefaultPrecision); err != nil {
		return nil, err
	}
	if config.ItemIDVersion, err = getEnvInt("ITEM_ID_VERSION", config.ItemIDVersion); err != nil {
		return nil, err
	}
	if config.DefaultPrice, err = getEnvFloat("DEFAULT_PRICE", config.DefaultPrice); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// loadFile overlays the YAML document at path onto config.
func loadFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("parsing config file %q: %w", path, err)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return n, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return f, nil
}
