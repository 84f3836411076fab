package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/caseygrun/plates/domain/well"
)

// Config represents the complete CLI configuration
type Config struct {
	Plate PlateConfig
	Log   LogConfig
}

// PlateConfig holds default plate settings
type PlateConfig struct {
	// Wells is the default plate size for commands that take --wells.
	// Zero defers to the platemap's own size, then to 96.
	Wells int
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Plate: PlateConfig{
			Wells: getEnvIntOrDefault("PLATES_WELLS", 0),
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "INFO"),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Plate.Wells != 0 {
		if _, err := well.ShapeForWells(cfg.Plate.Wells); err != nil {
			return fmt.Errorf("PLATES_WELLS: %w", err)
		}
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
