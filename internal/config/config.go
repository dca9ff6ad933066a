package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds ambient settings read from the environment. The import itself
// is configured only through command-line flags.
type Config struct {
	Logging LoggingConfig
}

// LoggingConfig controls the package logger.
type LoggingConfig struct {
	Level string `env:"LOG_LEVEL" env-default:"info"`
	Mode  string `env:"LOG_MODE" env-default:"development"`
}

// Load reads an optional .env file from the working directory, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	return &cfg, nil
}
