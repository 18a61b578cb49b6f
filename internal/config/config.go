package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DefaultBaseURL  = "http://localhost:8000"
	DefaultLocale   = "ru"
	DefaultLogLevel = "info"
)

// Config represents the global ~/.outreach/config.toml. Every field can be
// overridden from the environment.
type Config struct {
	DefaultProfile string `toml:"default_profile" env:"OUTREACH_PROFILE"`
	BaseURL        string `toml:"base_url" env:"OUTREACH_BASE_URL"`
	Locale         string `toml:"locale" env:"OUTREACH_LOCALE"`
	LogLevel       string `toml:"log_level" env:"OUTREACH_LOG_LEVEL"`
}

// Load reads config from the given path. Returns zero config and error if file missing.
func Load(path string) (*Config, error) {
	var cfg Config
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Resolve builds the effective configuration: the file at path (a missing
// file is not an error), then a .env file in the working directory, then
// process environment, then defaults for anything still unset.
func Resolve(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}

	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Locale == "" {
		c.Locale = DefaultLocale
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// Save writes config to the given path, creating parent dirs as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}
