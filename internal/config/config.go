// Package config provides centralized configuration management for the ingester.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import "time"

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Database DatabaseConfig
	Source   SourceConfig
	Sprites  SpriteConfig
	Logging  LoggingConfig
}

// DatabaseConfig holds destination connection settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string (required)
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL" required:"true"`

	// ConnectRetries is the number of connection attempts before giving up (default: 10)
	ConnectRetries int `env:"DB_CONNECT_RETRIES" default:"10"`

	// ConnectDelay is the fixed delay between connection attempts (default: 2s)
	ConnectDelay time.Duration `env:"DB_CONNECT_DELAY" default:"2s"`

	// ConnectTimeout bounds a single connection attempt (default: 10s)
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" default:"10s"`
}

// SourceConfig holds the location of the source CSV tables.
type SourceConfig struct {
	// CSVDir is the directory holding the source CSV files (default: csv)
	CSVDir string `env:"POKEAPI_CSV_DIR" default:"csv"`
}

// SpriteConfig holds the sprite repository settings.
type SpriteConfig struct {
	// Dir is the sprite repository root (default: sprites)
	Dir string `env:"SPRITE_DIR" default:"sprites"`

	// Clone fetches the repository when Dir is missing or empty (default: true)
	Clone bool `env:"SPRITE_CLONE" default:"true"`

	// RepoURL is the git remote cloned when Clone is enabled
	RepoURL string `env:"SPRITE_REPO_URL" default:"https://github.com/PokeAPI/sprites"`

	// CloneDir is the scratch checkout location used while cloning (default: data/repo)
	CloneDir string `env:"SPRITE_CLONE_DIR" default:"data/repo"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}
