// Package config provides Viper-based configuration loading for the game.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Match-mode values for GameConfig.Match.
const (
	// MatchPrefix compares the first three characters of the input against
	// each presented connection, first match wins. This is the legacy rule.
	MatchPrefix = "prefix"
	// MatchExact requires the full room name (case-insensitive).
	MatchExact = "exact"
)

// Store backend values for StoreConfig.Backend.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// GameConfig holds world generation and traversal settings.
type GameConfig struct {
	// Rooms is the number of rooms selected from the bank for a game.
	Rooms int `mapstructure:"rooms"`
	// MinConnections is the minimum target degree assigned to a room.
	MinConnections int `mapstructure:"min_connections"`
	// MaxConnections is the hard cap on a room's connection count.
	MaxConnections int `mapstructure:"max_connections"`
	// Seed seeds the random source for reproducible games. 0 = crypto randomness.
	Seed int64 `mapstructure:"seed"`
	// Match is the input matching rule: "prefix" (legacy) or "exact".
	Match string `mapstructure:"match"`
	// RequireConnected regenerates the graph until every room is reachable
	// from every other.
	RequireConnected bool `mapstructure:"require_connected"`
	// MaxPath caps the recorded path length. 0 = unbounded.
	MaxPath int `mapstructure:"max_path"`
	// BankFile is an optional YAML room bank overriding the built-in one.
	BankFile string `mapstructure:"bank_file"`
}

// StoreConfig holds room record persistence settings.
type StoreConfig struct {
	// Backend selects the RoomStore implementation: "file" or "postgres".
	Backend string `mapstructure:"backend"`
	// Dir is the base directory for the file backend's per-session directory.
	// Empty means the system temp directory.
	Dir string `mapstructure:"dir"`
}

// DatabaseConfig holds PostgreSQL connection settings for the postgres backend.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// OutputPath is the log sink. Standard output carries the game screen,
	// so logs default to a file; "stderr" is also accepted.
	OutputPath string `mapstructure:"output_path"`
}

// Config is the top-level application configuration.
type Config struct {
	Game     GameConfig     `mapstructure:"game"`
	Store    StoreConfig    `mapstructure:"store"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateStore(c.Store); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Store.Backend == BackendPostgres {
		if err := validateDatabase(c.Database); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	if g.Rooms < 2 {
		errs = append(errs, fmt.Sprintf("game.rooms must be >= 2, got %d", g.Rooms))
	}
	if g.MinConnections < 1 {
		errs = append(errs, fmt.Sprintf("game.min_connections must be >= 1, got %d", g.MinConnections))
	}
	if g.MaxConnections < g.MinConnections {
		errs = append(errs, fmt.Sprintf("game.max_connections must be >= game.min_connections, got %d < %d",
			g.MaxConnections, g.MinConnections))
	}
	if g.Rooms >= 2 && g.MaxConnections > g.Rooms-1 {
		errs = append(errs, fmt.Sprintf("game.max_connections must be <= game.rooms-1, got %d > %d",
			g.MaxConnections, g.Rooms-1))
	}
	if g.Match != MatchPrefix && g.Match != MatchExact {
		errs = append(errs, fmt.Sprintf("game.match must be one of [prefix, exact], got %q", g.Match))
	}
	if g.MaxPath < 0 {
		errs = append(errs, fmt.Sprintf("game.max_path must be >= 0, got %d", g.MaxPath))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateStore(s StoreConfig) error {
	if s.Backend != BackendFile && s.Backend != BackendPostgres {
		return fmt.Errorf("store.backend must be one of [file, postgres], got %q", s.Backend)
	}
	return nil
}

func validateDatabase(d DatabaseConfig) error {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "database.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "database.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "database.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("database.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		errs = append(errs, fmt.Sprintf("database.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		errs = append(errs, "database.min_conns must not exceed database.max_conns")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	if l.OutputPath == "" {
		return errors.New("logging.output_path must not be empty")
	}
	return nil
}

// Default returns the configuration used when no config file is supplied.
// The defaults reproduce the classic game: 7 rooms, 3-6 connections, legacy
// prefix matching, file-backed room records under the system temp directory.
//
// Postcondition: Default().Validate() == nil.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Unmarshalling defaults cannot fail: the keys match the struct tags.
	_ = v.Unmarshal(&cfg)
	return cfg
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with STARQUEST_ prefix
	v.SetEnvPrefix("STARQUEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("game.rooms", 7)
	v.SetDefault("game.min_connections", 3)
	v.SetDefault("game.max_connections", 6)
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.match", MatchPrefix)
	v.SetDefault("game.require_connected", true)
	v.SetDefault("game.max_path", 0)
	v.SetDefault("game.bank_file", "")

	v.SetDefault("store.backend", BackendFile)
	v.SetDefault("store.dir", "")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "starquest")
	v.SetDefault("database.password", "starquest")
	v.SetDefault("database.name", "starquest")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 4)
	v.SetDefault("database.min_conns", 1)
	v.SetDefault("database.max_conn_lifetime", "1h")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output_path", "starquest.log")
}
