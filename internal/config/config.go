// Package config provides Viper-based configuration loading for the battle
// service binaries.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL connection settings for the persistent
// pokédex cache. The cache is optional; when Enabled is false the rest of
// the section is ignored.
type DatabaseConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
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

// PokeAPIConfig holds settings for the upstream pokémon data source.
type PokeAPIConfig struct {
	// BaseURL is the PokeAPI v2 root, without a trailing slash.
	BaseURL string `mapstructure:"base_url"`
	// Timeout bounds each upstream HTTP request.
	Timeout time.Duration `mapstructure:"timeout"`
	// MoveLimit caps how many of a pokémon's moves are fetched in detail.
	MoveLimit int `mapstructure:"move_limit"`
	// DefaultStatusChance is the infliction probability assumed for
	// damaging moves whose ailment the upstream reports without a chance.
	DefaultStatusChance float64 `mapstructure:"default_status_chance"`
}

// BattleConfig holds battle engine tuning.
type BattleConfig struct {
	// MaxTurns is the cap after which a battle is declared a draw.
	MaxTurns int `mapstructure:"max_turns"`
	// TypeChartPath optionally points to a YAML file overriding the
	// built-in type-effectiveness chart.
	TypeChartPath string `mapstructure:"type_chart_path"`
}

// ChatConfig holds settings for the conversational assistant.
type ChatConfig struct {
	// Model is the Anthropic model identifier.
	Model string `mapstructure:"model"`
	// MaxTokens bounds each model response.
	MaxTokens int `mapstructure:"max_tokens"`
	// ServerCommand is the MCP server binary the assistant spawns.
	ServerCommand string `mapstructure:"server_command"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	PokeAPI  PokeAPIConfig  `mapstructure:"pokeapi"`
	Database DatabaseConfig `mapstructure:"database"`
	Battle   BattleConfig   `mapstructure:"battle"`
	Chat     ChatConfig     `mapstructure:"chat"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validatePokeAPI(c.PokeAPI); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Database.Enabled {
		if err := validateDatabase(c.Database); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if err := validateBattle(c.Battle); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateChat(c.Chat); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
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
	return nil
}

func validatePokeAPI(p PokeAPIConfig) error {
	var errs []string
	if p.BaseURL == "" {
		errs = append(errs, "pokeapi.base_url must not be empty")
	}
	if p.Timeout <= 0 {
		errs = append(errs, "pokeapi.timeout must be positive")
	}
	if p.MoveLimit < 1 {
		errs = append(errs, fmt.Sprintf("pokeapi.move_limit must be >= 1, got %d", p.MoveLimit))
	}
	if p.DefaultStatusChance < 0 || p.DefaultStatusChance > 1 {
		errs = append(errs, fmt.Sprintf("pokeapi.default_status_chance must be in [0, 1], got %v", p.DefaultStatusChance))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
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

func validateBattle(b BattleConfig) error {
	if b.MaxTurns < 1 {
		return fmt.Errorf("battle.max_turns must be >= 1, got %d", b.MaxTurns)
	}
	return nil
}

func validateChat(c ChatConfig) error {
	var errs []string
	if c.Model == "" {
		errs = append(errs, "chat.model must not be empty")
	}
	if c.MaxTokens < 1 {
		errs = append(errs, fmt.Sprintf("chat.max_tokens must be >= 1, got %d", c.MaxTokens))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with POKEARENA_ prefix
	v.SetEnvPrefix("POKEARENA")
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

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
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
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("pokeapi.base_url", "https://pokeapi.co/api/v2")
	v.SetDefault("pokeapi.timeout", "15s")
	v.SetDefault("pokeapi.move_limit", 15)
	v.SetDefault("pokeapi.default_status_chance", 0.15)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "pokearena")
	v.SetDefault("database.password", "pokearena")
	v.SetDefault("database.name", "pokearena")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", "1h")

	v.SetDefault("battle.max_turns", 50)

	v.SetDefault("chat.model", "claude-sonnet-4-5")
	v.SetDefault("chat.max_tokens", 2048)
	v.SetDefault("chat.server_command", "pokearena-mcpserver")
}
