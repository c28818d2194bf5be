// Package config provides Viper-based configuration loading for the
// Diceforge engine and its commands.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// GameConfig holds engine tuning knobs.
type GameConfig struct {
	// PlayerMaxHP is the starting (and max) player HP for a fresh run.
	PlayerMaxHP int `mapstructure:"player_max_hp"`
	// StartingGold is the player's purse at the start of a run.
	StartingGold int `mapstructure:"starting_gold"`
	// RerollAllowance is the number of free rerolls per round.
	RerollAllowance int `mapstructure:"reroll_allowance"`
	// MerchantCadence opens a merchant every Nth round.
	MerchantCadence int `mapstructure:"merchant_cadence"`
	// BestRunLimit is how many runs the best-runs list retains.
	BestRunLimit int `mapstructure:"best_run_limit"`
}

// ContentConfig holds the catalog directories the engine loads at startup.
type ContentConfig struct {
	// ClassesDir contains one class dice YAML file per class.
	ClassesDir string `mapstructure:"classes_dir"`
	// EnemiesDir contains enemy archetype YAML templates.
	EnemiesDir string `mapstructure:"enemies_dir"`
	// ItemsDir contains purchasable item YAML definitions.
	ItemsDir string `mapstructure:"items_dir"`
}

// DatabaseConfig holds PostgreSQL connection settings for the best-run
// store.
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
}

// Config is the top-level application configuration.
type Config struct {
	Game     GameConfig     `mapstructure:"game"`
	Content  ContentConfig  `mapstructure:"content"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error
// describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateDatabase(c.Database); err != nil {
		errs = append(errs, err.Error())
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
	if g.PlayerMaxHP < 1 {
		errs = append(errs, fmt.Sprintf("game.player_max_hp must be >= 1, got %d", g.PlayerMaxHP))
	}
	if g.StartingGold < 0 {
		errs = append(errs, fmt.Sprintf("game.starting_gold must be >= 0, got %d", g.StartingGold))
	}
	if g.RerollAllowance < 0 {
		errs = append(errs, fmt.Sprintf("game.reroll_allowance must be >= 0, got %d", g.RerollAllowance))
	}
	if g.MerchantCadence < 1 {
		errs = append(errs, fmt.Sprintf("game.merchant_cadence must be >= 1, got %d", g.MerchantCadence))
	}
	if g.BestRunLimit < 1 {
		errs = append(errs, fmt.Sprintf("game.best_run_limit must be >= 1, got %d", g.BestRunLimit))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateContent(c ContentConfig) error {
	var errs []string
	if c.ClassesDir == "" {
		errs = append(errs, "content.classes_dir must not be empty")
	}
	if c.EnemiesDir == "" {
		errs = append(errs, "content.enemies_dir must not be empty")
	}
	if c.ItemsDir == "" {
		errs = append(errs, "content.items_dir must not be empty")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
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
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	var errs []string
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		errs = append(errs, fmt.Sprintf("logging.level must be one of [debug, info, warn, error], got %q", l.Level))
	}
	if l.Format != "json" && l.Format != "console" {
		errs = append(errs, fmt.Sprintf("logging.format must be json or console, got %q", l.Format))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// setDefaults installs the default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("game.player_max_hp", 100)
	v.SetDefault("game.starting_gold", 0)
	v.SetDefault("game.reroll_allowance", 1)
	v.SetDefault("game.merchant_cadence", 3)
	v.SetDefault("game.best_run_limit", 10)

	v.SetDefault("content.classes_dir", "content/classes")
	v.SetDefault("content.enemies_dir", "content/enemies")
	v.SetDefault("content.items_dir", "content/items")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "diceforge")
	v.SetDefault("database.name", "diceforge")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 4)
	v.SetDefault("database.min_conns", 1)
	v.SetDefault("database.max_conn_lifetime", time.Hour)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Load reads the configuration file at path, applies defaults and
// DICEFORGE_* environment overrides, and validates the result.
//
// Precondition: path must reference a readable config file.
// Postcondition: Returns a validated Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("DICEFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config %q: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
