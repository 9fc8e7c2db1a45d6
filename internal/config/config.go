// Package config provides configuration management for PantryOS.
// Configurations are loaded from TOML files with XDG-compliant paths.
package config

import (
	"errors"
	"fmt"
)

// Config holds the complete application configuration.
type Config struct {
	Kitchen  KitchenConfig  `toml:"kitchen"`
	Display  DisplayConfig  `toml:"display"`
	Logging  LoggingConfig  `toml:"logging"`
	Database DatabaseConfig `toml:"database"`
}

// KitchenConfig contains kitchen identity and operational settings.
type KitchenConfig struct {
	Name           string `toml:"name"`
	Operator       string `toml:"operator"`
	LowStockAlerts bool   `toml:"low_stock_alerts"`
}

// DisplayConfig controls TUI appearance.
type DisplayConfig struct {
	ColorScheme ColorScheme `toml:"color_scheme"`
	DateFormat  string      `toml:"date_format"`
	TimeFormat  string      `toml:"time_format"`
	PageSize    int         `toml:"page_size"`
}

// ColorScheme defines the terminal color palette.
type ColorScheme string

const (
	ColorSchemeGreenPhosphor ColorScheme = "green_phosphor"
	ColorSchemeAmber         ColorScheme = "amber"
	ColorSchemeWhite         ColorScheme = "white"
)

// LoggingConfig controls application logging.
type LoggingConfig struct {
	Level      LogLevel `toml:"level"`
	File       string   `toml:"file"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// LogLevel defines logging verbosity.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// DatabaseDriver selects the storage backend.
type DatabaseDriver string

const (
	// DriverSQLite is the embedded default for single-machine installs.
	DriverSQLite DatabaseDriver = "sqlite"
	// DriverMySQL targets a MySQL server holding the kitchen schema.
	DriverMySQL DatabaseDriver = "mysql"
)

// DatabaseConfig controls database settings. Path applies to the sqlite
// driver; Host/Port/Name/User/Password apply to mysql. Credentials may be
// overridden with PANTRYOS_DB_USER / PANTRYOS_DB_PASSWORD so they never
// need to live in the config file.
type DatabaseConfig struct {
	Driver              DatabaseDriver `toml:"driver"`
	Path                string         `toml:"path"`
	Host                string         `toml:"host"`
	Port                int            `toml:"port"`
	Name                string         `toml:"name"`
	User                string         `toml:"user"`
	Password            string         `toml:"password"`
	BackupIntervalHours int            `toml:"backup_interval_hours"`
	BackupRetentionDays int            `toml:"backup_retention_days"`
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Kitchen.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("kitchen: %w", err))
	}

	if err := c.Display.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("display: %w", err))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("database: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the kitchen configuration is valid.
func (k *KitchenConfig) Validate() error {
	if k.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

// Validate checks that the display configuration is valid.
func (d *DisplayConfig) Validate() error {
	var errs []error

	validSchemes := map[ColorScheme]bool{
		ColorSchemeGreenPhosphor: true,
		ColorSchemeAmber:         true,
		ColorSchemeWhite:         true,
	}

	if !validSchemes[d.ColorScheme] && d.ColorScheme != "" {
		errs = append(errs, fmt.Errorf("invalid color_scheme: %s", d.ColorScheme))
	}

	if d.PageSize < 0 || d.PageSize > 100 {
		errs = append(errs, errors.New("page_size must be between 0 and 100"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the logging configuration is valid.
func (l *LoggingConfig) Validate() error {
	var errs []error

	validLevels := map[LogLevel]bool{
		LogLevelDebug: true,
		LogLevelInfo:  true,
		LogLevelWarn:  true,
		LogLevelError: true,
	}

	if !validLevels[l.Level] && l.Level != "" {
		errs = append(errs, fmt.Errorf("invalid log level: %s", l.Level))
	}

	if l.MaxSizeMB < 0 {
		errs = append(errs, errors.New("max_size_mb must be non-negative"))
	}

	if l.MaxBackups < 0 {
		errs = append(errs, errors.New("max_backups must be non-negative"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the database configuration is valid.
func (d *DatabaseConfig) Validate() error {
	var errs []error

	switch d.Driver {
	case DriverSQLite, "":
		if d.Path == "" {
			errs = append(errs, errors.New("path is required for the sqlite driver"))
		}
	case DriverMySQL:
		if d.Host == "" {
			errs = append(errs, errors.New("host is required for the mysql driver"))
		}
		if d.Port < 1 || d.Port > 65535 {
			errs = append(errs, errors.New("port must be between 1 and 65535"))
		}
		if d.Name == "" {
			errs = append(errs, errors.New("name is required for the mysql driver"))
		}
		if d.User == "" {
			errs = append(errs, errors.New("user is required for the mysql driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("invalid driver: %s", d.Driver))
	}

	if d.BackupIntervalHours < 0 {
		errs = append(errs, errors.New("backup_interval_hours must be non-negative"))
	}

	if d.BackupRetentionDays < 0 {
		errs = append(errs, errors.New("backup_retention_days must be non-negative"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Default returns a configuration with sensible default values.
func Default() *Config {
	return &Config{
		Kitchen: KitchenConfig{
			Name:           "Cloud Kitchen",
			Operator:       "",
			LowStockAlerts: true,
		},
		Display: DisplayConfig{
			ColorScheme: ColorSchemeGreenPhosphor,
			DateFormat:  "2006-01-02",
			TimeFormat:  "15:04:05",
			PageSize:    25,
		},
		Logging: LoggingConfig{
			Level:      LogLevelInfo,
			File:       "logs/pantryos.log",
			MaxSizeMB:  10,
			MaxBackups: 5,
		},
		Database: DatabaseConfig{
			Driver:              DriverSQLite,
			Path:                "kitchen.db",
			Host:                "localhost",
			Port:                3306,
			Name:                "cloudkitchen",
			User:                "",
			Password:            "",
			BackupIntervalHours: 24,
			BackupRetentionDays: 30,
		},
	}
}

// IsSQLite reports whether the embedded sqlite driver is selected.
// An empty driver value falls back to sqlite.
func (d *DatabaseConfig) IsSQLite() bool {
	return d.Driver == DriverSQLite || d.Driver == ""
}
