// Package config loads habitburn's process configuration: where data lives,
// which calendar to count days in, and how to log. Values are layered
// defaults, then config.toml, then HABITBURN_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/julianstephens/habitburn/internal/constants"
	"github.com/julianstephens/habitburn/internal/utils"
)

type Config struct {
	Storage  StorageConfig  `toml:"storage"`
	Calendar CalendarConfig `toml:"calendar"`
	Logging  LoggingConfig  `toml:"logging"`
}

type StorageConfig struct {
	// DSN is a sqlite or .json path, a postgres:// URL, or "keyring".
	DSN string `toml:"dsn" env:"DSN"`
}

type CalendarConfig struct {
	Timezone  string `toml:"timezone" env:"TIMEZONE"`
	WeekStart string `toml:"week_start" env:"WEEK_START"`
}

type LoggingConfig struct {
	Debug bool   `toml:"debug" env:"DEBUG"`
	Dir   string `toml:"dir" env:"LOG_DIR"`
}

func Default() Config {
	return Config{
		Storage:  StorageConfig{DSN: constants.DefaultConfigPath},
		Calendar: CalendarConfig{Timezone: constants.DefaultTimezone, WeekStart: constants.DefaultWeekStart},
	}
}

// DefaultPath is the config file location under the user's config directory.
func DefaultPath() string {
	return filepath.Join(constants.DefaultConfigDir, constants.ConfigFileName)
}

// Load reads path (a missing file is not an error) and applies environment
// overrides. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()

	path = ExpandHome(path)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: constants.EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	cfg.Storage.DSN = ExpandHome(cfg.Storage.DSN)
	cfg.Logging.Dir = ExpandHome(cfg.Logging.Dir)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes cfg as TOML, creating the parent directory.
func Save(path string, cfg Config) error {
	path = ExpandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Storage.DSN) == "" {
		return fmt.Errorf("storage.dsn cannot be empty")
	}
	if !utils.ValidateTimezone(c.Calendar.Timezone) {
		return fmt.Errorf("invalid calendar.timezone: %q", c.Calendar.Timezone)
	}
	if c.Calendar.WeekStart != "" {
		if _, err := utils.ParseWeekday(c.Calendar.WeekStart); err != nil {
			return fmt.Errorf("invalid calendar.week_start: %w", err)
		}
	}
	return nil
}

func (c Config) Location() *time.Location {
	loc, err := utils.LoadLocation(c.Calendar.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func (c Config) WeekStart() time.Weekday {
	if c.Calendar.WeekStart == "" {
		return time.Sunday
	}
	day, err := utils.ParseWeekday(c.Calendar.WeekStart)
	if err != nil {
		return time.Sunday
	}
	return day
}

// Dir is the directory holding the config file, used for logs and backups
// when storage is not a local file.
func (c Config) Dir() string {
	return ExpandHome(constants.DefaultConfigDir)
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
