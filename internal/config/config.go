// Package config provides configuration management for sysmon.
// It uses Viper to load settings from an optional file and environment variables;
// CLI flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Mode selects how samples are displayed.
type Mode string

const (
	ModeOnce Mode = "once" // single report, then exit
	ModeLive Mode = "live" // report block redrawn in place
	ModeLog  Mode = "log"  // one line per update
)

// MaxIntervalSeconds caps the interval at one day.
const MaxIntervalSeconds = 24 * 60 * 60

var (
	ErrInvalidInterval  = errors.New("interval must be between 1 and 86400 seconds")
	ErrConflictingModes = errors.New("--live and --log are mutually exclusive")
	ErrUnknownMode      = errors.New("unknown mode")
	ErrInvalidCount     = errors.New("count must not be negative")
)

// Config holds all runtime configuration for sysmon.
type Config struct {
	// IntervalSeconds is the sampling window for one-shot mode and the
	// refresh period for live and log modes.
	IntervalSeconds int  `mapstructure:"interval_seconds"`
	Mode            Mode `mapstructure:"mode"`
	// Count stops live/log mode after this many updates; 0 runs until interrupted.
	Count    int    `mapstructure:"count"`
	LogLevel string `mapstructure:"log_level"` // zerolog level name
}

// Interval returns IntervalSeconds as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

// Load reads config from file (./sysmon.yaml or ~/.sysmon/sysmon.yaml)
// and falls back to defaults. Environment variables with prefix SYSMON_
// override file values.
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	// --- Defaults ---
	v.SetDefault("interval_seconds", 1)
	v.SetDefault("mode", string(ModeOnce))
	v.SetDefault("count", 0)
	v.SetDefault("log_level", "info")

	// --- Config file ---
	v.SetConfigName("sysmon")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.sysmon")
	if err := v.ReadInConfig(); err != nil {
		// config file is optional; ignore "not found" errors
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	// --- Environment Variables ---
	v.SetEnvPrefix("SYSMON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.Mode = Mode(strings.ToLower(strings.TrimSpace(string(cfg.Mode))))
	if cfg.Mode == "" {
		cfg.Mode = ModeOnce
	}
	return &cfg, nil
}

// ApplyModeFlags resolves the --live/--log pair onto cfg. Setting both is
// rejected; setting neither keeps the configured mode.
func (c *Config) ApplyModeFlags(live, log bool) error {
	switch {
	case live && log:
		return ErrConflictingModes
	case live:
		c.Mode = ModeLive
	case log:
		c.Mode = ModeLog
	}
	return nil
}

// Validate checks the settings before any sampling starts.
func (c *Config) Validate() error {
	if c.IntervalSeconds < 1 || c.IntervalSeconds > MaxIntervalSeconds {
		return fmt.Errorf("%w: got %d", ErrInvalidInterval, c.IntervalSeconds)
	}
	if c.Count < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidCount, c.Count)
	}
	switch c.Mode {
	case ModeOnce, ModeLive, ModeLog:
	default:
		return fmt.Errorf("%w %q (use once, live or log)", ErrUnknownMode, c.Mode)
	}
	return nil
}
