package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Environment variables that external callers (AMPL scripts) set directly.
// Their names are part of the wire contract and carry no PARAMPL_ prefix.
const (
	QueueIDEnv = "parampl_queue_id"
	OptionsEnv = "parampl_options"
)

// Config holds all runtime configuration for one parampl invocation.
// Values are populated from .parampl.yaml, PARAMPL_* env vars, the two
// wire-contract variables above, and CLI flags.
type Config struct {
	QueueID          string        `mapstructure:"queue_id"`
	Options          string        `mapstructure:"options"`
	WorkDir          string        `mapstructure:"work_dir"`
	PollInterval     time.Duration `mapstructure:"poll_interval"`
	MaxWait          time.Duration `mapstructure:"max_wait"`
	FinalizeAttempts uint          `mapstructure:"finalize_attempts"`
	FinalizeDelay    time.Duration `mapstructure:"finalize_delay"`
	EventsFile       string        `mapstructure:"events_file"`
	LogFile          string        `mapstructure:"log_file"`
	ScreenPath       string        `mapstructure:"screen_path"`
	Verbose          bool          `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("queue_id", "")
	viper.SetDefault("options", "")
	viper.SetDefault("work_dir", ".")
	viper.SetDefault("poll_interval", 10*time.Millisecond)
	viper.SetDefault("max_wait", time.Duration(0))
	viper.SetDefault("finalize_attempts", 1)
	viper.SetDefault("finalize_delay", 100*time.Millisecond)
	viper.SetDefault("events_file", "")
	viper.SetDefault("log_file", "")
	viper.SetDefault("screen_path", "screen")
	viper.SetDefault("verbose", false)

	if err := viper.BindEnv("queue_id", QueueIDEnv); err != nil {
		return Config{}, fmt.Errorf("binding %s: %w", QueueIDEnv, err)
	}
	if err := viper.BindEnv("options", OptionsEnv); err != nil {
		return Config{}, fmt.Errorf("binding %s: %w", OptionsEnv, err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.PollInterval <= 0 {
		return Config{}, fmt.Errorf("poll_interval must be positive, got %s", cfg.PollInterval)
	}
	if cfg.MaxWait < 0 {
		return Config{}, fmt.Errorf("max_wait must not be negative, got %s", cfg.MaxWait)
	}
	if cfg.FinalizeAttempts == 0 {
		cfg.FinalizeAttempts = 1
	}
	return cfg, nil
}

// SolverOptions parses the options string carried in the config.
func (c Config) SolverOptions() Options {
	return ParseOptions(c.Options)
}
