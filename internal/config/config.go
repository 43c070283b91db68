// Package config loads service configuration from the environment and an
// optional config file.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"go-chi-calculator/internal/calculator/engine"
)

// Config holds the runtime settings for the calculator service.
type Config struct {
	HTTPAddr         string
	MaxLength        int
	WideMaxLength    int
	MaxSessions      int
	TapePath         string
	TelemetryEnabled bool
	LogFormat        string
	ShutdownTimeout  time.Duration
}

var defaults = map[string]any{
	"http_addr":            ":8080",
	"calc_max_length":      10,
	"calc_wide_max_length": 17,
	"calc_max_sessions":    1024,
	"calc_tape_path":       "",
	"telemetry_enabled":    true,
	"log_format":           "json",
	"shutdown_timeout":     5 * time.Second,
}

// Load reads configuration from environment variables. When CALC_CONFIG_FILE
// names a file (yaml, toml or json) its values are used beneath the
// environment.
func Load() (Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	if file := v.GetString("calc_config_file"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	cfg := Config{
		HTTPAddr:         v.GetString("http_addr"),
		MaxLength:        v.GetInt("calc_max_length"),
		WideMaxLength:    v.GetInt("calc_wide_max_length"),
		MaxSessions:      v.GetInt("calc_max_sessions"),
		TapePath:         v.GetString("calc_tape_path"),
		TelemetryEnabled: v.GetBool("telemetry_enabled"),
		LogFormat:        v.GetString("log_format"),
		ShutdownTimeout:  v.GetDuration("shutdown_timeout"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if c.MaxLength < engine.MinMaxLength {
		errs = append(errs, fmt.Errorf("CALC_MAX_LENGTH must be at least %d, got %d", engine.MinMaxLength, c.MaxLength))
	}
	if c.WideMaxLength < engine.MinMaxLength {
		errs = append(errs, fmt.Errorf("CALC_WIDE_MAX_LENGTH must be at least %d, got %d", engine.MinMaxLength, c.WideMaxLength))
	}
	if c.MaxSessions < 1 {
		errs = append(errs, fmt.Errorf("CALC_MAX_SESSIONS must be positive, got %d", c.MaxSessions))
	}
	if c.LogFormat != "json" && c.LogFormat != "console" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.LogFormat))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
