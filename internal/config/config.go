// Package config loads embedder-facing settings for the webview backend.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the settings consumed by the window backend.
type Config struct {
	Debug        bool   `mapstructure:"debug"`
	UserAgent    string `mapstructure:"user_agent"`
	Multiprocess bool   `mapstructure:"multiprocess"`

	Window WindowDefaults `mapstructure:"window"`

	Logging LoggingConfig `mapstructure:"logging"`
}

// WindowDefaults are applied to sessions that omit geometry fields.
type WindowDefaults struct {
	Width           int    `mapstructure:"width"`
	Height          int    `mapstructure:"height"`
	MinWidth        int    `mapstructure:"min_width"`
	MinHeight       int    `mapstructure:"min_height"`
	BackgroundColor string `mapstructure:"background_color"`
}

// LoggingConfig mirrors internal/logging.Config in file form.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Window: WindowDefaults{
			Width:           800,
			Height:          600,
			MinWidth:        200,
			MinHeight:       100,
			BackgroundColor: "#FFFFFF",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads config.toml from the XDG config directory (if present) and
// applies WEBPANE_* environment overrides on top of the defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")

	if dir, err := configDir(); err == nil {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix("WEBPANE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := Default()
	v.SetDefault("debug", cfg.Debug)
	v.SetDefault("user_agent", cfg.UserAgent)
	v.SetDefault("multiprocess", cfg.Multiprocess)
	v.SetDefault("window.width", cfg.Window.Width)
	v.SetDefault("window.height", cfg.Window.Height)
	v.SetDefault("window.min_width", cfg.Window.MinWidth)
	v.SetDefault("window.min_height", cfg.Window.MinHeight)
	v.SetDefault("window.background_color", cfg.Window.BackgroundColor)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

func configDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "webpane"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "webpane"), nil
}
