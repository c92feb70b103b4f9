package config

import (
	"fmt"
	"time"
)

// Config holds the complete application configuration
type Config struct {
	Version   string          `yaml:"version" json:"version"`
	Data      DataConfig      `yaml:"data" json:"data"`
	Recommend RecommendConfig `yaml:"recommend" json:"recommend"`
	Remote    RemoteConfig    `yaml:"remote" json:"remote"`
	Server    ServerConfig    `yaml:"server" json:"server"`
	Session   SessionConfig   `yaml:"session" json:"session"`
	UI        UIConfig        `yaml:"ui" json:"ui"`
	Output    OutputConfig    `yaml:"output" json:"output"`
}

// DataConfig configures where the catalog comes from
type DataConfig struct {
	CatalogPath string `yaml:"catalog_path" json:"catalog_path"` // empty = bundled sample
	Watch       bool   `yaml:"watch" json:"watch"`               // reload on change
}

// RecommendConfig configures recommendation requests
type RecommendConfig struct {
	Model   string        `yaml:"model" json:"model"` // item_similarity|popularity|random
	K       int           `yaml:"k" json:"k"`
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// RemoteConfig configures the client for a bookrec server
type RemoteConfig struct {
	Endpoint         string        `yaml:"endpoint" json:"endpoint"` // empty = local engine
	Timeout          time.Duration `yaml:"timeout" json:"timeout"`
	RateLimit        float64       `yaml:"rate_limit" json:"rate_limit"` // requests per second, 0 = unlimited
	Burst            int           `yaml:"burst" json:"burst"`
	FailureThreshold uint32        `yaml:"failure_threshold" json:"failure_threshold"`
	BreakerTimeout   time.Duration `yaml:"breaker_timeout" json:"breaker_timeout"`
}

// ServerConfig configures `bookrec serve`
type ServerConfig struct {
	Addr            string        `yaml:"addr" json:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" json:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`
}

// SessionConfig configures session persistence
type SessionConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Path    string `yaml:"path" json:"path"`
}

// UIConfig configures the terminal UI
type UIConfig struct {
	Theme        string `yaml:"theme" json:"theme"`           // default|high-contrast|minimal
	ColorMode    string `yaml:"color_mode" json:"color_mode"` // auto|always|never
	NoEmoji      bool   `yaml:"no_emoji" json:"no_emoji"`
	LogFile      string `yaml:"log_file" json:"log_file"`
	HistoryLimit int    `yaml:"history_limit" json:"history_limit"`
}

// OutputConfig configures non-interactive output
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // text|json|markdown|csv
}

var (
	validModels     = []string{"item_similarity", "popularity", "random", "content"}
	validThemes     = []string{"default", "high-contrast", "minimal"}
	validColorModes = []string{"auto", "always", "never"}
	validFormats    = []string{"text", "json", "markdown", "csv"}
)

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Data: DataConfig{
			CatalogPath: "",
			Watch:       false,
		},
		Recommend: RecommendConfig{
			Model:   "item_similarity",
			K:       10,
			Timeout: 10 * time.Second,
		},
		Remote: RemoteConfig{
			Endpoint:         "",
			Timeout:          5 * time.Second,
			RateLimit:        10,
			Burst:            5,
			FailureThreshold: 5,
			BreakerTimeout:   30 * time.Second,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Session: SessionConfig{
			Enabled: true,
			Path:    "~/.cache/bookrec/session.db",
		},
		UI: UIConfig{
			Theme:        "default",
			ColorMode:    "auto",
			NoEmoji:      false,
			LogFile:      "~/.cache/bookrec/bookrec.log",
			HistoryLimit: 100,
		},
		Output: OutputConfig{
			DefaultFormat: "text",
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateRecommendConfig(); err != nil {
		return err
	}
	if err := c.validateRemoteConfig(); err != nil {
		return err
	}
	if err := c.validateServerConfig(); err != nil {
		return err
	}
	if err := c.validateUIConfig(); err != nil {
		return err
	}
	return oneOf("output format", c.Output.DefaultFormat, validFormats)
}

func (c *Config) validateRecommendConfig() error {
	if err := oneOf("model", c.Recommend.Model, validModels); err != nil {
		return err
	}
	if c.Recommend.K < 1 || c.Recommend.K > 100 {
		return fmt.Errorf("recommend.k must be between 1 and 100, got %d", c.Recommend.K)
	}
	if c.Recommend.Timeout < 0 {
		return fmt.Errorf("recommend.timeout must be non-negative")
	}
	return nil
}

func (c *Config) validateRemoteConfig() error {
	if c.Remote.Timeout < 0 || c.Remote.BreakerTimeout < 0 {
		return fmt.Errorf("remote timeouts must be non-negative")
	}
	if c.Remote.RateLimit < 0 {
		return fmt.Errorf("remote.rate_limit must be non-negative")
	}
	if c.Remote.RateLimit > 0 && c.Remote.Burst < 1 {
		return fmt.Errorf("remote.burst must be at least 1 when rate limiting")
	}
	if c.Remote.FailureThreshold < 1 {
		return fmt.Errorf("remote.failure_threshold must be greater than 0")
	}
	return nil
}

func (c *Config) validateServerConfig() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("server timeouts must be non-negative")
	}
	return nil
}

func (c *Config) validateUIConfig() error {
	if err := oneOf("theme", c.UI.Theme, validThemes); err != nil {
		return err
	}
	if err := oneOf("color mode", c.UI.ColorMode, validColorModes); err != nil {
		return err
	}
	if c.UI.HistoryLimit < 1 {
		return fmt.Errorf("ui.history_limit must be greater than 0")
	}
	return nil
}

// oneOf accepts empty values; merge fills them from defaults
func oneOf(field, value string, valid []string) error {
	if value == "" {
		return nil
	}
	for _, v := range valid {
		if v == value {
			return nil
		}
	}
	return fmt.Errorf("invalid %s: %s (must be one of: %v)", field, value, valid)
}
