package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.bookrec.yaml",               // Project-specific config (highest priority)
	"~/.config/bookrec/config.yaml", // User config
	"/etc/bookrec/config.yaml",      // System config (lowest priority)
}

// EnvPrefix prefixes every environment override
const EnvPrefix = "BOOKREC_"

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
	getenv      func(string) string
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
		getenv:      os.Getenv,
	}
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. Environment variables
// 3. ./.bookrec.yaml
// 4. ~/.config/bookrec/config.yaml
// 5. /etc/bookrec/config.yaml
// 6. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()

	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(config, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// lowest priority first so later files win
		for i := len(l.configPaths) - 1; i >= 0; i-- {
			expandedPath := ExpandPath(l.configPaths[i])
			if !fileExists(expandedPath) {
				continue
			}
			if err := l.loadFromFile(config, expandedPath); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load config from %s: %v\n", expandedPath, err)
			}
		}
	}

	if err := l.applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFromFile decodes a YAML file over the existing config. Keys absent
// from the file keep their current value, so booleans can be set false.
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - path is validated by validateConfigPath() before reaching here
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	fileConfig := *config
	if err := yaml.Unmarshal(data, &fileConfig); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	*config = fileConfig
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config
func (l *Loader) applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		"DATA_CATALOG_PATH": func(v string) error { config.Data.CatalogPath = v; return nil },
		"DATA_WATCH":        func(v string) error { return parseBool(v, &config.Data.Watch) },

		"RECOMMEND_MODEL":   func(v string) error { config.Recommend.Model = v; return nil },
		"RECOMMEND_K":       func(v string) error { return parseInt(v, &config.Recommend.K) },
		"RECOMMEND_TIMEOUT": func(v string) error { return parseDuration(v, &config.Recommend.Timeout) },

		"REMOTE_ENDPOINT":          func(v string) error { config.Remote.Endpoint = v; return nil },
		"REMOTE_TIMEOUT":           func(v string) error { return parseDuration(v, &config.Remote.Timeout) },
		"REMOTE_RATE_LIMIT":        func(v string) error { return parseFloat(v, &config.Remote.RateLimit) },
		"REMOTE_BURST":             func(v string) error { return parseInt(v, &config.Remote.Burst) },
		"REMOTE_FAILURE_THRESHOLD": func(v string) error { return parseUint32(v, &config.Remote.FailureThreshold) },
		"REMOTE_BREAKER_TIMEOUT":   func(v string) error { return parseDuration(v, &config.Remote.BreakerTimeout) },

		"SERVER_ADDR":             func(v string) error { config.Server.Addr = v; return nil },
		"SERVER_READ_TIMEOUT":     func(v string) error { return parseDuration(v, &config.Server.ReadTimeout) },
		"SERVER_WRITE_TIMEOUT":    func(v string) error { return parseDuration(v, &config.Server.WriteTimeout) },
		"SERVER_SHUTDOWN_TIMEOUT": func(v string) error { return parseDuration(v, &config.Server.ShutdownTimeout) },

		"SESSION_ENABLED": func(v string) error { return parseBool(v, &config.Session.Enabled) },
		"SESSION_PATH":    func(v string) error { config.Session.Path = v; return nil },

		"UI_THEME":         func(v string) error { config.UI.Theme = v; return nil },
		"UI_COLOR_MODE":    func(v string) error { config.UI.ColorMode = v; return nil },
		"UI_NO_EMOJI":      func(v string) error { return parseBool(v, &config.UI.NoEmoji) },
		"UI_LOG_FILE":      func(v string) error { config.UI.LogFile = v; return nil },
		"UI_HISTORY_LIMIT": func(v string) error { return parseInt(v, &config.UI.HistoryLimit) },

		"OUTPUT_DEFAULT_FORMAT": func(v string) error { config.Output.DefaultFormat = v; return nil },
	}

	for suffix, setter := range envMappings {
		envVar := EnvPrefix + suffix
		if value := l.getenv(envVar); value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}

	return nil
}

// GetConfigPaths returns the list of configuration file paths that will be searched
func GetConfigPaths() []string {
	paths := make([]string, 0, len(ConfigPaths))
	for _, path := range ConfigPaths {
		paths = append(paths, ExpandPath(path))
	}
	return paths
}

// FindConfigFile finds the first existing config file in the search paths
func FindConfigFile() (string, bool) {
	for _, path := range ConfigPaths {
		expandedPath := ExpandPath(path)
		if fileExists(expandedPath) {
			return expandedPath, true
		}
	}
	return "", false
}

// SampleConfig renders the default configuration as YAML
func SampleConfig() string {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		// DefaultConfig only holds plain values
		panic(fmt.Sprintf("marshal default config: %v", err))
	}
	return "# bookrec configuration\n" + string(data)
}

// MinimalSampleConfig renders only the settings most people change
func MinimalSampleConfig() string {
	return `# bookrec configuration (minimal)
data:
  catalog_path: ""   # empty uses the bundled sample catalog
recommend:
  model: item_similarity
  k: 10
remote:
  endpoint: ""       # e.g. http://localhost:8080 to use a bookrec server
`
}

// validateConfigPath validates that a config path is safe to read
func validateConfigPath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must have .yaml or .yml extension")
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if strings.HasPrefix(absPath, "/proc/") || strings.HasPrefix(absPath, "/sys/") {
		return fmt.Errorf("access to system files not allowed")
	}

	return nil
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Type conversion helpers

func parseInt(s string, dst *int) error {
	val, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseUint32(s string, dst *uint32) error {
	val, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return err
	}
	*dst = uint32(val)
	return nil
}

func parseFloat(s string, dst *float64) error {
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseBool(s string, dst *bool) error {
	val, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseDuration(s string, dst *time.Duration) error {
	val, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}
