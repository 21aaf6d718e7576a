package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all fsbot configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Filesystem layer
	Workspace WorkspaceConfig `yaml:"workspace"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// HTTP front end
	Server ServerConfig `yaml:"server"`

	// Terminal UI
	UI UIConfig `yaml:"ui"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:      "fsbot",
		Version:   "0.3.0",
		Workspace: DefaultWorkspaceConfig(),
		Logging: LoggingConfig{
			Level:     "info",
			DebugMode: false,
		},
		Server: DefaultServerConfig(),
		UI:     DefaultUIConfig(),
	}
}

// DefaultConfigPath returns .fsbot/config.yaml under the working directory.
func DefaultConfigPath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return filepath.Join(".fsbot", "config.yaml")
	}
	return filepath.Join(cwd, ".fsbot", "config.yaml")
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Defaults, still subject to environment overrides
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if root := os.Getenv("FSBOT_ROOT"); root != "" {
		c.Workspace.Root = root
	}
	if addr := os.Getenv("FSBOT_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if v := os.Getenv("FSBOT_DEBUG"); v != "" {
		if debug, err := strconv.ParseBool(v); err == nil {
			c.Logging.DebugMode = debug
		}
	}
	if lvl := os.Getenv("FSBOT_LOG_LEVEL"); lvl != "" {
		c.Logging.Level = lvl
	}
}

// GetSearchCacheTTL returns the listing cache TTL as a duration. Zero, the
// fallback, disables the cache.
func (c *Config) GetSearchCacheTTL() time.Duration {
	d, err := time.ParseDuration(c.Workspace.SearchCacheTTL)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// GetSessionTTL returns the HTTP session idle TTL as a duration.
func (c *Config) GetSessionTTL() time.Duration {
	d, err := time.ParseDuration(c.Server.SessionTTL)
	if err != nil {
		return 30 * time.Minute
	}
	return d
}

// ValidLogLevels lists accepted logging levels.
var ValidLogLevels = []string{"debug", "info", "warn", "warning", "error"}

// ValidThemes lists accepted UI themes.
var ValidThemes = []string{"auto", "light", "dark"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Workspace.Root == "" {
		return fmt.Errorf("workspace root not configured (set workspace.root or FSBOT_ROOT)")
	}
	info, err := os.Stat(c.Workspace.Root)
	if err != nil {
		return fmt.Errorf("workspace root %s: %w", c.Workspace.Root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("workspace root %s is not a directory", c.Workspace.Root)
	}

	if c.Logging.Level != "" && !contains(ValidLogLevels, c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}
	if c.UI.Theme != "" && !contains(ValidThemes, c.UI.Theme) {
		return fmt.Errorf("invalid theme: %s (valid: %v)", c.UI.Theme, ValidThemes)
	}
	if c.Workspace.SearchCacheTTL != "" {
		if _, err := time.ParseDuration(c.Workspace.SearchCacheTTL); err != nil {
			return fmt.Errorf("invalid search_cache_ttl: %w", err)
		}
	}
	if c.Server.SessionTTL != "" {
		if _, err := time.ParseDuration(c.Server.SessionTTL); err != nil {
			return fmt.Errorf("invalid session_ttl: %w", err)
		}
	}

	return nil
}

// LogsDir returns the directory category logs are written to.
func (c *Config) LogsDir() string {
	return filepath.Join(c.Workspace.Root, ".fsbot", "logs")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
