// Package config holds all patternpick configuration. Config is stored as
// YAML under the workspace directory (default ~/.patternpick/config.yaml)
// and can be overridden by environment variables after load.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all patternpick configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// LLM provider configuration
	LLM LLMConfig `yaml:"llm"`

	// Pattern catalog configuration
	Catalog CatalogConfig `yaml:"catalog"`

	// Suggestion cycle configuration
	Suggest SuggestConfig `yaml:"suggest"`

	// Terminal UI configuration
	UI UIConfig `yaml:"ui"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// CatalogConfig configures the pattern catalog.
type CatalogConfig struct {
	// PatternsDir is the root directory scanned for patterns. Each immediate
	// subdirectory containing a system.md file is one pattern.
	PatternsDir string `yaml:"patterns_dir"`

	// Watch enables live reload of the catalog via fsnotify.
	Watch bool `yaml:"watch"`

	// WatchDebounce coalesces filesystem event bursts, e.g. "500ms".
	WatchDebounce string `yaml:"watch_debounce"`
}

// SuggestConfig configures the suggestion cycle.
type SuggestConfig struct {
	// IdentifierCap bounds how many pattern names are embedded in the
	// instruction prompt. Input order is preserved, the tail is dropped.
	IdentifierCap int `yaml:"identifier_cap"`

	// MaxSuggestions bounds the validated result list.
	MaxSuggestions int `yaml:"max_suggestions"`
}

// UIConfig configures the terminal UI.
type UIConfig struct {
	Theme      string `yaml:"theme"` // auto, light, dark
	ShowStream bool   `yaml:"show_stream"`
}

// LoggingConfig configures categorized file logging.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Level      string          `yaml:"level"` // debug, info, warn, error
	Categories map[string]bool `yaml:"categories"`
	JSONFormat bool            `yaml:"json_format"`
}

// DefaultWorkspace returns ~/.patternpick, falling back to a relative
// directory when the home directory cannot be resolved.
func DefaultWorkspace() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".patternpick"
	}
	return filepath.Join(home, ".patternpick")
}

// DefaultConfigPath returns the default config file location.
func DefaultConfigPath() string {
	return filepath.Join(DefaultWorkspace(), "config.yaml")
}

// DefaultConfig returns the baseline configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "patternpick",
		Version: "0.3.0",
		LLM: LLMConfig{
			Provider: "openai",
			Model:    "gpt-4o-mini",
			Timeout:  "120s",
		},
		Catalog: CatalogConfig{
			PatternsDir:   filepath.Join(DefaultWorkspace(), "patterns"),
			Watch:         true,
			WatchDebounce: "500ms",
		},
		Suggest: SuggestConfig{
			IdentifierCap:  150,
			MaxSuggestions: 5,
		},
		UI: UIConfig{
			Theme:      "auto",
			ShowStream: true,
		},
		Logging: LoggingConfig{
			DebugMode: false,
			Level:     "info",
		},
	}
}

// Load reads a config file, fills gaps with defaults, and applies
// environment overrides. A missing file yields defaults plus overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
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

// Save writes the config as YAML, creating parent directories as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// applyEnvOverrides lets environment variables win over file values.
// Provider keys follow the priority OPENAI > OPENROUTER > GEMINI.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PATTERNPICK_PATTERNS_DIR"); v != "" {
		c.Catalog.PatternsDir = v
	}
	if v := os.Getenv("PATTERNPICK_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("PATTERNPICK_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}

	if c.LLM.APIKey != "" {
		return
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.LLM.Provider = "openai"
		c.LLM.APIKey = v
		return
	}
	if v := os.Getenv("OPENROUTER_API_KEY"); v != "" {
		c.LLM.Provider = "openrouter"
		c.LLM.APIKey = v
		return
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.LLM.Provider = "gemini"
		c.LLM.APIKey = v
	}
}

// GetLLMTimeout parses the LLM timeout, defaulting to 120s.
func (c *Config) GetLLMTimeout() time.Duration {
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil || d <= 0 {
		return 120 * time.Second
	}
	return d
}

// GetWatchDebounce parses the catalog watch debounce, defaulting to 500ms.
func (c *Config) GetWatchDebounce() time.Duration {
	d, err := time.ParseDuration(c.Catalog.WatchDebounce)
	if err != nil || d <= 0 {
		return 500 * time.Millisecond
	}
	return d
}

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	if c.Catalog.PatternsDir == "" {
		return fmt.Errorf("catalog.patterns_dir is required")
	}
	if c.Suggest.IdentifierCap <= 0 {
		return fmt.Errorf("suggest.identifier_cap must be positive")
	}
	if c.Suggest.MaxSuggestions <= 0 {
		return fmt.Errorf("suggest.max_suggestions must be positive")
	}
	switch c.LLM.Provider {
	case "openai", "openrouter", "gemini", "local":
	default:
		return fmt.Errorf("unknown llm.provider %q", c.LLM.Provider)
	}
	return nil
}
