package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "patternpick", cfg.Name)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, 150, cfg.Suggest.IdentifierCap)
	assert.Equal(t, 5, cfg.Suggest.MaxSuggestions)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_SaveLoad(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.LLM.Provider = "gemini"
	cfg.LLM.APIKey = "key-test"
	cfg.Suggest.IdentifierCap = 200

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini", loaded.LLM.Provider)
	assert.Equal(t, "key-test", loaded.LLM.APIKey)
	assert.Equal(t, 200, loaded.Suggest.IdentifierCap)
}

func TestConfig_LoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Suggest.MaxSuggestions)
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "env-gemini-key")
	t.Setenv("PATTERNPICK_PATTERNS_DIR", "/tmp/pats")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "env-gemini-key", cfg.LLM.APIKey)
	assert.Equal(t, "/tmp/pats", cfg.Catalog.PatternsDir)
}

func TestConfig_EnvDoesNotClobberFileKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-key")

	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.LLM.Provider = "openrouter"
	cfg.LLM.APIKey = "file-key"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "file-key", loaded.LLM.APIKey, "key from the config file wins over the environment")
	assert.Equal(t, "openrouter", loaded.LLM.Provider)
}

func TestConfig_Durations(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 120*time.Second, cfg.GetLLMTimeout())

	cfg.LLM.Timeout = "45s"
	assert.Equal(t, 45*time.Second, cfg.GetLLMTimeout())

	cfg.LLM.Timeout = "garbage"
	assert.Equal(t, 120*time.Second, cfg.GetLLMTimeout(), "unparseable duration falls back to the default")

	cfg.Catalog.WatchDebounce = "250ms"
	assert.Equal(t, 250*time.Millisecond, cfg.GetWatchDebounce())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"empty patterns dir", func(c *Config) { c.Catalog.PatternsDir = "" }, true},
		{"zero cap", func(c *Config) { c.Suggest.IdentifierCap = 0 }, true},
		{"zero max", func(c *Config) { c.Suggest.MaxSuggestions = 0 }, true},
		{"bad provider", func(c *Config) { c.LLM.Provider = "watson" }, true},
		{"local provider", func(c *Config) { c.LLM.Provider = "local" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
