package llm

import (
	"fmt"

	"patternpick/internal/config"
	"patternpick/internal/logging"
)

// NewClient builds a Client from LLM configuration. The provider string
// decides the wire dialect; openrouter and local are OpenAI-compatible.
func NewClient(cfg config.LLMConfig, opts ...Option) (Client, error) {
	settings := applyOptions(opts)

	switch Provider(cfg.Provider) {
	case ProviderOpenAI:
		c := OpenAIConfig{
			APIKey:          cfg.APIKey,
			BaseURL:         cfg.BaseURL,
			Model:           cfg.Model,
			Timeout:         settings.timeout,
			MaxOutputTokens: cfg.MaxOutputTokens,
			Temperature:     cfg.Temperature,
		}
		fillOpenAIDefaults(&c, "https://api.openai.com/v1", "gpt-4o-mini")
		logging.Boot("llm client: openai model=%s", c.Model)
		return NewOpenAIClientWithConfig(c), nil

	case ProviderOpenRouter:
		c := OpenAIConfig{
			APIKey:          cfg.APIKey,
			BaseURL:         cfg.BaseURL,
			Model:           cfg.Model,
			Timeout:         settings.timeout,
			MaxOutputTokens: cfg.MaxOutputTokens,
			Temperature:     cfg.Temperature,
		}
		fillOpenAIDefaults(&c, "https://openrouter.ai/api/v1", "openai/gpt-4o-mini")
		logging.Boot("llm client: openrouter model=%s", c.Model)
		return NewOpenAIClientWithConfig(c), nil

	case ProviderLocal:
		c := OpenAIConfig{
			APIKey:          cfg.APIKey,
			BaseURL:         cfg.BaseURL,
			Model:           cfg.Model,
			Timeout:         settings.timeout,
			MaxOutputTokens: cfg.MaxOutputTokens,
			Temperature:     cfg.Temperature,
		}
		fillOpenAIDefaults(&c, "http://localhost:11434/v1", "llama3.1")
		if c.APIKey == "" {
			c.APIKey = "local" // local servers ignore the key but the header must be set
		}
		logging.Boot("llm client: local model=%s base=%s", c.Model, c.BaseURL)
		return NewOpenAIClientWithConfig(c), nil

	case ProviderGemini:
		c := GeminiConfig{
			APIKey:          cfg.APIKey,
			BaseURL:         cfg.BaseURL,
			Model:           cfg.Model,
			Timeout:         settings.timeout,
			MaxOutputTokens: cfg.MaxOutputTokens,
			Temperature:     cfg.Temperature,
		}
		if c.Model == "" {
			c.Model = "gemini-2.0-flash"
		}
		logging.Boot("llm client: gemini model=%s", c.Model)
		return NewGeminiClientWithConfig(c), nil
	}

	return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
}

func fillOpenAIDefaults(c *OpenAIConfig, baseURL, model string) {
	if c.BaseURL == "" {
		c.BaseURL = baseURL
	}
	if c.Model == "" {
		c.Model = model
	}
}
