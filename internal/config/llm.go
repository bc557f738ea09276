package config

// LLMConfig configures the chat provider used for pattern suggestions.
type LLMConfig struct {
	Provider string `yaml:"provider"` // openai, openrouter, gemini, local
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`
	Timeout  string `yaml:"timeout"`

	// MaxOutputTokens bounds the response size. The suggestion payload is a
	// single small JSON object, so the default is deliberately low.
	MaxOutputTokens int `yaml:"max_output_tokens"`

	// Temperature for the suggestion request. Low values keep the model on
	// the strict output contract.
	Temperature float64 `yaml:"temperature"`
}
