package analysis

// Config holds analysis settings.
type Config struct {
	MaxTokens        int     `mapstructure:"max_tokens" yaml:"max_tokens"`
	Temperature      float64 `mapstructure:"temperature" yaml:"temperature"`
	ExtractMaxTokens int     `mapstructure:"extract_max_tokens" yaml:"extract_max_tokens"`
	BatchConcurrency int     `mapstructure:"batch_concurrency" yaml:"batch_concurrency"`

	// Provider names the LLM backend in health reports. Filled in from the
	// LLM config by the caller.
	Provider string `mapstructure:"-" yaml:"-"`
}

// DefaultConfig returns the settings the analysis prompt was tuned with.
func DefaultConfig() Config {
	return Config{
		MaxTokens:        4000,
		Temperature:      0.3,
		ExtractMaxTokens: 1000,
		BatchConcurrency: 4,
	}
}
