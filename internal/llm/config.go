// Package llm wraps the language model provider used by the oracle parser.
package llm

import "fmt"

// ModelTier represents the capability level of a model.
type ModelTier string

const (
	// TierLite is for cheap, fast extraction.
	TierLite ModelTier = "lite"
	// TierStandard is the default for resume parsing.
	TierStandard ModelTier = "standard"
	// TierAdvanced is for long or messy resumes.
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider.
const ProviderGemini Provider = "gemini"

// DefaultTemperature keeps structured output stable across calls.
const DefaultTemperature float32 = 0.1

// Config holds the model configuration for the oracle.
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
}

// DefaultConfig returns the default Gemini configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature: DefaultTemperature,
	}
}

// ParseTier validates a tier name from configuration. Empty means standard.
func ParseTier(name string) (ModelTier, error) {
	switch ModelTier(name) {
	case "":
		return TierStandard, nil
	case TierLite, TierStandard, TierAdvanced:
		return ModelTier(name), nil
	default:
		return "", fmt.Errorf("unknown model tier %q", name)
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}
