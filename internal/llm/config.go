// Package llm wraps the Gemini models the matcher talks to: a generative model
// for structured resume extraction and an embedding model for semantic coverage.
package llm

import "time"

// ModelTier represents the complexity/capability level of a generative model
type ModelTier string

const (
	// TierLite is for simple tasks: classification, short extraction
	TierLite ModelTier = "lite"
	// TierStandard is for structured output such as resume records
	TierStandard ModelTier = "standard"
)

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// Config holds the model configuration for the application
type Config struct {
	Provider       Provider
	Models         map[ModelTier]string
	EmbeddingModel string
	// Timeout bounds a single model call; zero means no extra deadline
	Timeout time.Duration
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
		EmbeddingModel: "text-embedding-004",
		Timeout:        30 * time.Second,
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

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	next := c.clone()
	next.Models[tier] = model
	return next
}

// WithEmbeddingModel returns a new Config using the named embedding model
func (c *Config) WithEmbeddingModel(model string) *Config {
	next := c.clone()
	next.EmbeddingModel = model
	return next
}

func (c *Config) clone() *Config {
	next := &Config{
		Provider:       c.Provider,
		Models:         make(map[ModelTier]string, len(c.Models)),
		EmbeddingModel: c.EmbeddingModel,
		Timeout:        c.Timeout,
	}
	for k, v := range c.Models {
		next.Models[k] = v
	}
	return next
}
