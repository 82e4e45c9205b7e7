// Package config loads AgentRoute settings from YAML with sane defaults.
// Every knob maps onto an option of a concrete component; the config layer
// itself holds no behavior.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration document.
type Config struct {
	Router  RouterConfig  `yaml:"router"`
	Memory  MemoryConfig  `yaml:"memory"`
	Models  ModelsConfig  `yaml:"models"`
	Logging LoggingConfig `yaml:"logging"`
}

// RouterConfig tunes the multi-signal classifier.
type RouterConfig struct {
	// SemanticWeight, KeywordWeight and ContextWeight blend the three routing
	// signals and must sum to 1.
	SemanticWeight float64 `yaml:"semantic_weight"`
	KeywordWeight  float64 `yaml:"keyword_weight"`
	ContextWeight  float64 `yaml:"context_weight"`
	// ConfidenceThreshold marks decisions below it as low confidence.
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`
	// ConfidenceFloor is the hard floor for the general-handler substitution.
	ConfidenceFloor float64 `yaml:"confidence_floor"`
	// KeywordSaturation caps the keyword score denominator.
	KeywordSaturation int `yaml:"keyword_saturation"`
}

// MemoryConfig bounds both memory tiers.
type MemoryConfig struct {
	// ShortTermMaxTurns bounds each session's conversation window.
	ShortTermMaxTurns int `yaml:"short_term_max_turns"`
	// LongTermCapacity bounds the long-term store; zero means unbounded.
	LongTermCapacity int `yaml:"long_term_capacity"`
	// TopK bounds long-term retrieval per request.
	TopK int `yaml:"top_k"`
}

// ModelsConfig names the LLM and embedding models.
type ModelsConfig struct {
	// Provider selects the completion vendor: "openai", "anthropic" or "mock".
	Provider string `yaml:"provider"`
	// Completion is the completion model name; empty selects the provider
	// default.
	Completion string `yaml:"completion"`
	// Embedding is the embedding model name; empty selects the default.
	Embedding string `yaml:"embedding"`
	// EmbeddingDimension requests reduced-dimension embeddings.
	EmbeddingDimension int `yaml:"embedding_dimension"`
}

// LoggingConfig tunes the structured logger.
type LoggingConfig struct {
	Level     string `yaml:"level"`  // debug | info | warn | error
	Format    string `yaml:"format"` // json | text
	AddSource bool   `yaml:"add_source"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Router: RouterConfig{
			SemanticWeight:      0.4,
			KeywordWeight:       0.3,
			ContextWeight:       0.3,
			ConfidenceThreshold: 0.6,
			ConfidenceFloor:     0.3,
			KeywordSaturation:   10,
		},
		Memory: MemoryConfig{
			ShortTermMaxTurns: 50,
			LongTermCapacity:  0,
			TopK:              3,
		},
		Models: ModelsConfig{
			Provider:           "openai",
			EmbeddingDimension: 384,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads a YAML file over the defaults. Fields absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	sum := c.Router.SemanticWeight + c.Router.KeywordWeight + c.Router.ContextWeight
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("router weights must sum to 1, got %.3f", sum)
	}
	if c.Router.ConfidenceThreshold < 0 || c.Router.ConfidenceThreshold > 1 {
		return fmt.Errorf("confidence_threshold %.3f out of [0,1]", c.Router.ConfidenceThreshold)
	}
	if c.Router.ConfidenceFloor < 0 || c.Router.ConfidenceFloor > c.Router.ConfidenceThreshold {
		return fmt.Errorf("confidence_floor %.3f must be within [0, confidence_threshold]", c.Router.ConfidenceFloor)
	}
	if c.Memory.ShortTermMaxTurns <= 0 {
		return fmt.Errorf("short_term_max_turns must be positive, got %d", c.Memory.ShortTermMaxTurns)
	}
	if c.Memory.TopK <= 0 {
		return fmt.Errorf("top_k must be positive, got %d", c.Memory.TopK)
	}
	switch c.Models.Provider {
	case "openai", "anthropic", "mock":
	default:
		return fmt.Errorf("unknown model provider %q", c.Models.Provider)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	return nil
}
