package llm

import (
	"fmt"
	"strings"
)

// NewClient builds a completion client for the configured provider.
func NewClient(cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return newOpenAIClient(cfg)
	case "anthropic":
		return newAnthropicClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %q", cfg.Provider)
	}
}
