package engine

import (
	"fmt"
	"strings"
)

// SupportedModels is the closed set of Anthropic model identifiers accepted
// by the summarization client.
var SupportedModels = []string{
	"claude-3-5-sonnet-latest",
	"claude-3-5-haiku-latest",
	"claude-3-opus-latest",
	"claude-3-sonnet-20240229",
	"claude-3-haiku-20240307",
}

const (
	maxTokensCeiling = 100000
	topKCeiling      = 1000
)

// ValidateLLMConfig checks the summarization settings and returns a
// *ConfigError for the first violated constraint. It must pass before any
// network call so a misconfiguration never produces a partial billed request.
// Check order: API key, model, temperature, max tokens, top_p, top_k.
func ValidateLLMConfig(c LLMConfig) error {
	if c.APIKey == "" {
		return &ConfigError{Field: "api_key", Reason: "Anthropic API key is not configured"}
	}
	if !isSupportedModel(c.Model) {
		return &ConfigError{
			Field:  "model",
			Reason: fmt.Sprintf("must be one of: %s", strings.Join(SupportedModels, ", ")),
		}
	}
	if c.Temperature < 0 || c.Temperature > 1 {
		return &ConfigError{Field: "temperature", Reason: "must be between 0 and 1"}
	}
	if c.MaxTokens <= 0 {
		return &ConfigError{Field: "max_tokens", Reason: "must be greater than 0"}
	}
	if c.MaxTokens > maxTokensCeiling {
		return &ConfigError{Field: "max_tokens", Reason: "cannot exceed 100,000"}
	}
	if c.TopP < 0 || c.TopP > 1 {
		return &ConfigError{Field: "top_p", Reason: "must be between 0 and 1"}
	}
	if c.TopK <= 0 {
		return &ConfigError{Field: "top_k", Reason: "must be greater than 0"}
	}
	if c.TopK > topKCeiling {
		return &ConfigError{Field: "top_k", Reason: "cannot exceed 1,000"}
	}
	return nil
}

func isSupportedModel(model string) bool {
	for _, m := range SupportedModels {
		if model == m {
			return true
		}
	}
	return false
}
