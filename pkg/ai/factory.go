package ai

import (
	"fmt"

	"github.com/KumarShresth7/EmailAutomation/pkg/gemini"
)

// Config holds AI provider configuration
type Config struct {
	Provider ProviderType // "gemini", "ollama" or "auto"

	// Gemini config
	GeminiAPIKey string

	// Ollama config
	OllamaBaseURL string // e.g., "http://localhost:11434"
	OllamaModel   string // e.g., "llama3", "mistral"
}

// NewService creates a Service based on the config.
// This is the factory function - switch AI provider by changing config.Provider
func NewService(cfg Config) (Service, error) {
	switch cfg.Provider {
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for Gemini provider")
		}
		return newModelService("gemini", gemini.NewGeminiService(cfg.GeminiAPIKey)), nil

	case ProviderOllama:
		return newModelService("ollama", NewOllamaClient(cfg.OllamaBaseURL, cfg.OllamaModel)), nil

	default:
		// Auto: prefer Gemini with Ollama as fallback when both are
		// configured, otherwise whichever is available
		ollama := newModelService("ollama", NewOllamaClient(cfg.OllamaBaseURL, cfg.OllamaModel))
		if cfg.GeminiAPIKey == "" {
			return ollama, nil
		}
		gem := newModelService("gemini", gemini.NewGeminiService(cfg.GeminiAPIKey))
		return NewFallbackService(gem, ollama), nil
	}
}
