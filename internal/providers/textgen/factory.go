package textgen

import (
	"fmt"

	"server/internal/infra"
)

// NewFromConfig builds the configured provider client. Gemini is the
// default; OpenAI is selectable for deployments without Gemini access.
func NewFromConfig(cfg *infra.Config) (Generator, error) {
	switch cfg.SolveProvider {
	case "", "gemini":
		return NewGeminiClient(GeminiOptions{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			BaseURL: cfg.GeminiBaseURL,
		})
	case "openai":
		return NewOpenAIClient(OpenAIOptions{
			APIKey:       cfg.OpenAIAPIKey,
			Model:        cfg.OpenAIModel,
			BaseURL:      cfg.OpenAIBaseURL,
			Organization: cfg.OpenAIOrg,
		})
	}
	return nil, fmt.Errorf("unsupported solve provider %q", cfg.SolveProvider)
}
