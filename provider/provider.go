package provider

import (
	"context"

	"github.com/promptflow/promptflow/config"
	openai_provider "github.com/promptflow/promptflow/provider/openai"
)

// Generator is the interface every text-generation implementation satisfies
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// NewGenerator selects the generator variant from configuration: the remote
// chat-completion client when an API key is configured, otherwise the
// deterministic mock. UseMock forces the mock even with a key present.
func NewGenerator(cfg config.OpenAIConfig) Generator {
	if cfg.UseMock || cfg.APIKey == "" {
		return Mock{}
	}
	return openai_provider.NewClient(
		cfg.APIKey,
		cfg.Endpoint,
		cfg.CompletionModel,
		cfg.Temperature,
		cfg.MaxTokens,
		cfg.Timeout,
	)
}
