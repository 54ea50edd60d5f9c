package openrouter

import (
	"deepthink/pkg/config"
	"deepthink/pkg/llm"
)

// Factory handles creation of OpenRouter clients
type Factory struct{}

// Create implements llm.ChatFactory
func (f *Factory) Create(cfg *config.Config, system *config.SystemConfig) (llm.ChatClient, error) {
	return NewClient(cfg.OpenRouterAPIKey, cfg.OpenRouterDefaultModel, "", int64(system.ChatMaxTokens))
}

func init() {
	llm.RegisterChatProvider("openrouter", &Factory{})
}
