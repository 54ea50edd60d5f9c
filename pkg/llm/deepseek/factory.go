package deepseek

import (
	"deepthink/pkg/config"
	"deepthink/pkg/llm"
)

// Factory handles creation of DeepSeek reasoning clients
type Factory struct{}

// Create implements llm.StreamFactory
func (f *Factory) Create(cfg *config.Config, system *config.SystemConfig) (llm.StreamClient, error) {
	return NewClient(
		cfg.DeepSeekAPIKey,
		cfg.DeepSeekModel,
		"",
		int64(system.ReasoningMaxTokens),
		system.InternalChannelBuffer,
	)
}

func init() {
	llm.RegisterStreamProvider("deepseek", &Factory{})
}
