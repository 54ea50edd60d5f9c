package llm

import (
	"fmt"
	"log/slog"

	"deepthink/pkg/config"
)

// Backends 聚合管線需要的三個後端。
// Claude 與 OpenRouter 可能為 nil（缺少對應憑證時），由 Router 在
// 分派時回報錯誤，而不是在啟動時直接失敗。
type Backends struct {
	Reasoner   StreamClient
	Claude     ChatClient
	OpenRouter ChatClient
}

// NewFromConfig 根據設定檔建立所有後端 client
func NewFromConfig(cfg *config.Config, system *config.SystemConfig) (*Backends, error) {
	factory, ok := GetStreamFactory(cfg.ReasoningProvider)
	if !ok {
		return nil, fmt.Errorf("unknown reasoning provider: %s", cfg.ReasoningProvider)
	}

	reasoner, err := factory.Create(cfg, system)
	if err != nil {
		return nil, fmt.Errorf("failed to init reasoning backend %s: %w", cfg.ReasoningProvider, err)
	}
	slog.Info("Reasoning backend initialized", "provider", reasoner.Provider())

	b := &Backends{Reasoner: reasoner}

	if cfg.AnthropicAPIKey != "" {
		f, ok := GetChatFactory("claude")
		if !ok {
			return nil, fmt.Errorf("claude provider not registered")
		}
		client, err := f.Create(cfg, system)
		if err != nil {
			return nil, fmt.Errorf("failed to init claude backend: %w", err)
		}
		b.Claude = client
		slog.Info("Chat backend initialized", "provider", client.Provider())
	} else {
		slog.Warn("ANTHROPIC_API_KEY not set, claude models will be unavailable")
	}

	if cfg.OpenRouterAPIKey != "" {
		f, ok := GetChatFactory("openrouter")
		if !ok {
			return nil, fmt.Errorf("openrouter provider not registered")
		}
		client, err := f.Create(cfg, system)
		if err != nil {
			return nil, fmt.Errorf("failed to init openrouter backend: %w", err)
		}
		b.OpenRouter = client
		slog.Info("Chat backend initialized", "provider", client.Provider())
	} else {
		slog.Warn("OPENROUTER_API_KEY not set, non-claude models will be unavailable")
	}

	return b, nil
}
