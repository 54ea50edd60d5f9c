package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	jsoniter "github.com/json-iterator/go"
)

// Config defines the business-level application configuration.
// Credentials and model overrides come from the environment (optionally
// seeded from a .env file); see Load.
type Config struct {
	// DeepSeekAPIKey authenticates against the DeepSeek reasoning backend.
	// Required when ReasoningProvider is "deepseek".
	DeepSeekAPIKey string
	// DeepSeekModel overrides the reasoning model identifier.
	// Default: "deepseek-reasoner".
	DeepSeekModel string

	// AnthropicAPIKey authenticates the claude chat backend. Optional at
	// startup; requests routed to claude models fail without it.
	AnthropicAPIKey string

	// OpenRouterAPIKey authenticates the multi-vendor router backend.
	// Optional at startup; requests routed to non-claude models fail without it.
	OpenRouterAPIKey string
	// OpenRouterDefaultModel is used when a tool call omits the model field.
	OpenRouterDefaultModel string

	// ReasoningProvider selects the reasoning backend: "deepseek" (default)
	// or "ollama" for a local instance.
	ReasoningProvider string
	// OllamaURL is the endpoint of the local Ollama instance.
	OllamaURL string
	// OllamaModel is the local reasoning model. Default: "deepseek-r1:8b".
	OllamaModel string
}

// Validate ensures the configuration can support at least the reasoning stage.
// It acts as a primary guard before the system proceeds to initialization.
func (c *Config) Validate() error {
	switch c.ReasoningProvider {
	case "deepseek":
		if c.DeepSeekAPIKey == "" {
			return fmt.Errorf("DEEPSEEK_API_KEY is required when REASONING_PROVIDER is 'deepseek'")
		}
	case "ollama":
		// 本地端不需要憑證
	default:
		return fmt.Errorf("unknown REASONING_PROVIDER: %s", c.ReasoningProvider)
	}
	return nil
}

// SystemConfig defines engine-level technical parameters.
// These settings are stored in system.json and control the technical
// behavior of the engine; every field has a safe hardcoded default.
type SystemConfig struct {
	// MaxContextTurns bounds the sliding conversation window. The oldest
	// turn is evicted when an append would exceed this count.
	MaxContextTurns int `json:"max_context_turns"`
	// ReasoningMaxTokens caps the visible answer tokens of the reasoning
	// call. Only the reasoning side-channel is of interest, so this stays
	// minimal.
	ReasoningMaxTokens int `json:"reasoning_max_tokens"`
	// ChatMaxTokens is the output token limit for the response stage.
	ChatMaxTokens int `json:"chat_max_tokens"`
	// InternalChannelBuffer defines the size of the internal Go channels
	// used for buffering stream chunks to prevent production blocking.
	InternalChannelBuffer int `json:"internal_channel_buffer"`
	// LogLevel sets the minimum severity for log output.
	// Accepted values: "debug", "info", "warn", "error". Default: "info".
	LogLevel string `json:"log_level"`
}

// DefaultSystemConfig returns a SystemConfig pointer initialized with hardcoded
// safe default values. This is used as a fallback when the system.json file
// is missing or corrupt, ensuring the engine can always start.
func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		MaxContextTurns:       10,
		ReasoningMaxTokens:    1,
		ChatMaxTokens:         8192,
		InternalChannelBuffer: 100,
		LogLevel:              "info",
	}
}

// Load assembles the application configuration from the environment and
// the optional system.json file in the working directory.
// A .env file, when present, seeds the environment first.
func Load() (*Config, *SystemConfig, error) {
	// .env 不存在時忽略錯誤
	_ = godotenv.Load()

	cfg := &Config{
		DeepSeekAPIKey:         os.Getenv("DEEPSEEK_API_KEY"),
		DeepSeekModel:          envOr("DEEPSEEK_MODEL", "deepseek-reasoner"),
		AnthropicAPIKey:        os.Getenv("ANTHROPIC_API_KEY"),
		OpenRouterAPIKey:       os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterDefaultModel: envOr("OPENROUTER_DEFAULT_MODEL", "openai/gpt-4o-mini"),
		ReasoningProvider:      envOr("REASONING_PROVIDER", "deepseek"),
		OllamaURL:              os.Getenv("OLLAMA_URL"),
		OllamaModel:            envOr("OLLAMA_MODEL", "deepseek-r1:8b"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	return cfg, LoadSystemConfig("system.json"), nil
}

// LoadSystemConfig attempts to load system settings, returns defaults if it fails
func LoadSystemConfig(path string) *SystemConfig {
	cfg := DefaultSystemConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		return cfg // File not found, use defaults
	}

	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(file, cfg); err != nil {
		return cfg // Parse failed, use defaults
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
