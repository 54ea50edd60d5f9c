package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSystemConfig(t *testing.T) {
	cfg := DefaultSystemConfig()

	assert.Equal(t, 10, cfg.MaxContextTurns)
	assert.Equal(t, 1, cfg.ReasoningMaxTokens)
	assert.Equal(t, 8192, cfg.ChatMaxTokens)
	assert.Equal(t, 100, cfg.InternalChannelBuffer)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadSystemConfig(t *testing.T) {
	t.Run("missing file falls back to defaults", func(t *testing.T) {
		cfg := LoadSystemConfig(filepath.Join(t.TempDir(), "nope.json"))
		assert.Equal(t, DefaultSystemConfig(), cfg)
	})

	t.Run("corrupt file falls back to defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "system.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

		cfg := LoadSystemConfig(path)
		assert.Equal(t, DefaultSystemConfig(), cfg)
	})

	t.Run("partial file overrides only the given fields", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "system.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"max_context_turns": 3, "log_level": "debug"}`), 0644))

		cfg := LoadSystemConfig(path)
		assert.Equal(t, 3, cfg.MaxContextTurns)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, 8192, cfg.ChatMaxTokens)
	})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "deepseek with key", cfg: Config{ReasoningProvider: "deepseek", DeepSeekAPIKey: "sk-x"}},
		{name: "deepseek without key", cfg: Config{ReasoningProvider: "deepseek"}, wantErr: true},
		{name: "ollama needs no credentials", cfg: Config{ReasoningProvider: "ollama"}},
		{name: "unknown provider", cfg: Config{ReasoningProvider: "bedrock"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "sk-test")
	t.Setenv("DEEPSEEK_MODEL", "")
	t.Setenv("OPENROUTER_DEFAULT_MODEL", "")
	t.Setenv("REASONING_PROVIDER", "")
	t.Setenv("OLLAMA_MODEL", "")
	t.Setenv("ANTHROPIC_API_KEY", "ak-test")

	cfg, sysCfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.DeepSeekAPIKey)
	assert.Equal(t, "ak-test", cfg.AnthropicAPIKey)
	assert.Equal(t, "deepseek-reasoner", cfg.DeepSeekModel)
	assert.Equal(t, "openai/gpt-4o-mini", cfg.OpenRouterDefaultModel)
	assert.Equal(t, "deepseek", cfg.ReasoningProvider)
	assert.Equal(t, "deepseek-r1:8b", cfg.OllamaModel)
	assert.NotNil(t, sysCfg)
}

func TestLoadRejectsInvalidEnvironment(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "")
	t.Setenv("REASONING_PROVIDER", "deepseek")

	_, _, err := Load()
	assert.Error(t, err)
}
