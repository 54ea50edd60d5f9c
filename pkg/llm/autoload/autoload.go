// Package autoload 匯入所有 LLM Provider 以觸發其 init() 註冊
package autoload

import (
	_ "deepthink/pkg/llm/claude"
	_ "deepthink/pkg/llm/deepseek"
	_ "deepthink/pkg/llm/ollama"
	_ "deepthink/pkg/llm/openrouter"
)
