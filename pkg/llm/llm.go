package llm

import (
	"context"
	"fmt"
	"log/slog"
)

// LLMUsage 定義通用的用量統計結構
type LLMUsage struct {
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
	TotalTokens      int    `json:"total_tokens"`
	StopReason       string `json:"stop_reason,omitempty"`
}

// LogUsage 印出統一格式的用量統計
func LogUsage(model string, usage *LLMUsage) {
	if usage == nil {
		return
	}
	slog.Debug("Usage",
		"model", model,
		"prompt_tokens", usage.PromptTokens,
		"completion_tokens", usage.CompletionTokens,
		"total_tokens", usage.TotalTokens,
		"stop_reason", usage.StopReason,
	)
}

// StreamClient 串流式 LLM 客戶端介面（reasoning 後端）
type StreamClient interface {
	// Provider 回傳供應商識別名稱（小寫，用於 log 與錯誤包裝）
	Provider() string

	// StreamChat 流式對話，返回 StreamChunk channel
	// messages: 對話內容（使用 llm.Message 結構）
	// 返回值: StreamChunk channel（增量式內容，最後一個 chunk 帶統計或錯誤）
	StreamChat(ctx context.Context, messages []Message) (<-chan StreamChunk, error)
}

// ChatClient 單次完成式 LLM 客戶端介面（response 後端）
//
// Complete normalizes the provider's native payload into plain text. An
// empty model selects the client's default.
type ChatClient interface {
	Provider() string
	Complete(ctx context.Context, model string, messages []Message) (string, error)
}

// BackendError 表示後端呼叫在 transport/vendor 層級失敗
type BackendError struct {
	Provider string
	Err      error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s backend: %v", e.Provider, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
