// Package reason drives the streaming reasoning backend and accumulates
// the chain-of-thought side-channel into a single string.
package reason

import (
	"context"
	"errors"
	"strings"

	"deepthink/pkg/llm"
)

// Extractor consumes a reasoning stream to completion, keeping only the
// thinking-typed fragments in arrival order. The visible answer tokens of
// the reasoning call are discarded entirely.
type Extractor struct {
	client llm.StreamClient
}

// NewExtractor 建立一個 Extractor
func NewExtractor(client llm.StreamClient) *Extractor {
	return &Extractor{client: client}
}

// Extract issues a streaming chat request with promptText as the sole user
// message and returns the accumulated reasoning once the stream ends.
//
// An empty stream yields an empty string with no error. A stream that
// errors mid-way surfaces the error; no partial reasoning is returned.
func (e *Extractor) Extract(ctx context.Context, promptText string) (string, error) {
	chunkCh, err := e.client.StreamChat(ctx, []llm.Message{llm.NewUserMessage(promptText)})
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for chunk := range chunkCh {
		if chunk.RawError != nil {
			return "", chunk.RawError
		}
		if chunk.Error != "" {
			return "", &llm.BackendError{Provider: e.client.Provider(), Err: errors.New(chunk.Error)}
		}
		for _, block := range chunk.ContentBlocks {
			if block.Type == llm.BlockTypeThinking {
				sb.WriteString(block.Text)
			}
			// text 區塊是 reasoning 呼叫的「答案」，直接丟棄
		}
	}

	return sb.String(), nil
}
