package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"deepthink/pkg/llm"

	"log/slog"

	"github.com/ollama/ollama/api"
)

// Client 本地端 Ollama reasoning client。
//
// deepseek-r1 這類模型會把思考過程放在回應的 Thinking 欄位，與雲端
// reasoning 後端的側通道語意相同。
type Client struct {
	client          *api.Client
	model           string
	maxAnswerTokens int64
	chanBuffer      int
}

// NewClient creates an Ollama client
func NewClient(model string, baseURL string, maxAnswerTokens int64, chanBuffer int) (*Client, error) {
	if maxAnswerTokens <= 0 {
		maxAnswerTokens = 1
	}
	if chanBuffer <= 0 {
		chanBuffer = 100
	}

	// 本地推理可能很慢，不在 client 層面強加 timeout
	httpClient := &http.Client{Timeout: 0}

	var client *api.Client
	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid base URL: %w", err)
		}
		client = api.NewClient(u, httpClient)
	} else {
		var err error
		client, err = api.ClientFromEnvironment()
		if err != nil {
			return nil, err
		}
	}

	slog.Info("Ollama client initialized", "model", model, "base_url", baseURL)

	return &Client{
		client:          client,
		model:           model,
		maxAnswerTokens: maxAnswerTokens,
		chanBuffer:      chanBuffer,
	}, nil
}

func (c *Client) Provider() string {
	return "ollama"
}

func (c *Client) StreamChat(ctx context.Context, messages []llm.Message) (<-chan llm.StreamChunk, error) {
	chunkCh := make(chan llm.StreamChunk, c.chanBuffer)

	apiMessages := convertMessages(messages)

	go func() {
		defer close(chunkCh)

		req := c.buildRequest(apiMessages)

		start := time.Now()
		err := c.client.Chat(ctx, req, func(resp api.ChatResponse) error {
			// Handle reasoning content
			if resp.Message.Thinking != "" {
				chunkCh <- llm.NewThinkingChunk(resp.Message.Thinking)
			}

			// Handle response content
			if resp.Message.Content != "" {
				chunkCh <- llm.NewTextChunk(resp.Message.Content)
			}

			// Final chunk
			if resp.Done {
				usage := &llm.LLMUsage{
					PromptTokens:     resp.PromptEvalCount,
					CompletionTokens: resp.EvalCount,
					TotalTokens:      resp.PromptEvalCount + resp.EvalCount,
					StopReason:       resp.DoneReason,
				}
				chunkCh <- llm.NewFinalChunk(resp.DoneReason, usage)
				llm.LogUsage(c.model, usage)
				slog.Debug("Local reasoning finished", "model", c.model, "duration", time.Since(start).String())
			}

			return nil
		})

		if err != nil {
			slog.Error("Stream error", "provider", "ollama", "model", c.model, "error", err)
			chunkCh <- llm.NewErrorChunk(
				fmt.Sprintf("Stream error: %v", err),
				&llm.BackendError{Provider: "ollama", Err: err},
			)
		}
	}()

	return chunkCh, nil
}

// buildRequest 組出串流請求。
// num_predict 壓到最低：答案 token 不是呼叫者要的，只為了引出 Thinking。
func (c *Client) buildRequest(messages []api.Message) *api.ChatRequest {
	stream := true
	return &api.ChatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   &stream,
		Options: map[string]any{
			"num_predict": c.maxAnswerTokens,
		},
	}
}

func convertMessages(messages []llm.Message) []api.Message {
	converted := make([]api.Message, 0, len(messages))
	for _, m := range messages {
		converted = append(converted, api.Message{
			Role:    m.Role,
			Content: m.GetTextContent(),
		})
	}
	return converted
}
