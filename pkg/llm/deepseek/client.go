package deepseek

import (
	"context"
	"fmt"
	"strings"

	"deepthink/pkg/llm"

	jsoniter "github.com/json-iterator/go"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// DefaultBaseURL DeepSeek 的 OpenAI 相容端點
	DefaultBaseURL = "https://api.deepseek.com"

	// DefaultModel 預設的 reasoning 模型
	DefaultModel = "deepseek-reasoner"
)

// Client is a reasoning-stream client for the DeepSeek API, driven through
// the official OpenAI Go SDK in compatibility mode.
//
// The visible answer of this backend is not what callers are after: the
// chain-of-thought arrives as a side-channel field on each stream delta
// (reasoning_content), which the client surfaces as thinking-typed blocks.
type Client struct {
	client          *openai.Client
	model           string
	maxAnswerTokens int64
	chanBuffer      int
}

// NewClient creates a new DeepSeek client
func NewClient(apiKey, model, baseURL string, maxAnswerTokens int64, chanBuffer int) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("deepseek: API key is required")
	}
	if model == "" {
		model = DefaultModel
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if maxAnswerTokens <= 0 {
		maxAnswerTokens = 1
	}
	if chanBuffer <= 0 {
		chanBuffer = 100
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
	)

	return &Client{
		client:          &client,
		model:           model,
		maxAnswerTokens: maxAnswerTokens,
		chanBuffer:      chanBuffer,
	}, nil
}

func (c *Client) Provider() string {
	return "deepseek"
}

// StreamChat 以串流方式呼叫 reasoning 模型。
// 答案 token 壓到最低（max_tokens），只為了引出 reasoning 側通道。
func (c *Client) StreamChat(ctx context.Context, messages []llm.Message) (<-chan llm.StreamChunk, error) {
	chunkCh := make(chan llm.StreamChunk, c.chanBuffer)

	params := openai.ChatCompletionNewParams{
		Model:     openai.ChatModel(c.model),
		Messages:  convertMessages(messages),
		MaxTokens: openai.Int(c.maxAnswerTokens),
		StreamOptions: openai.ChatCompletionStreamOptionsParam{
			IncludeUsage: openai.Bool(true),
		},
	}

	go func() {
		defer close(chunkCh)

		stream := c.client.Chat.Completions.NewStreaming(ctx, params)
		defer stream.Close()

		lastFinishReason := ""
		var lastUsage *llm.LLMUsage

		for stream.Next() {
			chunk := stream.Current()

			if chunk.Usage.TotalTokens > 0 {
				lastUsage = &llm.LLMUsage{
					PromptTokens:     int(chunk.Usage.PromptTokens),
					CompletionTokens: int(chunk.Usage.CompletionTokens),
					TotalTokens:      int(chunk.Usage.TotalTokens),
				}
			}

			if len(chunk.Choices) == 0 {
				continue
			}
			choice := chunk.Choices[0]

			if frag := reasoningFragment(choice.Delta); frag != "" {
				chunkCh <- llm.NewThinkingChunk(frag)
			}

			if choice.Delta.Content != "" {
				chunkCh <- llm.NewTextChunk(choice.Delta.Content)
			}

			if choice.FinishReason != "" {
				lastFinishReason = choice.FinishReason
			}
		}

		if err := stream.Err(); err != nil {
			chunkCh <- llm.NewErrorChunk(
				fmt.Sprintf("Stream error: %v", err),
				&llm.BackendError{Provider: "deepseek", Err: err},
			)
			return
		}

		reason := normalizeStopReason(lastFinishReason)
		if lastUsage != nil {
			lastUsage.StopReason = reason
		}
		chunkCh <- llm.NewFinalChunk(reason, lastUsage)
		llm.LogUsage(c.model, lastUsage)
	}()

	return chunkCh, nil
}

// reasoningFragment 讀取 delta 上的思考側通道欄位。
// DeepSeek 使用 reasoning_content；部分 OpenAI 相容服務改用 reasoning
// 或 thinking，這裡一併處理。
func reasoningFragment(delta openai.ChatCompletionChunkChoiceDelta) string {
	for _, key := range []string{"reasoning_content", "reasoning", "thinking"} {
		field, ok := delta.JSON.ExtraFields[key]
		if !ok || !field.Valid() {
			continue
		}
		var frag string
		if err := json.Unmarshal([]byte(field.Raw()), &frag); err == nil && frag != "" {
			return frag
		}
	}
	return ""
}

func convertMessages(messages []llm.Message) []openai.ChatCompletionMessageParamUnion {
	converted := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		text := m.GetTextContent()
		switch m.Role {
		case "system":
			converted = append(converted, openai.SystemMessage(text))
		case "assistant":
			converted = append(converted, openai.AssistantMessage(text))
		default:
			converted = append(converted, openai.UserMessage(text))
		}
	}
	return converted
}

// normalizeStopReason converts an OpenAI-style finish_reason to the
// standardized lowercase format.
func normalizeStopReason(reason string) string {
	switch strings.ToLower(reason) {
	case "", "stop":
		return llm.StopReasonStop
	case "length":
		return llm.StopReasonLength
	default:
		return reason
	}
}
