package openrouter

import (
	"context"
	"fmt"

	"deepthink/pkg/llm"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// DefaultBaseURL OpenRouter 的 OpenAI 相容端點
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// Client 透過 OpenRouter 聚合端點呼叫任意供應商的 chat 模型
type Client struct {
	client       *openai.Client
	defaultModel string
	maxTokens    int64
}

// NewClient creates a new OpenRouter client
func NewClient(apiKey, defaultModel, baseURL string, maxTokens int64) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openrouter: API key is required")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if maxTokens <= 0 {
		maxTokens = 8192
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
	)

	return &Client{
		client:       &client,
		defaultModel: defaultModel,
		maxTokens:    maxTokens,
	}, nil
}

func (c *Client) Provider() string {
	return "openrouter"
}

// Complete sends a single completion request. The caller's model string is
// passed through verbatim; an empty model selects the configured default.
// A completion without choices yields an empty response, not an error.
func (c *Client) Complete(ctx context.Context, model string, messages []llm.Message) (string, error) {
	if model == "" {
		model = c.defaultModel
	}

	params := openai.ChatCompletionNewParams{
		Model:     openai.ChatModel(model),
		Messages:  convertMessages(messages),
		MaxTokens: openai.Int(c.maxTokens),
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", &llm.BackendError{Provider: "openrouter", Err: err}
	}

	if len(completion.Choices) == 0 {
		return "", nil
	}
	return completion.Choices[0].Message.Content, nil
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
