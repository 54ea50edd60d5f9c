package claude

import (
	"context"
	"fmt"

	"deepthink/pkg/llm"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// DefaultModel is the fixed model identifier used for every request on
// this backend. The caller's model string only selects the branch.
const DefaultModel = "claude-3-5-sonnet-20241022"

// Client 透過官方 Anthropic SDK 串接 claude 模型（非串流）
type Client struct {
	client    anthropic.Client
	maxTokens int64
}

// NewClient creates a new Anthropic client
func NewClient(apiKey string, maxTokens int64) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic: API key is required")
	}
	if maxTokens <= 0 {
		maxTokens = 8192
	}

	return &Client{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		maxTokens: maxTokens,
	}, nil
}

func (c *Client) Provider() string {
	return "anthropic"
}

// Complete sends a single completion request and unwraps the first content
// block. A first block that is not text-typed is reported as a literal
// diagnostic string instead of an error; the turn still commits with it.
func (c *Client) Complete(ctx context.Context, model string, messages []llm.Message) (string, error) {
	if model == "" {
		model = DefaultModel
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: c.maxTokens,
		Messages:  convertMessages(messages),
	}

	message, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", &llm.BackendError{Provider: "anthropic", Err: err}
	}

	if len(message.Content) == 0 {
		return "Unexpected response type: empty content", nil
	}

	block := message.Content[0]
	if block.Type != "text" {
		return fmt.Sprintf("Unexpected response type: %s", block.Type), nil
	}
	return block.Text, nil
}

func convertMessages(messages []llm.Message) []anthropic.MessageParam {
	converted := make([]anthropic.MessageParam, 0, len(messages))
	for _, m := range messages {
		text := m.GetTextContent()
		if m.Role == "assistant" {
			converted = append(converted, anthropic.NewAssistantMessage(anthropic.NewTextBlock(text)))
		} else {
			converted = append(converted, anthropic.NewUserMessage(anthropic.NewTextBlock(text)))
		}
	}
	return converted
}
