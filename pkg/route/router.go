// Package route dispatches an assembled prompt to one of the downstream
// chat backends based on the requested model identifier.
package route

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"deepthink/pkg/llm"
)

// claudeModelID 固定送往 Anthropic 後端的模型；呼叫者的字串只決定分支
const claudeModelID = "claude-3-5-sonnet-20241022"

// Router 依據 model 字串選擇下游 chat backend。
//
// Model identifiers containing "claude" go to the Anthropic backend with a
// fixed model; everything else is passed through the OpenRouter backend
// verbatim (or the configured default when the model is absent). A two-way
// string match, deliberately minimal.
type Router struct {
	claude       llm.ChatClient
	openRouter   llm.ChatClient
	defaultModel string
}

// NewRouter 建立一個 Router；未配置的後端可為 nil
func NewRouter(claude, openRouter llm.ChatClient, defaultModel string) *Router {
	return &Router{
		claude:       claude,
		openRouter:   openRouter,
		defaultModel: defaultModel,
	}
}

// Route assembles the tagged prompt and dispatches it.
func (r *Router) Route(ctx context.Context, prompt, reasoning, priorContext, model string) (string, error) {
	messages := []llm.Message{llm.NewUserMessage(assemblePrompt(prompt, reasoning, priorContext))}

	if strings.Contains(model, "claude") {
		if r.claude == nil {
			return "", &llm.BackendError{Provider: "anthropic", Err: errors.New("not configured (ANTHROPIC_API_KEY missing)")}
		}
		return r.claude.Complete(ctx, claudeModelID, messages)
	}

	if r.openRouter == nil {
		return "", &llm.BackendError{Provider: "openrouter", Err: errors.New("not configured (OPENROUTER_API_KEY missing)")}
	}
	if model == "" {
		model = r.defaultModel
	}
	return r.openRouter.Complete(ctx, model, messages)
}

// assemblePrompt 將原始問題與抽取出的 reasoning 包進明確的標籤，
// 讓下游模型能區分「問題」「思考草稿」與對話歷史。
func assemblePrompt(prompt, reasoning, priorContext string) string {
	var sb strings.Builder
	if priorContext != "" {
		sb.WriteString(priorContext)
		sb.WriteString("\n\n")
	}
	fmt.Fprintf(&sb, "Current question: <question>%s</question>\n\n<thinking>%s</thinking>\n\n", prompt, reasoning)
	return sb.String()
}
