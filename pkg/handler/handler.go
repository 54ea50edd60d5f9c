// Package handler orchestrates one generate_response turn: context
// rendering, the two generation stages, and the context commit.
package handler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"deepthink/pkg/llm"
	"deepthink/pkg/monitor"
	"deepthink/pkg/utils"
)

// GenerateRequest 對應 generate_response 工具的輸入欄位
type GenerateRequest struct {
	Prompt        string `json:"prompt"`
	Model         string `json:"model,omitempty"`
	ShowReasoning bool   `json:"showReasoning,omitempty"`
	ClearContext  bool   `json:"clearContext,omitempty"`
}

// reasoner 抽取 reasoning 字串
type reasoner interface {
	Extract(ctx context.Context, promptText string) (string, error)
}

// responder 產生最終回答
type responder interface {
	Route(ctx context.Context, prompt, reasoning, priorContext, model string) (string, error)
}

// TurnHandler runs the two-stage pipeline for one tool call.
//
// The two backend calls are strictly sequential: the response stage's
// input depends on the reasoning stage's output. The turn commits to the
// conversation window only after both stages succeed; an already-applied
// clearContext is not rolled back on failure.
type TurnHandler struct {
	extractor reasoner
	router    responder
	window    *llm.ConversationWindow
	monitor   monitor.Monitor // optional
}

// NewTurnHandler initializes a TurnHandler.
// The conversation window is injected, not ambient: all calls on one
// process share a single evolving history.
func NewTurnHandler(extractor reasoner, router responder, window *llm.ConversationWindow, mon monitor.Monitor) *TurnHandler {
	return &TurnHandler{
		extractor: extractor,
		router:    router,
		window:    window,
		monitor:   mon,
	}
}

// Handle is the sole entry point, invoked once per tool call.
func (h *TurnHandler) Handle(ctx context.Context, req GenerateRequest) (string, error) {
	turnID := utils.GenerateID()[:8]
	ctx = context.WithValue(ctx, monitor.TurnIDContextKey, turnID)
	start := time.Now()

	slog.InfoContext(ctx, "Turn started",
		"model", req.Model,
		"show_reasoning", req.ShowReasoning,
		"clear_context", req.ClearContext,
	)

	// 1. 清除歷史要在任何生成之前，且失敗時不回滾
	if req.ClearContext {
		h.window.Clear()
		slog.InfoContext(ctx, "Context cleared")
	}

	// 2. 渲染歷史前綴
	contextPrefix := h.window.PromptPrefix()

	// 3. Reasoning 階段輸入
	reasoningInput := req.Prompt
	if contextPrefix != "" {
		reasoningInput = fmt.Sprintf("Previous conversation:\n%s\n\nNew question: %s", contextPrefix, req.Prompt)
	}

	// 4. 抽取 reasoning
	reasoning, err := h.extractor.Extract(ctx, reasoningInput)
	if err != nil {
		slog.ErrorContext(ctx, "Reasoning stage failed", "error", err)
		return "", fmt.Errorf("reasoning stage: %w", err)
	}
	slog.DebugContext(ctx, "Reasoning extracted", "chars", len(reasoning))

	// 5. 產生最終回答
	response, err := h.router.Route(ctx, req.Prompt, reasoning, contextPrefix, req.Model)
	if err != nil {
		slog.ErrorContext(ctx, "Response stage failed", "error", err)
		return "", fmt.Errorf("response stage: %w", err)
	}

	// 6. 兩階段都成功才寫入歷史
	model := req.Model
	if model == "" {
		model = "default"
	}
	turn := llm.Turn{
		Timestamp: time.Now(),
		Prompt:    req.Prompt,
		Reasoning: reasoning,
		Response:  response,
		Model:     model,
	}
	h.window.Append(turn)

	if h.monitor != nil {
		h.monitor.OnTurn(monitor.TurnRecord{
			Timestamp: turn.Timestamp,
			TurnID:    turnID,
			Model:     model,
			Prompt:    req.Prompt,
			Response:  response,
		})
	}

	slog.InfoContext(ctx, "Turn completed",
		"duration", time.Since(start).String(),
		"context_len", h.window.Len(),
	)

	// 7. 輸出格式
	if req.ShowReasoning {
		return fmt.Sprintf("Reasoning:\n%s\n\nResponse:\n%s", reasoning, response), nil
	}
	return response, nil
}
