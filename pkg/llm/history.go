package llm

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Turn 表示一輪完整的問答（prompt / reasoning / response）
// Turn 一旦建立即不可變，所有權屬於 ConversationWindow。
type Turn struct {
	Timestamp time.Time `json:"timestamp"`
	Prompt    string    `json:"prompt"`
	Reasoning string    `json:"reasoning"`
	Response  string    `json:"response"`
	Model     string    `json:"model"`
}

// ConversationWindow 管理對話歷史，滑動窗口 (Sliding Window) 限制長度
//
// Eviction is FIFO on creation order: when an append would exceed the
// capacity the oldest turn is dropped. Access is mutex-serialized so
// overlapping tool calls never observe a torn window.
type ConversationWindow struct {
	turns    []Turn
	maxTurns int
	mu       sync.RWMutex
}

// NewConversationWindow 建立一個新的歷史管理員
func NewConversationWindow(maxTurns int) *ConversationWindow {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &ConversationWindow{
		turns:    make([]Turn, 0, maxTurns),
		maxTurns: maxTurns,
	}
}

// Append 加入一輪新問答，若超過長度則移除最舊的一筆
func (w *ConversationWindow) Append(t Turn) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.turns = append(w.turns, t)
	if len(w.turns) > w.maxTurns {
		w.turns = w.turns[1:]
	}
}

// Clear 清空所有歷史
func (w *ConversationWindow) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.turns = w.turns[:0]
}

// Len 回傳目前的歷史長度
func (w *ConversationWindow) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return len(w.turns)
}

// Turns 取得目前的歷史副本
func (w *ConversationWindow) Turns() []Turn {
	w.mu.RLock()
	defer w.mu.RUnlock()

	cp := make([]Turn, len(w.turns))
	copy(cp, w.turns)
	return cp
}

// PromptPrefix 將歷史渲染為可直接前置到 prompt 的文字。
// 每輪一個三行區塊，區塊之間以空行分隔；沒有歷史時回傳空字串。
func (w *ConversationWindow) PromptPrefix() string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if len(w.turns) == 0 {
		return ""
	}

	blocks := make([]string, 0, len(w.turns))
	for _, t := range w.turns {
		blocks = append(blocks, fmt.Sprintf("Question: %s\nReasoning: %s\nAnswer: %s", t.Prompt, t.Reasoning, t.Response))
	}
	return strings.Join(blocks, "\n\n")
}
