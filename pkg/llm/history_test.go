package llm

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTurn(i int) Turn {
	return Turn{
		Timestamp: time.Now(),
		Prompt:    fmt.Sprintf("q%d", i),
		Reasoning: fmt.Sprintf("r%d", i),
		Response:  fmt.Sprintf("a%d", i),
		Model:     "default",
	}
}

func TestConversationWindowBounded(t *testing.T) {
	tests := []struct {
		name    string
		cap     int
		appends int
		wantLen int
	}{
		{name: "under capacity", cap: 10, appends: 3, wantLen: 3},
		{name: "at capacity", cap: 10, appends: 10, wantLen: 10},
		{name: "over capacity", cap: 10, appends: 15, wantLen: 10},
		{name: "small window", cap: 2, appends: 5, wantLen: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewConversationWindow(tt.cap)
			for i := 0; i < tt.appends; i++ {
				w.Append(makeTurn(i))
			}

			turns := w.Turns()
			require.Len(t, turns, tt.wantLen)

			// The stored turns are exactly the last cap appended, in
			// original order.
			first := tt.appends - tt.wantLen
			for j, turn := range turns {
				assert.Equal(t, fmt.Sprintf("q%d", first+j), turn.Prompt)
			}
		})
	}
}

func TestConversationWindowDefaultCapacity(t *testing.T) {
	w := NewConversationWindow(0)
	for i := 0; i < DefaultMaxTurns+5; i++ {
		w.Append(makeTurn(i))
	}
	assert.Equal(t, DefaultMaxTurns, w.Len())
}

func TestConversationWindowClear(t *testing.T) {
	w := NewConversationWindow(10)

	// Clear on an empty window is a no-op
	w.Clear()
	assert.Equal(t, 0, w.Len())

	w.Append(makeTurn(1))
	w.Append(makeTurn(2))
	w.Clear()
	assert.Equal(t, 0, w.Len())

	// A subsequent append behaves as on a fresh window
	w.Append(makeTurn(3))
	turns := w.Turns()
	require.Len(t, turns, 1)
	assert.Equal(t, "q3", turns[0].Prompt)
}

func TestPromptPrefix(t *testing.T) {
	w := NewConversationWindow(10)
	assert.Equal(t, "", w.PromptPrefix())

	w.Append(Turn{Prompt: "p1", Reasoning: "r1", Response: "a1"})
	assert.Equal(t, "Question: p1\nReasoning: r1\nAnswer: a1", w.PromptPrefix())

	w.Append(Turn{Prompt: "p2", Reasoning: "r2", Response: "a2"})
	want := "Question: p1\nReasoning: r1\nAnswer: a1\n\nQuestion: p2\nReasoning: r2\nAnswer: a2"
	assert.Equal(t, want, w.PromptPrefix())
}

func TestTurnsReturnsCopy(t *testing.T) {
	w := NewConversationWindow(10)
	w.Append(Turn{Prompt: "p1"})

	turns := w.Turns()
	turns[0].Prompt = "mutated"

	assert.Equal(t, "p1", w.Turns()[0].Prompt)
}
