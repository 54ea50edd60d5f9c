package route

import (
	"context"
	"errors"
	"testing"

	"deepthink/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChatClient records the model and prompt it was asked to complete.
type fakeChatClient struct {
	name       string
	response   string
	err        error
	calls      int
	lastModel  string
	lastPrompt string
}

func (f *fakeChatClient) Provider() string { return f.name }

func (f *fakeChatClient) Complete(ctx context.Context, model string, messages []llm.Message) (string, error) {
	f.calls++
	f.lastModel = model
	if len(messages) > 0 {
		f.lastPrompt = messages[0].GetTextContent()
	}
	return f.response, f.err
}

func newTestRouter() (*Router, *fakeChatClient, *fakeChatClient) {
	claude := &fakeChatClient{name: "anthropic", response: "from claude"}
	openRouter := &fakeChatClient{name: "openrouter", response: "from openrouter"}
	return NewRouter(claude, openRouter, "openai/gpt-4o-mini"), claude, openRouter
}

func TestRouteDispatch(t *testing.T) {
	tests := []struct {
		name       string
		model      string
		wantClaude bool
		wantModel  string
	}{
		{name: "claude identifier", model: "claude-3-5-sonnet-20241022", wantClaude: true, wantModel: "claude-3-5-sonnet-20241022"},
		{name: "claude substring decides the branch only", model: "my-claude-variant", wantClaude: true, wantModel: "claude-3-5-sonnet-20241022"},
		{name: "openai passthrough", model: "openai/gpt-4", wantClaude: false, wantModel: "openai/gpt-4"},
		{name: "absent model uses default", model: "", wantClaude: false, wantModel: "openai/gpt-4o-mini"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, claude, openRouter := newTestRouter()

			_, err := r.Route(context.Background(), "q", "r", "", tt.model)
			require.NoError(t, err)

			if tt.wantClaude {
				assert.Equal(t, 1, claude.calls)
				assert.Equal(t, 0, openRouter.calls)
				assert.Equal(t, tt.wantModel, claude.lastModel)
			} else {
				assert.Equal(t, 0, claude.calls)
				assert.Equal(t, 1, openRouter.calls)
				assert.Equal(t, tt.wantModel, openRouter.lastModel)
			}
		})
	}
}

func TestRoutePromptAssembly(t *testing.T) {
	r, _, openRouter := newTestRouter()

	_, err := r.Route(context.Background(), "2+2?", "Add 2 and 2.", "", "")
	require.NoError(t, err)
	assert.Equal(t, "Current question: <question>2+2?</question>\n\n<thinking>Add 2 and 2.</thinking>\n\n", openRouter.lastPrompt)

	_, err = r.Route(context.Background(), "2+2?", "Add 2 and 2.", "Question: p\nReasoning: r\nAnswer: a", "")
	require.NoError(t, err)
	assert.Equal(t,
		"Question: p\nReasoning: r\nAnswer: a\n\nCurrent question: <question>2+2?</question>\n\n<thinking>Add 2 and 2.</thinking>\n\n",
		openRouter.lastPrompt)
}

func TestRouteBackendFailure(t *testing.T) {
	claude := &fakeChatClient{name: "anthropic"}
	openRouter := &fakeChatClient{name: "openrouter", err: &llm.BackendError{Provider: "openrouter", Err: errors.New("rate limited")}}
	r := NewRouter(claude, openRouter, "openai/gpt-4o-mini")

	_, err := r.Route(context.Background(), "q", "r", "", "openai/gpt-4")
	var backendErr *llm.BackendError
	require.ErrorAs(t, err, &backendErr)
}

func TestRouteUnconfiguredBackend(t *testing.T) {
	r := NewRouter(nil, nil, "openai/gpt-4o-mini")

	_, err := r.Route(context.Background(), "q", "r", "", "claude-3-opus")
	var backendErr *llm.BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, "anthropic", backendErr.Provider)

	_, err = r.Route(context.Background(), "q", "r", "", "")
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, "openrouter", backendErr.Provider)
}
