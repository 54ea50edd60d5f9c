package server

import (
	"testing"

	"deepthink/pkg/handler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGenerateRequest(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]interface{}
		want    handler.GenerateRequest
		wantErr bool
	}{
		{
			name: "prompt only",
			args: map[string]interface{}{"prompt": "2+2?"},
			want: handler.GenerateRequest{Prompt: "2+2?"},
		},
		{
			name: "all fields",
			args: map[string]interface{}{
				"prompt":        "2+2?",
				"model":         "openai/gpt-4",
				"showReasoning": true,
				"clearContext":  true,
			},
			want: handler.GenerateRequest{
				Prompt:        "2+2?",
				Model:         "openai/gpt-4",
				ShowReasoning: true,
				ClearContext:  true,
			},
		},
		{
			name: "empty prompt is accepted",
			args: map[string]interface{}{"prompt": ""},
			want: handler.GenerateRequest{Prompt: ""},
		},
		{
			name:    "missing prompt",
			args:    map[string]interface{}{"model": "openai/gpt-4"},
			wantErr: true,
		},
		{
			name:    "non-string prompt",
			args:    map[string]interface{}{"prompt": 42},
			wantErr: true,
		},
		{
			name: "wrongly typed optionals are ignored",
			args: map[string]interface{}{
				"prompt":        "q",
				"model":         7,
				"showReasoning": "yes",
			},
			want: handler.GenerateRequest{Prompt: "q"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseGenerateRequest(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
