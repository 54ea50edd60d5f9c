// Package server exposes the pipeline as an MCP tool server.
package server

import (
	"context"
	"fmt"

	"deepthink/pkg/handler"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "deepthink"
	serverVersion = "1.0.0"
)

// New builds the MCP server with the single generate_response tool.
func New(h *handler.TurnHandler) *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
		server.WithLogging(),
	)

	tool := mcp.NewTool("generate_response",
		mcp.WithDescription("Answer a prompt with a two-stage pipeline: a reasoning model "+
			"produces a chain-of-thought first, then the selected chat model answers "+
			"conditioned on it. Prior turns are kept in a sliding context window."),
		mcp.WithString("prompt",
			mcp.Required(),
			mcp.Description("The question or instruction to answer"),
		),
		mcp.WithString("model",
			mcp.Description("Target chat model. Identifiers containing 'claude' go to Anthropic; "+
				"anything else is passed through OpenRouter verbatim (default model when omitted)"),
		),
		mcp.WithBoolean("showReasoning",
			mcp.Description("Include the reasoning trace in the returned text (default: false)"),
		),
		mcp.WithBoolean("clearContext",
			mcp.Description("Clear the conversation window before answering (default: false)"),
		),
	)
	s.AddTool(tool, makeGenerateHandler(h))

	return s
}

func makeGenerateHandler(h *handler.TurnHandler) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, ok := any(request.Params.Arguments).(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		req, err := parseGenerateRequest(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		text, err := h.Handle(ctx, req)
		if err != nil {
			// 管線錯誤以 internal error 回報給 transport 層
			return nil, err
		}

		return mcp.NewToolResultText(text), nil
	}
}

// parseGenerateRequest validates the tool arguments.
// prompt is required but deliberately not checked for emptiness: any
// string is accepted.
func parseGenerateRequest(args map[string]interface{}) (handler.GenerateRequest, error) {
	var req handler.GenerateRequest

	prompt, ok := args["prompt"].(string)
	if !ok {
		return req, fmt.Errorf("prompt parameter is required and must be a string")
	}
	req.Prompt = prompt

	if model, ok := args["model"].(string); ok {
		req.Model = model
	}
	if show, ok := args["showReasoning"].(bool); ok {
		req.ShowReasoning = show
	}
	if clear, ok := args["clearContext"].(bool); ok {
		req.ClearContext = clear
	}

	return req, nil
}
