// Package chat implements a conversational battle assistant. It bridges the
// Anthropic Messages API to the MCP battle server: the model decides which
// tools to call, the assistant executes them over an MCP session, and the
// loop continues until the model produces a final text answer.
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"pokearena/internal/config"
)

const systemPrompt = "You are a pokemon battle assistant. You can look up " +
	"pokemon data, check type matchups, and simulate battles using the tools " +
	"provided. Answer with concrete numbers from tool results, and summarize " +
	"battle logs rather than repeating them verbatim."

// maxToolRounds bounds how many tool-use round trips a single Ask may make.
const maxToolRounds = 8

// ToolCaller executes a tool call. *mcp.ClientSession satisfies it.
type ToolCaller interface {
	CallTool(ctx context.Context, params *mcp.CallToolParams) (*mcp.CallToolResult, error)
}

// Assistant holds a running conversation with the model. It is not safe for
// concurrent use; each conversation owns one Assistant.
type Assistant struct {
	client    anthropic.Client
	tools     ToolCaller
	model     anthropic.Model
	maxTokens int64
	logger    *zap.Logger

	history []anthropic.MessageParam
}

// NewAssistant creates an Assistant over an Anthropic client and an MCP
// session that exposes the battle tools.
//
// Precondition: tools and logger must be non-nil.
func NewAssistant(client anthropic.Client, tools ToolCaller, cfg config.ChatConfig, logger *zap.Logger) *Assistant {
	return &Assistant{
		client:    client,
		tools:     tools,
		model:     anthropic.Model(cfg.Model),
		maxTokens: int64(cfg.MaxTokens),
		logger:    logger,
	}
}

// Ask sends the user's prompt, resolves any tool calls the model makes, and
// returns the model's final text answer. The exchange is appended to the
// conversation history, so follow-up questions see earlier turns.
func (a *Assistant) Ask(ctx context.Context, prompt string) (string, error) {
	a.history = append(a.history, anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)))

	for round := 0; round <= maxToolRounds; round++ {
		msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
			Model:     a.model,
			MaxTokens: a.maxTokens,
			System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
			Messages:  a.history,
			Tools:     toolDeclarations(),
		})
		if err != nil {
			return "", fmt.Errorf("messages request: %w", err)
		}
		a.history = append(a.history, msg.ToParam())

		var texts []string
		var results []anthropic.ContentBlockParamUnion
		for _, block := range msg.Content {
			switch variant := block.AsAny().(type) {
			case anthropic.TextBlock:
				texts = append(texts, variant.Text)
			case anthropic.ToolUseBlock:
				results = append(results, a.execute(ctx, variant))
			}
		}

		if string(msg.StopReason) != "tool_use" || len(results) == 0 {
			return strings.Join(texts, "\n"), nil
		}
		a.history = append(a.history, anthropic.NewUserMessage(results...))
	}
	return "", fmt.Errorf("no final answer after %d tool rounds", maxToolRounds)
}

// execute runs one tool call against the MCP session and wraps the outcome
// as a tool result block. Failures become error results so the model can
// recover instead of aborting the conversation.
func (a *Assistant) execute(ctx context.Context, call anthropic.ToolUseBlock) anthropic.ContentBlockParamUnion {
	a.logger.Info("tool call",
		zap.String("tool", call.Name),
		zap.String("id", call.ID),
	)

	var args map[string]any
	if err := json.Unmarshal([]byte(call.JSON.Input.Raw()), &args); err != nil {
		return anthropic.NewToolResultBlock(call.ID, fmt.Sprintf("invalid tool input: %v", err), true)
	}

	result, err := a.tools.CallTool(ctx, &mcp.CallToolParams{
		Name:      call.Name,
		Arguments: args,
	})
	if err != nil {
		a.logger.Warn("tool call failed",
			zap.String("tool", call.Name),
			zap.Error(err),
		)
		return anthropic.NewToolResultBlock(call.ID, fmt.Sprintf("tool error: %v", err), true)
	}

	return anthropic.NewToolResultBlock(call.ID, resultText(result), result.IsError)
}

// resultText flattens an MCP tool result to the text the model sees.
func resultText(result *mcp.CallToolResult) string {
	var parts []string
	for _, content := range result.Content {
		if text, ok := content.(*mcp.TextContent); ok {
			parts = append(parts, text.Text)
		}
	}
	if len(parts) == 0 {
		return "(empty result)"
	}
	return strings.Join(parts, "\n")
}

// toolDeclarations mirrors the battle server's tool surface for the model.
// The schemas must stay in sync with the mcpserver input types.
func toolDeclarations() []anthropic.ToolUnionParam {
	return []anthropic.ToolUnionParam{
		{
			OfTool: &anthropic.ToolParam{
				Name:        "get_pokemon",
				Description: anthropic.String("Fetches complete data for a pokemon by name or pokedex number"),
				InputSchema: anthropic.ToolInputSchemaParam{
					Properties: map[string]any{
						"name": map[string]any{
							"type":        "string",
							"description": "pokemon name or pokedex number",
						},
					},
					Required: []string{"name"},
				},
			},
		},
		{
			OfTool: &anthropic.ToolParam{
				Name:        "battle_simulate",
				Description: anthropic.String("Simulates a full battle between two pokemon and returns the battle log"),
				InputSchema: anthropic.ToolInputSchemaParam{
					Properties: map[string]any{
						"pokemon1": map[string]any{
							"type":        "string",
							"description": "first pokemon name or pokedex number",
						},
						"pokemon2": map[string]any{
							"type":        "string",
							"description": "second pokemon name or pokedex number",
						},
						"seed": map[string]any{
							"type":        "integer",
							"description": "optional seed for a reproducible battle",
						},
					},
					Required: []string{"pokemon1", "pokemon2"},
				},
			},
		},
		{
			OfTool: &anthropic.ToolParam{
				Name:        "get_type_effectiveness",
				Description: anthropic.String("Computes the type effectiveness multiplier of an attacking type against defending types"),
				InputSchema: anthropic.ToolInputSchemaParam{
					Properties: map[string]any{
						"attacking_type": map[string]any{
							"type":        "string",
							"description": "the move's type",
						},
						"defending_types": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "the defender's one or two types",
						},
					},
					Required: []string{"attacking_type", "defending_types"},
				},
			},
		},
	}
}
