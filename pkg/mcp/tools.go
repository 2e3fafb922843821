package mcp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/macropower/rulekit/pkg/target"
)

// RuleMetadata describes one rule document in a list_rules result.
type RuleMetadata struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Description string `json:"description,omitempty"`
	Included    bool   `json:"included"`
}

// ListRulesParams defines parameters for the list_rules tool.
type ListRulesParams struct{}

// ListRulesResult contains the result of listing rule documents.
type ListRulesResult struct {
	Message   string         `json:"message"`
	Rules     []RuleMetadata `json:"rules"`
	RuleCount int            `json:"ruleCount"`
}

// GetRuleParams defines parameters for the get_rule tool.
type GetRuleParams struct {
	Name   string `json:"name"`
	Target string `json:"target"`
}

// GetRuleResult contains one rendered rule document.
type GetRuleResult struct {
	Name    string `json:"name"`
	Target  string `json:"target"`
	Content string `json:"content"`
}

// registerTools registers all available tools with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_rules",
		Description: "List the rule documents of the project, with their inclusion decision for this project's dependencies.",
		InputSchema: &jsonschema.Schema{
			Type:       "object",
			Properties: map[string]*jsonschema.Schema{},
		},
	}, s.handleListRules)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_rule",
		Description: "Get one rule document rendered for a target platform. Use a name from the list_rules output EXACTLY.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"name": {
					Type:        "string",
					Description: "The rule name from list_rules output.",
				},
				"target": {
					Type:        "string",
					Description: "The target platform to render for.",
					Enum:        targetEnum(),
				},
			},
			Required: []string{"name", "target"},
		},
	}, s.handleGetRule)
}

func targetEnum() []any {
	names := target.Names()

	enum := make([]any, len(names))
	for i, n := range names {
		enum[i] = n
	}

	return enum
}

// handleListRules handles the list_rules tool call.
func (s *Server) handleListRules(
	ctx context.Context,
	_ *mcp.ServerSession,
	params *mcp.CallToolParamsFor[ListRulesParams],
) (*mcp.CallToolResultFor[ListRulesResult], error) {
	slog.DebugContext(ctx, "handling list_rules tool call", slog.Any("params", params))

	runner, err := s.runner()
	if err != nil {
		return nil, err
	}

	runResult, err := runner.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("run pipeline: %w", err)
	}

	result := ListRulesResult{
		Rules: []RuleMetadata{},
	}

	for _, d := range runResult.Documents {
		result.Rules = append(result.Rules, RuleMetadata{
			Name:        d.Name,
			Path:        d.Path,
			Description: d.Description,
			Included:    d.Included,
		})
	}

	result.RuleCount = len(result.Rules)
	result.Message = fmt.Sprintf("Found %d rule documents.", result.RuleCount)

	return &mcp.CallToolResultFor[ListRulesResult]{
		Content: []mcp.Content{
			&mcp.TextContent{
				Text: result.Message,
			},
		},
		StructuredContent: result,
	}, nil
}

// handleGetRule handles the get_rule tool call.
func (s *Server) handleGetRule(
	ctx context.Context,
	_ *mcp.ServerSession,
	params *mcp.CallToolParamsFor[GetRuleParams],
) (*mcp.CallToolResultFor[GetRuleResult], error) {
	slog.DebugContext(ctx, "handling get_rule tool call", slog.Any("params", params))

	t, err := target.Parse(params.Arguments.Target)
	if err != nil {
		return nil, err //nolint:wrapcheck // Return the original error.
	}

	runner, err := s.runner()
	if err != nil {
		return nil, err
	}

	content, err := runner.Render(ctx, params.Arguments.Name, t)
	if err != nil {
		return nil, fmt.Errorf("render rule: %w", err)
	}

	result := GetRuleResult{
		Name:    params.Arguments.Name,
		Target:  t.String(),
		Content: content,
	}

	return &mcp.CallToolResultFor[GetRuleResult]{
		Content: []mcp.Content{
			&mcp.TextContent{
				Text: content,
			},
		},
		StructuredContent: result,
	}, nil
}
