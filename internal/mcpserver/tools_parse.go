package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jhaage/swagger-test-generator/internal/emitter"
)

type parseInput struct {
	Path    string `json:"path,omitempty"    jsonschema:"Path or http(s) URL of the Swagger/OpenAPI JSON document"`
	Content string `json:"content,omitempty" jsonschema:"Inline Swagger/OpenAPI JSON document, instead of path"`
}

type operationSummary struct {
	Method         string `json:"method"`
	Path           string `json:"path"`
	OperationID    string `json:"operation_id"`
	Summary        string `json:"summary,omitempty"`
	ExpectedStatus int    `json:"expected_status"`
	NeedsFixture   bool   `json:"needs_fixture"`
}

type parseOutput struct {
	Version        string             `json:"version"`
	BaseURL        string             `json:"base_url"`
	Title          string             `json:"title,omitempty"`
	PathCount      int                `json:"path_count"`
	OperationCount int                `json:"operation_count"`
	Operations     []operationSummary `json:"operations"`
}

func handleParse(ctx context.Context, _ *mcp.CallToolRequest, input parseInput) (*mcp.CallToolResult, parseOutput, error) {
	s, err := loadSpec(ctx, input.Path, input.Content)
	if err != nil {
		return errResult(err), parseOutput{}, nil
	}

	output := parseOutput{
		Version:        s.Version,
		BaseURL:        s.BaseURL,
		PathCount:      len(s.Paths),
		OperationCount: s.OperationCount(),
		Operations:     make([]operationSummary, 0, s.OperationCount()),
	}
	if s.Title != nil {
		output.Title = *s.Title
	}
	for _, p := range emitter.Plan(s) {
		output.Operations = append(output.Operations, operationSummary{
			Method:         string(p.Op.Method),
			Path:           p.Path,
			OperationID:    p.Op.OperationID,
			Summary:        p.Op.SummaryOr(""),
			ExpectedStatus: p.Expected,
			NeedsFixture:   p.Fixture,
		})
	}
	return nil, output, nil
}
