// Package mcpserver exposes document parsing and test generation as MCP
// tools over stdio.
package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jhaage/swagger-test-generator/internal/spec"
	"github.com/jhaage/swagger-test-generator/internal/version"
)

const serverInstructions = `swagger-test-generator MCP server: inspects Swagger 2.0 / OpenAPI 3.x JSON documents and generates API test suites from them.

Frameworks for generate_tests: native-async-client (reqwest), scripting-client (pytest), browser-client (jest), collection-format (postman).

Use parse_spec first to see the operations and the status each generated test will assert. Use dry_run=true on generate_tests to preview the files before writing.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	return NewServer().Run(ctx, &mcp.StdioTransport{})
}

// NewServer builds the server with every tool registered.
func NewServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "swagger-test-generator", Version: version.Version()},
		&mcp.ServerOptions{Instructions: serverInstructions},
	)
	registerAllTools(server)
	return server
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "parse_spec",
		Description: "Parse a Swagger 2.0 or OpenAPI 3.x JSON document. Returns the version, base URL, title, path and operation counts, and for every operation its method, path, operation id, the expected success status and whether the generated test creates a fixture resource first.",
	}, handleParse)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_tests",
		Description: "Generate an API test suite from a Swagger/OpenAPI document. framework is one of native-async-client (reqwest), scripting-client (pytest), browser-client (jest) or collection-format (postman). Requires output_dir. base_url replaces the document host while keeping its base path. Returns the list of files written, or planned with dry_run=true.",
	}, handleGenerate)
}

// loadSpec reads the document a tool works on. Exactly one of path or
// content must be set.
func loadSpec(ctx context.Context, path, content string) (*spec.SwaggerSpec, error) {
	path = strings.TrimSpace(path)
	switch {
	case path != "" && content != "":
		return nil, errors.New("set only one of path or content")
	case path != "":
		return spec.Load(ctx, path)
	case content != "":
		return spec.Parse([]byte(content), spec.WithLocation("<content>"))
	}
	return nil, errors.New("one of path or content is required")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: describe(err)}},
	}
}

func describe(err error) string {
	var se *spec.SpecError
	if errors.As(err, &se) && se.Location != "" {
		return fmt.Sprintf("%s (%s)", se.Message, se.Location)
	}
	return err.Error()
}
