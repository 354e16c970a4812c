package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jhaage/swagger-test-generator/internal/emitter"
	"github.com/jhaage/swagger-test-generator/internal/generator"
)

type generateInput struct {
	Path      string `json:"path,omitempty"      jsonschema:"Path or http(s) URL of the Swagger/OpenAPI JSON document"`
	Content   string `json:"content,omitempty"   jsonschema:"Inline Swagger/OpenAPI JSON document, instead of path"`
	Framework string `json:"framework"           jsonschema:"Target framework: native-async-client, scripting-client, browser-client, collection-format (or reqwest, pytest, jest, postman)"`
	OutputDir string `json:"output_dir"          jsonschema:"Directory to write the generated tests to"`
	BaseURL   string `json:"base_url,omitempty"  jsonschema:"Server the tests call; the document base path is appended (default: http://localhost:3000)"`
	DryRun    bool   `json:"dry_run,omitempty"   jsonschema:"Plan the files without writing them"`
}

type generatedFileInfo struct {
	Path string `json:"path"`
	Size int    `json:"size"`
}

type generateOutput struct {
	Framework string              `json:"framework"`
	OutputDir string              `json:"output_dir"`
	BaseURL   string              `json:"base_url"`
	DryRun    bool                `json:"dry_run,omitempty"`
	Files     []generatedFileInfo `json:"files"`
}

func handleGenerate(ctx context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, generateOutput, error) {
	if strings.TrimSpace(input.OutputDir) == "" {
		return errResult(fmt.Errorf("output_dir is required")), generateOutput{}, nil
	}
	fw, err := generator.ParseFramework(input.Framework)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}
	gen, err := generator.New(fw)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}
	s, err := loadSpec(ctx, input.Path, input.Content)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	baseURL := strings.TrimSpace(input.BaseURL)
	if baseURL == "" {
		baseURL = emitter.DefaultBaseURL
	}
	res, err := gen.GenerateTests(ctx, s, emitter.Options{OutDir: input.OutputDir, BaseURL: baseURL, DryRun: input.DryRun})
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	output := generateOutput{
		Framework: fw.String(),
		OutputDir: res.OutDir,
		BaseURL:   res.BaseURL,
		DryRun:    input.DryRun,
		Files:     make([]generatedFileInfo, 0, len(res.Planned)),
	}
	for _, f := range res.Planned {
		output.Files = append(output.Files, generatedFileInfo{Path: f.RelPath, Size: f.Size})
	}
	return nil, output, nil
}
