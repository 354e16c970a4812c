package mcpserver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhaage/swagger-test-generator/internal/sample"
	"github.com/jhaage/swagger-test-generator/internal/spec"
)

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), sample.FileName)
	require.NoError(t, sample.Write(path, false))
	return path
}

func errorText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	assert.True(t, res.IsError)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestNewServer(t *testing.T) {
	assert.NotNil(t, NewServer())
}

func TestLoadSpec(t *testing.T) {
	ctx := context.Background()

	_, err := loadSpec(ctx, "", "")
	assert.EqualError(t, err, "one of path or content is required")

	_, err = loadSpec(ctx, "a.json", "{}")
	assert.EqualError(t, err, "set only one of path or content")

	s, err := loadSpec(ctx, "", string(sample.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 5, s.OperationCount())

	s, err = loadSpec(ctx, writeSample(t), "")
	require.NoError(t, err)
	assert.Equal(t, "http://api.sample.com/v1", s.BaseURL)
}

func TestDescribe(t *testing.T) {
	err := &spec.SpecError{Code: spec.InvalidSpec, Message: "spec: no paths defined", Location: "/tmp/x.json"}
	assert.Equal(t, "spec: no paths defined (/tmp/x.json)", describe(err))
	assert.Equal(t, "boom", describe(errors.New("boom")))
}

func TestErrResult(t *testing.T) {
	assert.Equal(t, "bad input", errorText(t, errResult(errors.New("bad input"))))
}

func TestParseTool(t *testing.T) {
	res, out, err := handleParse(context.Background(), &mcp.CallToolRequest{}, parseInput{Path: writeSample(t)})
	require.NoError(t, err)
	assert.Nil(t, res)

	assert.Equal(t, "2.0", out.Version)
	assert.Equal(t, "http://api.sample.com/v1", out.BaseURL)
	assert.NotEmpty(t, out.Title)
	assert.Equal(t, 2, out.PathCount)
	assert.Equal(t, 5, out.OperationCount)
	require.Len(t, out.Operations, 5)

	assert.Equal(t, operationSummary{
		Method: "GET", Path: "/users", OperationID: "getUsers", Summary: "Get all users", ExpectedStatus: 200,
	}, out.Operations[0])
	assert.Equal(t, 201, out.Operations[1].ExpectedStatus)
	assert.True(t, out.Operations[2].NeedsFixture)
	assert.Equal(t, "DELETE", out.Operations[4].Method)
	assert.Equal(t, 204, out.Operations[4].ExpectedStatus)
}

func TestParseTool_InvalidContent(t *testing.T) {
	res, _, err := handleParse(context.Background(), &mcp.CallToolRequest{}, parseInput{Content: `{"openapi": "1.0"}`})
	require.NoError(t, err)
	assert.Contains(t, errorText(t, res), "unsupported or missing version")
}

func TestGenerateTool(t *testing.T) {
	dir := t.TempDir()
	res, out, err := handleGenerate(context.Background(), &mcp.CallToolRequest{}, generateInput{
		Path:      writeSample(t),
		Framework: "pytest",
		OutputDir: dir,
	})
	require.NoError(t, err)
	assert.Nil(t, res)

	assert.Equal(t, "scripting-client", out.Framework)
	assert.Equal(t, dir, out.OutputDir)
	assert.Equal(t, "http://localhost:3000/v1", out.BaseURL)
	require.Len(t, out.Files, 3)
	for _, f := range out.Files {
		info, statErr := os.Stat(filepath.Join(dir, f.Path))
		require.NoError(t, statErr, f.Path)
		assert.Equal(t, int64(f.Size), info.Size(), f.Path)
	}
}

func TestGenerateTool_DryRun(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	res, out, err := handleGenerate(context.Background(), &mcp.CallToolRequest{}, generateInput{
		Content:   string(sample.Bytes()),
		Framework: "browser-client",
		OutputDir: dir,
		BaseURL:   "https://staging.example.com",
		DryRun:    true,
	})
	require.NoError(t, err)
	assert.Nil(t, res)
	assert.True(t, out.DryRun)
	assert.Equal(t, "https://staging.example.com/v1", out.BaseURL)
	assert.Len(t, out.Files, 4)
	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerateTool_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input generateInput
		want  string
	}{
		{"missing output dir", generateInput{Content: "{}", Framework: "jest"}, "output_dir is required"},
		{"unknown framework", generateInput{Content: "{}", Framework: "mocha", OutputDir: "x"}, "unsupported framework"},
		{"bad document", generateInput{Content: "not json", Framework: "jest", OutputDir: "x"}, "decode json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, _, err := handleGenerate(context.Background(), &mcp.CallToolRequest{}, tt.input)
			require.NoError(t, err)
			assert.Contains(t, errorText(t, res), tt.want)
		})
	}
}
