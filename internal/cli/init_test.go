package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit_WritesSampleConfig(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	var stdout bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"init", "--out", path})

	if err := root.Execute(); err != nil {
		t.Fatalf("init execute: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, "swagger-test-generator configuration") {
		t.Fatalf("unexpected config contents: %s", s)
	}
	if !strings.Contains(stdout.String(), "Wrote sample config to "+path) {
		t.Fatalf("unexpected output: %s", stdout.String())
	}
}

// Every commented key in the sample config must be accepted by generate.
func TestInit_SampleKeysAreKnown(t *testing.T) {
	t.Parallel()
	var uncommented []string
	for _, line := range strings.Split(sampleConfigYAML, "\n") {
		if strings.HasPrefix(line, "# ") && strings.Contains(line, ": ") && !strings.Contains(line, "(") {
			uncommented = append(uncommented, strings.TrimPrefix(line, "# "))
		}
	}
	if len(uncommented) != 6 {
		t.Fatalf("expected 6 sample keys, got %d: %v", len(uncommented), uncommented)
	}
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(strings.Join(uncommented, "\n")+"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg := defaultGenerateConfig()
	if err := applyGenerateConfigFromFile(&cfg, path); err != nil {
		t.Fatalf("apply sample config: %v", err)
	}
	if cfg.Framework != "pytest" || cfg.OutputDir != "./tests" || cfg.BaseURL != "http://localhost:3000" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestInit_ExistingWithoutForce(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatalf("prewrite: %v", err)
	}

	root := NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"init", "--out", path})

	err := root.Execute()
	if err == nil {
		t.Fatalf("expected error for existing file without --force")
	}
	if _, ok := err.(usageError); !ok {
		t.Fatalf("expected usage error, got %T: %v", err, err)
	}
	if !strings.Contains(err.Error(), "already exists\nHint: pass --force") {
		t.Fatalf("unexpected error text: %v", err)
	}

	root = NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"init", "--out", path, "--force"})
	if err := root.Execute(); err != nil {
		t.Fatalf("init --force: %v", err)
	}
}

func TestInit_TargetIsDirectory(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	root := NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"init", "--out", dir, "--force"})

	err := root.Execute()
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if !strings.Contains(err.Error(), "not a regular file") {
		t.Fatalf("unexpected error text: %v", err)
	}
}

func TestInit_CancelledContext(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yaml")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runInit(ctx, &InitConfig{OutputPath: path, stdout: io.Discard})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatalf("expected no file to be written")
	}
}
