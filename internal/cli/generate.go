package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/jhaage/swagger-test-generator/internal/emitter"
	"github.com/jhaage/swagger-test-generator/internal/generator"
	"github.com/jhaage/swagger-test-generator/internal/spec"
)

// GenerateConfig captures all inputs that influence the generate command after
// merging defaults, config file values, and CLI overrides.
type GenerateConfig struct {
	Input      string
	OutputDir  string
	Framework  string
	BaseURL    string
	ConfigPath string
	DryRun     bool
	Verbose    bool

	framework generator.Framework
	stdout    io.Writer
	stderr    io.Writer
}

func defaultGenerateConfig() GenerateConfig {
	return GenerateConfig{BaseURL: emitter.DefaultBaseURL}
}

var generateRunner = runGenerate

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a test suite from a Swagger/OpenAPI document",
		Long: "Generate a test suite from a Swagger/OpenAPI document. " +
			"Options can be provided via flags, config files, or defaults.",
		Example: strings.TrimSpace(`  swagger-test-generator generate --input swagger.json --output-dir ./tests --framework pytest
  swagger-test-generator generate -i swagger.json -o ./rust-tests -f reqwest --base-url http://localhost:8080
  swagger-test-generator --config config.yaml generate --dry-run`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveGenerateConfig(cmd)
			if err != nil {
				return err
			}
			cfg.stdout = cmd.OutOrStdout()
			cfg.stderr = cmd.ErrOrStderr()
			return generateRunner(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringP("input", "i", "", "Path or URL to the Swagger/OpenAPI JSON document")
	flags.StringP("output-dir", "o", "", "Output directory for the generated tests")
	flags.StringP("framework", "f", "", "Test framework: "+strings.Join(generator.Names(), ", "))
	flags.String("base-url", emitter.DefaultBaseURL, "Base URL of the API under test; the document base path is appended")
	flags.Bool("dry-run", false, "Preview planned outputs without writing files")

	return cmd
}

func resolveGenerateConfig(cmd *cobra.Command) (*GenerateConfig, error) {
	cfg := defaultGenerateConfig()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	configPath = strings.TrimSpace(configPath)
	if configPath != "" {
		cfg.ConfigPath = configPath
		if err := applyGenerateConfigFromFile(&cfg, configPath); err != nil {
			return nil, err
		}
	}

	if err := applyGenerateFlagOverrides(cmd.Flags(), &cfg); err != nil {
		return nil, err
	}

	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyGenerateFlagOverrides(flags *pflag.FlagSet, cfg *GenerateConfig) error {
	for name, dst := range map[string]*string{
		"input":      &cfg.Input,
		"output-dir": &cfg.OutputDir,
		"framework":  &cfg.Framework,
		"base-url":   &cfg.BaseURL,
	} {
		if !flags.Changed(name) {
			continue
		}
		value, err := flags.GetString(name)
		if err != nil {
			return err
		}
		*dst = strings.TrimSpace(value)
	}
	for name, dst := range map[string]*bool{
		"dry-run": &cfg.DryRun,
		"verbose": &cfg.Verbose,
	} {
		if !flags.Changed(name) {
			continue
		}
		value, err := flags.GetBool(name)
		if err != nil {
			return err
		}
		*dst = value
	}
	return nil
}

func (c *GenerateConfig) normalize() {
	c.Input = strings.TrimSpace(c.Input)
	c.OutputDir = strings.TrimSpace(c.OutputDir)
	c.Framework = strings.ToLower(strings.TrimSpace(c.Framework))
	c.BaseURL = strings.TrimSpace(c.BaseURL)
	if c.BaseURL == "" {
		c.BaseURL = emitter.DefaultBaseURL
	}
}

func (c *GenerateConfig) validate() error {
	if c.Input == "" {
		return newUsageError("generate: --input is required (set via flag or config file)")
	}
	if c.OutputDir == "" {
		return newUsageError("generate: --output-dir is required (set via flag or config file)")
	}
	if c.Framework == "" {
		return usageErrorf("generate: --framework is required (allowed: %s)", strings.Join(generator.Names(), ", "))
	}
	fw, err := generator.ParseFramework(c.Framework)
	if err != nil {
		return newUsageError("generate: " + err.Error())
	}
	c.framework = fw
	c.Framework = fw.String()
	return nil
}

func (c *GenerateConfig) out() io.Writer {
	if c.stdout != nil {
		return c.stdout
	}
	return os.Stdout
}

func (c *GenerateConfig) errOut() io.Writer {
	if c.stderr != nil {
		return c.stderr
	}
	return os.Stderr
}

func runGenerate(ctx context.Context, cfg *GenerateConfig) error {
	log := newLogger(cfg.errOut(), cfg.Verbose)
	log.Debug("generate", "input", cfg.Input, "framework", cfg.Framework, "out", cfg.OutputDir, "base_url", cfg.BaseURL, "dry_run", cfg.DryRun)

	res, err := generator.GenerateFromFile(ctx, cfg.Input, cfg.framework, emitter.Options{
		OutDir:  cfg.OutputDir,
		BaseURL: cfg.BaseURL,
		DryRun:  cfg.DryRun,
		Logger:  log,
	})
	if err != nil {
		var se *spec.SpecError
		if errors.As(err, &se) {
			return specUsageError(se)
		}
		return wrapOutputError(err, absPath(cfg.OutputDir))
	}

	if cfg.DryRun {
		paths := make([]string, 0, len(res.Planned))
		for _, p := range res.Planned {
			paths = append(paths, p.RelPath)
		}
		printPlan(cfg.out(), absPath(res.OutDir), paths)
		return nil
	}
	fmt.Fprintf(cfg.out(), "Tests generated successfully in %s\n", res.OutDir)
	return nil
}

// specUsageError maps a parser failure to a friendly message.
func specUsageError(se *spec.SpecError) error {
	msg := "spec: " + strings.TrimPrefix(se.Message, "spec: ")
	if se.Location != "" {
		return newUsageError(msg, "Location: "+se.Location)
	}
	return newUsageError(msg)
}

func printPlan(w io.Writer, outDir string, relPaths []string) {
	fmt.Fprintf(w, "Planned writes to %s (%d files):\n", outDir, len(relPaths))
	for _, p := range relPaths {
		fmt.Fprintf(w, "- %s\n", p)
	}
}

func wrapOutputError(err error, outDir string) error {
	if errors.Is(err, emitter.ErrIO) {
		return newUsageError(fmt.Sprintf("output error for %s: %s", outDir, err),
			"Hint: choose a different --output-dir or check directory permissions.")
	}
	return err
}

func absPath(p string) string {
	if ap, err := filepath.Abs(p); err == nil {
		return ap
	}
	return p
}

func applyGenerateConfigFromFile(cfg *GenerateConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return usageErrorf("read config file %q: %v", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return usageErrorf("parse config file %q: %v", path, err)
	}

	for key, value := range raw {
		var strDst *string
		var boolDst *bool
		switch normalizeKey(key) {
		case "input":
			strDst = &cfg.Input
		case "outputdir":
			strDst = &cfg.OutputDir
		case "framework":
			strDst = &cfg.Framework
		case "baseurl":
			strDst = &cfg.BaseURL
		case "dryrun":
			boolDst = &cfg.DryRun
		case "verbose":
			boolDst = &cfg.Verbose
		default:
			return usageErrorf("config file %q: unknown field %q", path, key)
		}
		if strDst != nil {
			str, err := valueAsString(value)
			if err != nil {
				return usageErrorf("config field %q: %v", key, err)
			}
			*strDst = str
			continue
		}
		val, err := valueAsBool(value)
		if err != nil {
			return usageErrorf("config field %q: %v", key, err)
		}
		*boolDst = val
	}

	return nil
}

func normalizeKey(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	lowered = strings.ReplaceAll(lowered, "-", "")
	lowered = strings.ReplaceAll(lowered, "_", "")
	return lowered
}

func valueAsString(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("expected string, got %T", v)
	}
}

func valueAsBool(v any) (bool, error) {
	switch val := v.(type) {
	case bool:
		return val, nil
	case string:
		trimmed := strings.ToLower(strings.TrimSpace(val))
		switch trimmed {
		case "true", "t", "1", "yes", "y":
			return true, nil
		case "false", "f", "0", "no", "n":
			return false, nil
		case "":
			return false, nil
		default:
			return false, fmt.Errorf("invalid boolean value %q", val)
		}
	case nil:
		return false, nil
	default:
		return false, fmt.Errorf("expected boolean, got %T", v)
	}
}
