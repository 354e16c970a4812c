package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

const defaultConfigFile = "swagger-test-generator.yaml"

// InitConfig captures the options for the init command.
type InitConfig struct {
	OutputPath string
	Force      bool
	Verbose    bool

	stdout io.Writer
}

var initRunner = runInit

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a sample swagger-test-generator configuration file",
		Long:  "Scaffold a commented swagger-test-generator configuration file that documents the generate options.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := cmd.Flags().GetString("out")
			if err != nil {
				return err
			}
			force, err := cmd.Flags().GetBool("force")
			if err != nil {
				return err
			}
			verbose, err := cmd.Flags().GetBool("verbose")
			if err != nil {
				return err
			}
			cfg := &InitConfig{
				OutputPath: out,
				Force:      force,
				Verbose:    verbose,
				stdout:     cmd.OutOrStdout(),
			}
			return initRunner(cmd.Context(), cfg)
		},
	}

	cmd.Flags().String("out", defaultConfigFile, "Where to write the sample config file")
	cmd.Flags().Bool("force", false, "Overwrite the target file if it already exists")

	return cmd
}

func runInit(ctx context.Context, cfg *InitConfig) error {
	target := strings.TrimSpace(cfg.OutputPath)
	if target == "" {
		target = defaultConfigFile
	}
	target, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("init: resolve %s: %w", cfg.OutputPath, err)
	}
	if st, err := os.Stat(target); err == nil {
		if !st.Mode().IsRegular() {
			return usageErrorf("init: %s exists and is not a regular file", target)
		}
		if !cfg.Force {
			return newUsageError(fmt.Sprintf("init: config %s already exists", target), "Hint: pass --force to replace it.")
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := replaceFile(target, []byte(strings.TrimSpace(sampleConfigYAML)+"\n")); err != nil {
		return newUsageError(fmt.Sprintf("init: %v", err), "Hint: choose a different --out or check directory permissions.")
	}
	w := cfg.stdout
	if w == nil {
		w = os.Stdout
	}
	fmt.Fprintf(w, "Wrote sample config to %s\n", target)
	return nil
}

// replaceFile writes data next to path and renames it into place, creating
// parent directories as needed.
func replaceFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("move %s into place: %w", path, err)
	}
	return nil
}

// sampleConfigYAML is a commented example config documenting available options.
const sampleConfigYAML = `# swagger-test-generator configuration (YAML)
# All fields are optional. Command-line flags override config values.

# Path or URL to the Swagger/OpenAPI JSON document (http/https or local file).
# input: ./swagger.json

# Directory the generated tests are written to.
# outputDir: ./tests

# Test framework: native-async-client (reqwest), scripting-client (pytest),
# browser-client (jest) or collection-format (postman).
# framework: pytest

# Server the tests call. The document base path is appended.
# baseUrl: http://localhost:3000

# Preview planned outputs without writing files.
# dryRun: false

# Enable verbose logging.
# verbose: false
`
