package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jhaage/swagger-test-generator/internal/probe"
	"github.com/jhaage/swagger-test-generator/internal/spec"
)

// ErrProbeFailed is returned when at least one probed operation did not
// answer with its expected status.
var ErrProbeFailed = errors.New("probe: one or more operations failed")

// ProbeConfig captures the options for the probe command.
type ProbeConfig struct {
	Input   string
	BaseURL string
	Timeout time.Duration
	Verbose bool

	stdout io.Writer
	stderr io.Writer
}

var probeRunner = runProbe

func newProbeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Run every operation once against a live server",
		Long: "Run every operation of a Swagger/OpenAPI document once against a running server and " +
			"compare each response status with the one the generated tests assert.",
		Example: strings.TrimSpace(`  swagger-test-generator probe --input swagger.json --base-url http://localhost:3000`),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			input, err := flags.GetString("input")
			if err != nil {
				return err
			}
			baseURL, err := flags.GetString("base-url")
			if err != nil {
				return err
			}
			timeout, err := flags.GetDuration("timeout")
			if err != nil {
				return err
			}
			verbose, err := flags.GetBool("verbose")
			if err != nil {
				return err
			}
			cfg := &ProbeConfig{
				Input:   strings.TrimSpace(input),
				BaseURL: strings.TrimSpace(baseURL),
				Timeout: timeout,
				Verbose: verbose,
				stdout:  cmd.OutOrStdout(),
				stderr:  cmd.ErrOrStderr(),
			}
			if cfg.Input == "" {
				return newUsageError("probe: --input is required")
			}
			if cfg.Timeout <= 0 {
				return usageErrorf("probe: --timeout must be positive, got %s", cfg.Timeout)
			}
			return probeRunner(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringP("input", "i", "", "Path or URL to the Swagger/OpenAPI JSON document")
	cmd.Flags().String("base-url", "", "Server to probe; the document base path is appended (default: the document's own base URL)")
	cmd.Flags().Duration("timeout", probe.DefaultTimeout, "Per-request timeout")

	return cmd
}

func runProbe(ctx context.Context, cfg *ProbeConfig) error {
	log := newLogger(cfg.stderr, cfg.Verbose)
	s, err := spec.Load(ctx, cfg.Input, spec.WithLogger(log))
	if err != nil {
		var se *spec.SpecError
		if errors.As(err, &se) {
			return specUsageError(se)
		}
		return err
	}

	report, err := probe.Run(ctx, s, probe.Options{BaseURL: cfg.BaseURL, Timeout: cfg.Timeout, Logger: log})
	if err != nil {
		return err
	}
	if isTerminal(cfg.stdout) {
		err = report.WriteTable(cfg.stdout)
	} else {
		err = report.WriteTSV(cfg.stdout)
	}
	if err != nil {
		return err
	}
	if n := report.Failed(); n > 0 {
		return fmt.Errorf("%w: %d of %d", ErrProbeFailed, n, len(report.Checks))
	}
	return nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
