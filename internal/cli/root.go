package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// Execute runs the swagger-test-generator CLI with ctx.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd constructs the root command so tests can exercise the CLI easily.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "swagger-test-generator",
		Short:         "Generate API test suites from Swagger/OpenAPI specifications",
		Long:          "swagger-test-generator reads a Swagger 2.0 or OpenAPI 3.x JSON document and writes a runnable test suite for reqwest, pytest, Jest or Postman.",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	// Convert Cobra flag errors (like unknown flags) into friendly usage errors
	// that also show the command's help text.
	cmd.SetFlagErrorFunc(flagError)

	cmd.PersistentFlags().StringP("config", "c", "", "Config file path (YAML or JSON)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging output")

	for _, sub := range []*cobra.Command{
		newGenerateCmd(),
		newProbeCmd(),
		newSampleCmd(),
		newInitCmd(),
		newMCPCmd(),
		newVersionCmd(),
	} {
		sub.SetFlagErrorFunc(flagError)
		cmd.AddCommand(sub)
	}

	return cmd
}

func flagError(c *cobra.Command, err error) error {
	return usageErrorf("%v\n\n%s", err, c.UsageString())
}
