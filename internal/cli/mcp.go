package cli

import (
	"github.com/spf13/cobra"

	"github.com/jhaage/swagger-test-generator/internal/mcpserver"
)

var mcpRunner = mcpserver.Run

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve parse_spec and generate_tests as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return mcpRunner(cmd.Context())
		},
	}
}
