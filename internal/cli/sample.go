package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhaage/swagger-test-generator/internal/sample"
)

func newSampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write the bundled sample Swagger 2.0 document",
		Long:  "Write the bundled user-management Swagger 2.0 document, a quick input for trying out generate and probe.",
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
			out = strings.TrimSpace(out)
			if out == "" {
				out = sample.FileName
			}
			if _, err := os.Stat(out); err == nil && !force {
				return usageErrorf("sample: %q already exists (use --force to overwrite)", out)
			}
			if err := sample.Write(out, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample document to %s\n", absPath(filepath.Clean(out)))
			return nil
		},
	}

	cmd.Flags().String("out", sample.FileName, "Where to write the sample document")
	cmd.Flags().Bool("force", false, "Overwrite the target file if it already exists")

	return cmd
}
