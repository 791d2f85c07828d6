package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func renderCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "render <id>",
		Short: "Render a plan to PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.wisps.Render(cmd.Context(), args[0], "")
			if err != nil {
				return err
			}
			if output == "" {
				output = out.Filename
			}
			if output == "-" {
				_, err := cmd.OutOrStdout().Write(out.PDF)
				return err
			}
			if err := os.WriteFile(output, out.PDF, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (%d bytes)\n", output, len(out.PDF))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", `output file, "-" for stdout (default <company>_WISP.pdf)`)
	return cmd
}
