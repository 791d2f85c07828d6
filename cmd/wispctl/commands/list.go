package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func listCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored plans, most recently updated first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wisps, err := a.wisps.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(wisps) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No plans stored.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCOMPANY\tCREATED\tUPDATED")
			for _, w := range wisps {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", w.ID, w.CompanyName,
					w.CreatedAt.Format("2006-01-02"), w.UpdatedAt.Format("2006-01-02"))
			}
			return tw.Flush()
		},
	}
}
