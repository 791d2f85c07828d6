package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmynk/wispgen/internal/document"
)

func diffCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <id> <id>",
		Short: "Compare the assembled documents of two plans",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			variant, err := document.ParseVariant(a.variant)
			if err != nil {
				return err
			}

			// Both documents share one timestamp so only answers differ.
			opts := document.Options{Variant: variant, GeneratedAt: time.Now()}
			docs := make([]*document.Document, 2)
			for i, id := range args {
				w, err := a.wisps.Get(cmd.Context(), id)
				if err != nil {
					return err
				}
				docs[i], err = document.Assemble(w, opts)
				if err != nil {
					return err
				}
			}

			out, err := document.Diff(docs[0], docs[1])
			if err != nil {
				return err
			}
			if out == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Documents are identical.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
