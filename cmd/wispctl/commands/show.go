package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mmynk/wispgen/internal/models"
)

func showCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print the stored answers of a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := a.wisps.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:      %s\n", w.ID)
			fmt.Fprintf(out, "Company: %s\n", w.CompanyName)
			fmt.Fprintf(out, "Created: %s\n", w.CreatedAt.Format("2006-01-02 15:04:05"))
			fmt.Fprintf(out, "Updated: %s\n\n", w.UpdatedAt.Format("2006-01-02 15:04:05"))

			keys := make([]string, 0, len(w.Answers))
			for k := range w.Answers {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(out, "%s = %s\n", k, format(w.Answers[k]))
			}
			return nil
		},
	}
}

func format(v models.Value) string {
	switch v.Kind {
	case models.KindBool:
		return fmt.Sprint(v.Bool)
	case models.KindString:
		return fmt.Sprintf("%q", v.Str)
	}
	return string(v.Raw)
}
