package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRecentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "recent",
		Short: "List the remembered folders, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if len(a.settings.RecentDirs) == 0 {
				fmt.Fprintln(out, "no recent folders")
				return nil
			}
			for _, dir := range a.settings.RecentDirs {
				fmt.Fprintln(out, dir)
			}
			return nil
		},
	}
}
