package cmd

import (
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listing-dedup",
		Short: "Merge, deduplicate and rank real-estate listing exports",
		Long: `listing-dedup merges every CSV export found in the data directory,
removes duplicate listings by their composite key, ranks the listings whose
price differential passes the threshold and writes a static HTML dashboard
together with a deduplicated export.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(newRunCmd())

	return cmd
}
