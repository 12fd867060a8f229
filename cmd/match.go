package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Another0Noob/lmi-prune/internal/prune"
)

// matchCmd represents the match command
var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Show which hosts would be deleted, without deleting",
	Long: `match reads the host list, fetches the LogMeIn inventory, writes the
snapshot, and reports matched and unmatched names. No delete request is sent.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPrune(cmd.Context(), prune.Options{DryRun: true}, false)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)
}
