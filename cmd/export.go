package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Another0Noob/lmi-prune/internal/prune"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the LogMeIn host inventory to the snapshot file",
	Long: `export fetches the host list of the account and writes it as
"description,id" rows to the snapshot file. The host list file is not read.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Println(cyan("--- Requesting LogMeIn hosts ---"))

	rep := newPipeline(cfg, prune.Options{}).Export(ctx)

	switch {
	case rep.FetchErr != nil:
		fmt.Printf("%s %v\n", red("ERROR:"), rep.FetchErr)
	case rep.SnapshotErr != nil:
		fmt.Printf("%s %v\n", red("ERROR:"), rep.SnapshotErr)
	case rep.Outcome == prune.OutcomeAborted:
		fmt.Printf("%s export aborted: %v\n", red("ERROR:"), rep.Panic)
	default:
		n := rep.Inventory.Len()
		fmt.Printf("%s Wrote %d host%s to %s.\n", green("SUCCESS:"), n, pluralize(n), cfg.SnapshotPath)
	}

	writeMetrics(rep)
	return nil
}
