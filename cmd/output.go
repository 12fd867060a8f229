package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/Another0Noob/lmi-prune/internal/prune"
)

var (
	red    = color.New(color.FgRed).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
)

func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}

func printSummary(w io.Writer, rep prune.Report) {
	fmt.Fprintln(w, cyan("--- Summary ---"))
	fmt.Fprintf(w, "Run %s\n", rep.RunID)

	if rep.ReadErr != nil {
		fmt.Fprintf(w, "%s %v\n", red("ERROR:"), rep.ReadErr)
	} else {
		fmt.Fprintf(w, "Read %d name%s.\n", len(rep.Names), pluralize(len(rep.Names)))
	}

	if rep.FetchErr != nil {
		fmt.Fprintf(w, "%s %v\n", red("ERROR:"), rep.FetchErr)
	} else {
		n := rep.Inventory.Len()
		fmt.Fprintf(w, "Got %d LogMeIn host%s.\n", n, pluralize(n))
	}
	if rep.SnapshotErr != nil {
		fmt.Fprintf(w, "%s %v\n", yellow("WARNING:"), rep.SnapshotErr)
	}

	if rep.Outcome == "" || rep.Outcome == prune.OutcomeAborted {
		fmt.Fprintf(w, "%s run aborted: %v\n", red("ERROR:"), rep.Panic)
		return
	}

	fmt.Fprintf(w, "Matched %d host%s, %d name%s not found.\n",
		len(rep.Match.IDs), pluralize(len(rep.Match.IDs)),
		len(rep.Match.Unmatched), pluralize(len(rep.Match.Unmatched)))

	switch rep.Outcome {
	case prune.OutcomeDeleted:
		fmt.Fprintf(w, "%s Deleted %d host%s (HTTP %d).\n", green("SUCCESS:"), rep.Deleted(), pluralize(rep.Deleted()), rep.DeleteStatus)
	case prune.OutcomeDeleteFailed:
		fmt.Fprintf(w, "%s %v\n", red("ERROR:"), rep.DeleteErr)
	case prune.OutcomeDryRun:
		fmt.Fprintf(w, "%s Dry run, %d host%s would be deleted.\n", yellow("INFO:"), len(rep.Match.IDs), pluralize(len(rep.Match.IDs)))
	case prune.OutcomeDeclined:
		fmt.Fprintln(w, yellow("Deletion cancelled by user"))
	case prune.OutcomeNothingToDelete:
		fmt.Fprintf(w, "%s No hosts to delete.\n", yellow("INFO:"))
	}
}
