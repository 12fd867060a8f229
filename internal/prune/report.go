package prune

import (
	"github.com/Another0Noob/lmi-prune/internal/inventory"
	"github.com/Another0Noob/lmi-prune/internal/match"
)

// Outcome tags how a run ended.
type Outcome string

const (
	OutcomeDeleted         Outcome = "deleted"
	OutcomeNothingToDelete Outcome = "nothing_to_delete"
	OutcomeDryRun          Outcome = "dry_run"
	OutcomeDeclined        Outcome = "declined"
	OutcomeDeleteFailed    Outcome = "delete_failed"
	OutcomeAborted         Outcome = "aborted"
	OutcomeExported        Outcome = "exported"
)

// Report is the result of one run. Each stage records its own error so a
// caller can tell "nothing matched because the file was empty" from
// "nothing matched because the listing failed".
type Report struct {
	RunID string

	Names   []string
	ReadErr error

	Inventory   *inventory.Inventory
	FetchErr    error
	SnapshotErr error

	Match match.Result

	DeleteStatus int
	DeleteErr    error

	Outcome Outcome
	Panic   any
}

// Failed reports whether any stage failed. Unmatched names are warnings and
// do not count.
func (r Report) Failed() bool {
	return r.ReadErr != nil || r.FetchErr != nil || r.SnapshotErr != nil ||
		r.DeleteErr != nil || r.Outcome == OutcomeAborted
}

// Deleted is the number of host IDs removed by the run.
func (r Report) Deleted() int {
	if r.Outcome != OutcomeDeleted {
		return 0
	}
	return len(r.Match.IDs)
}
