package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"github.com/Another0Noob/lmi-prune/internal/match"
)

var errNoTTY = errors.New("confirmation needs an interactive terminal")

// confirmDeletion lists the hosts about to go and asks once for the batch.
func confirmDeletion(ctx context.Context, hits []match.Hit) (bool, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return false, errNoTTY
	}

	fmt.Printf("\n%s %d host%s will be deleted:\n", yellow("WARNING:"), len(hits), pluralize(len(hits)))
	for _, h := range hits {
		fmt.Printf("  - %s (id %d)\n", h.Name, h.ID)
	}

	var ok bool
	if err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Delete %d host%s from LogMeIn Central?", len(hits), pluralize(len(hits)))).
			Affirmative("Delete").
			Negative("Cancel").
			Value(&ok),
	)).RunWithContext(ctx); err != nil {
		return false, err
	}
	return ok, nil
}
