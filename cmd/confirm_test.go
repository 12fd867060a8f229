package cmd

import (
	"context"
	"os"
	"testing"

	"github.com/mattn/go-isatty"
	"github.com/stretchr/testify/assert"

	"github.com/Another0Noob/lmi-prune/internal/match"
)

func TestConfirmDeletionWithoutTerminal(t *testing.T) {
	if isatty.IsTerminal(os.Stdin.Fd()) {
		t.Skip("stdin is a terminal")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ok, err := confirmDeletion(ctx, []match.Hit{{Name: "PC-01", ID: 11}})
	assert.ErrorIs(t, err, errNoTTY)
	assert.False(t, ok)
}
