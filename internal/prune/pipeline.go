// Package prune sequences one run: read names, fetch the inventory,
// match, delete.
package prune

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Another0Noob/lmi-prune/internal/hostlist"
	"github.com/Another0Noob/lmi-prune/internal/inventory"
	xlog "github.com/Another0Noob/lmi-prune/internal/log"
	"github.com/Another0Noob/lmi-prune/internal/logmeinapi"
	"github.com/Another0Noob/lmi-prune/internal/match"
)

// HostAPI is the slice of the LogMeIn client a run needs.
type HostAPI interface {
	ListHosts(ctx context.Context) ([]logmeinapi.Host, error)
	DeleteHosts(ctx context.Context, ids []int64) (int, error)
}

// ConfirmFunc is asked before the delete request. Returning false skips it.
type ConfirmFunc func(ctx context.Context, hits []match.Hit) (bool, error)

type Options struct {
	InputPath    string
	SnapshotPath string // empty disables the snapshot
	DryRun       bool
	Confirm      ConfirmFunc
}

type Pipeline struct {
	api    HostAPI
	opts   Options
	logger zerolog.Logger
}

func New(api HostAPI, opts Options, logger zerolog.Logger) *Pipeline {
	return &Pipeline{api: api, opts: opts, logger: logger}
}

// Run executes the pipeline once. It never returns an error and recovers
// from panics; everything that went wrong is in the Report.
func (p *Pipeline) Run(ctx context.Context) (rep Report) {
	rep.RunID = xlog.RunIDFromContext(ctx)
	if rep.RunID == "" {
		rep.RunID = uuid.NewString()
		ctx = xlog.ContextWithRunID(ctx, rep.RunID)
	}
	logger := xlog.WithContext(ctx, p.logger)

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("run aborted")
			rep.Panic = r
			rep.Outcome = OutcomeAborted
		}
	}()

	rep.Names, rep.ReadErr = p.readNames(logger)
	p.fetchInventory(ctx, logger, &rep)

	rep.Match = match.Match(rep.Names, rep.Inventory)
	logger.Info().
		Int("matched", len(rep.Match.IDs)).
		Int("unmatched", len(rep.Match.Unmatched)).
		Msg("matched names against inventory")
	match.LogUnmatched(logger, rep.Match.Unmatched)

	rep.Outcome, rep.DeleteStatus, rep.DeleteErr = p.deleteHosts(ctx, logger, rep.Match)
	return rep
}

// Export only fetches the inventory and writes the snapshot.
func (p *Pipeline) Export(ctx context.Context) (rep Report) {
	rep.RunID = xlog.RunIDFromContext(ctx)
	if rep.RunID == "" {
		rep.RunID = uuid.NewString()
		ctx = xlog.ContextWithRunID(ctx, rep.RunID)
	}
	logger := xlog.WithContext(ctx, p.logger)

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("export aborted")
			rep.Panic = r
			rep.Outcome = OutcomeAborted
		}
	}()

	p.fetchInventory(ctx, logger, &rep)
	rep.Outcome = OutcomeExported
	return rep
}

// readNames degrades to an empty list when the file cannot be read.
func (p *Pipeline) readNames(logger zerolog.Logger) ([]string, error) {
	names, err := hostlist.ParseFile(p.opts.InputPath)
	if err != nil {
		err = fmt.Errorf("read host list %s: %w", p.opts.InputPath, err)
		logger.Error().Err(err).Msg("could not read host list, continuing with no names")
		return nil, err
	}
	logger.Info().Str("path", p.opts.InputPath).Int("count", len(names)).Strs("names", names).Msg("read host list")
	return names, nil
}

// fetchInventory degrades to an empty inventory when the listing fails. The
// snapshot is written as soon as the listing succeeds.
func (p *Pipeline) fetchInventory(ctx context.Context, logger zerolog.Logger, rep *Report) {
	hosts, err := p.api.ListHosts(ctx)
	if err != nil {
		logger.Error().Err(err).Int("status", logmeinapi.StatusOf(err)).Msg("could not fetch hosts, continuing with empty inventory")
		rep.Inventory = inventory.New()
		rep.FetchErr = err
		return
	}

	rep.Inventory = inventory.FromHosts(hosts)
	logger.Info().Int("hosts", len(hosts)).Int("distinct", rep.Inventory.Len()).Msg("fetched inventory")

	if p.opts.SnapshotPath == "" {
		return
	}
	if err := inventory.WriteSnapshot(p.opts.SnapshotPath, rep.Inventory); err != nil {
		logger.Error().Err(err).Str("path", p.opts.SnapshotPath).Msg("could not write inventory snapshot")
		rep.SnapshotErr = err
		return
	}
	logger.Info().Str("path", p.opts.SnapshotPath).Msg("wrote inventory snapshot")
}

func (p *Pipeline) deleteHosts(ctx context.Context, logger zerolog.Logger, res match.Result) (Outcome, int, error) {
	if len(res.IDs) == 0 {
		logger.Info().Msg("no hosts to delete")
		return OutcomeNothingToDelete, 0, nil
	}

	if p.opts.DryRun {
		logger.Info().Ints64("host_ids", res.IDs).Msg("dry run, skipping delete")
		return OutcomeDryRun, 0, nil
	}

	if p.opts.Confirm != nil {
		ok, err := p.opts.Confirm(ctx, res.Hits)
		if err != nil {
			logger.Warn().Err(err).Msg("confirmation failed, skipping delete")
			return OutcomeDeclined, 0, nil
		}
		if !ok {
			logger.Info().Msg("delete declined")
			return OutcomeDeclined, 0, nil
		}
	}

	status, err := p.api.DeleteHosts(ctx, res.IDs)
	if err != nil {
		logger.Error().Err(err).Int("status", status).Ints64("host_ids", res.IDs).Msg("delete request failed")
		return OutcomeDeleteFailed, status, err
	}
	logger.Info().Int("status", status).Ints64("host_ids", res.IDs).Msg("deleted hosts")
	return OutcomeDeleted, status, nil
}
