// Package metrics exports the summary of a run as a Prometheus textfile,
// for node_exporter's textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Another0Noob/lmi-prune/internal/prune"
)

var stages = []string{"read", "fetch", "snapshot", "delete"}

// Collect registers the run summary gauges on a fresh registry.
func Collect(rep prune.Report, finished time.Time) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()

	namesRead := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "lmi_prune_names_read",
		Help: "Number of lines read from the local host list.",
	})
	inventoryHosts := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "lmi_prune_inventory_hosts",
		Help: "Number of distinct host descriptions in the fetched inventory.",
	})
	matched := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "lmi_prune_hosts_matched",
		Help: "Number of host IDs selected for deletion.",
	})
	unmatched := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "lmi_prune_names_unmatched",
		Help: "Number of local names with no inventory entry.",
	})
	deleted := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "lmi_prune_hosts_deleted",
		Help: "Number of host IDs removed by the last run.",
	})
	stageFailed := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "lmi_prune_stage_failed",
		Help: "1 if the stage failed in the last run, by stage.",
	}, []string{"stage"})
	outcome := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "lmi_prune_last_run_outcome",
		Help: "Outcome of the last run; the series for the actual outcome is 1.",
	}, []string{"outcome"})
	lastRun := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "lmi_prune_last_run_timestamp_seconds",
		Help: "Unix time the last run finished.",
	})

	for _, c := range []prometheus.Collector{namesRead, inventoryHosts, matched, unmatched, deleted, stageFailed, outcome, lastRun} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metric: %w", err)
		}
	}

	namesRead.Set(float64(len(rep.Names)))
	inventoryHosts.Set(float64(rep.Inventory.Len()))
	matched.Set(float64(len(rep.Match.IDs)))
	unmatched.Set(float64(len(rep.Match.Unmatched)))
	deleted.Set(float64(rep.Deleted()))
	lastRun.Set(float64(finished.Unix()))

	errs := map[string]error{
		"read":     rep.ReadErr,
		"fetch":    rep.FetchErr,
		"snapshot": rep.SnapshotErr,
		"delete":   rep.DeleteErr,
	}
	for _, s := range stages {
		v := 0.0
		if errs[s] != nil {
			v = 1
		}
		stageFailed.WithLabelValues(s).Set(v)
	}
	if rep.Outcome != "" {
		outcome.WithLabelValues(string(rep.Outcome)).Set(1)
	}
	return reg, nil
}

// WriteTextfile writes the run summary to path. The file is replaced
// atomically so the collector never reads a partial file.
func WriteTextfile(path string, rep prune.Report, finished time.Time) error {
	reg, err := Collect(rep, finished)
	if err != nil {
		return err
	}
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
