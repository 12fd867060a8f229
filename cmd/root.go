package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Another0Noob/lmi-prune/internal/config"
	xlog "github.com/Another0Noob/lmi-prune/internal/log"
	"github.com/Another0Noob/lmi-prune/internal/logmeinapi"
	"github.com/Another0Noob/lmi-prune/internal/metrics"
	"github.com/Another0Noob/lmi-prune/internal/prune"
)

var (
	cfgFile      string
	inputFile    string
	snapshotFile string
	metricsFile  string
	logLevel     string
	logFormat    string
	timeout      time.Duration
	dryRun       bool
	confirm      bool
)

var rootCmd = &cobra.Command{
	Use:   "lmi-prune",
	Short: "Delete LogMeIn Central hosts listed in a local file",
	Long: `lmi-prune reads host names (one per line) from a local file, fetches the
host list of a LogMeIn Central account, and deletes every host whose
description matches a name in the file.

Credentials come from USERNAME and PASSWORD, either in the environment or in
the config file (.env by default). The fetched host list is written to
LMIhosts.csv for audit before anything is deleted.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		xlog.Configure(xlog.Config{Level: logLevel, Format: logFormat})
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPrune(cmd.Context(), prune.Options{DryRun: dryRun}, confirm)
	},
}

// Execute runs the root command. A finished run always exits 0; only setup
// errors (bad flags, unreadable config file) exit 1.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", red("ERROR:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(
		&cfgFile,
		"config",
		"c",
		".env",
		"path to config file (.env or ini)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&inputFile,
		"input",
		"i",
		"",
		"path to host list, overrides PATH_TO_CSV (default ./hosts.csv)",
	)
	rootCmd.PersistentFlags().StringVar(
		&snapshotFile,
		"snapshot",
		"",
		"path of the inventory snapshot (default LMIhosts.csv)",
	)
	rootCmd.PersistentFlags().StringVar(
		&metricsFile,
		"metrics-file",
		"",
		"write a Prometheus textfile with the run summary",
	)
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", xlog.FormatConsole, "log format (console or json)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "per-request timeout, 0 disables it")

	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "match and report without deleting")
	rootCmd.Flags().BoolVar(&confirm, "confirm", false, "ask before sending the delete request")
	rootCmd.MarkFlagsMutuallyExclusive("dry-run", "confirm")
}

// loadConfig merges the config file, the environment and the path flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if inputFile != "" {
		cfg.InputPath = inputFile
	}
	if snapshotFile != "" {
		cfg.SnapshotPath = snapshotFile
	}
	return cfg, nil
}

func newPipeline(cfg config.Config, opts prune.Options) *prune.Pipeline {
	logger := xlog.WithComponent("prune")
	if !cfg.HasCredentials() {
		logger.Warn().Msg("USERNAME or PASSWORD is not set, the API will reject the requests")
	}

	client := logmeinapi.NewClient(
		logmeinapi.Credentials{Username: cfg.Username, Password: cfg.Password},
		logmeinapi.WithBaseURL(cfg.APIURL),
		logmeinapi.WithTimeout(timeout),
	)

	opts.InputPath = cfg.InputPath
	opts.SnapshotPath = cfg.SnapshotPath
	return prune.New(client, opts, logger)
}

func runPrune(ctx context.Context, opts prune.Options, ask bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if ask {
		opts.Confirm = confirmDeletion
	}

	fmt.Println(cyan("--- Pruning LogMeIn hosts ---"))
	fmt.Printf("Host list: %s\n", cfg.InputPath)
	fmt.Printf("Snapshot:  %s\n", cfg.SnapshotPath)
	if opts.DryRun {
		fmt.Println(yellow("Dry run, nothing will be deleted."))
	}

	rep := newPipeline(cfg, opts).Run(ctx)

	printSummary(os.Stdout, rep)
	writeMetrics(rep)
	return nil
}

func writeMetrics(rep prune.Report) {
	if metricsFile == "" {
		return
	}
	logger := xlog.WithComponent("metrics")
	if err := metrics.WriteTextfile(metricsFile, rep, time.Now()); err != nil {
		logger.Error().Err(err).Msg("could not write metrics")
		return
	}
	logger.Debug().Str("path", metricsFile).Msg("wrote metrics")
}
