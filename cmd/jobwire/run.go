package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmehra/jobwire/internal/filter"
	"github.com/dmehra/jobwire/internal/model"
	"github.com/dmehra/jobwire/internal/oracle"
	"github.com/dmehra/jobwire/internal/pipeline"
	"github.com/dmehra/jobwire/internal/profile"
	"github.com/dmehra/jobwire/internal/ratelimit"
	"github.com/dmehra/jobwire/internal/store"
)

var dryRun bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the pipeline once",
	Long:  "One full pass: fetch fresh postings, filter against your profile, enrich each match, persist, and send the ranked digest.",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "do not persist anything; every posting appears new")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("config loaded",
		"sources", cfg.Sources.Enabled,
		"lookback", cfg.Sources.Lookback.String(),
		"remote_only", cfg.Filter.RemoteOnly,
		"geo_policy", cfg.Filter.GeoPolicy,
		"store", cfg.Store.Type,
		"digest", cfg.Digest.Type,
	)

	var recordStore model.RecordStore
	if dryRun {
		logger.Info("dry-run mode enabled, nothing will be persisted")
		recordStore = store.NewNopStore()
	} else {
		recordStore, err = setupStore(cmd, cfg)
		if err != nil {
			logger.Error("failed to open store", "error", err)
			os.Exit(1)
		}
	}
	defer recordStore.Close()

	oracleClient := &http.Client{Timeout: cfg.Oracle.Timeout}
	provider := oracle.NewGroqProvider(cfg.Oracle.BaseURL, cfg.Oracle.APIKey, oracleClient)

	runner := pipeline.NewRunner(
		cfg.ResumeText,
		profile.NewBuilder(provider, cfg.Oracle.ProfileModel),
		sourceFactory(cfg, newFetchClient()),
		filter.Options{
			RemoteOnly:     cfg.Filter.RemoteOnly,
			GeoPolicy:      filter.GeoPolicy(cfg.Filter.GeoPolicy),
			GeoKeywords:    cfg.Filter.GeoKeywords,
			SkillThreshold: cfg.Filter.SkillThreshold,
			MaxPostings:    cfg.Filter.MaxPostings,
		},
		oracle.NewEnricher(provider, cfg.Oracle.MatchModel),
		ratelimit.NewPacer(cfg.Oracle.Pace, cfg.Oracle.FailurePace),
		recordStore,
		setupSink(cfg, logger),
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := runner.Run(ctx); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
	return nil
}
