package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmehra/jobwire/internal/config"
	"github.com/dmehra/jobwire/internal/digest"
	"github.com/dmehra/jobwire/internal/model"
	"github.com/dmehra/jobwire/internal/source"
	"github.com/dmehra/jobwire/internal/store"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobwire",
	Short: "Find and score fresh job postings against your resume",
	Long:  "Jobwire pulls fresh postings from public job boards, filters them against your resume, and generates a scored application package for each match.",
	// Default to `run` so that `jobwire` with no args runs the pipeline.
	// This keeps cron entries that invoke the binary directly working.
	RunE: runRun,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBWIRE_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > JOBWIRE_CONFIG env var > "./config.yaml"
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if env := os.Getenv("JOBWIRE_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

// setupStore builds the configured record store. Callers own Close.
func setupStore(cmd *cobra.Command, cfg *config.Config) (model.RecordStore, error) {
	switch cfg.Store.Type {
	case "sqlite":
		return store.NewSQLiteStore(cfg.Store.Path)
	case "sheets":
		return store.NewSheetsStore(cmd.Context(), cfg.Store.SheetID, []byte(cfg.Store.CredentialsJSON))
	case "none":
		return store.NewNopStore(), nil
	default:
		return nil, fmt.Errorf("unknown store type %q", cfg.Store.Type)
	}
}

func setupSink(cfg *config.Config, logger *slog.Logger) model.DigestSink {
	switch cfg.Digest.Type {
	case "email":
		logger.Info("using email digest", "to", cfg.Digest.To)
		return digest.NewEmailDigest(
			cfg.Digest.SMTPHost, cfg.Digest.SMTPPort,
			cfg.Digest.From, cfg.Digest.To, cfg.Digest.Password,
			cfg.Store.SheetURL(), logger,
		)
	default:
		return digest.NewLogDigest(logger)
	}
}

// sourceFactory returns the adapter set for the enabled providers.
// Arbeitnow is query-driven, so adapters are built after the profile exists.
func sourceFactory(cfg *config.Config, fetchClient *http.Client) func(model.CandidateProfile) []model.SourceFetcher {
	return func(profile model.CandidateProfile) []model.SourceFetcher {
		var fetchers []model.SourceFetcher
		for _, name := range cfg.Sources.Enabled {
			switch name {
			case "remoteok":
				fetchers = append(fetchers, source.NewRemoteOKAdapter(fetchClient, cfg.Sources.Lookback))
			case "arbeitnow":
				fetchers = append(fetchers, source.NewArbeitnowAdapter(profile.PrimaryRole(), fetchClient, cfg.Sources.Lookback))
			case "themuse":
				fetchers = append(fetchers, source.NewMuseAdapter(fetchClient, cfg.Sources.Lookback))
			}
		}
		return fetchers
	}
}

func newFetchClient() *http.Client {
	return &http.Client{Timeout: 20 * time.Second}
}
