package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmehra/jobwire/internal/review"
	"github.com/dmehra/jobwire/internal/store"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Browse stored applications interactively (TUI)",
	Long:  "Opens a split-pane view of every stored application, ranked by match score, with the full cover letter and strategy for each.",
	RunE:  runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if cfg.Store.Type != "sqlite" {
		return fmt.Errorf("review requires store.type \"sqlite\" (got %q); sheet-backed runs are browsable in the spreadsheet itself", cfg.Store.Type)
	}

	s, err := store.NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	if err := s.EnsureSchema(); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	records, err := s.ListRecords()
	if err != nil {
		return fmt.Errorf("list records: %w", err)
	}

	return review.Run(records)
}
