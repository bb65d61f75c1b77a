package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dmehra/jobwire/internal/digest"
)

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Digest subcommands",
}

var digestTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a test digest",
	Long:  "Sends a single-entry test digest through the configured sink.",
	RunE:  runDigestTest,
}

func init() {
	rootCmd.AddCommand(digestCmd)
	digestCmd.AddCommand(digestTestCmd)
}

func runDigestTest(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	sink := setupSink(cfg, logger)
	if err := digest.SendTestDigest(sink); err != nil {
		logger.Error("test digest failed", "error", err)
		os.Exit(1)
	}
	logger.Info("test digest sent successfully")
	return nil
}
