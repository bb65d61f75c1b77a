package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List configured listing sources",
	Long:  "Reads the config and prints every known source with its status.",
	RunE:  runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

var allSources = []string{"remoteok", "arbeitnow", "themuse"}

func runSources(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	enabled := make(map[string]bool)
	for _, s := range cfg.Sources.Enabled {
		enabled[s] = true
	}

	fmt.Printf("%-15s %s\n", "Source", "Status")
	fmt.Println(strings.Repeat("─", 24))
	for _, s := range allSources {
		status := "disabled"
		if enabled[s] {
			status = "enabled"
		}
		fmt.Printf("%-15s %s\n", s, status)
	}
	fmt.Printf("\nLookback window: %s\n", cfg.Sources.Lookback)
	return nil
}
