package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Best effort: secrets referenced by the config via ${VAR} may live in
	// a local .env during development.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
