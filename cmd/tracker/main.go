// Package main provides the entry point for the Since Sean Left tracker CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tracker",
	Short: "Since Sean Left event tracker",
	Long:  "Fetches recent UK politics news from RSS feeds, rewrites qualifying items in the tracker's satirical editorial style via Gemini, and splices the validated events into the tracker page.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
