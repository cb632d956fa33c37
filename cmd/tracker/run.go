package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/redstarmatt/since-sean-left/internal/config"
	"github.com/redstarmatt/since-sean-left/internal/logger"
	"github.com/redstarmatt/since-sean-left/internal/pipeline"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full tracker update pipeline end-to-end",
	Long: `Orchestrates one tracker update: feed collection -> prompt construction -> generation -> validation -> page injection.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runTrackerCmd,
}

var (
	runConfigPath string
	runIndexPath  string
	runLookback   int
	runModel      string
	runAPIKey     string
	runDryRun     bool
	runVerbose    bool
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runIndexPath, "index", "i", "", "Path to the tracker page to update")
	runCommand.Flags().IntVar(&runLookback, "lookback", 0, "Lookback window in hours for recent feed entries")
	runCommand.Flags().StringVarP(&runModel, "model", "m", "", "Generation model identifier")
	runCommand.Flags().BoolVar(&runDryRun, "dry-run", false, "Compute the updated page without writing it")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(runCommand)
}

func runTrackerCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.Load(runConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
		if runVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	if cmd.Flags().Changed("index") {
		cfg.IndexPath = runIndexPath
	}
	if cmd.Flags().Changed("lookback") {
		cfg.LookbackHours = runLookback
	}
	if cmd.Flags().Changed("model") {
		cfg.Model = runModel
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("dry-run") {
		cfg.DryRun = runDryRun
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}

	// Step 3: Fill remaining gaps from defaults and validate
	cfg = cfg.MergeWithDefaults(config.Default())
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Credential is the one configuration-fatal requirement.
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	_, err := pipeline.Run(ctx, pipeline.RunOptions{
		Feeds:     cfg.Feeds,
		Lookback:  cfg.Lookback(),
		IndexPath: cfg.IndexPath,
		APIKey:    cfg.APIKey,
		Model:     cfg.Model,
		DryRun:    cfg.DryRun,
		Verbose:   cfg.Verbose,
		Logger:    logger.New(),
	})
	return err
}
