package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/redstarmatt/since-sean-left/internal/config"
	"github.com/redstarmatt/since-sean-left/internal/feeds"
	"github.com/redstarmatt/since-sean-left/internal/logger"
)

var feedsCommand = &cobra.Command{
	Use:   "feeds",
	Short: "Fetch the configured feeds and list recent items without calling the model",
	RunE:  runFeedsCmd,
}

var (
	feedsConfigPath string
	feedsLookback   int
)

func init() {
	feedsCommand.Flags().StringVar(&feedsConfigPath, "config", "", "Path to config.json file")
	feedsCommand.Flags().IntVar(&feedsLookback, "lookback", 0, "Lookback window in hours for recent feed entries")

	rootCmd.AddCommand(feedsCommand)
}

func runFeedsCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	var cfg config.Config
	if feedsConfigPath != "" {
		loadedCfg, err := config.Load(feedsConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
	}
	if cmd.Flags().Changed("lookback") {
		cfg.LookbackHours = feedsLookback
	}
	cfg = cfg.MergeWithDefaults(config.Default())
	if err := cfg.Validate(); err != nil {
		return err
	}

	collector := feeds.NewCollector(cfg.Feeds, cfg.Lookback(), logger.New())
	items := collector.Collect(ctx)

	fmt.Printf("Found %d recent news items (lookback %dh):\n", len(items), cfg.LookbackHours)
	for _, item := range items {
		fmt.Printf("  - %s\n", item.Title)
	}
	return nil
}
