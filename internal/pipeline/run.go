// Package pipeline provides the high-level orchestration for one tracker run.
//
// The run is strictly linear and single-shot:
//
//	Fetch -> (empty? -> Stop) -> BuildPrompt -> Generate -> Validate
//	      -> (empty? -> Stop) -> Inject & Persist -> Done
//
// No branch re-enters an earlier state; there are no loops and no retries.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/redstarmatt/since-sean-left/internal/events"
	"github.com/redstarmatt/since-sean-left/internal/feeds"
	"github.com/redstarmatt/since-sean-left/internal/llm"
	"github.com/redstarmatt/since-sean-left/internal/observability"
	"github.com/redstarmatt/since-sean-left/internal/page"
)

// Step names reported through progress events.
const (
	StepCollect  = "collect"
	StepGenerate = "generate"
	StepValidate = "validate"
	StepInject   = "inject"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	Feeds     []string
	Lookback  time.Duration
	IndexPath string
	APIKey    string
	Model     string
	DryRun    bool
	Verbose   bool

	// Client overrides the Gemini client; used by tests. When nil a real
	// client is built from APIKey.
	Client llm.Client

	Logger     *slog.Logger
	OnProgress ProgressCallback
}

// Summary reports what a completed run did.
type Summary struct {
	RunID       uuid.UUID
	ItemsFound  int
	EventsAdded int
	// Updated is true when the page was rewritten (always false in dry-run).
	Updated bool
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, runID uuid.UUID, step, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:    step,
			Message: message,
			RunID:   runID.String(),
			Content: content,
		})
	}
}

// Run executes one tracker update end to end. The returned error is reserved
// for configuration failures (missing credential, unreadable page); feed and
// model failures are logged and end the run as a benign no-op.
func Run(ctx context.Context, opts RunOptions) (*Summary, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	runID := uuid.New()
	summary := &Summary{RunID: runID}
	printer := observability.NewPrinter(os.Stdout)

	raw, err := os.ReadFile(opts.IndexPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read tracker page %s: %w", opts.IndexPath, err)
	}
	doc := string(raw)

	existingTitles := page.ExtractTitles(doc)
	today := time.Now().UTC().Format("2006-01-02")

	fmt.Printf("Step 1/4: Fetching RSS feeds...\n")
	collector := feeds.NewCollector(opts.Feeds, opts.Lookback, log)
	items := collector.Collect(ctx)
	summary.ItemsFound = len(items)
	fmt.Printf("Found %d recent news items\n", len(items))
	if opts.Verbose {
		printer.PrintNewsItems(items)
		printer.PrintExistingTitles(existingTitles)
	}
	emitProgress(&opts, runID, StepCollect,
		fmt.Sprintf("Collected %d recent news items", len(items)), nil)

	if len(items) == 0 {
		log.Info("no recent news items found, skipping", slog.String("run_id", runID.String()))
		return summary, nil
	}

	client := opts.Client
	if client == nil {
		cfg := llm.DefaultConfig()
		if opts.Model != "" {
			cfg = cfg.WithModel(llm.TierStandard, opts.Model)
		}
		client, err = llm.NewClient(ctx, cfg, opts.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer func() { _ = client.Close() }()
	}

	fmt.Printf("Step 2/4: Sending %d items to %s...\n", len(items), client.GetModel(llm.TierStandard))
	response, err := events.Generate(ctx, client, today, existingTitles, items)
	if err != nil {
		// Model outages end the run as a no-op, not a crash.
		log.Warn("generation failed", slog.String("run_id", runID.String()), slog.Any("err", err))
		return summary, nil
	}
	emitProgress(&opts, runID, StepGenerate, "Model responded", nil)

	fmt.Printf("Step 3/4: Validating response...\n")
	result := events.ParseResponse(response)
	switch result.Outcome {
	case events.OutcomeNone:
		fmt.Printf("Model returned no new events. Skipping.\n")
		return summary, nil
	case events.OutcomeMalformed:
		log.Warn("failed to parse model response",
			slog.String("run_id", runID.String()),
			slog.String("response", result.Raw))
		return summary, nil
	}

	if len(result.Events) == 0 {
		fmt.Printf("No events survived validation. Skipping.\n")
		return summary, nil
	}

	summary.EventsAdded = len(result.Events)
	fmt.Printf("Generated %d new events:\n", len(result.Events))
	for _, event := range result.Events {
		fmt.Printf("  - %s\n", event.Title)
	}
	if opts.Verbose {
		printer.PrintEvents(result.Events)
	}
	emitProgress(&opts, runID, StepValidate,
		fmt.Sprintf("Validated %d events", len(result.Events)), result.Events)

	fmt.Printf("Step 4/4: Updating %s...\n", opts.IndexPath)
	updated := page.Inject(doc, result.Events)

	if opts.DryRun {
		fmt.Printf("Dry run: page not written.\n")
		return summary, nil
	}

	// Single write, only after the full document exists in memory.
	if err := os.WriteFile(opts.IndexPath, []byte(updated), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write tracker page %s: %w", opts.IndexPath, err)
	}
	summary.Updated = true
	emitProgress(&opts, runID, StepInject,
		fmt.Sprintf("Inserted %d events into %s", len(result.Events), opts.IndexPath), nil)

	fmt.Printf("%s updated successfully.\n", opts.IndexPath)
	return summary, nil
}
