package events

import (
	"context"

	"github.com/redstarmatt/since-sean-left/internal/feeds"
	"github.com/redstarmatt/since-sean-left/internal/llm"
)

// Generate sends the rendered style prompt to the model and returns the raw
// response text. Single synchronous call; no retries, no streaming.
func Generate(ctx context.Context, client llm.Client, today string, existingTitles []string, items []feeds.Item) (string, error) {
	prompt := BuildPrompt(today, existingTitles, items)

	responseText, err := client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		return "", &APICallError{
			Message: "failed to generate events",
			Cause:   err,
		}
	}

	return responseText, nil
}
