package events

import (
	"fmt"
	"strings"

	"github.com/redstarmatt/since-sean-left/internal/feeds"
	"github.com/redstarmatt/since-sean-left/internal/prompts"
)

// Placeholder sentinels rendered when a prompt section has no content.
const (
	noExistingTitles = "(none yet)"
	noRecentItems    = "(no recent items found)"
)

// BuildPrompt renders the style template with today's date, the titles
// already on the page, and the collected news items. Item text is
// interpolated as-is; the trust boundary sits at response validation.
func BuildPrompt(today string, existingTitles []string, items []feeds.Item) string {
	template := prompts.MustGet("style.json", "rewrite-events")
	return prompts.Format(template, map[string]string{
		"Today":          today,
		"ExistingTitles": formatTitles(existingTitles),
		"NewsItems":      formatItems(items),
	})
}

func formatTitles(titles []string) string {
	if len(titles) == 0 {
		return noExistingTitles
	}
	lines := make([]string, 0, len(titles))
	for _, t := range titles {
		lines = append(lines, fmt.Sprintf("- %s", t))
	}
	return strings.Join(lines, "\n")
}

func formatItems(items []feeds.Item) string {
	if len(items) == 0 {
		return noRecentItems
	}
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("- %s: %s", item.Title, item.Summary))
	}
	return strings.Join(lines, "\n")
}
