// Package feeds fetches recent items from the tracker's RSS sources.
//
// Every source is fetched sequentially with a bounded timeout; a failing
// source is logged and skipped, never fatal to the run. Items older than the
// lookback window are dropped, but items without a resolvable timestamp are
// kept: ambiguity defaults to inclusion.
package feeds

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// UserAgent identifies the tracker to feed servers. Some sites block
// generic bots, so the string carries a Mozilla prefix.
const UserAgent = "Mozilla/5.0 (compatible; SinceSeanLeft/1.0)"

// fetchTimeout bounds each per-source HTTP round trip.
const fetchTimeout = 15 * time.Second

// tagPattern removes markup by literal tag-delimiter matching. Unbalanced
// markup may leak text; full HTML parsing is deliberately out of scope.
var tagPattern = regexp.MustCompile(`<[^>]+>`)

// Item is one deduplicated news item ready for prompt construction.
type Item struct {
	Title   string
	Summary string
}

// Collector fetches and filters items from a fixed list of feed sources.
type Collector struct {
	sources  []string
	lookback time.Duration
	parser   *gofeed.Parser
	client   *http.Client
	log      *slog.Logger
}

// NewCollector creates a Collector over the given source URLs.
func NewCollector(sources []string, lookback time.Duration, log *slog.Logger) *Collector {
	return &Collector{
		sources:  sources,
		lookback: lookback,
		parser:   gofeed.NewParser(),
		client:   &http.Client{Timeout: fetchTimeout},
		log:      log,
	}
}

// Collect fetches every source and returns recent items deduplicated by
// title in first-seen order. Zero items is a valid result, not an error.
func (c *Collector) Collect(ctx context.Context) []Item {
	cutoff := time.Now().UTC().Add(-c.lookback)

	var items []Item
	for _, url := range c.sources {
		fetched, err := c.fetchSource(ctx, url, cutoff)
		if err != nil {
			c.log.Warn("failed to fetch feed", slog.String("url", url), slog.Any("err", err))
			continue
		}
		items = append(items, fetched...)
	}

	return dedupeByTitle(items)
}

// fetchSource retrieves and parses one feed, keeping entries that are recent
// or undated.
func (c *Collector) fetchSource(ctx context.Context, url string, cutoff time.Time) ([]Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml, */*")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	feed, err := c.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}

	var items []Item
	for _, entry := range feed.Items {
		published := entryTime(entry)
		if published != nil && published.Before(cutoff) {
			continue
		}

		title := strings.TrimSpace(entry.Title)
		if title == "" {
			continue
		}

		items = append(items, Item{
			Title:   title,
			Summary: StripTags(entrySummary(entry)),
		})
	}

	return items, nil
}

// entryTime resolves a UTC publish timestamp from the published field,
// falling back to updated. Returns nil when neither is present.
func entryTime(entry *gofeed.Item) *time.Time {
	var ts *time.Time
	if entry.PublishedParsed != nil {
		ts = entry.PublishedParsed
	} else if entry.UpdatedParsed != nil {
		ts = entry.UpdatedParsed
	}
	if ts == nil {
		return nil
	}
	utc := ts.UTC()
	return &utc
}

// entrySummary prefers the description, falling back to full content.
func entrySummary(entry *gofeed.Item) string {
	if entry.Description != "" {
		return entry.Description
	}
	return entry.Content
}

// StripTags removes markup tags from a summary via literal delimiter
// removal and trims the result.
func StripTags(s string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(s, ""))
}

// dedupeByTitle keeps the first occurrence of each exact title.
func dedupeByTitle(items []Item) []Item {
	seen := make(map[string]bool, len(items))
	unique := make([]Item, 0, len(items))
	for _, item := range items {
		if seen[item.Title] {
			continue
		}
		seen[item.Title] = true
		unique = append(unique, item)
	}
	return unique
}
