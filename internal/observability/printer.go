// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/redstarmatt/since-sean-left/internal/events"
	"github.com/redstarmatt/since-sean-left/internal/feeds"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 10
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintNewsItems outputs a summary of the collected news items.
func (p *Printer) PrintNewsItems(items []feeds.Item) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Collected: %d items\n", len(items)))
	sb.WriteString("\n")

	shown := len(items)
	if shown > maxItemsToShow {
		shown = maxItemsToShow
	}
	for _, item := range items[:shown] {
		sb.WriteString(fmt.Sprintf("- %s\n", item.Title))
	}
	if len(items) > shown {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(items)-shown))
	}

	p.printBox("News Items", sb.String())
}

// PrintExistingTitles outputs the titles already present on the page.
func (p *Printer) PrintExistingTitles(titles []string) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("On page: %d titles\n", len(titles)))
	sb.WriteString("\n")

	shown := len(titles)
	if shown > maxItemsToShow {
		shown = maxItemsToShow
	}
	for _, title := range titles[:shown] {
		sb.WriteString(fmt.Sprintf("- %s\n", title))
	}
	if len(titles) > shown {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(titles)-shown))
	}

	p.printBox("Existing Titles", sb.String())
}

// PrintEvents outputs the validated events produced by this run.
func (p *Printer) PrintEvents(evs []events.Event) {
	var sb strings.Builder

	for i, event := range evs {
		sb.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, event.Title, event.Date))
		sb.WriteString(fmt.Sprintf("   %s\n", event.Desc))
		sb.WriteString(fmt.Sprintf("   tags: %s\n", strings.Join(event.Tags, ", ")))
	}
	if len(evs) == 0 {
		sb.WriteString("(none)\n")
	}

	p.printBox("New Events", sb.String())
}
