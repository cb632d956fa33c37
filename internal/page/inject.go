// Package page handles the tracker's static index.html as an opaque text
// blob: it mines existing event titles with a literal field pattern and
// splices new event blocks in directly after the events array anchor.
//
// The single-anchor substring replace is fragile by nature. If the anchor is
// missing nothing is inserted; if it appears more than once only the first
// occurrence is touched. Structured parsing of the page is a non-goal.
package page

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/redstarmatt/since-sean-left/internal/events"
)

// Anchor marks the start of the page's embedded events array.
const Anchor = "const events = ["

// titlePattern mines existing event titles anywhere in the page text.
var titlePattern = regexp.MustCompile(`title:\s*['"](.+?)['"]`)

// ExtractTitles returns every event title already present in the document.
// These double as the "already covered" log across runs.
func ExtractTitles(doc string) []string {
	matches := titlePattern.FindAllStringSubmatch(doc, -1)
	titles := make([]string, 0, len(matches))
	for _, m := range matches {
		titles = append(titles, m[1])
	}
	return titles
}

// Render produces the literal block for one event, matching the page's
// existing indentation.
func Render(event events.Event) string {
	quoted := make([]string, 0, len(event.Tags))
	for _, tag := range event.Tags {
		quoted = append(quoted, fmt.Sprintf("'%s'", tag))
	}

	var sb strings.Builder
	sb.WriteString("            {\n")
	sb.WriteString(fmt.Sprintf("                date: '%s',\n", event.Date))
	sb.WriteString(fmt.Sprintf("                title: '%s',\n", event.Title))
	sb.WriteString(fmt.Sprintf("                desc: '%s',\n", event.Desc))
	sb.WriteString(fmt.Sprintf("                tags: [%s]\n", strings.Join(quoted, ", ")))
	sb.WriteString("            }")
	return sb.String()
}

// Inject returns the document with the events inserted immediately after the
// anchor, newest first, followed by a trailing comma before the first
// pre-existing record. Pure: no I/O. An empty event list returns the
// document unchanged.
func Inject(doc string, evs []events.Event) string {
	if len(evs) == 0 {
		return doc
	}

	blocks := make([]string, 0, len(evs))
	for _, event := range evs {
		blocks = append(blocks, Render(event))
	}
	insert := strings.Join(blocks, ",\n")

	return strings.Replace(doc, Anchor, Anchor+"\n"+insert+",", 1)
}
