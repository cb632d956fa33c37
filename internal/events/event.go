// Package events turns collected news items into validated tracker events:
// it builds the style prompt, calls the model, and validates the untrusted
// response into at most MaxEvents records.
package events

import "strings"

// MaxEvents caps how many events a single run may add to the tracker.
const MaxEvents = 3

// DefaultTag is substituted when tag filtering empties an event's tag set.
// A record never reaches the page with zero tags.
const DefaultTag = "crisis"

// Event is one validated tracker event ready for page injection. Title and
// Desc are single-quote escaped for embedding in the page's literal blocks.
type Event struct {
	Date  string   `json:"date"`
	Title string   `json:"title"`
	Desc  string   `json:"desc"`
	Tags  []string `json:"tags"`
}

// Vocabulary is the closed set of tags an event may carry.
var Vocabulary = map[string]bool{
	"scandal":        true,
	"uturn":          true,
	"resignation":    true,
	"broken-promise": true,
	"failure":        true,
	"polls":          true,
	"economic":       true,
	"security":       true,
	"hypocrisy":      true,
	"crisis":         true,
	"press":          true,
	"rebellion":      true,
}

// FilterTags discards tags outside the vocabulary, preserving order. An
// empty result is replaced with the default tag.
func FilterTags(tags []string) []string {
	filtered := make([]string, 0, len(tags))
	for _, tag := range tags {
		if Vocabulary[tag] {
			filtered = append(filtered, tag)
		}
	}
	if len(filtered) == 0 {
		return []string{DefaultTag}
	}
	return filtered
}

// EscapeQuotes escapes single quotes so the value can sit inside the page's
// single-quoted string literals.
func EscapeQuotes(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}
