package page

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redstarmatt/since-sean-left/internal/events"
)

const sampleDoc = `<html><body><script>
        const events = [
            {
                date: '2026-02-20',
                title: 'Old Event',
                desc: 'Already on the page.',
                tags: ['crisis']
            }
        ];
</script></body></html>`

func TestExtractTitles(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		expected []string
	}{
		{
			name:     "Single-quoted titles",
			doc:      "title: 'First'\ntitle: 'Second'",
			expected: []string{"First", "Second"},
		},
		{
			name:     "Double-quoted titles",
			doc:      `title: "Quoted"`,
			expected: []string{"Quoted"},
		},
		{
			name:     "Whitespace after colon",
			doc:      "title:    'Spaced'",
			expected: []string{"Spaced"},
		},
		{
			name:     "No titles",
			doc:      "nothing relevant here",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractTitles(tt.doc))
		})
	}
}

func TestRender(t *testing.T) {
	event := events.Event{
		Date:  "2026-03-01",
		Title: "PM Resigns",
		Desc:  "Statement given.",
		Tags:  []string{"resignation", "crisis"},
	}

	block := Render(event)

	assert.Contains(t, block, "date: '2026-03-01',")
	assert.Contains(t, block, "title: 'PM Resigns',")
	assert.Contains(t, block, "desc: 'Statement given.',")
	assert.Contains(t, block, "tags: ['resignation', 'crisis']")
	assert.True(t, strings.HasPrefix(block, "            {"))
	assert.True(t, strings.HasSuffix(block, "            }"))
}

func TestInject_InsertsAfterAnchor(t *testing.T) {
	newEvent := events.Event{
		Date:  "2026-03-01",
		Title: "PM Resigns",
		Desc:  "Statement given.",
		Tags:  []string{"resignation"},
	}

	updated := Inject(sampleDoc, []events.Event{newEvent})

	require.Contains(t, updated, "title: 'PM Resigns',")
	assert.Contains(t, updated, "tags: ['resignation']")

	// New record sits between the anchor and the pre-existing record.
	anchorIdx := strings.Index(updated, Anchor)
	newIdx := strings.Index(updated, "PM Resigns")
	oldIdx := strings.Index(updated, "Old Event")
	require.GreaterOrEqual(t, anchorIdx, 0)
	assert.Less(t, anchorIdx, newIdx)
	assert.Less(t, newIdx, oldIdx)

	// Trailing comma separates the insert from the first existing record.
	insertEnd := strings.Index(updated, "            },\n") // injected block plus comma
	assert.GreaterOrEqual(t, insertEnd, 0)
}

func TestInject_MultipleEventsPreserveOrder(t *testing.T) {
	evs := []events.Event{
		{Date: "2026-03-01", Title: "First", Desc: "1", Tags: []string{"crisis"}},
		{Date: "2026-03-01", Title: "Second", Desc: "2", Tags: []string{"polls"}},
	}

	updated := Inject(sampleDoc, evs)

	firstIdx := strings.Index(updated, "'First'")
	secondIdx := strings.Index(updated, "'Second'")
	oldIdx := strings.Index(updated, "'Old Event'")
	require.GreaterOrEqual(t, firstIdx, 0)
	assert.Less(t, firstIdx, secondIdx)
	assert.Less(t, secondIdx, oldIdx)
}

func TestInject_EmptyEventsLeavesDocumentUnchanged(t *testing.T) {
	updated := Inject(sampleDoc, nil)

	assert.Equal(t, sampleDoc, updated)
}

func TestInject_MissingAnchorLeavesDocumentUnchanged(t *testing.T) {
	doc := "<html>no anchor here</html>"
	event := events.Event{Date: "2026-03-01", Title: "Orphan", Desc: "x", Tags: []string{"crisis"}}

	updated := Inject(doc, []events.Event{event})

	assert.Equal(t, doc, updated)
}

func TestInject_OnlyFirstAnchorTouched(t *testing.T) {
	doc := Anchor + "\n];\n// comment mentioning " + Anchor
	event := events.Event{Date: "2026-03-01", Title: "Once", Desc: "x", Tags: []string{"crisis"}}

	updated := Inject(doc, []events.Event{event})

	assert.Equal(t, 1, strings.Count(updated, "'Once'"))
}

func TestInject_EndToEndScenario(t *testing.T) {
	newEvent := events.Event{
		Date:  "2026-03-01",
		Title: "PM Resigns",
		Desc:  "Statement given.",
		Tags:  []string{"resignation"},
	}

	updated := Inject(sampleDoc, []events.Event{newEvent})

	expectedBlock := "const events = [\n" +
		"            {\n" +
		"                date: '2026-03-01',\n" +
		"                title: 'PM Resigns',\n" +
		"                desc: 'Statement given.',\n" +
		"                tags: ['resignation']\n" +
		"            },"
	assert.Contains(t, updated, expectedBlock)

	titles := ExtractTitles(updated)
	assert.Equal(t, []string{"PM Resigns", "Old Event"}, titles)
}
