package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redstarmatt/since-sean-left/internal/llm"
)

const sampleIndex = `<html><body><script>
        const events = [
            {
                date: '2026-02-20',
                title: 'Old Event',
                desc: 'Already on the page.',
                tags: ['crisis']
            }
        ];
</script></body></html>`

// fakeClient implements llm.Client and records the prompts it receives.
type fakeClient struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake-model" }

func (f *fakeClient) Close() error { return nil }

func writeIndex(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index.html")
	require.NoError(t, os.WriteFile(path, []byte(sampleIndex), 0o644))
	return path
}

func readIndex(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func serveNewsFeed(t *testing.T, titles ...string) *httptest.Server {
	t.Helper()
	items := ""
	for _, title := range titles {
		items += fmt.Sprintf(`<item><title>%s</title><description>summary</description><pubDate>%s</pubDate></item>`,
			title, time.Now().UTC().Format(time.RFC1123Z))
	}
	body := `<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"><channel><title>Politics</title><link>http://example.com</link><description>test</description>` + items + `</channel></rss>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testOptions(t *testing.T, indexPath string, srv *httptest.Server, client llm.Client) RunOptions {
	t.Helper()
	return RunOptions{
		Feeds:     []string{srv.URL},
		Lookback:  8 * time.Hour,
		IndexPath: indexPath,
		Client:    client,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestRun_EndToEndAddsEvent(t *testing.T) {
	indexPath := writeIndex(t)
	srv := serveNewsFeed(t, "PM Resigns: Full Statement")
	client := &fakeClient{
		response: `[{"date": "2026-03-01", "title": "PM Resigns", "desc": "Statement given.", "tags": ["resignation"]}]`,
	}

	summary, err := Run(context.Background(), testOptions(t, indexPath, srv, client))

	require.NoError(t, err)
	assert.Equal(t, 1, summary.ItemsFound)
	assert.Equal(t, 1, summary.EventsAdded)
	assert.True(t, summary.Updated)

	// The prompt carried both the fresh item and the existing title.
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "PM Resigns: Full Statement")
	assert.Contains(t, client.prompts[0], "- Old Event")

	// The new record lands directly after the anchor, before "Old Event".
	updated := readIndex(t, indexPath)
	assert.Contains(t, updated, "title: 'PM Resigns',")
	assert.Contains(t, updated, "tags: ['resignation']")
	newIdx := strings.Index(updated, "'PM Resigns'")
	oldIdx := strings.Index(updated, "'Old Event'")
	assert.Less(t, newIdx, oldIdx)
}

func TestRun_NoneResponseLeavesPageUntouched(t *testing.T) {
	indexPath := writeIndex(t)
	srv := serveNewsFeed(t, "Quiet News Day")
	client := &fakeClient{response: "NONE"}

	summary, err := Run(context.Background(), testOptions(t, indexPath, srv, client))

	require.NoError(t, err)
	assert.Equal(t, 0, summary.EventsAdded)
	assert.False(t, summary.Updated)
	assert.Equal(t, sampleIndex, readIndex(t, indexPath), "page stays byte-identical")
}

func TestRun_MalformedResponseIsBenign(t *testing.T) {
	indexPath := writeIndex(t)
	srv := serveNewsFeed(t, "Some Story")
	client := &fakeClient{response: "sorry, I couldn't help with that"}

	summary, err := Run(context.Background(), testOptions(t, indexPath, srv, client))

	require.NoError(t, err)
	assert.Equal(t, 0, summary.EventsAdded)
	assert.Equal(t, sampleIndex, readIndex(t, indexPath))
}

func TestRun_NoItemsShortCircuitsBeforeModel(t *testing.T) {
	indexPath := writeIndex(t)
	srv := serveNewsFeed(t) // no items
	client := &fakeClient{response: "should never be called"}

	summary, err := Run(context.Background(), testOptions(t, indexPath, srv, client))

	require.NoError(t, err)
	assert.Equal(t, 0, summary.ItemsFound)
	assert.Empty(t, client.prompts, "model is not called when there is nothing to send")
	assert.Equal(t, sampleIndex, readIndex(t, indexPath))
}

func TestRun_GenerationFailureIsBenign(t *testing.T) {
	indexPath := writeIndex(t)
	srv := serveNewsFeed(t, "Some Story")
	client := &fakeClient{err: errors.New("model unavailable")}

	summary, err := Run(context.Background(), testOptions(t, indexPath, srv, client))

	require.NoError(t, err)
	assert.Equal(t, 0, summary.EventsAdded)
	assert.Equal(t, sampleIndex, readIndex(t, indexPath))
}

func TestRun_DryRunSkipsWrite(t *testing.T) {
	indexPath := writeIndex(t)
	srv := serveNewsFeed(t, "PM Resigns: Full Statement")
	client := &fakeClient{
		response: `[{"date": "2026-03-01", "title": "PM Resigns", "desc": "Statement given.", "tags": ["resignation"]}]`,
	}

	opts := testOptions(t, indexPath, srv, client)
	opts.DryRun = true
	summary, err := Run(context.Background(), opts)

	require.NoError(t, err)
	assert.Equal(t, 1, summary.EventsAdded)
	assert.False(t, summary.Updated)
	assert.Equal(t, sampleIndex, readIndex(t, indexPath))
}

func TestRun_MissingIndexIsFatal(t *testing.T) {
	srv := serveNewsFeed(t)
	client := &fakeClient{}

	opts := testOptions(t, filepath.Join(t.TempDir(), "missing.html"), srv, client)
	summary, err := Run(context.Background(), opts)

	assert.Error(t, err)
	assert.Nil(t, summary)
}

func TestRun_EmitsProgressEvents(t *testing.T) {
	indexPath := writeIndex(t)
	srv := serveNewsFeed(t, "PM Resigns: Full Statement")
	client := &fakeClient{
		response: `[{"date": "2026-03-01", "title": "PM Resigns", "desc": "Statement given.", "tags": ["resignation"]}]`,
	}

	var got []ProgressEvent
	opts := testOptions(t, indexPath, srv, client)
	opts.OnProgress = func(event ProgressEvent) { got = append(got, event) }

	summary, err := Run(context.Background(), opts)

	require.NoError(t, err)
	steps := make([]string, 0, len(got))
	for _, event := range got {
		steps = append(steps, event.Step)
		assert.Equal(t, summary.RunID.String(), event.RunID)
	}
	assert.Equal(t, []string{StepCollect, StepGenerate, StepValidate, StepInject}, steps)
}
