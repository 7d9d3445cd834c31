package templates

import (
	"bytes"
	"context"
	"testing"

	"github.com/aouyang1/imagegallery/slideshow"
	"github.com/aouyang1/imagegallery/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, p Page) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Index(p).Render(context.Background(), &buf))
	return buf.String()
}

func TestIndexPlaceholders(t *testing.T) {
	html := render(t, Page{Title: "Image Gallery", Intervals: slideshow.AllowedIntervals})
	assert.Contains(t, html, `<div id="placeholder">`+PlaceholderNotLoaded+`</div>`)
	assert.Contains(t, html, `<img id="image" alt="" hidden>`)
	assert.Contains(t, html, `data-action="/api/toggle">Play</button>`)
	assert.Contains(t, html, `<div id="position"></div>`)

	html = render(t, Page{State: slideshow.Snapshot{Loaded: true, Index: slideshow.NoSelection}})
	assert.Contains(t, html, PlaceholderEmpty)
	assert.NotContains(t, html, "/image/current")
}

func TestIndexShowsCurrentImage(t *testing.T) {
	p := Page{
		Title:     "Image Gallery",
		Intervals: slideshow.AllowedIntervals,
		State: slideshow.Snapshot{
			Folder:     "/pics",
			Loaded:     true,
			Total:      3,
			Index:      1,
			Current:    "/pics/<b>.png",
			Running:    true,
			IntervalMS: 5000,
			Revision:   7,
		},
		Photos:    []store.Photo{{PhotoName: "a.png", Order: 0}, {PhotoName: "c.JPG", Order: 2}},
		About:     "About text",
		DonateURL: "https://example.org/donate",
		Notice:    "folder <missing>",
	}
	html := render(t, p)

	assert.NotContains(t, html, PlaceholderNotLoaded)
	assert.Contains(t, html, `<body data-revision="7">`)
	assert.Contains(t, html, `src="/image/current?rev=7"`)
	assert.Contains(t, html, `alt="/pics/&lt;b&gt;.png"`)
	assert.NotContains(t, html, "<b>.png")
	assert.Contains(t, html, `<div id="position">2 / 3</div>`)
	assert.Contains(t, html, `data-action="/api/toggle">Pause</button>`)
	assert.Contains(t, html, `<option value="5000" selected>5 s</option>`)
	assert.Contains(t, html, `<option value="3000">3 s</option>`)
	assert.Contains(t, html, `src="/api/photos/0/image" alt="a.png"`)
	assert.Contains(t, html, `src="/api/photos/2/image" alt="c.JPG"`)
	assert.Contains(t, html, `value="/pics" data-folder="/pics"`)
	assert.Contains(t, html, `<a href="https://example.org/donate"`)
	assert.Contains(t, html, "folder &lt;missing&gt;")
	assert.Contains(t, html, "<p>About text</p>")
}

func TestIndexSanitizesDonateURL(t *testing.T) {
	html := render(t, Page{DonateURL: "javascript:alert(1)"})
	assert.NotContains(t, html, "javascript:")
}

func TestIndexStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := Index(Page{}).Render(ctx, &buf)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, buf.Len())
}
