package html_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/fwojciec/ministry"
	storyhtml "github.com/fwojciec/ministry/html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExtractor(t *testing.T, opts ...storyhtml.Option) *storyhtml.Extractor {
	t.Helper()
	e, err := storyhtml.NewExtractor(opts...)
	require.NoError(t, err)
	return e
}

func title(text string) string {
	return `<div class="col2 grid-cell">` + text + `</div>`
}

func link(href string) string {
	return `<a class="button-link" href="` + href + `">Listen</a>`
}

const (
	driveA = "https://drive.google.com/file/d/aaa/view"
	driveB = "https://drive.google.com/file/d/bbb/view"
	driveC = "https://drive.google.com/file/d/ccc/view"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("returns stories deduplicated by title in link order", func(t *testing.T) {
		t.Parallel()

		markup := `<html><body>
			<div class="row desktop">` + title("Testimony of Hope") + `<div class="col3">` + link(driveA) + `</div></div>
			<div class="row mobile">` + title("Testimony of Hope") + `<div class="col3">` + link(driveB) + `</div></div>
			<div class="row desktop">` + title("Desert Years") + `<div class="col3">` + link(driveC) + `</div></div>
		</body></html>`

		got := newExtractor(t).Extract(markup)

		assert.Equal(t, []*ministry.Episode{
			{Title: "Testimony of Hope", AudioURL: driveA, Description: storyhtml.DefaultDescription},
			{Title: "Desert Years", AudioURL: driveC, Description: storyhtml.DefaultDescription},
		}, got)
	})

	t.Run("returns empty slice when no links match", func(t *testing.T) {
		t.Parallel()

		markup := title("Lonely Title") + `<a class="button-link" href="https://example.com/a.mp3">Listen</a>`

		got := newExtractor(t).Extract(markup)

		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("returns empty slice for empty markup", func(t *testing.T) {
		t.Parallel()

		got := newExtractor(t).Extract("")

		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("strips nested tags from titles", func(t *testing.T) {
		t.Parallel()

		markup := title("<b>Flood</b> Stories") + link(driveA)

		got := newExtractor(t).Extract(markup)

		require.Len(t, got, 1)
		assert.Equal(t, "Flood Stories", got[0].Title)
	})

	t.Run("trims whitespace around titles", func(t *testing.T) {
		t.Parallel()

		markup := title("\n\t  <p>  Harvest Time </p>\n  ") + link(driveA)

		got := newExtractor(t).Extract(markup)

		require.Len(t, got, 1)
		assert.Equal(t, "Harvest Time", got[0].Title)
	})

	t.Run("drops links without a title", func(t *testing.T) {
		t.Parallel()

		markup := link(driveA) + title("After The Link")

		got := newExtractor(t).Extract(markup)

		assert.Empty(t, got)
	})

	t.Run("uses nearest preceding title", func(t *testing.T) {
		t.Parallel()

		markup := title("Far") + `<p>between</p>` + title("Near") + link(driveA)

		got := newExtractor(t).Extract(markup)

		require.Len(t, got, 1)
		assert.Equal(t, "Near", got[0].Title)
	})

	t.Run("keeps same URL under different titles", func(t *testing.T) {
		t.Parallel()

		markup := title("First") + link(driveA) + title("Second") + link(driveA)

		got := newExtractor(t).Extract(markup)

		require.Len(t, got, 2)
		assert.Equal(t, driveA, got[0].AudioURL)
		assert.Equal(t, driveA, got[1].AudioURL)
	})

	t.Run("drops link whose nearest title has no text", func(t *testing.T) {
		t.Parallel()

		markup := title("Earlier") + title("  <img src=\"x.png\">  ") + link(driveA)

		got := newExtractor(t).Extract(markup)

		assert.Empty(t, got)
	})

	t.Run("uses configured description", func(t *testing.T) {
		t.Parallel()

		e := newExtractor(t, storyhtml.WithDescription("From the archive"))
		got := e.Extract(title("Old Paths") + link(driveA))

		require.Len(t, got, 1)
		assert.Equal(t, "From the archive", got[0].Description)
	})

	t.Run("decodes entities in titles", func(t *testing.T) {
		t.Parallel()

		got := newExtractor(t).Extract(title("Bread &amp; Water") + link(driveA))

		require.Len(t, got, 1)
		assert.Equal(t, "Bread & Water", got[0].Title)
	})

	t.Run("recovers titles after an unclosed container", func(t *testing.T) {
		t.Parallel()

		markup := `<div class="col2 grid-cell"><div>Title A</div>` + link(driveA) + title("Title B") + link(driveB)

		got := newExtractor(t).Extract(markup)

		assert.Equal(t, []*ministry.Episode{
			{Title: "Title A", AudioURL: driveA, Description: storyhtml.DefaultDescription},
			{Title: "Title B", AudioURL: driveB, Description: storyhtml.DefaultDescription},
		}, got)
	})

	t.Run("counts the window in characters", func(t *testing.T) {
		t.Parallel()

		// 700 curly quotes are 700 characters but 2100 bytes.
		markup := title("Grace Notes") + strings.Repeat("\u2019", 700) + link(driveA)

		got := newExtractor(t).Extract(markup)

		require.Len(t, got, 1)
		assert.Equal(t, "Grace Notes", got[0].Title)
	})

	t.Run("drops title beyond the window in characters", func(t *testing.T) {
		t.Parallel()

		markup := title("Grace Notes") + strings.Repeat("\u2019", 2000) + link(driveA)

		got := newExtractor(t).Extract(markup)

		assert.Empty(t, got)
	})
}

func TestExtractor_Scan(t *testing.T) {
	t.Parallel()

	t.Run("records character offset of each link", func(t *testing.T) {
		t.Parallel()

		prefix := "<p>hi</p>"
		markup := prefix + link(driveA) + link(driveB)

		links, _ := newExtractor(t).Scan(markup)

		require.Len(t, links, 2)
		assert.Equal(t, storyhtml.LinkMatch{URL: driveA, Position: len(prefix)}, links[0])
		assert.Equal(t, storyhtml.LinkMatch{URL: driveB, Position: len(prefix) + len(link(driveA))}, links[1])
	})

	t.Run("counts multibyte text as single characters", func(t *testing.T) {
		t.Parallel()

		prefix := "<p>caf\u00e9 \u2014 \u201cbread\u201d</p>"
		markup := prefix + link(driveA)

		links, _ := newExtractor(t).Scan(markup)

		require.Len(t, links, 1)
		assert.Equal(t, utf8.RuneCountInString(prefix), links[0].Position)
		assert.NotEqual(t, len(prefix), links[0].Position)
	})

	t.Run("records containers opened inside an unclosed container", func(t *testing.T) {
		t.Parallel()

		open := `<div class="col2 grid-cell"><div>Title A</div>`
		markup := open + title("Title B")

		_, titles := newExtractor(t).Scan(markup)

		require.Len(t, titles, 2)
		assert.Equal(t, storyhtml.TitleCandidate{Text: "Title A", Position: 0, End: len(open)}, titles[0])
		assert.Equal(t, storyhtml.TitleCandidate{Text: "Title B", Position: len(open), End: len(markup)}, titles[1])
	})

	t.Run("matches href anywhere in the attribute list", func(t *testing.T) {
		t.Parallel()

		markup := `<a data-x="1" href="` + driveA + `" target="_blank" class="big button-link">Listen</a>`

		links, _ := newExtractor(t).Scan(markup)

		require.Len(t, links, 1)
		assert.Equal(t, driveA, links[0].URL)
	})

	t.Run("ignores non-anchor elements with the link class", func(t *testing.T) {
		t.Parallel()

		markup := `<span class="button-link" href="` + driveA + `">Listen</span>`

		links, _ := newExtractor(t).Scan(markup)

		assert.Empty(t, links)
	})

	t.Run("ignores anchors to other hosts", func(t *testing.T) {
		t.Parallel()

		markup := link("https://www.dropbox.com/s/abc") + link("http://drive.google.com/file/d/x")

		links, _ := newExtractor(t).Scan(markup)

		assert.Empty(t, links)
	})

	t.Run("ignores anchors without the link class", func(t *testing.T) {
		t.Parallel()

		markup := `<a class="nav-link" href="` + driveA + `">Listen</a>`

		links, _ := newExtractor(t).Scan(markup)

		assert.Empty(t, links)
	})

	t.Run("records title containers with nested divs", func(t *testing.T) {
		t.Parallel()

		markup := `<div class="col2 grid-cell"><div class="inner">Deep</div> Waters</div>`

		_, titles := newExtractor(t).Scan(markup)

		require.Len(t, titles, 1)
		assert.Equal(t, "Deep Waters", titles[0].Text)
		assert.Equal(t, 0, titles[0].Position)
		assert.Equal(t, len(markup), titles[0].End)
	})

	t.Run("requires every title class", func(t *testing.T) {
		t.Parallel()

		markup := `<div class="col2">Not a title</div><div class="grid-cell">Nor this</div>`

		_, titles := newExtractor(t).Scan(markup)

		assert.Empty(t, titles)
	})
}

func TestResolveTitle(t *testing.T) {
	t.Parallel()

	t.Run("resolves title starting exactly at window start", func(t *testing.T) {
		t.Parallel()

		prefix := "<p>intro</p>"
		container := title("Edge Case")
		filler := strings.Repeat(" ", 50)
		markup := prefix + container + filler + link(driveA)
		window := len(container) + len(filler)

		e := newExtractor(t, storyhtml.WithWindow(window))
		links, titles := e.Scan(markup)
		require.Len(t, links, 1)

		got, ok := storyhtml.ResolveTitle(titles, links[0], window)

		require.True(t, ok)
		assert.Equal(t, "Edge Case", got.Text)
		assert.Equal(t, len(prefix), got.Position)
	})

	t.Run("does not resolve title starting before window", func(t *testing.T) {
		t.Parallel()

		prefix := "<p>intro</p>"
		container := title("Too Far")
		filler := strings.Repeat(" ", 50)
		markup := prefix + container + filler + link(driveA)
		window := len(container) + len(filler) - 1

		e := newExtractor(t, storyhtml.WithWindow(window))

		assert.Empty(t, e.Extract(markup))
	})

	t.Run("clamps window start at zero", func(t *testing.T) {
		t.Parallel()

		markup := title("Opening") + link(driveA)

		got := newExtractor(t).Extract(markup)

		require.Len(t, got, 1)
		assert.Equal(t, "Opening", got[0].Title)
	})

	t.Run("skips container still open at the link", func(t *testing.T) {
		t.Parallel()

		titles := []storyhtml.TitleCandidate{
			{Text: "Closed", Position: 0, End: 40},
			{Text: "Enclosing", Position: 50, End: 200},
		}

		got, ok := storyhtml.ResolveTitle(titles, storyhtml.LinkMatch{URL: driveA, Position: 100}, 2000)

		require.True(t, ok)
		assert.Equal(t, "Closed", got.Text)
	})

	t.Run("returns false without candidates", func(t *testing.T) {
		t.Parallel()

		_, ok := storyhtml.ResolveTitle(nil, storyhtml.LinkMatch{URL: driveA, Position: 10}, 2000)

		assert.False(t, ok)
	})
}

func TestBuildStory(t *testing.T) {
	t.Parallel()

	t.Run("returns nil without title", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, storyhtml.BuildStory(storyhtml.LinkMatch{URL: driveA}, storyhtml.TitleCandidate{}, false, "d"))
	})

	t.Run("pairs link and title", func(t *testing.T) {
		t.Parallel()

		got := storyhtml.BuildStory(
			storyhtml.LinkMatch{URL: driveA, Position: 10},
			storyhtml.TitleCandidate{Text: "Desert Years"},
			true,
			"desc",
		)

		assert.Equal(t, &ministry.Episode{Title: "Desert Years", AudioURL: driveA, Description: "desc"}, got)
	})
}

func TestNewExtractor(t *testing.T) {
	t.Parallel()

	t.Run("rejects invalid link selector", func(t *testing.T) {
		t.Parallel()

		_, err := storyhtml.NewExtractor(storyhtml.WithLinkSelector("a[href"))

		require.Error(t, err)
		assert.Equal(t, ministry.EINVALID, ministry.ErrorCode(err))
	})

	t.Run("rejects invalid title selector", func(t *testing.T) {
		t.Parallel()

		_, err := storyhtml.NewExtractor(storyhtml.WithTitleSelector("div..x"))

		require.Error(t, err)
		assert.Equal(t, ministry.EINVALID, ministry.ErrorCode(err))
	})

	t.Run("rejects non-positive window", func(t *testing.T) {
		t.Parallel()

		_, err := storyhtml.NewExtractor(storyhtml.WithWindow(0))

		require.Error(t, err)
		assert.Equal(t, ministry.EINVALID, ministry.ErrorCode(err))
	})
}
