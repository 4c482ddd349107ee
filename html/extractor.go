// Package html extracts story recordings from the partner station's audio
// page using the golang.org/x/net/html tokenizer and cascadia selectors.
//
// The page has no stable structure linking a recording to its title, so a
// title is taken from the nearest title container that precedes the link
// within a bounded window of raw markup.
package html

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/ministry"
	"golang.org/x/net/html"
)

// Defaults for the New Life Radio stories page.
const (
	DefaultLinkSelector  = `a.button-link[href^="https://drive.google.com/"]`
	DefaultTitleSelector = `div.col2.grid-cell`
	DefaultWindow        = 2000
	DefaultDescription   = "Story recording from New Life Radio"
)

// LinkMatch is a recording link found in the markup.
// Position is the character offset of the link's start tag.
type LinkMatch struct {
	URL      string
	Position int
}

// TitleCandidate is a title container found in the markup.
// Position is the character offset of its start tag and End the offset just past
// its end tag. Text has all nested tags removed and is trimmed.
type TitleCandidate struct {
	Text     string
	Position int
	End      int
}

// Extractor turns raw page markup into story episodes.
type Extractor struct {
	links       cascadia.Selector
	titles      cascadia.Selector
	window      int
	description string
}

type options struct {
	linkSelector  string
	titleSelector string
	window        int
	description   string
}

// Option configures an Extractor.
type Option func(*options)

// WithLinkSelector sets the CSS selector identifying recording links.
// Matching elements must carry an href attribute.
func WithLinkSelector(sel string) Option {
	return func(o *options) { o.linkSelector = sel }
}

// WithTitleSelector sets the CSS selector identifying title containers.
func WithTitleSelector(sel string) Option {
	return func(o *options) { o.titleSelector = sel }
}

// WithWindow sets how many characters before a link are searched for its title.
func WithWindow(n int) Option {
	return func(o *options) { o.window = n }
}

// WithDescription sets the description given to every extracted story.
func WithDescription(s string) Option {
	return func(o *options) { o.description = s }
}

// NewExtractor creates a new Extractor. Selectors are only checked against
// single elements, so combinators (descendant, child, sibling) never match.
func NewExtractor(opts ...Option) (*Extractor, error) {
	o := options{
		linkSelector:  DefaultLinkSelector,
		titleSelector: DefaultTitleSelector,
		window:        DefaultWindow,
		description:   DefaultDescription,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.window <= 0 {
		return nil, ministry.Errorf(ministry.EINVALID, "search window must be positive, got %d", o.window)
	}

	links, err := cascadia.Compile(o.linkSelector)
	if err != nil {
		return nil, ministry.Errorf(ministry.EINVALID, "invalid link selector %q: %v", o.linkSelector, err)
	}
	titles, err := cascadia.Compile(o.titleSelector)
	if err != nil {
		return nil, ministry.Errorf(ministry.EINVALID, "invalid title selector %q: %v", o.titleSelector, err)
	}

	return &Extractor{
		links:       links,
		titles:      titles,
		window:      o.window,
		description: o.description,
	}, nil
}

// Extract returns the stories found in markup: one per link with a
// resolvable title, deduplicated by title, in link order.
func (e *Extractor) Extract(markup string) []*ministry.Episode {
	links, titles := e.Scan(markup)

	stories := make([]*ministry.Episode, 0, len(links))
	for _, link := range links {
		title, ok := ResolveTitle(titles, link, e.window)
		if ep := BuildStory(link, title, ok, e.description); ep != nil {
			stories = append(stories, ep)
		}
	}

	return ministry.DedupeEpisodesByTitle(stories)
}

// titleCapture accumulates the text of an open title container. The text and
// end offset at the first end tag sharing the container's tag name are kept
// so a container that is never closed still yields a title.
type titleCapture struct {
	tag      string
	position int
	depth    int
	end      int
	text     strings.Builder

	firstEnd     int
	firstEndText string
}

func (c *titleCapture) candidate() (TitleCandidate, bool) {
	if c.depth == 0 {
		return TitleCandidate{Text: strings.TrimSpace(c.text.String()), Position: c.position, End: c.end}, true
	}
	if c.firstEnd > 0 {
		return TitleCandidate{Text: strings.TrimSpace(c.firstEndText), Position: c.position, End: c.firstEnd}, true
	}
	return TitleCandidate{}, false
}

// Scan walks the markup once and returns all recording links and all title
// containers, both in document order. Positions count characters, not bytes.
// Title containers nested in another open container are recorded too; a
// container left unclosed ends at the first end tag with its tag name.
// Tokenizer errors end the scan; what was found up to that point is returned.
func (e *Extractor) Scan(markup string) ([]LinkMatch, []TitleCandidate) {
	var links []LinkMatch
	var titles []TitleCandidate
	var open []*titleCapture

	z := html.NewTokenizer(strings.NewReader(markup))
	offset := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}

		// Raw must be measured before Token or Text rewrite the buffer.
		position := offset
		offset += utf8.RuneCount(z.Raw())

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			node := &html.Node{
				Type:     html.ElementNode,
				Data:     tok.Data,
				DataAtom: tok.DataAtom,
				Attr:     tok.Attr,
			}

			if e.links.Match(node) {
				if href, ok := attr(tok, "href"); ok && href != "" {
					links = append(links, LinkMatch{URL: href, Position: position})
				}
			}

			if tt != html.StartTagToken {
				continue
			}
			for _, c := range open {
				if tok.Data == c.tag {
					c.depth++
				}
			}
			if e.titles.Match(node) {
				open = append(open, &titleCapture{tag: tok.Data, position: position, depth: 1})
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			remaining := open[:0]
			for _, c := range open {
				if string(name) == c.tag {
					c.depth--
					if c.firstEnd == 0 {
						c.firstEnd = offset
						c.firstEndText = c.text.String()
					}
				}
				if c.depth == 0 {
					c.end = offset
					t, _ := c.candidate()
					titles = append(titles, t)
					continue
				}
				remaining = append(remaining, c)
			}
			open = remaining

		case html.TextToken:
			text := z.Text()
			for _, c := range open {
				c.text.Write(text)
			}
		}
	}

	for _, c := range open {
		if t, ok := c.candidate(); ok {
			titles = append(titles, t)
		}
	}
	slices.SortStableFunc(titles, func(a, b TitleCandidate) int {
		return cmp.Compare(a.Position, b.Position)
	})

	return links, titles
}

// ResolveTitle returns the title container closest to and preceding link
// within window characters. The window start is inclusive and clamped to zero; a
// container must be closed before the link starts. The second result is
// false when no container qualifies or the closest one has no text.
func ResolveTitle(titles []TitleCandidate, link LinkMatch, window int) (TitleCandidate, bool) {
	start := max(0, link.Position-window)

	best := -1
	for i, t := range titles {
		if t.Position < start || t.End > link.Position {
			continue
		}
		if best < 0 || t.Position > titles[best].Position {
			best = i
		}
	}

	if best < 0 || titles[best].Text == "" {
		return TitleCandidate{}, false
	}
	return titles[best], true
}

// BuildStory pairs a link with its resolved title. It returns nil when the
// title could not be resolved.
func BuildStory(link LinkMatch, title TitleCandidate, ok bool, description string) *ministry.Episode {
	if !ok {
		return nil
	}
	return &ministry.Episode{
		Title:       title.Text,
		AudioURL:    link.URL,
		Description: description,
	}
}

func attr(tok html.Token, key string) (string, bool) {
	for _, a := range tok.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
