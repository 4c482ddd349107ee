// Package stories runs the story pipeline: fetch the partner station's page,
// extract story links with their titles, and return them as episodes.
package stories

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/fwojciec/ministry"
)

// DefaultURL is the New Life Radio page listing Terry Watson's stories.
const DefaultURL = "https://www.newliferadio.co.uk/audio-pages/terry_watson_stories"

// DefaultTimeout bounds a single pipeline run.
const DefaultTimeout = 15 * time.Second

// Extractor turns page markup into stories.
type Extractor interface {
	Extract(markup string) []*ministry.Episode
}

// Ensure Service implements ministry.StorySource at compile time.
var _ ministry.StorySource = (*Service)(nil)

// Service fetches and extracts stories. Every failure degrades to an empty
// result; nothing is returned to the caller as an error.
type Service struct {
	Fetcher   ministry.Fetcher
	Extractor Extractor
	Logger    *slog.Logger

	// URL of the stories page. Defaults to DefaultURL.
	URL string

	// Timeout bounds fetch and extraction. Defaults to DefaultTimeout.
	Timeout time.Duration
}

// FindStories returns the stories currently listed on the page.
// The result is never nil.
func (s *Service) FindStories(ctx context.Context) (stories []*ministry.Episode) {
	logger := s.logger()
	url := s.URL
	if url == "" {
		url = DefaultURL
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("story extraction panicked",
				"url", url,
				"err", fmt.Sprint(r),
				"stack", string(debug.Stack()),
			)
		}
		if stories == nil {
			stories = []*ministry.Episode{}
		}
	}()

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	markup, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		logger.Error("failed to fetch stories page", "url", url, "err", err)
		return nil
	}

	stories = s.Extractor.Extract(markup)
	logger.Debug("extracted stories", "url", url, "bytes", len(markup), "count", len(stories))
	return stories
}

func (s *Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}
