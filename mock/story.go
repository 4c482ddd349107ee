package mock

import (
	"context"

	"github.com/fwojciec/ministry"
)

var _ ministry.StorySource = (*StorySource)(nil)

// StorySource is a mock implementation of ministry.StorySource.
type StorySource struct {
	FindStoriesFn func(ctx context.Context) []*ministry.Episode
}

func (s *StorySource) FindStories(ctx context.Context) []*ministry.Episode {
	return s.FindStoriesFn(ctx)
}

// StoryExtractor is a mock implementation of stories.Extractor.
type StoryExtractor struct {
	ExtractFn func(markup string) []*ministry.Episode
}

func (e *StoryExtractor) Extract(markup string) []*ministry.Episode {
	return e.ExtractFn(markup)
}
