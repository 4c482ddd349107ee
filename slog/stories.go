package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/ministry"
)

// Ensure LoggingStorySource implements ministry.StorySource.
var _ ministry.StorySource = (*LoggingStorySource)(nil)

// LoggingStorySource wraps a StorySource with logging.
type LoggingStorySource struct {
	next   ministry.StorySource
	logger *slog.Logger
}

// NewLoggingStorySource creates a new LoggingStorySource.
func NewLoggingStorySource(next ministry.StorySource, logger *slog.Logger) *LoggingStorySource {
	return &LoggingStorySource{next: next, logger: logger}
}

// FindStories delegates to the wrapped source and logs how many stories it found.
func (s *LoggingStorySource) FindStories(ctx context.Context) (stories []*ministry.Episode) {
	defer func(begin time.Time) {
		s.logger.Info("find stories",
			"count", len(stories),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.FindStories(ctx)
}
