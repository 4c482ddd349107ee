package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/ministry"
)

// Ensure LoggingUploader implements ministry.MediaUploader.
var _ ministry.MediaUploader = (*LoggingUploader)(nil)

// LoggingUploader wraps a MediaUploader with logging.
type LoggingUploader struct {
	next   ministry.MediaUploader
	logger *slog.Logger
}

// NewLoggingUploader creates a new LoggingUploader.
func NewLoggingUploader(next ministry.MediaUploader, logger *slog.Logger) *LoggingUploader {
	return &LoggingUploader{next: next, logger: logger}
}

// Upload delegates to the wrapped uploader and logs the operation.
func (u *LoggingUploader) Upload(ctx context.Context, m *ministry.Media) (url string, err error) {
	defer func(begin time.Time) {
		u.logger.Info("media upload",
			"kind", m.Kind,
			"folder", m.Folder,
			"bytes", len(m.Data),
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return u.next.Upload(ctx, m)
}
