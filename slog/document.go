package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/ministry"
)

// Ensure LoggingDocumentStore implements ministry.DocumentStore.
var _ ministry.DocumentStore = (*LoggingDocumentStore)(nil)

// LoggingDocumentStore wraps a DocumentStore with debug logging.
type LoggingDocumentStore struct {
	next   ministry.DocumentStore
	logger *slog.Logger
}

// NewLoggingDocumentStore creates a new LoggingDocumentStore.
func NewLoggingDocumentStore(next ministry.DocumentStore, logger *slog.Logger) *LoggingDocumentStore {
	return &LoggingDocumentStore{next: next, logger: logger}
}

func (s *LoggingDocumentStore) ReadDocument(ctx context.Context, name string, v any) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("read document",
			"document", name,
			"duration", time.Since(begin),
			"code", ministry.ErrorCode(err),
		)
	}(time.Now())
	return s.next.ReadDocument(ctx, name, v)
}

// WriteDocument logs every write at info level; writes only come from the admin.
func (s *LoggingDocumentStore) WriteDocument(ctx context.Context, name string, v any) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("write document",
			"document", name,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.WriteDocument(ctx, name, v)
}
