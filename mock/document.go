package mock

import (
	"context"
	"time"

	"github.com/fwojciec/ministry"
)

var _ ministry.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is a mock implementation of ministry.DocumentStore.
type DocumentStore struct {
	ReadDocumentFn  func(ctx context.Context, name string, v any) error
	WriteDocumentFn func(ctx context.Context, name string, v any) error
}

func (s *DocumentStore) ReadDocument(ctx context.Context, name string, v any) error {
	return s.ReadDocumentFn(ctx, name, v)
}

func (s *DocumentStore) WriteDocument(ctx context.Context, name string, v any) error {
	return s.WriteDocumentFn(ctx, name, v)
}

var _ ministry.DocumentHistory = (*DocumentHistory)(nil)

// DocumentHistory is a mock implementation of ministry.DocumentHistory.
type DocumentHistory struct {
	FindUpdatedAtFn func(ctx context.Context, name string) (time.Time, error)
}

func (h *DocumentHistory) FindUpdatedAt(ctx context.Context, name string) (time.Time, error) {
	return h.FindUpdatedAtFn(ctx, name)
}
