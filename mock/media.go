package mock

import (
	"context"

	"github.com/fwojciec/ministry"
)

var _ ministry.MediaUploader = (*MediaUploader)(nil)

// MediaUploader is a mock implementation of ministry.MediaUploader.
type MediaUploader struct {
	UploadFn func(ctx context.Context, m *ministry.Media) (string, error)
}

func (u *MediaUploader) Upload(ctx context.Context, m *ministry.Media) (string, error) {
	return u.UploadFn(ctx, m)
}

var _ ministry.Limiter = (*Limiter)(nil)

// Limiter is a mock implementation of ministry.Limiter.
type Limiter struct {
	AllowFn func(key string) bool
}

func (l *Limiter) Allow(key string) bool {
	return l.AllowFn(key)
}
