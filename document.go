package ministry

import (
	"context"
	"time"
)

// Names of the documents holding site content.
const (
	EpisodesDocument         = "episodes"
	NewsDocument             = "news"
	AmevaDocument            = "ameva"
	BookDocument             = "book"
	CarouselDocument         = "carousel"
	CarouselSettingsDocument = "carousel-settings"
	ImagesDocument           = "images"
)

// Documents lists every content document name.
var Documents = []string{
	EpisodesDocument,
	NewsDocument,
	AmevaDocument,
	BookDocument,
	CarouselDocument,
	CarouselSettingsDocument,
	ImagesDocument,
}

// DocumentStore persists named JSON documents. Each document is read and
// replaced as a whole.
type DocumentStore interface {
	// ReadDocument decodes the named document into v.
	// Returns ENOTFOUND if the document has never been written and EINVALID
	// if the stored body cannot be decoded into v.
	ReadDocument(ctx context.Context, name string, v any) error

	// WriteDocument encodes v and replaces the named document atomically.
	WriteDocument(ctx context.Context, name string, v any) error
}

// DocumentHistory reports when documents last changed.
type DocumentHistory interface {
	// FindUpdatedAt returns the time the named document was last modified.
	// Returns ENOTFOUND if the document has never been written.
	FindUpdatedAt(ctx context.Context, name string) (time.Time, error)
}
