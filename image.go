package ministry

import (
	"context"
	"time"
)

// DefaultImageAlt is used for library images saved without alt text.
const DefaultImageAlt = "Image"

// LibraryImage is an uploaded image available for use in page content.
type LibraryImage struct {
	ID         string    `json:"id"`
	Src        string    `json:"src"`
	Alt        string    `json:"alt"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// ImageService represents a service for managing the image library.
type ImageService interface {
	// FindLibraryImages returns all images in the library.
	FindLibraryImages(ctx context.Context) ([]*LibraryImage, error)

	// ReplaceLibraryImages overwrites the full image library.
	ReplaceLibraryImages(ctx context.Context, images []*LibraryImage) error
}
