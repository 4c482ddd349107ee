package ministry

import (
	"context"
	"sort"
)

// Carousel interval bounds, in seconds.
const (
	MinCarouselInterval     = 1
	MaxCarouselInterval     = 60
	DefaultCarouselInterval = 5
)

// DefaultCarouselAlt is used for carousel images saved without alt text.
const DefaultCarouselAlt = "Carousel image"

// CarouselImage is a single slide of the home page carousel.
type CarouselImage struct {
	ID    string `json:"id"`
	Src   string `json:"src"`
	Alt   string `json:"alt"`
	Order int    `json:"order"`
}

// CarouselSettings controls carousel playback.
type CarouselSettings struct {
	IntervalSeconds float64 `json:"intervalSeconds"`
}

// DefaultCarouselSettings returns the settings used before any are saved.
func DefaultCarouselSettings() *CarouselSettings {
	return &CarouselSettings{IntervalSeconds: DefaultCarouselInterval}
}

// ClampCarouselInterval bounds an interval to the supported range.
func ClampCarouselInterval(seconds float64) float64 {
	return max(MinCarouselInterval, min(MaxCarouselInterval, seconds))
}

// SortCarouselImages orders images by their Order field, keeping the stored
// order for equal values.
func SortCarouselImages(images []*CarouselImage) {
	sort.SliceStable(images, func(i, j int) bool {
		return images[i].Order < images[j].Order
	})
}

// CarouselService represents a service for managing the carousel.
type CarouselService interface {
	// FindCarouselImages returns all carousel images as stored.
	FindCarouselImages(ctx context.Context) ([]*CarouselImage, error)

	// ReplaceCarouselImages overwrites the full set of carousel images.
	ReplaceCarouselImages(ctx context.Context, images []*CarouselImage) error

	// FindCarouselSettings returns the stored settings, or
	// DefaultCarouselSettings if none have been saved.
	FindCarouselSettings(ctx context.Context) (*CarouselSettings, error)

	// SaveCarouselSettings overwrites the stored settings.
	SaveCarouselSettings(ctx context.Context, settings *CarouselSettings) error
}
