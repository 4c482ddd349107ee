package mock

import (
	"context"

	"github.com/fwojciec/ministry"
)

var _ ministry.EpisodeService = (*EpisodeService)(nil)

// EpisodeService is a mock implementation of ministry.EpisodeService.
type EpisodeService struct {
	FindEpisodesFn    func(ctx context.Context) ([]*ministry.Episode, error)
	ReplaceEpisodesFn func(ctx context.Context, episodes []*ministry.Episode) error
}

func (s *EpisodeService) FindEpisodes(ctx context.Context) ([]*ministry.Episode, error) {
	return s.FindEpisodesFn(ctx)
}

func (s *EpisodeService) ReplaceEpisodes(ctx context.Context, episodes []*ministry.Episode) error {
	return s.ReplaceEpisodesFn(ctx, episodes)
}

var _ ministry.NewsService = (*NewsService)(nil)

// NewsService is a mock implementation of ministry.NewsService.
type NewsService struct {
	FindNewsUpdatesFn    func(ctx context.Context) ([]*ministry.NewsUpdate, error)
	ReplaceNewsUpdatesFn func(ctx context.Context, updates []*ministry.NewsUpdate) error
}

func (s *NewsService) FindNewsUpdates(ctx context.Context) ([]*ministry.NewsUpdate, error) {
	return s.FindNewsUpdatesFn(ctx)
}

func (s *NewsService) ReplaceNewsUpdates(ctx context.Context, updates []*ministry.NewsUpdate) error {
	return s.ReplaceNewsUpdatesFn(ctx, updates)
}

var _ ministry.AmevaService = (*AmevaService)(nil)

// AmevaService is a mock implementation of ministry.AmevaService.
type AmevaService struct {
	FindAmevaContentFn func(ctx context.Context) (*ministry.AmevaContent, error)
	SaveAmevaContentFn func(ctx context.Context, content *ministry.AmevaContent) error
}

func (s *AmevaService) FindAmevaContent(ctx context.Context) (*ministry.AmevaContent, error) {
	return s.FindAmevaContentFn(ctx)
}

func (s *AmevaService) SaveAmevaContent(ctx context.Context, content *ministry.AmevaContent) error {
	return s.SaveAmevaContentFn(ctx, content)
}

var _ ministry.BookService = (*BookService)(nil)

// BookService is a mock implementation of ministry.BookService.
type BookService struct {
	FindBookContentFn func(ctx context.Context) (*ministry.BookContent, error)
	SaveBookContentFn func(ctx context.Context, content *ministry.BookContent) error
}

func (s *BookService) FindBookContent(ctx context.Context) (*ministry.BookContent, error) {
	return s.FindBookContentFn(ctx)
}

func (s *BookService) SaveBookContent(ctx context.Context, content *ministry.BookContent) error {
	return s.SaveBookContentFn(ctx, content)
}

var _ ministry.CarouselService = (*CarouselService)(nil)

// CarouselService is a mock implementation of ministry.CarouselService.
type CarouselService struct {
	FindCarouselImagesFn    func(ctx context.Context) ([]*ministry.CarouselImage, error)
	ReplaceCarouselImagesFn func(ctx context.Context, images []*ministry.CarouselImage) error
	FindCarouselSettingsFn  func(ctx context.Context) (*ministry.CarouselSettings, error)
	SaveCarouselSettingsFn  func(ctx context.Context, settings *ministry.CarouselSettings) error
}

func (s *CarouselService) FindCarouselImages(ctx context.Context) ([]*ministry.CarouselImage, error) {
	return s.FindCarouselImagesFn(ctx)
}

func (s *CarouselService) ReplaceCarouselImages(ctx context.Context, images []*ministry.CarouselImage) error {
	return s.ReplaceCarouselImagesFn(ctx, images)
}

func (s *CarouselService) FindCarouselSettings(ctx context.Context) (*ministry.CarouselSettings, error) {
	return s.FindCarouselSettingsFn(ctx)
}

func (s *CarouselService) SaveCarouselSettings(ctx context.Context, settings *ministry.CarouselSettings) error {
	return s.SaveCarouselSettingsFn(ctx, settings)
}

var _ ministry.ImageService = (*ImageService)(nil)

// ImageService is a mock implementation of ministry.ImageService.
type ImageService struct {
	FindLibraryImagesFn    func(ctx context.Context) ([]*ministry.LibraryImage, error)
	ReplaceLibraryImagesFn func(ctx context.Context, images []*ministry.LibraryImage) error
}

func (s *ImageService) FindLibraryImages(ctx context.Context) ([]*ministry.LibraryImage, error) {
	return s.FindLibraryImagesFn(ctx)
}

func (s *ImageService) ReplaceLibraryImages(ctx context.Context, images []*ministry.LibraryImage) error {
	return s.ReplaceLibraryImagesFn(ctx, images)
}
