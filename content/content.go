// Package content implements the site's content services over a
// ministry.DocumentStore. Missing documents read as their defaults; corrupt
// documents do too, with a warning.
package content

import (
	"context"
	"log/slog"

	"github.com/fwojciec/ministry"
)

var (
	_ ministry.EpisodeService  = (*Service)(nil)
	_ ministry.NewsService     = (*Service)(nil)
	_ ministry.AmevaService    = (*Service)(nil)
	_ ministry.BookService     = (*Service)(nil)
	_ ministry.CarouselService = (*Service)(nil)
	_ ministry.ImageService    = (*Service)(nil)
)

// Service implements every content service on one document store.
type Service struct {
	store  ministry.DocumentStore
	logger *slog.Logger
}

// NewService returns a Service backed by store. A nil logger discards.
func NewService(store ministry.DocumentStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{store: store, logger: logger}
}

// read decodes the named document into v. It reports false when the caller
// should fall back to the default.
func (s *Service) read(ctx context.Context, name string, v any) (bool, error) {
	err := s.store.ReadDocument(ctx, name, v)
	switch ministry.ErrorCode(err) {
	case "":
		return true, nil
	case ministry.ENOTFOUND:
		return false, nil
	case ministry.EINVALID:
		s.logger.Warn("corrupt document, using default", "document", name, "err", err)
		return false, nil
	default:
		return false, err
	}
}

// readList reads a JSON array document. Null entries are dropped.
func readList[T any](ctx context.Context, s *Service, name string) ([]*T, error) {
	var items []*T
	ok, err := s.read(ctx, name, &items)
	if err != nil {
		return nil, err
	}
	result := make([]*T, 0, len(items))
	if !ok {
		return result, nil
	}
	for _, item := range items {
		if item != nil {
			result = append(result, item)
		}
	}
	return result, nil
}

// writeList stores items, writing an empty array for nil.
func writeList[T any](ctx context.Context, s *Service, name string, items []*T) error {
	if items == nil {
		items = []*T{}
	}
	return s.store.WriteDocument(ctx, name, items)
}

func (s *Service) FindEpisodes(ctx context.Context) ([]*ministry.Episode, error) {
	return readList[ministry.Episode](ctx, s, ministry.EpisodesDocument)
}

func (s *Service) ReplaceEpisodes(ctx context.Context, episodes []*ministry.Episode) error {
	for i, ep := range episodes {
		if ep == nil {
			return ministry.Errorf(ministry.EINVALID, "episode %d: missing", i)
		}
		if err := ep.Validate(); err != nil {
			return ministry.Errorf(ministry.EINVALID, "episode %d: %s", i, ministry.ErrorMessage(err))
		}
	}
	return writeList(ctx, s, ministry.EpisodesDocument, episodes)
}

func (s *Service) FindNewsUpdates(ctx context.Context) ([]*ministry.NewsUpdate, error) {
	return readList[ministry.NewsUpdate](ctx, s, ministry.NewsDocument)
}

func (s *Service) ReplaceNewsUpdates(ctx context.Context, updates []*ministry.NewsUpdate) error {
	for i, u := range updates {
		if u == nil {
			return ministry.Errorf(ministry.EINVALID, "news update %d: missing", i)
		}
		if err := u.Validate(); err != nil {
			return ministry.Errorf(ministry.EINVALID, "news update %d: %s", i, ministry.ErrorMessage(err))
		}
	}
	return writeList(ctx, s, ministry.NewsDocument, updates)
}

func (s *Service) FindAmevaContent(ctx context.Context) (*ministry.AmevaContent, error) {
	var content ministry.AmevaContent
	ok, err := s.read(ctx, ministry.AmevaDocument, &content)
	if err != nil {
		return nil, err
	} else if !ok {
		return ministry.DefaultAmevaContent(), nil
	}
	if content.Sections == nil {
		content.Sections = []ministry.Section{}
	}
	return &content, nil
}

func (s *Service) SaveAmevaContent(ctx context.Context, content *ministry.AmevaContent) error {
	if content == nil {
		return ministry.Errorf(ministry.EINVALID, "ameva content required")
	}
	c := *content
	if c.Sections == nil {
		c.Sections = []ministry.Section{}
	}
	return s.store.WriteDocument(ctx, ministry.AmevaDocument, &c)
}

func (s *Service) FindBookContent(ctx context.Context) (*ministry.BookContent, error) {
	var content ministry.BookContent
	ok, err := s.read(ctx, ministry.BookDocument, &content)
	if err != nil {
		return nil, err
	} else if !ok {
		return ministry.DefaultBookContent(), nil
	}
	if content.Sections == nil {
		content.Sections = []ministry.Section{}
	}
	return &content, nil
}

func (s *Service) SaveBookContent(ctx context.Context, content *ministry.BookContent) error {
	if content == nil {
		return ministry.Errorf(ministry.EINVALID, "book content required")
	}
	c := *content
	if c.Sections == nil {
		c.Sections = []ministry.Section{}
	}
	return s.store.WriteDocument(ctx, ministry.BookDocument, &c)
}

func (s *Service) FindCarouselImages(ctx context.Context) ([]*ministry.CarouselImage, error) {
	return readList[ministry.CarouselImage](ctx, s, ministry.CarouselDocument)
}

func (s *Service) ReplaceCarouselImages(ctx context.Context, images []*ministry.CarouselImage) error {
	for i, img := range images {
		if img == nil {
			return ministry.Errorf(ministry.EINVALID, "carousel image %d: missing", i)
		}
	}
	return writeList(ctx, s, ministry.CarouselDocument, images)
}

// FindCarouselSettings overlays the stored fields on the defaults and clamps
// the interval into range.
func (s *Service) FindCarouselSettings(ctx context.Context) (*ministry.CarouselSettings, error) {
	settings := ministry.DefaultCarouselSettings()
	ok, err := s.read(ctx, ministry.CarouselSettingsDocument, settings)
	if err != nil {
		return nil, err
	} else if !ok {
		return ministry.DefaultCarouselSettings(), nil
	}
	settings.IntervalSeconds = ministry.ClampCarouselInterval(settings.IntervalSeconds)
	return settings, nil
}

func (s *Service) SaveCarouselSettings(ctx context.Context, settings *ministry.CarouselSettings) error {
	if settings == nil {
		return ministry.Errorf(ministry.EINVALID, "carousel settings required")
	}
	if settings.IntervalSeconds < ministry.MinCarouselInterval {
		return ministry.Errorf(ministry.EINVALID, "interval must be at least %d second", ministry.MinCarouselInterval)
	}
	return s.store.WriteDocument(ctx, ministry.CarouselSettingsDocument, &ministry.CarouselSettings{
		IntervalSeconds: ministry.ClampCarouselInterval(settings.IntervalSeconds),
	})
}

func (s *Service) FindLibraryImages(ctx context.Context) ([]*ministry.LibraryImage, error) {
	return readList[ministry.LibraryImage](ctx, s, ministry.ImagesDocument)
}

func (s *Service) ReplaceLibraryImages(ctx context.Context, images []*ministry.LibraryImage) error {
	for i, img := range images {
		if img == nil {
			return ministry.Errorf(ministry.EINVALID, "image %d: missing", i)
		}
	}
	return writeList(ctx, s, ministry.ImagesDocument, images)
}
