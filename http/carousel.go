package http

import (
	"github.com/fwojciec/ministry"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (s *Server) handleCarouselPage(c *gin.Context) {
	ctx := c.Request.Context()
	images, err := s.CarouselService.FindCarouselImages(ctx)
	if err != nil {
		s.Error(c, err)
		return
	}
	settings, err := s.CarouselService.FindCarouselSettings(ctx)
	if err != nil {
		s.Error(c, err)
		return
	}
	sorted := append([]*ministry.CarouselImage{}, images...)
	ministry.SortCarouselImages(sorted)
	s.writeJSON(c, gin.H{"images": sorted, "settings": settings})
}

func (s *Server) handleCarouselList(c *gin.Context) {
	images, err := s.CarouselService.FindCarouselImages(c.Request.Context())
	if err != nil {
		s.Error(c, err)
		return
	}
	s.writeJSON(c, images)
}

type carouselImageRequest struct {
	ID    string `json:"id"`
	Src   string `json:"src"`
	Alt   string `json:"alt"`
	Order *int   `json:"order"`
}

// handleCarouselReplace stores the submitted slides, filling in an id, alt
// text and the array position for any that are missing.
func (s *Server) handleCarouselReplace(c *gin.Context) {
	var reqs []carouselImageRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		s.Error(c, ministry.Errorf(ministry.EINVALID, "Images must be an array"))
		return
	}

	images := make([]*ministry.CarouselImage, len(reqs))
	for i, req := range reqs {
		img := &ministry.CarouselImage{
			ID:    req.ID,
			Src:   req.Src,
			Alt:   req.Alt,
			Order: i,
		}
		if img.ID == "" {
			img.ID = uuid.NewString()
		}
		if img.Alt == "" {
			img.Alt = ministry.DefaultCarouselAlt
		}
		if req.Order != nil {
			img.Order = *req.Order
		}
		images[i] = img
	}

	if err := s.CarouselService.ReplaceCarouselImages(c.Request.Context(), images); err != nil {
		s.Error(c, err)
		return
	}
	s.writeSuccess(c, gin.H{"images": images})
}

func (s *Server) handleCarouselSettingsGet(c *gin.Context) {
	settings, err := s.CarouselService.FindCarouselSettings(c.Request.Context())
	if err != nil {
		s.Error(c, err)
		return
	}
	s.writeJSON(c, settings)
}

type carouselSettingsRequest struct {
	IntervalSeconds *float64 `json:"intervalSeconds"`
}

func (s *Server) handleCarouselSettingsSave(c *gin.Context) {
	var req carouselSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IntervalSeconds == nil || *req.IntervalSeconds < ministry.MinCarouselInterval {
		s.Error(c, ministry.Errorf(ministry.EINVALID, "Interval must be a number of at least %d second", ministry.MinCarouselInterval))
		return
	}

	settings := &ministry.CarouselSettings{
		IntervalSeconds: ministry.ClampCarouselInterval(*req.IntervalSeconds),
	}
	if err := s.CarouselService.SaveCarouselSettings(c.Request.Context(), settings); err != nil {
		s.Error(c, err)
		return
	}
	s.writeSuccess(c, gin.H{"settings": settings})
}
