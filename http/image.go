package http

import (
	"time"

	"github.com/fwojciec/ministry"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (s *Server) handleImageList(c *gin.Context) {
	images, err := s.ImageService.FindLibraryImages(c.Request.Context())
	if err != nil {
		s.Error(c, err)
		return
	}
	s.writeJSON(c, images)
}

type libraryImageRequest struct {
	ID         string `json:"id"`
	Src        string `json:"src"`
	Alt        string `json:"alt"`
	UploadedAt string `json:"uploadedAt"`
}

// uploadTimeLayouts are tried in order when reading a client-supplied
// uploadedAt.
var uploadTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseUploadedAt returns the time in value, or fallback when value is empty
// or unparseable.
func parseUploadedAt(value string, fallback time.Time) time.Time {
	for _, layout := range uploadTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC()
		}
	}
	return fallback
}

func (s *Server) handleImageReplace(c *gin.Context) {
	var reqs []libraryImageRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		s.Error(c, ministry.Errorf(ministry.EINVALID, "Images must be an array"))
		return
	}

	now := time.Now().UTC()
	images := make([]*ministry.LibraryImage, len(reqs))
	for i, req := range reqs {
		img := &ministry.LibraryImage{
			ID:         req.ID,
			Src:        req.Src,
			Alt:        req.Alt,
			UploadedAt: parseUploadedAt(req.UploadedAt, now),
		}
		if img.ID == "" {
			img.ID = uuid.NewString()
		}
		if img.Alt == "" {
			img.Alt = ministry.DefaultImageAlt
		}
		images[i] = img
	}

	if err := s.ImageService.ReplaceLibraryImages(c.Request.Context(), images); err != nil {
		s.Error(c, err)
		return
	}
	s.writeSuccess(c, gin.H{"images": images})
}
