package http

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/fwojciec/ministry"
	"github.com/gin-gonic/gin"
)

// Media folders on the host.
const (
	AudioFolder = "podcasts"
	ImageFolder = "images"
)

func (s *Server) handleEpisodeUpload(c *gin.Context) {
	s.handleUpload(c, "audio", ministry.MediaAudio, AudioFolder)
}

func (s *Server) handleImageUpload(c *gin.Context) {
	s.handleUpload(c, "image", ministry.MediaImage, ImageFolder)
}

// handleUpload publishes the multipart file in field and responds with its
// public URL.
func (s *Server) handleUpload(c *gin.Context, field, kind, folder string) {
	if s.MediaUploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Media uploads are not configured"})
		return
	}

	fh, err := c.FormFile(field)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	contentType := fh.Header.Get("Content-Type")
	if kind == ministry.MediaImage && !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File must be an image"})
		return
	}

	data, err := readFormFile(fh)
	if err != nil {
		s.Logger.Error("failed to read upload", "field", field, "err", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read file"})
		return
	}

	url, err := s.MediaUploader.Upload(c.Request.Context(), &ministry.Media{
		Kind:        kind,
		Folder:      folder,
		Filename:    fh.Filename,
		ContentType: contentType,
		Data:        data,
	})
	if err != nil {
		s.Logger.Error("upload failed", "folder", folder, "filename", fh.Filename, "err", err)
		if ministry.ErrorCode(err) == ministry.EINVALID {
			c.JSON(http.StatusBadRequest, gin.H{"error": ministry.ErrorMessage(err)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "url": url})
}

func readFormFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
