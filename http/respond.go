package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"
)

// writeJSON encodes v with an ETag derived from the body. A request whose
// If-None-Match equals the tag gets 304 with no body.
func (s *Server) writeJSON(c *gin.Context, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.Error(c, err)
		return
	}

	etag := fmt.Sprintf(`"%016x"`, xxhash.Sum64(body))
	c.Header("ETag", etag)
	c.Header("Cache-Control", "no-cache")

	if c.GetHeader("If-None-Match") == etag {
		c.AbortWithStatus(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func (s *Server) writeSuccess(c *gin.Context, extra gin.H) {
	resp := gin.H{"success": true}
	for k, v := range extra {
		resp[k] = v
	}
	c.JSON(http.StatusOK, resp)
}
