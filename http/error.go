package http

import (
	"net/http"

	"github.com/fwojciec/ministry"
	"github.com/gin-gonic/gin"
)

// codes maps application error codes to HTTP status codes.
var codes = map[string]int{
	ministry.EINVALID:      http.StatusBadRequest,
	ministry.ENOTFOUND:     http.StatusNotFound,
	ministry.EUNAUTHORIZED: http.StatusUnauthorized,
	ministry.EINTERNAL:     http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// Error writes an application error as JSON and aborts the request.
// Internal errors are logged and reported to the client without detail.
func (s *Server) Error(c *gin.Context, err error) {
	code, message := ministry.ErrorCode(err), ministry.ErrorMessage(err)

	if code == ministry.EINTERNAL {
		s.Logger.Error("http error",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"err", err,
		)
	}

	c.AbortWithStatusJSON(ErrorStatusCode(code), gin.H{"error": message})
}
