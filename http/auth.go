package http

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Admin session cookie.
const (
	SessionCookieName  = "admin_session"
	SessionCookieValue = "authenticated"
	SessionMaxAge      = 7 * 24 * time.Hour
)

const loginPath = "/admin/login"

// requireAdmin redirects unauthenticated requests under /admin to the login
// page. The login page and the login endpoint stay reachable.
func (s *Server) requireAdmin(c *gin.Context) {
	path := c.Request.URL.Path
	if !strings.HasPrefix(path, "/admin") || path == loginPath || path == "/admin/api/login" {
		c.Next()
		return
	}

	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie == SessionCookieValue {
		c.Next()
		return
	}

	c.Redirect(http.StatusFound, loginPath)
	c.Abort()
}

func (s *Server) handleLoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"login": "/admin/api/login"})
}

type loginRequest struct {
	Password string `json:"password"`
}

func (s *Server) handleLogin(c *gin.Context) {
	if s.LoginLimiter != nil && !s.LoginLimiter.Allow(c.ClientIP()) {
		c.JSON(http.StatusTooManyRequests, gin.H{"success": false, "error": "Too many login attempts"})
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	if !s.checkPassword(req.Password) {
		s.Logger.Warn("admin login failed", "ip", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid password"})
		return
	}

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     SessionCookieName,
		Value:    SessionCookieValue,
		Path:     "/",
		MaxAge:   int(SessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   s.Production,
		SameSite: http.SameSiteStrictMode,
	})
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleLogout(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.Production,
		SameSite: http.SameSiteStrictMode,
	})
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) checkPassword(password string) bool {
	if s.AdminPassword == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.AdminPassword)) == 1
}
