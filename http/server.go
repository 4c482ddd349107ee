package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/ministry"
	"github.com/gin-gonic/gin"
)

// ShutdownTimeout is the time given for outstanding requests to finish before shutdown.
const ShutdownTimeout = 5 * time.Second

// Server represents the site's HTTP server: the public JSON API consumed by
// the pages, and the admin API behind the session cookie.
type Server struct {
	ln     net.Listener
	server *http.Server
	router *gin.Engine

	// Bind address to open.
	Addr string

	// Public base URL of the site, used for absolute links in the sitemap.
	// Derived from the request when empty.
	BaseURL string

	// Production marks session cookies as Secure.
	Production bool

	// AdminPassword is compared against login attempts. Logins always fail
	// when it is empty.
	AdminPassword string

	Logger *slog.Logger

	// Services used by the various HTTP routes.
	EpisodeService  ministry.EpisodeService
	NewsService     ministry.NewsService
	AmevaService    ministry.AmevaService
	BookService     ministry.BookService
	CarouselService ministry.CarouselService
	ImageService    ministry.ImageService
	StorySource     ministry.StorySource

	// DocumentHistory dates sitemap entries. Optional.
	DocumentHistory ministry.DocumentHistory

	// MediaUploader publishes uploaded files. Upload routes answer 503 when nil.
	MediaUploader ministry.MediaUploader

	// LoginLimiter throttles login attempts per client IP. Optional.
	LoginLimiter ministry.Limiter
}

// NewServer returns a new instance of Server with all routes registered.
func NewServer() *Server {
	s := &Server{
		server: &http.Server{ReadHeaderTimeout: 10 * time.Second},
		router: gin.New(),
		Logger: slog.New(slog.DiscardHandler),
	}

	// Client IPs come from the connection until proxies are trusted.
	_ = s.router.SetTrustedProxies(nil)

	s.router.Use(gin.CustomRecoveryWithWriter(io.Discard, s.recoverPanic))
	s.router.Use(s.logRequest)
	s.router.Use(s.requireAdmin)
	s.registerRoutes()

	s.server.Handler = s.router
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/sitemap.xml", s.handleSitemap)

	// Page data for the public site.
	api := s.router.Group("/api")
	api.GET("/home", s.handleHome)
	api.GET("/episodes", s.handleEpisodesPage)
	api.GET("/news", s.handleNewsPage)
	api.GET("/ameva", s.handleAmevaPage)
	api.GET("/book", s.handleBookPage)
	api.GET("/stories", s.handleStoriesPage)
	api.GET("/carousel", s.handleCarouselPage)

	admin := s.router.Group("/admin")
	admin.GET("/login", s.handleLoginPage)
	admin.POST("/api/login", s.handleLogin)
	admin.POST("/api/logout", s.handleLogout)

	admin.GET("/api/episodes", s.handleEpisodeList)
	admin.PUT("/api/episodes", s.handleEpisodeReplace)
	admin.GET("/api/episodes/:index", s.handleEpisodeEdit)
	admin.POST("/api/episodes/upload", s.handleEpisodeUpload)

	admin.GET("/api/news", s.handleNewsList)
	admin.PUT("/api/news", s.handleNewsReplace)
	admin.GET("/api/news/:index", s.handleNewsEdit)

	admin.GET("/api/ameva", s.handleAmevaGet)
	admin.PUT("/api/ameva", s.handleAmevaSave)

	admin.GET("/api/book", s.handleBookGet)
	admin.PUT("/api/book", s.handleBookSave)

	admin.GET("/api/carousel", s.handleCarouselList)
	admin.PUT("/api/carousel", s.handleCarouselReplace)
	admin.GET("/api/carousel/settings", s.handleCarouselSettingsGet)
	admin.PUT("/api/carousel/settings", s.handleCarouselSettingsSave)

	admin.GET("/api/images", s.handleImageList)
	admin.PUT("/api/images", s.handleImageReplace)
	admin.POST("/api/images/upload", s.handleImageUpload)
}

// TrustProxies sets the proxy addresses or CIDRs whose X-Forwarded-For
// header is believed when resolving the client IP.
func (s *Server) TrustProxies(proxies []string) error {
	if err := s.router.SetTrustedProxies(proxies); err != nil {
		return ministry.Errorf(ministry.EINVALID, "invalid trusted proxy: %v", err)
	}
	return nil
}

// Handler returns the root handler, for use with httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// URL returns the local base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return fmt.Sprintf("http://%s", s.ln.Addr().String())
}

// Open binds the listener on Addr. Call Serve to start handling requests.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	return nil
}

// Serve handles requests until Shutdown is called. It returns nil after a
// clean shutdown.
func (s *Server) Serve() error {
	if s.ln == nil {
		return errors.New("server not opened")
	}
	s.Logger.Info("http server listening", "addr", s.ln.Addr().String())
	if err := s.server.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// logRequest logs each request after it has been handled.
func (s *Server) logRequest(c *gin.Context) {
	defer func(begin time.Time) {
		s.Logger.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(begin),
		)
	}(time.Now())
	c.Next()
}

func (s *Server) recoverPanic(c *gin.Context, recovered any) {
	s.Logger.Error("http handler panicked",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"err", fmt.Sprint(recovered),
	)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
}
