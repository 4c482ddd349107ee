package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fwojciec/ministry"
	minhttp "github.com/fwojciec/ministry/http"
	"golang.org/x/sync/errgroup"
)

// Run executes the serve command until interrupted.
func (c *ServeCmd) Run(deps *Dependencies) error {
	ctx, stop := signal.NotifyContext(deps.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := deps.Config
	if cfg.Admin.Password == "" {
		deps.Logger.Warn("ADMIN_PASSWORD not set, admin login disabled")
	}

	s := minhttp.NewServer()
	s.Addr = cfg.HTTP.Addr
	s.BaseURL = cfg.HTTP.BaseURL
	s.Production = cfg.HTTP.Production
	s.AdminPassword = cfg.Admin.Password
	s.Logger = deps.Logger
	s.EpisodeService = deps.Content
	s.NewsService = deps.Content
	s.AmevaService = deps.Content
	s.BookService = deps.Content
	s.CarouselService = deps.Content
	s.ImageService = deps.Content
	s.StorySource = deps.Stories
	s.DocumentHistory = deps.History
	s.MediaUploader = deps.Uploader
	s.LoginLimiter = minhttp.NewKeyLimiter(
		time.Duration(cfg.Admin.LoginRefillSeconds)*time.Second,
		cfg.Admin.LoginAttempts,
	)

	if err := s.TrustProxies(cfg.HTTP.TrustedProxies); err != nil {
		return fmt.Errorf("invalid http.trusted_proxies: %s", ministry.ErrorMessage(err))
	}

	if err := s.Open(); err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.HTTP.Addr, err)
	}
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", s.URL())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(s.Serve)
	g.Go(func() error {
		<-gctx.Done()
		return s.Shutdown(context.WithoutCancel(gctx))
	})
	return g.Wait()
}
