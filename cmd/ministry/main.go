package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/ministry"
	"github.com/fwojciec/ministry/content"
	"github.com/fwojciec/ministry/fs"
	storyhtml "github.com/fwojciec/ministry/html"
	minhttp "github.com/fwojciec/ministry/http"
	"github.com/fwojciec/ministry/s3"
	minslog "github.com/fwojciec/ministry/slog"
	"github.com/fwojciec/ministry/sqlite"
	"github.com/fwojciec/ministry/stories"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Getenv reads environment overrides. Defaults to os.Getenv.
	Getenv func(string) string

	// Config is populated by Run.
	Config Config

	closers []func() error
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Getenv: os.Getenv}
}

// Close releases every store opened by Run.
func (m *Main) Close() error {
	var firstErr error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.closers = nil
	return firstErr
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("ministry"),
		kong.Description("Backend for the ministry website."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'ministry --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if err := m.loadEnv(cli.EnvFile); err != nil {
		return err
	}

	if m.Config, err = LoadConfig(cli.Config); err != nil {
		return err
	}
	m.Config.ApplyEnv(m.Getenv)
	if err := m.Config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %s", ministry.ErrorMessage(err))
	}

	level, _ := m.Config.LogLevel()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	defer m.Close()

	deps.Config = m.Config
	deps.Logger = logger
	deps.OpenStore = func(driver string) (ministry.DocumentStore, error) {
		store, _, err := m.openStore(driver, logger)
		return store, err
	}

	switch kongCtx.Command() {
	case "serve":
		store, history, err := m.openStore(m.Config.Storage.Driver, logger)
		if err != nil {
			return err
		}
		deps.Content = content.NewService(store, logger)
		deps.History = history

		if deps.Stories, err = m.storySource(logger); err != nil {
			return err
		}

		if m.Config.Media.Bucket != "" {
			uploader, err := s3.NewUploader(ctx, s3.Config{
				Bucket:       m.Config.Media.Bucket,
				Region:       m.Config.Media.Region,
				Profile:      m.Config.Media.Profile,
				Endpoint:     m.Config.Media.Endpoint,
				UsePathStyle: m.Config.Media.UsePathStyle,
				BaseURL:      m.Config.Media.BaseURL,
			})
			if err != nil {
				return fmt.Errorf("failed to configure media uploads: %w", err)
			}
			deps.Uploader = minslog.NewLoggingUploader(uploader, logger)
		} else {
			logger.Warn("media.bucket not set, uploads disabled")
		}

		if m.Config.HTTP.Production {
			gin.SetMode(gin.ReleaseMode)
		}

	case "stories":
		if deps.Stories, err = m.storySource(logger); err != nil {
			return err
		}
	}

	return kongCtx.Run(deps)
}

// loadEnv reads KEY=value pairs into the process environment. An explicit
// file must exist; the default .env is optional.
func (m *Main) loadEnv(path string) error {
	if path == "" {
		_ = godotenv.Load()
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %q: %w", path, err)
	}
	return nil
}

// backend is a document store that also knows when documents changed.
type backend interface {
	ministry.DocumentStore
	ministry.DocumentHistory
}

// openStore opens the document store for driver and registers it for Close.
func (m *Main) openStore(driver string, logger *slog.Logger) (ministry.DocumentStore, ministry.DocumentHistory, error) {
	var store backend
	switch driver {
	case DriverFile:
		fileStore := fs.NewStore(m.Config.Storage.DataDir)
		if err := fileStore.Open(); err != nil {
			return nil, nil, err
		}
		store = fileStore

	case DriverSQLite:
		db := sqlite.NewDB(m.Config.Storage.SQLitePath)
		if err := db.Open(); err != nil {
			return nil, nil, fmt.Errorf("failed to open database at %q: %w", m.Config.Storage.SQLitePath, err)
		}
		m.closers = append(m.closers, db.Close)
		store = sqlite.NewDocumentStore(db)

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", driver)
	}
	return minslog.NewLoggingDocumentStore(store, logger), store, nil
}

// storySource wires the story pipeline from configuration.
func (m *Main) storySource(logger *slog.Logger) (ministry.StorySource, error) {
	cfg := m.Config.Stories

	extractor, err := storyhtml.NewExtractor(
		storyhtml.WithLinkSelector(cfg.LinkSelector),
		storyhtml.WithTitleSelector(cfg.TitleSelector),
		storyhtml.WithWindow(cfg.Window),
		storyhtml.WithDescription(cfg.Description),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid stories configuration: %s", ministry.ErrorMessage(err))
	}

	fetcher := minhttp.NewFetcher(
		minhttp.WithTimeout(time.Duration(cfg.FetchTimeoutSeconds)*time.Second),
		minhttp.WithUserAgent(cfg.UserAgent),
	)
	m.closers = append(m.closers, fetcher.Close)

	svc := &stories.Service{
		Fetcher:   minslog.NewLoggingFetcher(fetcher, logger),
		Extractor: extractor,
		Logger:    logger,
		URL:       cfg.URL,
		Timeout:   time.Duration(cfg.TimeoutSeconds) * time.Second,
	}
	return minslog.NewLoggingStorySource(svc, logger), nil
}
