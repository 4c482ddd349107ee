package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/ministry"
)

// ContentService is every content service the site serves.
type ContentService interface {
	ministry.EpisodeService
	ministry.NewsService
	ministry.AmevaService
	ministry.BookService
	ministry.CarouselService
	ministry.ImageService
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Config Config
	Logger *slog.Logger

	Content  ContentService
	History  ministry.DocumentHistory
	Stories  ministry.StorySource
	Uploader ministry.MediaUploader

	// OpenStore opens a document store by driver name.
	OpenStore func(driver string) (ministry.DocumentStore, error)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `short:"c" type:"path" help:"Path to TOML config file (default: ./ministry.toml if present)"`
	EnvFile string `name:"env-file" type:"path" help:"Load environment variables from this file (default: ./.env if present)"`

	Serve   ServeCmd   `cmd:"" help:"Run the HTTP server"`
	Stories StoriesCmd `cmd:"" help:"Fetch stories once and print them as JSON"`
	Copy    CopyCmd    `cmd:"" help:"Copy site content between storage drivers"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct{}

// StoriesCmd is the "stories" subcommand.
type StoriesCmd struct{}

// CopyCmd is the "copy" subcommand.
type CopyCmd struct {
	From string `required:"" enum:"file,sqlite" help:"Source storage driver (file, sqlite)"`
	To   string `required:"" enum:"file,sqlite" help:"Destination storage driver (file, sqlite)"`
}
