package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fwojciec/ministry"
	storyhtml "github.com/fwojciec/ministry/html"
	minhttp "github.com/fwojciec/ministry/http"
	"github.com/fwojciec/ministry/stories"
	"github.com/pelletier/go-toml/v2"
)

// Storage drivers.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// DefaultConfigPath is read when no --config flag is given. A missing
// default file is not an error.
const DefaultConfigPath = "ministry.toml"

// Config is the full program configuration.
type Config struct {
	HTTP    HTTPConfig    `toml:"http"`
	Admin   AdminConfig   `toml:"admin"`
	Storage StorageConfig `toml:"storage"`
	Stories StoriesConfig `toml:"stories"`
	Media   MediaConfig   `toml:"media"`
	Log     LogConfig     `toml:"log"`
}

type HTTPConfig struct {
	Addr       string `toml:"addr"`
	BaseURL    string `toml:"base_url"`
	Production bool   `toml:"production"`

	// TrustedProxies are addresses or CIDRs whose X-Forwarded-For header
	// identifies the client. Empty trusts no proxy.
	TrustedProxies []string `toml:"trusted_proxies"`
}

type AdminConfig struct {
	Password string `toml:"password"`

	// Login attempts allowed per client IP before throttling, refilled one
	// every LoginRefillSeconds.
	LoginAttempts      int `toml:"login_attempts"`
	LoginRefillSeconds int `toml:"login_refill_seconds"`
}

type StorageConfig struct {
	Driver     string `toml:"driver"`
	DataDir    string `toml:"data_dir"`
	SQLitePath string `toml:"sqlite_path"`
}

type StoriesConfig struct {
	URL                 string `toml:"url"`
	TimeoutSeconds      int    `toml:"timeout_seconds"`
	FetchTimeoutSeconds int    `toml:"fetch_timeout_seconds"`
	UserAgent           string `toml:"user_agent"`
	LinkSelector        string `toml:"link_selector"`
	TitleSelector       string `toml:"title_selector"`
	Window              int    `toml:"window"`
	Description         string `toml:"description"`
}

// MediaConfig configures the S3 bucket for uploads. Uploads are disabled
// when Bucket is empty.
type MediaConfig struct {
	Bucket       string `toml:"bucket"`
	Region       string `toml:"region"`
	Profile      string `toml:"profile"`
	Endpoint     string `toml:"endpoint"`
	UsePathStyle bool   `toml:"use_path_style"`
	BaseURL      string `toml:"base_url"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns the configuration used before any file or
// environment overrides.
func DefaultConfig() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr: ":3000",
		},
		Admin: AdminConfig{
			LoginAttempts:      5,
			LoginRefillSeconds: 60,
		},
		Storage: StorageConfig{
			Driver:     DriverFile,
			DataDir:    "data",
			SQLitePath: "ministry.db",
		},
		Stories: StoriesConfig{
			URL:                 stories.DefaultURL,
			TimeoutSeconds:      int(stories.DefaultTimeout / time.Second),
			FetchTimeoutSeconds: int(minhttp.DefaultFetchTimeout / time.Second),
			LinkSelector:        storyhtml.DefaultLinkSelector,
			TitleSelector:       storyhtml.DefaultTitleSelector,
			Window:              storyhtml.DefaultWindow,
			Description:         storyhtml.DefaultDescription,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig decodes the TOML file at path over the defaults. An empty path
// reads DefaultConfigPath if it exists.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return cfg, nil
	} else if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	if err := toml.NewDecoder(file).DisallowUnknownFields().Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("ADMIN_PASSWORD"); v != "" {
		c.Admin.Password = v
	}
	if v := getenv("MINISTRY_ADDR"); v != "" {
		c.HTTP.Addr = v
	}
	if v := getenv("MINISTRY_BASE_URL"); v != "" {
		c.HTTP.BaseURL = v
	}
	if v := getenv("MINISTRY_DATA_DIR"); v != "" {
		c.Storage.DataDir = v
	}
	if v := getenv("MINISTRY_STORAGE_DRIVER"); v != "" {
		c.Storage.Driver = v
	}
	if v := getenv("MINISTRY_MEDIA_BUCKET"); v != "" {
		c.Media.Bucket = v
	}
	if v := getenv("MINISTRY_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if getenv("NODE_ENV") == "production" {
		c.HTTP.Production = true
	}
}

// Validate returns an error if the configuration cannot be used.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverFile:
		if c.Storage.DataDir == "" {
			return ministry.Errorf(ministry.EINVALID, "storage.data_dir required")
		}
	case DriverSQLite:
		if c.Storage.SQLitePath == "" {
			return ministry.Errorf(ministry.EINVALID, "storage.sqlite_path required")
		}
	default:
		return ministry.Errorf(ministry.EINVALID, "storage.driver must be %q or %q, got %q", DriverFile, DriverSQLite, c.Storage.Driver)
	}
	if c.Stories.Window <= 0 {
		return ministry.Errorf(ministry.EINVALID, "stories.window must be positive")
	}
	if c.Stories.TimeoutSeconds <= 0 || c.Stories.FetchTimeoutSeconds <= 0 {
		return ministry.Errorf(ministry.EINVALID, "stories timeouts must be positive")
	}
	if c.Admin.LoginAttempts <= 0 || c.Admin.LoginRefillSeconds <= 0 {
		return ministry.Errorf(ministry.EINVALID, "admin login throttle must be positive")
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.Log.Level))); err != nil {
		return 0, ministry.Errorf(ministry.EINVALID, "invalid log.level %q", c.Log.Level)
	}
	return level, nil
}
