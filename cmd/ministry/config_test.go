package main_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/ministry"
	main "github.com/fwojciec/ministry/cmd/ministry"
	storyhtml "github.com/fwojciec/ministry/html"
	"github.com/fwojciec/ministry/stories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ministry.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := main.DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, ":3000", cfg.HTTP.Addr)
	assert.Equal(t, main.DriverFile, cfg.Storage.Driver)
	assert.Equal(t, stories.DefaultURL, cfg.Stories.URL)
	assert.Equal(t, storyhtml.DefaultWindow, cfg.Stories.Window)
	assert.Empty(t, cfg.Admin.Password)
	assert.Empty(t, cfg.Media.Bucket)
	// Outbound requests carry only transport default headers.
	assert.Empty(t, cfg.Stories.UserAgent)
	assert.Empty(t, cfg.HTTP.TrustedProxies)
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("decodes file over defaults", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `
[http]
addr = "127.0.0.1:8080"
trusted_proxies = ["10.0.0.0/8", "127.0.0.1"]

[storage]
driver = "sqlite"
sqlite_path = "/var/lib/ministry/site.db"

[stories]
window = 500
`)

		cfg, err := main.LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1:8080", cfg.HTTP.Addr)
		assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.HTTP.TrustedProxies)
		assert.Equal(t, main.DriverSQLite, cfg.Storage.Driver)
		assert.Equal(t, "/var/lib/ministry/site.db", cfg.Storage.SQLitePath)
		assert.Equal(t, 500, cfg.Stories.Window)
		// Untouched keys keep their defaults.
		assert.Equal(t, storyhtml.DefaultLinkSelector, cfg.Stories.LinkSelector)
		assert.Equal(t, "data", cfg.Storage.DataDir)
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "[http]\nport = 3000\n")

		_, err := main.LoadConfig(path)

		assert.Error(t, err)
	})

	t.Run("requires explicit file to exist", func(t *testing.T) {
		t.Parallel()

		_, err := main.LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))

		assert.Error(t, err)
	})

	t.Run("missing default file yields defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := main.LoadConfig("")

		require.NoError(t, err)
		assert.Equal(t, main.DefaultConfig(), cfg)
	})
}

func TestConfig_ApplyEnv(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"ADMIN_PASSWORD":          "hunter2",
		"MINISTRY_ADDR":           ":9000",
		"MINISTRY_DATA_DIR":       "/srv/data",
		"MINISTRY_STORAGE_DRIVER": "sqlite",
		"MINISTRY_MEDIA_BUCKET":   "ministry-media",
		"MINISTRY_LOG_LEVEL":      "debug",
		"NODE_ENV":                "production",
	}
	cfg := main.DefaultConfig()

	cfg.ApplyEnv(func(key string) string { return env[key] })

	assert.Equal(t, "hunter2", cfg.Admin.Password)
	assert.Equal(t, ":9000", cfg.HTTP.Addr)
	assert.Equal(t, "/srv/data", cfg.Storage.DataDir)
	assert.Equal(t, main.DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "ministry-media", cfg.Media.Bucket)
	assert.True(t, cfg.HTTP.Production)

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*main.Config)
	}{
		{"unknown driver", func(c *main.Config) { c.Storage.Driver = "postgres" }},
		{"empty data dir", func(c *main.Config) { c.Storage.DataDir = "" }},
		{"empty sqlite path", func(c *main.Config) {
			c.Storage.Driver = main.DriverSQLite
			c.Storage.SQLitePath = ""
		}},
		{"zero window", func(c *main.Config) { c.Stories.Window = 0 }},
		{"zero timeout", func(c *main.Config) { c.Stories.TimeoutSeconds = 0 }},
		{"zero login attempts", func(c *main.Config) { c.Admin.LoginAttempts = 0 }},
		{"bad log level", func(c *main.Config) { c.Log.Level = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := main.DefaultConfig()
			tt.modify(&cfg)

			err := cfg.Validate()

			require.Error(t, err)
			assert.Equal(t, ministry.EINVALID, ministry.ErrorCode(err))
		})
	}
}
