package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
url: https://gallery.example
allowed_hosts: abc123.ucarecdn.com
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, defaultListen, cfg.Listen)
	require.Equal(t, defaultMaxFiles, cfg.MaxFiles)
	require.Equal(t, LogLevelInfo, cfg.LogLevel)
	require.Equal(t, defaultWorkers, cfg.FetcherConfig.Workers)
	require.Equal(t, 10*time.Second, cfg.FetcherConfig.Timeout())
	require.Equal(t, defaultPreviewSize, cfg.PreviewConfig.Size)
	require.True(t, cfg.PDFPreview())
	require.True(t, cfg.AudioPreview())
	require.Equal(t, defaultTitle, cfg.Branding.Title)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
url: https://gallery.example
allowed_hosts: abc123.ucarecdn.com
listen: ":9000"
max_files: 10
log_level: debug
fetcher:
  workers: 4
  timeout_sec: 3
preview:
  size: 400x400
  pdf: false
branding:
  title: Acme Files
  accent_color: "#ff6600"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, ":9000", cfg.Listen)
	require.Equal(t, 10, cfg.MaxFiles)
	require.Equal(t, LogLevelDebug, cfg.LogLevel)
	require.Equal(t, 4, cfg.FetcherConfig.Workers)
	require.Equal(t, 3*time.Second, cfg.FetcherConfig.Timeout())
	require.Equal(t, "400x400", cfg.PreviewConfig.Size)
	require.False(t, cfg.PDFPreview())
	require.True(t, cfg.AudioPreview())
	require.Equal(t, "Acme Files", cfg.Branding.Title)
}

func TestLoadEnvWins(t *testing.T) {
	path := writeConfig(t, `
url: https://gallery.example
allowed_hosts: from-yaml.ucarecdn.com
listen: ":9000"
`)

	t.Setenv(envListen, ":7000")
	t.Setenv(envHosts, "from-env.ucarecdn.com")
	t.Setenv(envRedisURL, "redis://localhost:6379/0")

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, ":7000", cfg.Listen)
	require.Equal(t, []string{"from-env.ucarecdn.com"}, cfg.Hosts())
	require.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
}

func TestLoadEmptyAllowList(t *testing.T) {
	path := writeConfig(t, `
url: https://gallery.example
allowed_hosts: " , "
`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestHosts(t *testing.T) {
	cfg := &Config{AllowedHosts: " abc123.ucarecdn.com , backup.ucarecdn.com ,, "}

	require.Equal(t, []string{"abc123.ucarecdn.com", "backup.ucarecdn.com"}, cfg.Hosts())
}
