package config_test

import (
	"breachcheck/internal/config"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, ":5000", cfg.HTTP.Addr)
	require.Equal(t, []string{"*"}, cfg.HTTP.CORSOrigins)
	require.Equal(t, 10*time.Second, cfg.Sources.RequestTimeout)
	require.Equal(t, time.Second, cfg.Sources.Delay)
	require.Equal(t, "BreachChecker/2.0", cfg.Sources.UserAgent)
	require.True(t, cfg.HIBP.Enabled)
	require.Equal(t, "YOUR_DEHASHED_API_KEY", cfg.DeHashed.APIKey)
	require.False(t, cfg.IntelX.Enabled)
	require.Equal(t, "local_breaches.txt", cfg.LocalDB.Path)
	require.False(t, cfg.LocalDB.AutoLearn)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DEHASHED_API_KEY", "real-key")
	t.Setenv("HTTP_CORS_ORIGINS", "http://localhost:3000,http://localhost:5000")
	t.Setenv("SOURCES_PARALLEL", "true")

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, "real-key", cfg.DeHashed.APIKey)
	require.Equal(t, []string{"http://localhost:3000", "http://localhost:5000"}, cfg.HTTP.CORSOrigins)
	require.True(t, cfg.Sources.Parallel)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  addr: ":8080"
sources:
  delay: 250ms
intelx:
  enabled: true
  apiKey: abc
localDb:
  path: /tmp/corpus.txt
  autoLearn: true
`), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTP.Addr)
	require.Equal(t, 250*time.Millisecond, cfg.Sources.Delay)
	require.True(t, cfg.IntelX.Enabled)
	require.Equal(t, "abc", cfg.IntelX.APIKey)
	require.Equal(t, "/tmp/corpus.txt", cfg.LocalDB.Path)
	require.True(t, cfg.LocalDB.AutoLearn)
	// untouched keys keep their defaults
	require.Equal(t, 50, cfg.IntelX.MaxResults)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
