package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("GRAPHDB_HOST", "")
	t.Setenv("GRAPHDB_PORT", "")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Graph.Host)
	assert.Equal(t, 7687, cfg.Graph.Port)
	assert.Equal(t, "bolt://localhost:7687", cfg.Graph.URI())
	assert.Equal(t, "strict", cfg.Graph.DecodePolicy)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.True(t, cfg.Breaker.Enabled)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("GRAPHDB_HOST", "memgraph")
	t.Setenv("GRAPHDB_PORT", "7688")
	t.Setenv("GRAPHDB_DECODE_POLICY", "Lenient")
	t.Setenv("GRAPHDB_CONNECT_TIMEOUT", "2s")
	t.Setenv("SERVER_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "bolt://memgraph:7688", cfg.Graph.URI())
	assert.Equal(t, "lenient", cfg.Graph.DecodePolicy)
	assert.Equal(t, 2*time.Second, cfg.Graph.ConnectTimeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.HTTP.AllowedOrigins())
}

func TestLoadFileThenEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filmgraph.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
graph:
  host: graph.internal
  port: 7690
  username: reader
  fetch_size: 100
  connect_timeout: 3s
logging:
  level: debug
  format: json
`), 0o600))
	t.Setenv("GRAPHDB_USERNAME", "override")

	cfg, err := LoadFile(path)

	require.NoError(t, err)
	assert.Equal(t, "graph.internal", cfg.Graph.Host)
	assert.Equal(t, 7690, cfg.Graph.Port)
	assert.Equal(t, "override", cfg.Graph.Username)
	assert.Equal(t, 100, cfg.Graph.FetchSize)
	assert.Equal(t, 3*time.Second, cfg.Graph.ConnectTimeout)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 10, cfg.Graph.MaxConnections)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	t.Run("port", func(t *testing.T) {
		t.Setenv("GRAPHDB_PORT", "70000")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("policy", func(t *testing.T) {
		t.Setenv("GRAPHDB_DECODE_POLICY", "sometimes")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DecodePolicy")
	})

	t.Run("duration", func(t *testing.T) {
		t.Setenv("SERVER_READ_TIMEOUT", "soon")
		_, err := Load()
		assert.ErrorContains(t, err, "SERVER_READ_TIMEOUT")
	})
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestConversions(t *testing.T) {
	cfg := Default()

	opts := cfg.Graph.Options()
	assert.Equal(t, "localhost", opts.Host)
	assert.Equal(t, 10, opts.MaxConnections)

	settings := cfg.Breaker.Settings("graph")
	assert.Equal(t, "graph", settings.Name)
	assert.Equal(t, cfg.Breaker.FailureThreshold, settings.FailureThreshold)
}
