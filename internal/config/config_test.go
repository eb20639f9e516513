package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repoviz/repoviz/internal/config"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, config.DefaultListenAddr, cfg.Server.ListenAddr)
	assert.Equal(t, config.DefaultCommitLimit, cfg.Server.CommitLimit)
	assert.Equal(t, config.DefaultChunkSize, cfg.Server.ChunkSize)
	assert.Equal(t, config.DefaultPageSize, cfg.Server.PageSize)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.JSON)
	assert.Empty(t, cfg.OTLP.Endpoint)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repoviz.yaml")

	content := `
server:
  listen_addr: "0.0.0.0:9000"
  repo_path: "/srv/repo"
  commit_limit: 250
log:
  level: debug
  json: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.Server.ListenAddr)
	assert.Equal(t, "/srv/repo", cfg.Server.RepoPath)
	assert.Equal(t, 250, cfg.Server.CommitLimit)
	assert.Equal(t, config.DefaultChunkSize, cfg.Server.ChunkSize)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("REPOVIZ_SERVER_COMMIT_LIMIT", "42")

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 42, cfg.Server.CommitLimit)
}

func TestLoadConfigRejectsInvalidLimits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repoviz.yaml")

	require.NoError(t, os.WriteFile(path, []byte("server:\n  chunk_size: 0\n"), 0o644))

	_, err := config.LoadConfig(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidLimit)
}
