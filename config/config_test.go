package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range legacyEnv {
		t.Setenv(env, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.ListenAddr())
	assert.Equal(t, "file", cfg.Catalog.Source)
	assert.Equal(t, "data/items.json", cfg.Catalog.Path)
	assert.Equal(t, "memory", cfg.State.Store)
	assert.Equal(t, 2*time.Second, cfg.State.Timeout)
	assert.Equal(t, "5432", cfg.DB.Port)
	assert.Equal(t, 8, cfg.Export.MaxItems)
	assert.Equal(t, 30*time.Second, cfg.Export.Timeout)
	assert.Equal(t, ".cache/thumbs", cfg.Export.CacheDir)
	assert.False(t, cfg.Drive.Enabled())
}

func TestLoadPrefixedEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("SKORPIK_STATE_STORE", "redis")
	t.Setenv("SKORPIK_REDIS_ADDR", "cache:6380")
	t.Setenv("SKORPIK_LOG_LEVEL", "debug")
	t.Setenv("SKORPIK_DB_HOST", "pg.internal")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "redis", cfg.State.Store)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "pg.internal", cfg.DB.Host)
}

func TestLoadLegacyEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/skorpik")
	t.Setenv("PORT", "10000")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/secrets/drive.json")
	t.Setenv("SKORPIK_DRIVE_FOLDER_ID", "folder123")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "postgres://u:p@db:5432/skorpik", cfg.DB.URL)
	assert.Equal(t, "0.0.0.0:10000", cfg.Server.ListenAddr())
	assert.True(t, cfg.Drive.Enabled())
}

func TestLoadYAMLFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "catalog:\n  source: postgres\nexport:\n  max_items: 4\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Catalog.Source)
	assert.Equal(t, 4, cfg.Export.MaxItems)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestListenAddrStripsColon(t *testing.T) {
	assert.Equal(t, "0.0.0.0:9000", ServerConfig{Addr: ":8080", Port: ":9000"}.ListenAddr())
}
