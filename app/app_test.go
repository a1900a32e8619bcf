package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skorpik-value/config"
	"skorpik-value/models"
	"skorpik-value/session"
)

const testCatalog = `[
	{"id": "scorp", "name": "Golden Scorpion", "rarity": "Divine", "value": 12000, "demand": 8.5, "status": "rising"},
	{"id": "pass1", "name": "Season Pass", "rarity": "Pass", "value": 400, "demand": 3}
]`

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "items.json")
	require.NoError(t, os.WriteFile(path, []byte(testCatalog), 0o644))

	return config.Config{
		App:     config.AppConfig{Env: "test"},
		Catalog: config.CatalogConfig{Source: "file", Path: path},
		State:   config.StateConfig{Store: "memory"},
		Export:  config.ExportConfig{MaxItems: 8, ThumbSize: 60},
	}
}

func TestInitializeFromFile(t *testing.T) {
	a, err := Initialize(context.Background(), testConfig(t), nil)
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, 2, a.Catalog.Len())
	assert.Nil(t, a.Download)
	require.NotNil(t, a.Export)

	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	a.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/catalog", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Golden Scorpion")
}

func TestInitializeRestoresFromRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	require.NoError(t, mr.Set("skorpik:"+session.KeyActiveFilter, "Divine"))

	cfg := testConfig(t)
	cfg.State.Store = "redis"
	cfg.Redis = config.RedisConfig{Addr: mr.Addr(), Prefix: "skorpik:"}

	a, err := Initialize(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, "Divine", a.Session.ViewState().ActiveFilter)

	_, err = a.Session.SwitchTab(context.Background(), models.TabCalculator)
	require.NoError(t, err)
	got, err := mr.Get("skorpik:" + session.KeyActiveTab)
	require.NoError(t, err)
	assert.Equal(t, "calculator", got)
}

func TestInitializeRejectsBadConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.State.Store = "etcd"
	_, err := Initialize(context.Background(), cfg, nil)
	assert.Error(t, err)

	cfg = testConfig(t)
	cfg.Catalog.Source = "s3"
	_, err = Initialize(context.Background(), cfg, nil)
	assert.Error(t, err)

	cfg = testConfig(t)
	cfg.Catalog.Path = filepath.Join(t.TempDir(), "missing.json")
	_, err = Initialize(context.Background(), cfg, nil)
	assert.Error(t, err)
}

func TestNeedsDatabase(t *testing.T) {
	cfg := testConfig(t)
	assert.False(t, needsDatabase(cfg))
	cfg.State.Store = "postgres"
	assert.True(t, needsDatabase(cfg))
}
