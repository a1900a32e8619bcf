package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"skorpik-value/app/controller"
	"skorpik-value/catalog"
	"skorpik-value/models"
	"skorpik-value/session"
)

func newControllers(t *testing.T) *Controllers {
	t.Helper()
	store, err := catalog.NewStore([]models.Item{{ID: "a", Name: "Item A", Rarity: models.RarityPass, Value: 10, Demand: 1}})
	require.NoError(t, err)
	s := session.New(context.Background(), store)
	return &Controllers{
		Health:  &controller.HealthController{},
		Catalog: controller.NewCatalogController(s, nil, nil),
		View:    controller.NewViewController(s, nil),
		Trade:   controller.NewTradeController(s, nil),
	}
}

func TestSetupRoutesWithoutExport(t *testing.T) {
	engine := SetupRoutes(newControllers(t), "test", nil)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/trade", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/trade/export", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	engine := SetupRoutes(newControllers(t), "test", nil)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/view/filter", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestLogging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	engine := SetupRoutes(newControllers(t), "test", zap.New(core))

	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/catalog", nil))
	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	entries := logs.FilterMessage("📥 HTTP: request served").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "/api/catalog", entries[0].ContextMap()["path"])
}
