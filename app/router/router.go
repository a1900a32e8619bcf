package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"skorpik-value/app/controller"
)

type Controllers struct {
	Health  *controller.HealthController
	Catalog *controller.CatalogController
	View    *controller.ViewController
	Trade   *controller.TradeController
	Export  *controller.ExportController
}

// SetupRoutes builds the gin engine and registers every controller
func SetupRoutes(controllers *Controllers, env string, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if strings.EqualFold(env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())
	engine.Use(requestLogMiddleware(logger))

	controllers.Health.Register(engine)
	controllers.Catalog.Register(engine)
	controllers.View.Register(engine)
	controllers.Trade.Register(engine)
	if controllers.Export != nil {
		controllers.Export.Register(engine)
	}
	return engine
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// requestLogMiddleware logs every API request once it has been served
func requestLogMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.Request.URL.Path
		if !strings.HasPrefix(path, "/api/") {
			return
		}
		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
		}
		if status >= http.StatusInternalServerError {
			logger.Error("📥 HTTP: request failed", fields...)
			return
		}
		logger.Debug("📥 HTTP: request served", fields...)
	}
}
