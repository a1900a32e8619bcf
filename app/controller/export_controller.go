package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"skorpik-value/service"
	"skorpik-value/session"
)

// ExportController renders the current trade as a shareable image
type ExportController struct {
	Session *session.Controller
	Export  service.ExportServiceInterface
	Logger  *zap.Logger
}

// NewExportController creates a new ExportController
func NewExportController(s *session.Controller, export service.ExportServiceInterface, logger *zap.Logger) *ExportController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportController{Session: s, Export: export, Logger: logger}
}

func (h *ExportController) Register(r *gin.Engine) {
	group := r.Group("/api/trade/export")
	group.GET("", h.exportPNG)
	group.GET("/preview", h.previewHTML)
}

// exportPNG handles GET /api/trade/export
// Responds with the screenshot as a PNG attachment.
func (h *ExportController) exportPNG(c *gin.Context) {
	if h.Export == nil {
		Error(c, http.StatusServiceUnavailable, "export unavailable", nil)
		return
	}

	snap := h.Session.Snapshot()
	h.Logger.Info("📸 ExportPNG: rendering trade",
		zap.Int("give", len(snap.Give)),
		zap.Int("receive", len(snap.Receive)),
	)

	png, err := h.Export.RenderPNG(c.Request.Context(), snap)
	if err != nil {
		h.Logger.Error("❌ ExportPNG: render failed", zap.Error(err))
		Error(c, http.StatusInternalServerError, "failed to render export: "+err.Error(), nil)
		return
	}

	filename := service.Filename(snap.GeneratedAt)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "image/png", png)
	h.Logger.Info("✅ ExportPNG: sent", zap.String("filename", filename), zap.Int("bytes", len(png)))
}

// previewHTML handles GET /api/trade/export/preview
// Returns the page that the PNG is rendered from.
func (h *ExportController) previewHTML(c *gin.Context) {
	if h.Export == nil {
		Error(c, http.StatusServiceUnavailable, "export unavailable", nil)
		return
	}

	html, err := h.Export.RenderHTML(c.Request.Context(), h.Session.Snapshot())
	if err != nil {
		h.Logger.Error("❌ PreviewHTML: render failed", zap.Error(err))
		Error(c, http.StatusInternalServerError, "failed to render preview: "+err.Error(), nil)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
