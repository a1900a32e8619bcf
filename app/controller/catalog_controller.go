package controller

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"skorpik-value/catalog"
	"skorpik-value/models"
	"skorpik-value/service"
	"skorpik-value/session"
	"skorpik-value/utils"
)

// ItemImageProvider loads item pictures at preview size
type ItemImageProvider interface {
	MediumImage(ctx context.Context, item models.Item) ([]byte, error)
}

// CatalogController serves the filtered and sorted catalog
type CatalogController struct {
	Session *session.Controller
	Images  ItemImageProvider
	Logger  *zap.Logger
}

// NewCatalogController creates a new CatalogController. images may be nil.
func NewCatalogController(s *session.Controller, images ItemImageProvider, logger *zap.Logger) *CatalogController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogController{Session: s, Images: images, Logger: logger}
}

func (h *CatalogController) Register(r *gin.Engine) {
	group := r.Group("/api/catalog")
	group.GET("", h.listItems)
	group.GET("/items/:id", h.getItem)
	group.GET("/items/:id/image", h.getItemImage)
}

// listItems handles GET /api/catalog
// Returns the catalog under the session view state. Query parameters
// (filter, search, sort, order) override it for this request only.
func (h *CatalogController) listItems(c *gin.Context) {
	view := h.Session.ViewState()
	if v := strings.TrimSpace(c.Query("filter")); v != "" {
		if v != models.FilterAll && !models.IsKnownRarity(v) {
			Error(c, http.StatusBadRequest, "unknown rarity filter: "+v, nil)
			return
		}
		view.ActiveFilter = v
	}
	if v, ok := c.GetQuery("search"); ok {
		view.SearchTerm = v
	}
	if v := strings.TrimSpace(c.Query("sort")); v != "" {
		key := models.SortKey(v)
		if !key.IsValid() {
			Error(c, http.StatusBadRequest, "unknown sort key: "+v, nil)
			return
		}
		view.SortKey = key
	}
	if v := strings.TrimSpace(c.Query("order")); v != "" {
		order := models.SortOrder(v)
		if !order.IsValid() {
			Error(c, http.StatusBadRequest, "unknown sort order: "+v, nil)
			return
		}
		view.SortOrder = order
	}

	items := h.Session.Catalog().Items()
	cards := make([]models.CatalogCard, 0, len(items))
	for _, item := range catalog.View(items, view) {
		cards = append(cards, utils.CatalogCard(item))
	}

	h.Logger.Debug("ListItems: catalog listed",
		zap.String("filter", view.ActiveFilter),
		zap.String("sort", string(view.SortKey)),
		zap.Int("count", len(cards)),
	)
	Ok(c, models.CatalogViewResponse{View: view, Count: len(cards), Items: cards}, nil)
}

// getItem handles GET /api/catalog/items/:id
func (h *CatalogController) getItem(c *gin.Context) {
	id := c.Param("id")
	item, ok := h.Session.Catalog().Get(id)
	if !ok {
		Error(c, http.StatusNotFound, "item not found: "+id, nil)
		return
	}
	Ok(c, utils.CatalogCard(item), nil)
}

// getItemImage handles GET /api/catalog/items/:id/image
// Returns the item picture as a JPEG preview.
func (h *CatalogController) getItemImage(c *gin.Context) {
	id := c.Param("id")
	item, ok := h.Session.Catalog().Get(id)
	if !ok {
		Error(c, http.StatusNotFound, "item not found: "+id, nil)
		return
	}
	if h.Images == nil {
		Error(c, http.StatusServiceUnavailable, "images unavailable", nil)
		return
	}

	data, err := h.Images.MediumImage(c.Request.Context(), item)
	if err != nil {
		if errors.Is(err, service.ErrNoImage) {
			Error(c, http.StatusNotFound, err.Error(), nil)
			return
		}
		h.Logger.Error("❌ GetItemImage: failed to load image", zap.String("itemId", id), zap.Error(err))
		Error(c, http.StatusBadGateway, "failed to load image: "+err.Error(), nil)
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "image/jpeg", data)
}
