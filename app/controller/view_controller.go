package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"skorpik-value/models"
	"skorpik-value/session"
)

// ViewController handles the presentation state of the session
type ViewController struct {
	Session *session.Controller
	Logger  *zap.Logger
}

// NewViewController creates a new ViewController
func NewViewController(s *session.Controller, logger *zap.Logger) *ViewController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ViewController{Session: s, Logger: logger}
}

func (h *ViewController) Register(r *gin.Engine) {
	group := r.Group("/api/view")
	group.GET("", h.getView)
	group.PUT("/filter", h.setFilter)
	group.PUT("/search", h.setSearch)
	group.PUT("/sort", h.setSort)
	group.POST("/sort/toggle", h.toggleSort)
	group.PUT("/tab", h.switchTab)
}

// getView handles GET /api/view
func (h *ViewController) getView(c *gin.Context) {
	Ok(c, h.Session.ViewState(), nil)
}

// setFilter handles PUT /api/view/filter
func (h *ViewController) setFilter(c *gin.Context) {
	var req models.SetFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body: "+err.Error(), nil)
		return
	}
	state, err := h.Session.SetFilter(c.Request.Context(), req.Filter)
	if err != nil {
		h.Logger.Warn("SetFilter: rejected", zap.String("filter", req.Filter), zap.Error(err))
		fail(c, err)
		return
	}
	Ok(c, state.View, nil)
}

// setSearch handles PUT /api/view/search
func (h *ViewController) setSearch(c *gin.Context) {
	var req models.SetSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body: "+err.Error(), nil)
		return
	}
	state, err := h.Session.SetSearch(req.Term)
	if err != nil {
		fail(c, err)
		return
	}
	Ok(c, state.View, nil)
}

// setSort handles PUT /api/view/sort
// An omitted order keeps the current one.
func (h *ViewController) setSort(c *gin.Context) {
	var req models.SetSortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body: "+err.Error(), nil)
		return
	}
	if req.Order == "" {
		req.Order = h.Session.ViewState().SortOrder
	}
	state, err := h.Session.SetSort(req.Key, req.Order)
	if err != nil {
		h.Logger.Warn("SetSort: rejected", zap.String("key", string(req.Key)), zap.String("order", string(req.Order)), zap.Error(err))
		fail(c, err)
		return
	}
	Ok(c, state.View, nil)
}

// toggleSort handles POST /api/view/sort/toggle
func (h *ViewController) toggleSort(c *gin.Context) {
	state, err := h.Session.ToggleSortOrder()
	if err != nil {
		fail(c, err)
		return
	}
	Ok(c, state.View, nil)
}

// switchTab handles PUT /api/view/tab
func (h *ViewController) switchTab(c *gin.Context) {
	var req models.SwitchTabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body: "+err.Error(), nil)
		return
	}
	state, err := h.Session.SwitchTab(c.Request.Context(), req.Tab)
	if err != nil {
		fail(c, err)
		return
	}
	Ok(c, state.View, nil)
}
