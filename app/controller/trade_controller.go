package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"skorpik-value/models"
	"skorpik-value/session"
)

// TradeController handles the trade ledger and its comparison
type TradeController struct {
	Session *session.Controller
	Logger  *zap.Logger
}

// NewTradeController creates a new TradeController
func NewTradeController(s *session.Controller, logger *zap.Logger) *TradeController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TradeController{Session: s, Logger: logger}
}

func (h *TradeController) Register(r *gin.Engine) {
	group := r.Group("/api/trade")
	group.GET("", h.getSummary)
	group.POST("/reset", h.reset)
	group.POST("/:side/items", h.addItem)
	group.PUT("/:side/items/:itemId", h.setQuantity)
	group.DELETE("/:side/items/:itemId", h.removeEntry)
}

// getSummary handles GET /api/trade
func (h *TradeController) getSummary(c *gin.Context) {
	respondSummary(c, h.Session.Summary())
}

// addItem handles POST /api/trade/:side/items
// Adding an item already on the side increments its quantity.
func (h *TradeController) addItem(c *gin.Context) {
	side := models.Side(c.Param("side"))

	var req models.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body: "+err.Error(), nil)
		return
	}
	if req.ItemID == "" {
		Error(c, http.StatusBadRequest, "itemId cannot be empty", nil)
		return
	}

	state, err := h.Session.AddItem(side, req.ItemID)
	if err != nil {
		h.Logger.Warn("AddItem: rejected", zap.String("side", string(side)), zap.String("itemId", req.ItemID), zap.Error(err))
		fail(c, err)
		return
	}
	h.Logger.Info("✅ AddItem: item added", zap.String("side", string(side)), zap.String("itemId", req.ItemID))
	respondSummary(c, state.Summary)
}

// setQuantity handles PUT /api/trade/:side/items/:itemId
func (h *TradeController) setQuantity(c *gin.Context) {
	side := models.Side(c.Param("side"))
	itemID := c.Param("itemId")

	var req models.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body: "+err.Error(), nil)
		return
	}

	state, err := h.Session.SetQuantity(side, itemID, req.Quantity)
	if err != nil {
		h.Logger.Warn("SetQuantity: rejected", zap.String("itemId", itemID), zap.Int("quantity", req.Quantity), zap.Error(err))
		fail(c, err)
		return
	}
	respondSummary(c, state.Summary)
}

// removeEntry handles DELETE /api/trade/:side/items/:itemId
// Removing an item that is not on the side succeeds and changes nothing.
func (h *TradeController) removeEntry(c *gin.Context) {
	side := models.Side(c.Param("side"))
	state, err := h.Session.RemoveEntry(side, c.Param("itemId"))
	if err != nil {
		fail(c, err)
		return
	}
	respondSummary(c, state.Summary)
}

// reset handles POST /api/trade/reset
func (h *TradeController) reset(c *gin.Context) {
	state, err := h.Session.Reset()
	if err != nil {
		fail(c, err)
		return
	}
	h.Logger.Info("🧹 Reset: trade cleared")
	respondSummary(c, state.Summary)
}

// respondSummary sends a summary, listing unresolved ids under meta
func respondSummary(c *gin.Context, summary models.TradeSummary) {
	var meta map[string]any
	if len(summary.Skipped) > 0 {
		meta = map[string]any{"skipped": summary.Skipped}
	}
	Ok(c, summary, meta)
}
