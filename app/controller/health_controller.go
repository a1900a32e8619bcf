package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthController answers liveness checks
type HealthController struct{}

func (h *HealthController) Register(r *gin.Engine) {
	r.GET("/ping", h.ping)
}

// ping handles GET /ping
func (h *HealthController) ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
