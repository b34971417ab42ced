package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler liveness and dependency checks
type HealthHandler struct {
	index   Pinger
	timeout time.Duration
}

// NewHealthHandler creates the handler
func NewHealthHandler(index Pinger) *HealthHandler {
	return &HealthHandler{index: index, timeout: 2 * time.Second}
}

// Health reports vector index reachability
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.index.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":       "degraded",
			"vector_index": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"vector_index": "ok",
	})
}

// Root service banner
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Support brain is active."})
}
