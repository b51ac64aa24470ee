package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"payproc/internal/config"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	inference *config.InferenceConfig
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(inference *config.InferenceConfig) *HealthHandler {
	return &HealthHandler{inference: inference}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
// The service is ready even without inference credentials; extraction then
// runs in degraded mode, so readiness only reports the capability.
func (h *HealthHandler) Readiness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":              "ok",
		"inferenceConfigured": h.inference.Configured(),
	})
}
