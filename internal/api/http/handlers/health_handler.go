package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/znapfile/edge-gateway/internal/api/dto"
)

// HealthHandler answers the health probe.
type HealthHandler struct {
	serviceName string
	version     string
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version}
}

// Check reports service status with the current UTC timestamp. The
// gateway has no dependencies to probe, so the answer is unconditional.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Service:   h.serviceName,
		Version:   h.version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
