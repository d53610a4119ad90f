package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/znapfile/edge-gateway/internal/api/dto"
	"github.com/znapfile/edge-gateway/internal/service"
)

// UploadHandler exposes the mock upload endpoint.
type UploadHandler struct {
	uploads *service.UploadService
}

// NewUploadHandler constructs handler.
func NewUploadHandler(uploadService *service.UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploadService}
}

// Anonymous handles POST /api/v1/upload/anonymous. The request body is
// ignored; no file is received or stored.
func (h *UploadHandler) Anonymous(c *fiber.Ctx) error {
	descriptor := h.uploads.MintAnonymous(c.UserContext())
	return c.JSON(dto.NewUploadResponse(descriptor))
}
