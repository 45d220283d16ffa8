package handlers

import (
	"context"

	"pantry-backend/internal/services"
	"pantry-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Presigner is satisfied by *services.MinIOService.
type Presigner interface {
	GeneratePresignedURL(ctx context.Context, filename, contentType string) (*services.PresignedUpload, error)
}

type UploadHandler struct {
	presigner Presigner
	logger    *logrus.Logger
}

// NewUploadHandler accepts a nil presigner when object storage is not configured.
func NewUploadHandler(presigner Presigner, logger *logrus.Logger) *UploadHandler {
	return &UploadHandler{
		presigner: presigner,
		logger:    logger,
	}
}

// GetPresignedURL godoc
// @Summary Get presigned URL for a food item image
// @Description Generate a presigned URL for uploading an item image to MinIO/S3
// @Tags Upload
// @Produce json
// @Param filename query string true "Filename"
// @Param contentType query string false "Content Type" default(image/jpeg)
// @Success 200 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Failure 503 {object} utils.StandardResponse
// @Router /upload/presign [get]
func (h *UploadHandler) GetPresignedURL(c *fiber.Ctx) error {
	if h.presigner == nil {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, "Image uploads are not configured")
	}

	filename := c.Query("filename")
	if filename == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "filename is required")
	}
	contentType := c.Query("contentType", "image/jpeg")

	upload, err := h.presigner.GeneratePresignedURL(c.Context(), filename, contentType)
	if err != nil {
		return handleServiceError(c, h.logger, err, "Failed to generate presigned URL")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Presigned URL generated successfully", upload)
}
