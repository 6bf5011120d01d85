package handlers

import (
	"context"

	"catalog-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// CoverUploader issues upload URLs for book cover images.
type CoverUploader interface {
	GeneratePresignedURL(ctx context.Context, filename, contentType string) (string, string, error)
}

type UploadHandler struct {
	covers CoverUploader
	logger *logrus.Logger
}

func NewUploadHandler(covers CoverUploader, logger *logrus.Logger) *UploadHandler {
	return &UploadHandler{
		covers: covers,
		logger: logger,
	}
}

// GetPresignedURL godoc
// @Summary Get presigned URL for a cover upload
// @Description Generate a presigned PUT URL for a book cover; store public_url in the book's cover_url
// @Tags upload
// @Accept json
// @Produce json
// @Param filename query string true "Filename"
// @Param contentType query string false "Content Type (image/jpeg, image/png, image/webp)" default(image/jpeg)
// @Success 200 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Failure 500 {object} utils.StandardResponse
// @Router /upload/presign [get]
func (h *UploadHandler) GetPresignedURL(c *fiber.Ctx) error {
	filename := c.Query("filename")
	if filename == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "filename is required")
	}

	contentType := c.Query("contentType", "image/jpeg")

	presignedURL, publicURL, err := h.covers.GeneratePresignedURL(c.Context(), filename, contentType)
	if err != nil {
		return errorResponse(c, h.logger, err, "Failed to generate presigned URL")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Presigned URL generated successfully", fiber.Map{
		"presigned_url": presignedURL,
		"public_url":    publicURL,
	})
}
