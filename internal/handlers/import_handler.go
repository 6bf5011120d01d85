package handlers

import (
	"catalog-backend/internal/models"
	"catalog-backend/internal/services"
	"catalog-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ImportHandler struct {
	service services.ImportService
	logger  *logrus.Logger
}

func NewImportHandler(service services.ImportService, logger *logrus.Logger) *ImportHandler {
	return &ImportHandler{
		service: service,
		logger:  logger,
	}
}

// ImportByISBN godoc
// @Summary Import a book from Open Library
// @Description Fetch a record by ISBN and create the book, resolving author, language and genres by name
// @Tags import
// @Accept json
// @Produce json
// @Param isbn path string true "ISBN-10 or ISBN-13"
// @Success 201 {object} utils.StandardResponse "Book imported successfully"
// @Failure 400 {object} utils.StandardResponse "Invalid ISBN"
// @Failure 404 {object} utils.StandardResponse "ISBN not found on Open Library"
// @Failure 409 {object} utils.StandardResponse "Book already exists"
// @Failure 500 {object} utils.StandardResponse "Import failed"
// @Router /import/isbn/{isbn} [post]
func (h *ImportHandler) ImportByISBN(c *fiber.Ctx) error {
	book, _, err := h.service.ImportByISBN(c.Context(), c.Params("isbn"))
	if err != nil {
		return errorResponse(c, h.logger, err, "Failed to import book")
	}
	return createdResponse(c, models.KindBook, book.ID, "Book imported successfully", book)
}

// GetLastImportLog godoc
// @Summary Get last import log
// @Description Get the most recent Open Library import attempt
// @Tags import
// @Accept json
// @Produce json
// @Success 200 {object} utils.StandardResponse "Last import log"
// @Failure 500 {object} utils.StandardResponse "Failed to retrieve import log"
// @Router /import/last-log [get]
func (h *ImportHandler) GetLastImportLog(c *fiber.Ctx) error {
	importLog, err := h.service.GetLastImportLog(c.Context())
	if err != nil {
		return errorResponse(c, h.logger, err, "Failed to retrieve import log")
	}

	if importLog == nil {
		return utils.SuccessResponse(c, fiber.StatusOK, "No import logs found", nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Last import log retrieved successfully", importLog)
}
