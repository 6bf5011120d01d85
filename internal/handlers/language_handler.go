package handlers

import (
	"catalog-backend/internal/models"
	"catalog-backend/internal/services"
	"catalog-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type LanguageHandler struct {
	service services.CatalogService
	logger  *logrus.Logger
}

func NewLanguageHandler(service services.CatalogService, logger *logrus.Logger) *LanguageHandler {
	return &LanguageHandler{
		service: service,
		logger:  logger,
	}
}

// List godoc
// @Summary Get all languages
// @Description Get languages ordered by id with pagination and name search
// @Tags languages
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Search by name"
// @Success 200 {object} utils.StandardResponse "List of languages"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /languages [get]
func (h *LanguageHandler) List(c *fiber.Ctx) error {
	params := listParams(c)
	languages, total, err := h.service.GetAllLanguages(c.Context(), params)
	if err != nil {
		return errorResponse(c, h.logger, err, "Failed to retrieve languages")
	}
	return listResponse(c, "Languages retrieved successfully", params, total, languages)
}

// Get godoc
// @Summary Get language by ID
// @Tags languages
// @Produce json
// @Param id path int true "Language ID"
// @Success 200 {object} utils.StandardResponse "Language details"
// @Failure 400 {object} utils.StandardResponse "Invalid language ID"
// @Failure 404 {object} utils.StandardResponse "Language not found"
// @Router /languages/{id} [get]
func (h *LanguageHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c, "language")
	}
	language, err := h.service.GetLanguageByID(c.Context(), id)
	if err != nil {
		return errorResponse(c, h.logger, err, "Failed to retrieve language")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Language retrieved successfully", language)
}

// Create godoc
// @Summary Create a new language
// @Tags languages
// @Accept json
// @Produce json
// @Param language body LanguageRequest true "Language request object"
// @Success 201 {object} utils.StandardResponse "Language created successfully"
// @Failure 400 {object} utils.StandardResponse "Invalid request body"
// @Router /languages [post]
func (h *LanguageHandler) Create(c *fiber.Ctx) error {
	var req LanguageRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	language := req.toModel()
	if err := h.service.CreateLanguage(c.Context(), language); err != nil {
		return errorResponse(c, h.logger, err, "Failed to create language")
	}
	return createdResponse(c, models.KindLanguage, language.ID, "Language created successfully", language)
}

// Update godoc
// @Summary Update a language
// @Tags languages
// @Accept json
// @Produce json
// @Param id path int true "Language ID"
// @Param language body LanguageRequest true "Language request object"
// @Success 200 {object} utils.StandardResponse "Language updated successfully"
// @Failure 400 {object} utils.StandardResponse "Invalid request"
// @Failure 404 {object} utils.StandardResponse "Language not found"
// @Router /languages/{id} [put]
func (h *LanguageHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c, "language")
	}
	var req LanguageRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	language := req.toModel()
	if err := h.service.UpdateLanguage(c.Context(), id, language); err != nil {
		return errorResponse(c, h.logger, err, "Failed to update language")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Language updated successfully", language)
}

// Delete godoc
// @Summary Delete a language
// @Description Delete a language and clear it on every book written in it
// @Tags languages
// @Produce json
// @Param id path int true "Language ID"
// @Success 200 {object} utils.StandardResponse "Language deleted successfully"
// @Failure 404 {object} utils.StandardResponse "Language not found"
// @Router /languages/{id} [delete]
func (h *LanguageHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c, "language")
	}
	if err := h.service.DeleteLanguage(c.Context(), id); err != nil {
		return errorResponse(c, h.logger, err, "Failed to delete language")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Language deleted successfully", nil)
}
