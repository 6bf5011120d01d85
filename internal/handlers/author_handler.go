package handlers

import (
	"catalog-backend/internal/models"
	"catalog-backend/internal/services"
	"catalog-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AuthorHandler struct {
	service services.CatalogService
	logger  *logrus.Logger
}

func NewAuthorHandler(service services.CatalogService, logger *logrus.Logger) *AuthorHandler {
	return &AuthorHandler{
		service: service,
		logger:  logger,
	}
}

// List godoc
// @Summary Get all authors
// @Description Get authors ordered by last name, then first name
// @Tags authors
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Search by first or last name"
// @Success 200 {object} utils.StandardResponse "List of authors"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /authors [get]
func (h *AuthorHandler) List(c *fiber.Ctx) error {
	params := listParams(c)
	authors, total, err := h.service.GetAllAuthors(c.Context(), params)
	if err != nil {
		return errorResponse(c, h.logger, err, "Failed to retrieve authors")
	}
	return listResponse(c, "Authors retrieved successfully", params, total, authors)
}

// Get godoc
// @Summary Get author by ID
// @Tags authors
// @Produce json
// @Param id path int true "Author ID"
// @Success 200 {object} utils.StandardResponse "Author details"
// @Failure 400 {object} utils.StandardResponse "Invalid author ID"
// @Failure 404 {object} utils.StandardResponse "Author not found"
// @Router /authors/{id} [get]
func (h *AuthorHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c, "author")
	}
	author, err := h.service.GetAuthorByID(c.Context(), id)
	if err != nil {
		return errorResponse(c, h.logger, err, "Failed to retrieve author")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Author retrieved successfully", author)
}

// Create godoc
// @Summary Create a new author
// @Description Dates use the YYYY-MM-DD format and may be omitted
// @Tags authors
// @Accept json
// @Produce json
// @Param author body AuthorRequest true "Author request object"
// @Success 201 {object} utils.StandardResponse "Author created successfully"
// @Failure 400 {object} utils.StandardResponse "Invalid request body"
// @Router /authors [post]
func (h *AuthorHandler) Create(c *fiber.Ctx) error {
	var req AuthorRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	author, err := req.toModel()
	if err != nil {
		return errorResponse(c, h.logger, err, "Failed to create author")
	}
	if err := h.service.CreateAuthor(c.Context(), author); err != nil {
		return errorResponse(c, h.logger, err, "Failed to create author")
	}
	return createdResponse(c, models.KindAuthor, author.ID, "Author created successfully", author)
}

// Update godoc
// @Summary Update an author
// @Tags authors
// @Accept json
// @Produce json
// @Param id path int true "Author ID"
// @Param author body AuthorRequest true "Author request object"
// @Success 200 {object} utils.StandardResponse "Author updated successfully"
// @Failure 400 {object} utils.StandardResponse "Invalid request"
// @Failure 404 {object} utils.StandardResponse "Author not found"
// @Router /authors/{id} [put]
func (h *AuthorHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c, "author")
	}
	var req AuthorRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	author, err := req.toModel()
	if err != nil {
		return errorResponse(c, h.logger, err, "Failed to update author")
	}
	if err := h.service.UpdateAuthor(c.Context(), id, author); err != nil {
		return errorResponse(c, h.logger, err, "Failed to update author")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Author updated successfully", author)
}

// Delete godoc
// @Summary Delete an author
// @Description Delete an author; their books remain with no author
// @Tags authors
// @Produce json
// @Param id path int true "Author ID"
// @Success 200 {object} utils.StandardResponse "Author deleted successfully"
// @Failure 404 {object} utils.StandardResponse "Author not found"
// @Router /authors/{id} [delete]
func (h *AuthorHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c, "author")
	}
	if err := h.service.DeleteAuthor(c.Context(), id); err != nil {
		return errorResponse(c, h.logger, err, "Failed to delete author")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Author deleted successfully", nil)
}
