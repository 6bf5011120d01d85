package handlers

import (
	"catalog-backend/internal/models"
	"catalog-backend/internal/services"
	"catalog-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type GenreHandler struct {
	service services.CatalogService
	logger  *logrus.Logger
}

func NewGenreHandler(service services.CatalogService, logger *logrus.Logger) *GenreHandler {
	return &GenreHandler{
		service: service,
		logger:  logger,
	}
}

// List godoc
// @Summary Get all genres
// @Description Get genres ordered by id with pagination and name search
// @Tags genres
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Search by name"
// @Success 200 {object} utils.StandardResponse "List of genres"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /genres [get]
func (h *GenreHandler) List(c *fiber.Ctx) error {
	params := listParams(c)
	genres, total, err := h.service.GetAllGenres(c.Context(), params)
	if err != nil {
		return errorResponse(c, h.logger, err, "Failed to retrieve genres")
	}
	return listResponse(c, "Genres retrieved successfully", params, total, genres)
}

// Get godoc
// @Summary Get genre by ID
// @Tags genres
// @Produce json
// @Param id path int true "Genre ID"
// @Success 200 {object} utils.StandardResponse "Genre details"
// @Failure 400 {object} utils.StandardResponse "Invalid genre ID"
// @Failure 404 {object} utils.StandardResponse "Genre not found"
// @Router /genres/{id} [get]
func (h *GenreHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c, "genre")
	}
	genre, err := h.service.GetGenreByID(c.Context(), id)
	if err != nil {
		return errorResponse(c, h.logger, err, "Failed to retrieve genre")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Genre retrieved successfully", genre)
}

// Create godoc
// @Summary Create a new genre
// @Tags genres
// @Accept json
// @Produce json
// @Param genre body GenreRequest true "Genre request object"
// @Success 201 {object} utils.StandardResponse "Genre created successfully"
// @Failure 400 {object} utils.StandardResponse "Invalid request body"
// @Router /genres [post]
func (h *GenreHandler) Create(c *fiber.Ctx) error {
	var req GenreRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	genre := req.toModel()
	if err := h.service.CreateGenre(c.Context(), genre); err != nil {
		return errorResponse(c, h.logger, err, "Failed to create genre")
	}
	return createdResponse(c, models.KindGenre, genre.ID, "Genre created successfully", genre)
}

// Update godoc
// @Summary Update a genre
// @Tags genres
// @Accept json
// @Produce json
// @Param id path int true "Genre ID"
// @Param genre body GenreRequest true "Genre request object"
// @Success 200 {object} utils.StandardResponse "Genre updated successfully"
// @Failure 400 {object} utils.StandardResponse "Invalid request"
// @Failure 404 {object} utils.StandardResponse "Genre not found"
// @Router /genres/{id} [put]
func (h *GenreHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c, "genre")
	}
	var req GenreRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	genre := req.toModel()
	if err := h.service.UpdateGenre(c.Context(), id, genre); err != nil {
		return errorResponse(c, h.logger, err, "Failed to update genre")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Genre updated successfully", genre)
}

// Delete godoc
// @Summary Delete a genre
// @Description Delete a genre and remove it from every book that lists it
// @Tags genres
// @Produce json
// @Param id path int true "Genre ID"
// @Success 200 {object} utils.StandardResponse "Genre deleted successfully"
// @Failure 404 {object} utils.StandardResponse "Genre not found"
// @Router /genres/{id} [delete]
func (h *GenreHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c, "genre")
	}
	if err := h.service.DeleteGenre(c.Context(), id); err != nil {
		return errorResponse(c, h.logger, err, "Failed to delete genre")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Genre deleted successfully", nil)
}
