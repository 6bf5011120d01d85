package handlers

import (
	"strconv"

	"catalog-backend/internal/models"
	"catalog-backend/internal/repository"
	"catalog-backend/internal/services"
	"catalog-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type BookInstanceHandler struct {
	service services.BookService
	logger  *logrus.Logger
}

func NewBookInstanceHandler(service services.BookService, logger *logrus.Logger) *BookInstanceHandler {
	return &BookInstanceHandler{
		service: service,
		logger:  logger,
	}
}

// List godoc
// @Summary Get all book instances
// @Description Get copies ordered by due date, undated copies first
// @Tags book-instances
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param book_id query int false "Only copies of this book"
// @Param status query string false "Only copies in this status (maintenance, on-loan, available, reserved)"
// @Param search query string false "Search by imprint or slug"
// @Success 200 {object} utils.StandardResponse "List of book instances"
// @Failure 400 {object} utils.StandardResponse "Invalid filter"
// @Router /book-instances [get]
func (h *BookInstanceHandler) List(c *fiber.Ctx) error {
	params := repository.InstanceListParams{ListParams: listParams(c)}

	if raw := c.Query("book_id"); raw != "" {
		bookID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid book_id filter")
		}
		params.BookID = uint(bookID)
	}
	if raw := c.Query("status"); raw != "" {
		status := models.LoanStatus(raw)
		if !status.Valid() {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid status filter")
		}
		params.Status = status
	}

	instances, total, err := h.service.GetAllBookInstances(c.Context(), params)
	if err != nil {
		return errorResponse(c, h.logger, err, "Failed to retrieve book instances")
	}
	return listResponse(c, "Book instances retrieved successfully", params.ListParams, total, instances)
}

// Get godoc
// @Summary Get book instance by ID
// @Tags book-instances
// @Produce json
// @Param id path string true "Book instance UUID"
// @Success 200 {object} utils.StandardResponse "Book instance details"
// @Failure 400 {object} utils.StandardResponse "Invalid book instance ID"
// @Failure 404 {object} utils.StandardResponse "Book instance not found"
// @Router /book-instances/{id} [get]
func (h *BookInstanceHandler) Get(c *fiber.Ctx) error {
	id, ok := parseUUID(c)
	if !ok {
		return invalidID(c, "book instance")
	}
	instance, err := h.service.GetBookInstanceByID(c.Context(), id)
	if err != nil {
		return errorResponse(c, h.logger, err, "Failed to retrieve book instance")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Book instance retrieved successfully", instance)
}

// Create godoc
// @Summary Create a new book instance
// @Description The slug defaults to one derived from the book title and the status to maintenance
// @Tags book-instances
// @Accept json
// @Produce json
// @Param instance body BookInstanceRequest true "Book instance request object"
// @Success 201 {object} utils.StandardResponse "Book instance created successfully"
// @Failure 400 {object} utils.StandardResponse "Invalid request body"
// @Failure 404 {object} utils.StandardResponse "Book not found"
// @Router /book-instances [post]
func (h *BookInstanceHandler) Create(c *fiber.Ctx) error {
	var req BookInstanceRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	instance, err := req.toModel()
	if err != nil {
		return errorResponse(c, h.logger, err, "Failed to create book instance")
	}
	if err := h.service.CreateBookInstance(c.Context(), instance); err != nil {
		return errorResponse(c, h.logger, err, "Failed to create book instance")
	}
	return createdResponse(c, models.KindBookInstance, instance.ID, "Book instance created successfully", instance)
}

// Update godoc
// @Summary Update a book instance
// @Description Any status may follow any other; a slug cannot change once set
// @Tags book-instances
// @Accept json
// @Produce json
// @Param id path string true "Book instance UUID"
// @Param instance body BookInstanceRequest true "Book instance request object"
// @Success 200 {object} utils.StandardResponse "Book instance updated successfully"
// @Failure 400 {object} utils.StandardResponse "Invalid request"
// @Failure 404 {object} utils.StandardResponse "Book instance or book not found"
// @Router /book-instances/{id} [put]
func (h *BookInstanceHandler) Update(c *fiber.Ctx) error {
	id, ok := parseUUID(c)
	if !ok {
		return invalidID(c, "book instance")
	}
	var req BookInstanceRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	instance, err := req.toModel()
	if err != nil {
		return errorResponse(c, h.logger, err, "Failed to update book instance")
	}
	if err := h.service.UpdateBookInstance(c.Context(), id, instance); err != nil {
		return errorResponse(c, h.logger, err, "Failed to update book instance")
	}

	updated, err := h.service.GetBookInstanceByID(c.Context(), id)
	if err != nil {
		return errorResponse(c, h.logger, err, "Failed to retrieve book instance")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Book instance updated successfully", updated)
}

// Delete godoc
// @Summary Delete a book instance
// @Tags book-instances
// @Produce json
// @Param id path string true "Book instance UUID"
// @Success 200 {object} utils.StandardResponse "Book instance deleted successfully"
// @Failure 404 {object} utils.StandardResponse "Book instance not found"
// @Router /book-instances/{id} [delete]
func (h *BookInstanceHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseUUID(c)
	if !ok {
		return invalidID(c, "book instance")
	}
	if err := h.service.DeleteBookInstance(c.Context(), id); err != nil {
		return errorResponse(c, h.logger, err, "Failed to delete book instance")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Book instance deleted successfully", nil)
}
