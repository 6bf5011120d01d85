package handlers

import (
	"catalog-backend/internal/models"
	"catalog-backend/internal/services"
	"catalog-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type MyModelNameHandler struct {
	service services.CatalogService
	logger  *logrus.Logger
}

func NewMyModelNameHandler(service services.CatalogService, logger *logrus.Logger) *MyModelNameHandler {
	return &MyModelNameHandler{
		service: service,
		logger:  logger,
	}
}

// List godoc
// @Summary Get all records
// @Description Get demo records ordered by my_field_name descending
// @Tags my-model-names
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Search by my_field_name"
// @Success 200 {object} utils.StandardResponse "List of records"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /my-model-names [get]
func (h *MyModelNameHandler) List(c *fiber.Ctx) error {
	params := listParams(c)
	records, total, err := h.service.GetAllMyModelNames(c.Context(), params)
	if err != nil {
		return errorResponse(c, h.logger, err, "Failed to retrieve records")
	}
	return listResponse(c, "Records retrieved successfully", params, total, records)
}

// Get godoc
// @Summary Get record by ID
// @Tags my-model-names
// @Produce json
// @Param id path int true "Record ID"
// @Success 200 {object} utils.StandardResponse "Record details"
// @Failure 400 {object} utils.StandardResponse "Invalid record ID"
// @Failure 404 {object} utils.StandardResponse "Record not found"
// @Router /my-model-names/{id} [get]
func (h *MyModelNameHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c, "record")
	}
	record, err := h.service.GetMyModelNameByID(c.Context(), id)
	if err != nil {
		return errorResponse(c, h.logger, err, "Failed to retrieve record")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Record retrieved successfully", record)
}

// Create godoc
// @Summary Create a new record
// @Tags my-model-names
// @Accept json
// @Produce json
// @Param record body MyModelNameRequest true "Record request object"
// @Success 201 {object} utils.StandardResponse "Record created successfully"
// @Failure 400 {object} utils.StandardResponse "Invalid request body"
// @Router /my-model-names [post]
func (h *MyModelNameHandler) Create(c *fiber.Ctx) error {
	var req MyModelNameRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	record := req.toModel()
	if err := h.service.CreateMyModelName(c.Context(), record); err != nil {
		return errorResponse(c, h.logger, err, "Failed to create record")
	}
	return createdResponse(c, models.KindMyModelName, record.ID, "Record created successfully", record)
}

// Update godoc
// @Summary Update a record
// @Tags my-model-names
// @Accept json
// @Produce json
// @Param id path int true "Record ID"
// @Param record body MyModelNameRequest true "Record request object"
// @Success 200 {object} utils.StandardResponse "Record updated successfully"
// @Failure 400 {object} utils.StandardResponse "Invalid request"
// @Failure 404 {object} utils.StandardResponse "Record not found"
// @Router /my-model-names/{id} [put]
func (h *MyModelNameHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c, "record")
	}
	var req MyModelNameRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	record := req.toModel()
	if err := h.service.UpdateMyModelName(c.Context(), id, record); err != nil {
		return errorResponse(c, h.logger, err, "Failed to update record")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Record updated successfully", record)
}

// Delete godoc
// @Summary Delete a record
// @Description Delete a demo record
// @Tags my-model-names
// @Produce json
// @Param id path int true "Record ID"
// @Success 200 {object} utils.StandardResponse "Record deleted successfully"
// @Failure 404 {object} utils.StandardResponse "Record not found"
// @Router /my-model-names/{id} [delete]
func (h *MyModelNameHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c, "record")
	}
	if err := h.service.DeleteMyModelName(c.Context(), id); err != nil {
		return errorResponse(c, h.logger, err, "Failed to delete record")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Record deleted successfully", nil)
}
