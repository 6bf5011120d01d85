package handlers

import (
	"catalog-backend/internal/services"
	"catalog-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type DashboardHandler struct {
	service services.DashboardService
	logger  *logrus.Logger
}

func NewDashboardHandler(service services.DashboardService, logger *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger,
	}
}

// GetDashboardStats godoc
// @Summary Get dashboard statistics
// @Description Entity counts, available and overdue copies, and the ten most recently added books
// @Tags dashboard
// @Accept json
// @Produce json
// @Success 200 {object} utils.StandardResponse "Dashboard statistics"
// @Failure 500 {object} utils.StandardResponse "Failed to retrieve statistics"
// @Router /dashboard/stats [get]
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.GetDashboardStats(c.Context())
	if err != nil {
		return errorResponse(c, h.logger, err, "Failed to retrieve dashboard statistics")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Dashboard statistics retrieved successfully", stats)
}

// GetStatusChart godoc
// @Summary Get pie chart data by loan status
// @Description Copies per loan status, zero counts included
// @Tags charts
// @Accept json
// @Produce json
// @Success 200 {object} utils.StandardResponse "Pie chart data"
// @Failure 500 {object} utils.StandardResponse "Failed to retrieve pie chart data"
// @Router /charts/status [get]
func (h *DashboardHandler) GetStatusChart(c *fiber.Ctx) error {
	data, err := h.service.GetInstancesByStatus(c.Context())
	if err != nil {
		return errorResponse(c, h.logger, err, "Failed to retrieve status chart data")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Status chart data retrieved successfully", data)
}

// GetLanguageChart godoc
// @Summary Get pie chart data by language
// @Description Books per language; books without a language count as Unknown
// @Tags charts
// @Accept json
// @Produce json
// @Success 200 {object} utils.StandardResponse "Pie chart data"
// @Failure 500 {object} utils.StandardResponse "Failed to retrieve pie chart data"
// @Router /charts/language [get]
func (h *DashboardHandler) GetLanguageChart(c *fiber.Ctx) error {
	data, err := h.service.GetBooksByLanguage(c.Context())
	if err != nil {
		return errorResponse(c, h.logger, err, "Failed to retrieve language chart data")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Language chart data retrieved successfully", data)
}
