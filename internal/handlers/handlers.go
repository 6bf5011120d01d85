package handlers

import (
	"errors"
	"strconv"
	"strings"

	"catalog-backend/internal/apperr"
	"catalog-backend/internal/models"
	"catalog-backend/internal/repository"
	"catalog-backend/internal/routes"
	"catalog-backend/internal/services"
	"catalog-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// parseID reads the numeric :id route parameter.
func parseID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func parseUUID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func listParams(c *fiber.Ctx) repository.ListParams {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	return services.NormalizeListParams(repository.ListParams{
		Page:   page,
		Limit:  limit,
		Search: strings.TrimSpace(c.Query("search", "")),
	})
}

func listResponse(c *fiber.Ctx, message string, params repository.ListParams, total int64, data interface{}) error {
	meta := utils.CreatePaginationMeta(params.Page, params.Limit, total)
	return utils.SuccessWithMetaResponse(c, fiber.StatusOK, message, data, meta)
}

// createdResponse answers 201 with the new entity's detail path in Location.
func createdResponse(c *fiber.Ctx, kind models.Kind, id any, message string, data interface{}) error {
	return utils.CreatedResponse(c, routes.DetailPath(kind, id), message, data)
}

// errorResponse maps catalog errors onto HTTP statuses. Anything that is not
// a catalog error is logged and reported as a 500 with the fallback message.
func errorResponse(c *fiber.Ctx, logger *logrus.Logger, err error, fallback string) error {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		logger.WithError(err).WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
		}).Error(fallback)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, fallback)
	}

	switch appErr.Kind {
	case apperr.KindValidation:
		if len(appErr.Details) > 0 {
			return utils.ErrorWithDataResponse(c, fiber.StatusBadRequest, appErr.Message, appErr.Details)
		}
		return utils.ErrorResponse(c, fiber.StatusBadRequest, appErr.Message)
	case apperr.KindNotFound:
		return utils.ErrorResponse(c, fiber.StatusNotFound, appErr.Message)
	case apperr.KindReferentialIntegrity, apperr.KindConflict:
		return utils.ErrorResponse(c, fiber.StatusConflict, appErr.Message)
	}
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, fallback)
}

func invalidID(c *fiber.Ctx, resource string) error {
	return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid "+resource+" ID")
}

func invalidBody(c *fiber.Ctx) error {
	return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
}
