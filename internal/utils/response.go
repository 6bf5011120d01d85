package utils

import "github.com/gofiber/fiber/v2"

// StandardResponse is the envelope every catalog endpoint answers with.
type StandardResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// PaginationMeta represents pagination metadata
type PaginationMeta struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

func SuccessResponse(c *fiber.Ctx, code int, message string, data interface{}) error {
	return send(c, code, message, data, nil)
}

func SuccessWithMetaResponse(c *fiber.Ctx, code int, message string, data interface{}, meta interface{}) error {
	return send(c, code, message, data, meta)
}

// CreatedResponse answers 201 and points Location at the new resource.
func CreatedResponse(c *fiber.Ctx, location, message string, data interface{}) error {
	if location != "" {
		c.Location(location)
	}
	return send(c, fiber.StatusCreated, message, data, nil)
}

func ErrorResponse(c *fiber.Ctx, code int, message string) error {
	return send(c, code, message, nil, nil)
}

// ErrorWithDataResponse carries details such as per-field validation failures.
func ErrorWithDataResponse(c *fiber.Ctx, code int, message string, data interface{}) error {
	return send(c, code, message, data, nil)
}

func send(c *fiber.Ctx, code int, message string, data, meta interface{}) error {
	return c.Status(code).JSON(StandardResponse{
		Status:  statusFor(code),
		Code:    code,
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

// statusFor: "success" below 400, "error" for client errors, "fail" for server errors.
func statusFor(code int) string {
	switch {
	case code >= 500:
		return "fail"
	case code >= 400:
		return "error"
	default:
		return "success"
	}
}

func CreatePaginationMeta(page, limit int, total int64) PaginationMeta {
	if limit < 1 {
		limit = 1
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	if totalPages == 0 {
		totalPages = 1
	}

	return PaginationMeta{
		Page:        page,
		Limit:       limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}
