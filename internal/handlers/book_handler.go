package handlers

import (
	"catalog-backend/internal/models"
	"catalog-backend/internal/services"
	"catalog-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type BookHandler struct {
	service services.BookService
	logger  *logrus.Logger
}

func NewBookHandler(service services.BookService, logger *logrus.Logger) *BookHandler {
	return &BookHandler{
		service: service,
		logger:  logger,
	}
}

// List godoc
// @Summary Get all books
// @Description Get books with author, language and genres, searchable by title or author name
// @Tags books
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Search by title or author name"
// @Success 200 {object} utils.StandardResponse "List of books"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /books [get]
func (h *BookHandler) List(c *fiber.Ctx) error {
	params := listParams(c)
	books, total, err := h.service.GetAllBooks(c.Context(), params)
	if err != nil {
		return errorResponse(c, h.logger, err, "Failed to retrieve books")
	}
	return listResponse(c, "Books retrieved successfully", params, total, books)
}

// Get godoc
// @Summary Get book by ID
// @Tags books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} utils.StandardResponse "Book details"
// @Failure 400 {object} utils.StandardResponse "Invalid book ID"
// @Failure 404 {object} utils.StandardResponse "Book not found"
// @Router /books/{id} [get]
func (h *BookHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c, "book")
	}
	book, err := h.service.GetBookByID(c.Context(), id)
	if err != nil {
		return errorResponse(c, h.logger, err, "Failed to retrieve book")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Book retrieved successfully", book)
}

// Create godoc
// @Summary Create a new book
// @Description Author and language are optional; genre_ids lists zero or more existing genres
// @Tags books
// @Accept json
// @Produce json
// @Param book body BookRequest true "Book request object"
// @Success 201 {object} utils.StandardResponse "Book created successfully"
// @Failure 400 {object} utils.StandardResponse "Invalid request body"
// @Failure 404 {object} utils.StandardResponse "Referenced author, language or genre not found"
// @Router /books [post]
func (h *BookHandler) Create(c *fiber.Ctx) error {
	var req BookRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	book := req.toModel()
	if err := h.service.CreateBook(c.Context(), book, req.GenreIDs); err != nil {
		return errorResponse(c, h.logger, err, "Failed to create book")
	}

	created, err := h.service.GetBookByID(c.Context(), book.ID)
	if err != nil {
		return errorResponse(c, h.logger, err, "Failed to retrieve book")
	}
	return createdResponse(c, models.KindBook, book.ID, "Book created successfully", created)
}

// Update godoc
// @Summary Update a book
// @Description Replaces every field, including the genre list
// @Tags books
// @Accept json
// @Produce json
// @Param id path int true "Book ID"
// @Param book body BookRequest true "Book request object"
// @Success 200 {object} utils.StandardResponse "Book updated successfully"
// @Failure 400 {object} utils.StandardResponse "Invalid request"
// @Failure 404 {object} utils.StandardResponse "Book or referenced entity not found"
// @Router /books/{id} [put]
func (h *BookHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c, "book")
	}
	var req BookRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if err := h.service.UpdateBook(c.Context(), id, req.toModel(), req.GenreIDs); err != nil {
		return errorResponse(c, h.logger, err, "Failed to update book")
	}

	updated, err := h.service.GetBookByID(c.Context(), id)
	if err != nil {
		return errorResponse(c, h.logger, err, "Failed to retrieve book")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Book updated successfully", updated)
}

// Delete godoc
// @Summary Delete a book
// @Description Refused with 409 while any book instance references the book
// @Tags books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} utils.StandardResponse "Book deleted successfully"
// @Failure 404 {object} utils.StandardResponse "Book not found"
// @Failure 409 {object} utils.StandardResponse "Book still has instances"
// @Router /books/{id} [delete]
func (h *BookHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c, "book")
	}
	if err := h.service.DeleteBook(c.Context(), id); err != nil {
		return errorResponse(c, h.logger, err, "Failed to delete book")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Book deleted successfully", nil)
}
