package handlers

import (
	"bookstore-api/internal/adapters/persistence/models"
	"bookstore-api/internal/core/services"
	"bookstore-api/internal/pkg/logging"
	"bookstore-api/internal/pkg/pagination"
	"bookstore-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BookHandler handles the /api/books endpoints
type BookHandler struct {
	bookService *services.BookService
	log           logging.Logger
}

// NewBookHandler creates a new book handler
func NewBookHandler(bookService *services.BookService, log logging.Logger) *BookHandler {
	return &BookHandler{bookService: bookService, log: log}
}

// List returns all books
// @Summary List books
// @Description Without ?page the full list is returned, otherwise a paginated envelope. Each book embeds its author and the base64 image in file.
// @Tags Books
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page" default(20)
// @Success 200 {array} models.BookDTO
// @Failure 500 {object} response.Response
// @Router /books [get]
func (h *BookHandler) List(c *fiber.Ctx) error {
	if pagination.Requested(c) {
		params := pagination.GetParams(c)
		items, total, err := h.bookService.Page(c.UserContext(), params)
		if err != nil {
			return fail(c, h.log, "BookHandler.List", err)
		}
		return response.OK(c, pagination.NewResponse(items, params, total))
	}

	books, err := h.bookService.List(c.UserContext())
	if err != nil {
		return fail(c, h.log, "BookHandler.List", err)
	}
	return response.OK(c, books)
}

// Get returns one book
// @Summary Get book
// @Tags Books
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Success 200 {object} models.BookDTO
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id} [get]
func (h *BookHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, h.log, "BookHandler.Get", err)
	}
	book, err := h.bookService.Get(c.UserContext(), id)
	if err != nil {
		return fail(c, h.log, "BookHandler.Get", err)
	}
	return response.OK(c, book)
}

// Create adds a book. When file is set it is written to image after the
// row is saved.
// @Summary Create book
// @Tags Books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body models.BookCreateDTO true "Book"
// @Success 201 {object} models.BookDTO
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /books [post]
func (h *BookHandler) Create(c *fiber.Ctx) error {
	var input *models.BookCreateDTO
	if hasBody(c) {
		input = &models.BookCreateDTO{}
		if err := c.BodyParser(input); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
	}

	book, err := h.bookService.Create(c.UserContext(), input)
	if err != nil {
		return fail(c, h.log, "BookHandler.Create", err)
	}
	return response.Created(c, book)
}

// Update replaces a book and reconciles its image
// @Summary Update book
// @Tags Books
// @Accept json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Param body body models.BookUpdateDTO true "Book"
// @Success 204
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id} [put]
func (h *BookHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, h.log, "BookHandler.Update", err)
	}

	var input *models.BookUpdateDTO
	if hasBody(c) {
		input = &models.BookUpdateDTO{}
		if err := c.BodyParser(input); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
	}

	if err := h.bookService.Update(c.UserContext(), id, input); err != nil {
		return fail(c, h.log, "BookHandler.Update", err)
	}
	return response.NoContent(c)
}

// Delete removes a book
// @Summary Delete book
// @Tags Books
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Success 204
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id} [delete]
func (h *BookHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, h.log, "BookHandler.Delete", err)
	}
	if err := h.bookService.Delete(c.UserContext(), id); err != nil {
		return fail(c, h.log, "BookHandler.Delete", err)
	}
	return response.NoContent(c)
}
