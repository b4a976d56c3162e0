package handlers

import (
	"bookstore-api/internal/adapters/persistence/models"
	"bookstore-api/internal/core/services"
	"bookstore-api/internal/pkg/logging"
	"bookstore-api/internal/pkg/pagination"
	"bookstore-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthorHandler handles the /api/authors endpoints
type AuthorHandler struct {
	authorService *services.AuthorService
	log           logging.Logger
}

// NewAuthorHandler creates a new author handler
func NewAuthorHandler(authorService *services.AuthorService, log logging.Logger) *AuthorHandler {
	return &AuthorHandler{authorService: authorService, log: log}
}

// List returns all authors
// @Summary List authors
// @Description Without ?page the full list is returned, otherwise a paginated envelope.
// @Tags Authors
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page" default(20)
// @Success 200 {array} models.AuthorDTO
// @Failure 500 {object} response.Response
// @Router /authors [get]
func (h *AuthorHandler) List(c *fiber.Ctx) error {
	if pagination.Requested(c) {
		params := pagination.GetParams(c)
		items, total, err := h.authorService.Page(c.UserContext(), params)
		if err != nil {
			return fail(c, h.log, "AuthorHandler.List", err)
		}
		return response.OK(c, pagination.NewResponse(items, params, total))
	}

	authors, err := h.authorService.List(c.UserContext())
	if err != nil {
		return fail(c, h.log, "AuthorHandler.List", err)
	}
	return response.OK(c, authors)
}

// Get returns one author
// @Summary Get author
// @Tags Authors
// @Produce json
// @Param id path int true "Author ID"
// @Success 200 {object} models.AuthorDTO
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /authors/{id} [get]
func (h *AuthorHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, h.log, "AuthorHandler.Get", err)
	}
	author, err := h.authorService.Get(c.UserContext(), id)
	if err != nil {
		return fail(c, h.log, "AuthorHandler.Get", err)
	}
	return response.OK(c, author)
}

// Create adds an author
// @Summary Create author
// @Tags Authors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body models.AuthorCreateDTO true "Author"
// @Success 201 {object} models.AuthorDTO
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /authors [post]
func (h *AuthorHandler) Create(c *fiber.Ctx) error {
	var input *models.AuthorCreateDTO
	if hasBody(c) {
		input = &models.AuthorCreateDTO{}
		if err := c.BodyParser(input); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
	}

	author, err := h.authorService.Create(c.UserContext(), input)
	if err != nil {
		return fail(c, h.log, "AuthorHandler.Create", err)
	}
	return response.Created(c, author)
}

// Update replaces an author
// @Summary Update author
// @Tags Authors
// @Accept json
// @Security BearerAuth
// @Param id path int true "Author ID"
// @Param body body models.AuthorUpdateDTO true "Author"
// @Success 204
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /authors/{id} [put]
func (h *AuthorHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, h.log, "AuthorHandler.Update", err)
	}

	var input *models.AuthorUpdateDTO
	if hasBody(c) {
		input = &models.AuthorUpdateDTO{}
		if err := c.BodyParser(input); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
	}

	if err := h.authorService.Update(c.UserContext(), id, input); err != nil {
		return fail(c, h.log, "AuthorHandler.Update", err)
	}
	return response.NoContent(c)
}

// Delete removes an author
// @Summary Delete author
// @Tags Authors
// @Security BearerAuth
// @Param id path int true "Author ID"
// @Success 204
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /authors/{id} [delete]
func (h *AuthorHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, h.log, "AuthorHandler.Delete", err)
	}
	if err := h.authorService.Delete(c.UserContext(), id); err != nil {
		return fail(c, h.log, "AuthorHandler.Delete", err)
	}
	return response.NoContent(c)
}
