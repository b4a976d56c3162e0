package handlers

import (
	"fmt"
	"strconv"

	"bookstore-api/internal/adapters/http/middleware"
	"bookstore-api/internal/core/domain"
	"bookstore-api/internal/pkg/logging"
	"bookstore-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// parseID reads the :id path parameter. Non-numeric and non-positive ids
// are validation errors.
func parseID(c *fiber.Ctx) (uint, error) {
	raw := c.Params("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: invalid id %q", domain.ErrValidation, raw)
	}
	return uint(id), nil
}

// fail writes err as an error response. Server errors are logged with
// their cause chain under location and returned with the raw message.
func fail(c *fiber.Ctx, log logging.Logger, location string, err error) error {
	status := middleware.StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		logging.LogError(c.UserContext(), log, "request failed", err, "location", location)
	}
	return response.Error(c, status, err.Error())
}

// hasBody reports whether the request carried a body to parse
func hasBody(c *fiber.Ctx) bool {
	return len(c.Body()) > 0
}
