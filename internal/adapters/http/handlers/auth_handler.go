package handlers

import (
	"errors"
	"strings"

	"bookstore-api/internal/adapters/http/middleware"
	"bookstore-api/internal/core/domain"
	"bookstore-api/internal/core/services"
	"bookstore-api/internal/pkg/logging"
	"bookstore-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles the /api/users endpoints
type AuthHandler struct {
	authService *services.AuthService
	log         logging.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, log logging.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         log,
	}
}

// RegisterRequest represents registration request body
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents login request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterResponse is returned by Register
type RegisterResponse struct {
	Succeeded bool                   `json:"succeeded"`
	Errors    []domain.IdentityError `json:"errors,omitempty"`
}

// LoginFailure echoes the rejected user name
type LoginFailure struct {
	Username string `json:"username"`
}

// Register handles user registration
// @Summary Register new user
// @Description Create a Customer account. Email defaults to the user name.
// @Tags Users
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 201 {object} RegisterResponse
// @Failure 400 {object} response.Response
// @Failure 500 {object} RegisterResponse
// @Router /users/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	_, err := h.authService.Register(c.UserContext(), &services.RegisterInput{
		Username: strings.TrimSpace(req.Username),
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
	})
	if err != nil {
		var idErrs domain.IdentityErrors
		if errors.As(err, &idErrs) {
			for _, e := range idErrs {
				h.log.Error(c.UserContext(), "registration refused",
					"location", "AuthHandler.Register", "code", e.Code, "description", e.Description)
			}
			return c.Status(fiber.StatusInternalServerError).JSON(RegisterResponse{Errors: idErrs})
		}
		return fail(c, h.log, "AuthHandler.Register", err)
	}

	return response.Created(c, RegisterResponse{Succeeded: true})
}

// Login handles user login
// @Summary Login user
// @Description Verify credentials and return an access token
// @Tags Users
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} services.LoginResult
// @Failure 400 {object} response.Response
// @Failure 401 {object} LoginFailure
// @Router /users/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return response.BadRequest(c, "Username and password are required")
	}

	result, err := h.authService.Login(c.UserContext(), &services.LoginInput{
		Username: username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(LoginFailure{Username: username})
		}
		return fail(c, h.log, "AuthHandler.Login", err)
	}

	return response.OK(c, result)
}

// Me returns the current user
// @Summary Current user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UserResponse
// @Failure 401 {object} response.Response
// @Router /users/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.authService.Me(c.UserContext(), middleware.PrincipalFrom(c))
	if err != nil {
		return fail(c, h.log, "AuthHandler.Me", err)
	}
	return response.OK(c, user)
}
