package routes

import (
	"bookstore-api/internal/adapters/http/handlers"
	"bookstore-api/internal/adapters/http/middleware"
	"bookstore-api/internal/adapters/persistence/repositories"
	"bookstore-api/internal/adapters/storage"
	"bookstore-api/internal/config"
	"bookstore-api/internal/core/services"
	"bookstore-api/internal/pkg/jwt"
	"bookstore-api/internal/pkg/logging"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Deps are the process-wide dependencies the routes are built from
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Tokens *jwt.Manager
	Assets storage.Store
	Log    logging.Logger
	// Policy overrides AccessPolicy when set
	Policy middleware.Policy
}

// Setup configures all routes for the application
func Setup(app *fiber.App, deps Deps) {
	cfg := deps.Config
	policy := deps.Policy
	if policy == nil {
		policy = AccessPolicy
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(deps.DB)
	roleRepo := repositories.NewRoleRepository(deps.DB)
	authorRepo := repositories.NewAuthorRepository(deps.DB)
	bookRepo := repositories.NewBookRepository(deps.DB)

	// Initialize services
	authService := services.NewAuthService(userRepo, roleRepo, deps.Tokens, cfg, deps.Log)
	authorService := services.NewAuthorService(authorRepo, deps.Log)
	bookService := services.NewBookService(bookRepo, authorRepo, deps.Assets, deps.Log)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(deps.DB, cfg)
	authHandler := handlers.NewAuthHandler(authService, deps.Log)
	authorHandler := handlers.NewAuthorHandler(authorService, deps.Log)
	bookHandler := handlers.NewBookHandler(bookService, deps.Log)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := &guarded{router: app.Group("/api"), prefix: "/api", auth: deps.Tokens, policy: policy}

	// User routes
	users := api.group("/users", middleware.NoCacheHeaders())
	users.add(fiber.MethodPost, "/register", middleware.AuthRateLimiter(cfg.RateLimit.Auth), authHandler.Register)
	users.add(fiber.MethodPost, "/login", middleware.AuthRateLimiter(cfg.RateLimit.Auth), authHandler.Login)
	users.add(fiber.MethodGet, "/me", authHandler.Me)

	// Author routes
	authors := api.group("/authors")
	authors.add(fiber.MethodGet, "", authorHandler.List)
	authors.add(fiber.MethodGet, "/:id", authorHandler.Get)
	authors.add(fiber.MethodPost, "", authorHandler.Create)
	authors.add(fiber.MethodPut, "/:id", authorHandler.Update)
	authors.add(fiber.MethodDelete, "/:id", authorHandler.Delete)

	// Book routes
	books := api.group("/books")
	books.add(fiber.MethodGet, "", bookHandler.List)
	books.add(fiber.MethodGet, "/:id", bookHandler.Get)
	books.add(fiber.MethodPost, "", bookHandler.Create)
	books.add(fiber.MethodPut, "/:id", bookHandler.Update)
	books.add(fiber.MethodDelete, "/:id", bookHandler.Delete)
}

// guarded registers routes behind the gate the policy assigns to them
type guarded struct {
	router fiber.Router
	prefix string
	auth   middleware.Authenticator
	policy middleware.Policy
}

func (g *guarded) group(path string, handlers ...fiber.Handler) *guarded {
	return &guarded{
		router: g.router.Group(path, handlers...),
		prefix: g.prefix + path,
		auth:   g.auth,
		policy: g.policy,
	}
}

func (g *guarded) add(method, path string, handlers ...fiber.Handler) {
	req := g.policy.Lookup(method, g.prefix+path)
	chain := append([]fiber.Handler{middleware.Gate(g.auth, req)}, handlers...)
	g.router.Add(method, path, chain...)
}
