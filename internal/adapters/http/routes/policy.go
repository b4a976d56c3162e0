package routes

import (
	"bookstore-api/internal/adapters/http/middleware"
	"bookstore-api/internal/core/domain"
)

// AccessPolicy is the access rule of every API route. Routes registered
// through register but missing here require authentication.
var AccessPolicy = middleware.Policy{
	"POST /api/users/register": middleware.PublicAccess,
	"POST /api/users/login":    middleware.PublicAccess,
	"GET /api/users/me":        middleware.AuthenticatedAccess,

	"GET /api/authors":        middleware.PublicAccess,
	"GET /api/authors/:id":    middleware.PublicAccess,
	"POST /api/authors":       middleware.AuthenticatedAccess,
	"PUT /api/authors/:id":    middleware.AuthenticatedAccess,
	"DELETE /api/authors/:id": middleware.AuthenticatedAccess,

	"GET /api/books":        middleware.AuthenticatedAccess,
	"GET /api/books/:id":    middleware.AuthenticatedAccess,
	"POST /api/books":       middleware.RequiresRole(domain.RoleAdministrator),
	"PUT /api/books/:id":    middleware.RequiresRole(domain.RoleAdministrator),
	"DELETE /api/books/:id": middleware.RequiresRole(domain.RoleAdministrator),
}
