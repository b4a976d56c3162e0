package middleware

import (
	"errors"
	"fmt"
	"strings"

	"bookstore-api/internal/core/domain"
	"bookstore-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// principalKey is the fiber.Locals key holding the authenticated caller
const principalKey = "principal"

// Access is the kind of check a route demands
type Access int

const (
	// Public routes run without a token
	Public Access = iota
	// AnyAuthenticated routes need a valid token
	AnyAuthenticated
	// RoleRequired routes need a valid token carrying Requirement.Role
	RoleRequired
)

// Requirement is the access rule attached to one route
type Requirement struct {
	Access Access
	Role   string
}

var (
	PublicAccess        = Requirement{Access: Public}
	AuthenticatedAccess = Requirement{Access: AnyAuthenticated}
)

// RequiresRole builds a requirement for the named role
func RequiresRole(name string) Requirement {
	return Requirement{Access: RoleRequired, Role: name}
}

func (r Requirement) String() string {
	switch r.Access {
	case Public:
		return "Public"
	case AnyAuthenticated:
		return "AnyAuthenticated"
	default:
		return fmt.Sprintf("RequiresRole(%s)", r.Role)
	}
}

// Policy maps "METHOD /path" route keys to their requirement
type Policy map[string]Requirement

// RouteKey builds the policy key for a route
func RouteKey(method, path string) string {
	return strings.ToUpper(method) + " " + path
}

// Lookup returns the requirement for a route. Routes missing from the
// policy require authentication.
func (p Policy) Lookup(method, path string) Requirement {
	if req, ok := p[RouteKey(method, path)]; ok {
		return req
	}
	return AuthenticatedAccess
}

// Authorize decides whether principal may use a route with requirement
// req. It returns nil, domain.ErrUnauthenticated or domain.ErrForbidden.
func Authorize(req Requirement, principal *domain.Principal) error {
	switch req.Access {
	case Public:
		return nil
	case AnyAuthenticated:
		if principal == nil {
			return domain.ErrUnauthenticated
		}
		return nil
	default:
		if principal == nil {
			return domain.ErrUnauthenticated
		}
		if !principal.HasRole(req.Role) {
			return fmt.Errorf("%w: role %s required", domain.ErrForbidden, req.Role)
		}
		return nil
	}
}

// Authenticator resolves a bearer token to the calling principal
type Authenticator interface {
	Authenticate(token string) (*domain.Principal, error)
}

// Gate enforces req before the route handler runs. Denied requests never
// reach the handler: 401 when the token is missing or invalid, 403 when
// the caller lacks the role.
func Gate(auth Authenticator, req Requirement) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if req.Access == Public {
			return c.Next()
		}

		accessToken := bearerToken(c)
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		principal, err := auth.Authenticate(accessToken)
		if err != nil {
			if errors.Is(err, domain.ErrTokenExpired) {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		if err := Authorize(req, principal); err != nil {
			return response.Forbidden(c, "You don't have permission to access this resource")
		}

		c.Locals(principalKey, principal)
		return c.Next()
	}
}

// PrincipalFrom returns the caller stored by Gate, or nil on public routes
func PrincipalFrom(c *fiber.Ctx) *domain.Principal {
	p, _ := c.Locals(principalKey).(*domain.Principal)
	return p
}

func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
