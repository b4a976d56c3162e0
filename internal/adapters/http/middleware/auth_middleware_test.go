package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookstore-api/internal/core/domain"
	"bookstore-api/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorize(t *testing.T) {
	admin := &domain.Principal{UserID: 1, Roles: []string{domain.RoleAdministrator}}
	customer := &domain.Principal{UserID: 2, Roles: []string{domain.RoleCustomer}}

	tests := []struct {
		name      string
		req       Requirement
		principal *domain.Principal
		want      error
	}{
		{name: "public anonymous", req: PublicAccess, principal: nil},
		{name: "authenticated anonymous", req: AuthenticatedAccess, principal: nil, want: domain.ErrUnauthenticated},
		{name: "authenticated customer", req: AuthenticatedAccess, principal: customer},
		{name: "role anonymous", req: RequiresRole(domain.RoleAdministrator), principal: nil, want: domain.ErrUnauthenticated},
		{name: "role missing", req: RequiresRole(domain.RoleAdministrator), principal: customer, want: domain.ErrForbidden},
		{name: "role present", req: RequiresRole(domain.RoleAdministrator), principal: admin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.req, tt.principal)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPolicy_LookupFailsClosed(t *testing.T) {
	p := Policy{
		RouteKey("get", "/open"): PublicAccess,
	}

	assert.Equal(t, PublicAccess, p.Lookup("GET", "/open"))
	assert.Equal(t, AuthenticatedAccess, p.Lookup("POST", "/open"))
	assert.Equal(t, AuthenticatedAccess, p.Lookup("GET", "/unlisted"))
	assert.Equal(t, "RequiresRole(Administrator)", RequiresRole(domain.RoleAdministrator).String())
}

type stubAuth struct {
	principal *domain.Principal
	err       error
}

func (s stubAuth) Authenticate(string) (*domain.Principal, error) {
	return s.principal, s.err
}

func TestGate(t *testing.T) {
	customer := &domain.Principal{UserID: 2, Subject: "c@example.com", Roles: []string{domain.RoleCustomer}}

	tests := []struct {
		name       string
		auth       Authenticator
		req        Requirement
		header     string
		wantStatus int
		wantCalled bool
	}{
		{name: "public without token", auth: stubAuth{}, req: PublicAccess, wantStatus: http.StatusOK, wantCalled: true},
		{name: "missing token", auth: stubAuth{principal: customer}, req: AuthenticatedAccess, wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", auth: stubAuth{principal: customer}, req: AuthenticatedAccess, header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "invalid token", auth: stubAuth{err: domain.ErrUnauthenticated}, req: AuthenticatedAccess, header: "Bearer x", wantStatus: http.StatusUnauthorized},
		{name: "authenticated", auth: stubAuth{principal: customer}, req: AuthenticatedAccess, header: "Bearer x", wantStatus: http.StatusOK, wantCalled: true},
		{name: "forbidden", auth: stubAuth{principal: customer}, req: RequiresRole(domain.RoleAdministrator), header: "Bearer x", wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			app := fiber.New()
			app.Get("/r", Gate(tt.auth, tt.req), func(c *fiber.Ctx) error {
				called = true
				if tt.req.Access != Public {
					assert.Equal(t, customer, PrincipalFrom(c))
				}
				return c.SendStatus(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/r", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantCalled, called)
		})
	}
}

func TestGate_RealTokens(t *testing.T) {
	mgr, err := jwt.NewManager("gate-test-key-gate-test-key-1234", "bookstore", time.Hour)
	require.NoError(t, err)
	other, err := jwt.NewManager("another-key-another-key-another!", "bookstore", time.Hour)
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/r", Gate(mgr, AuthenticatedAccess), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	good, err := mgr.Issue(domain.Identity{ID: 1, Email: "a@example.com"}, []string{domain.RoleCustomer})
	require.NoError(t, err)
	forged, err := other.Issue(domain.Identity{ID: 1, Email: "a@example.com"}, []string{domain.RoleAdministrator})
	require.NoError(t, err)

	for token, want := range map[string]int{good: http.StatusOK, forged: http.StatusUnauthorized} {
		req := httptest.NewRequest(http.MethodGet, "/r", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, want, resp.StatusCode)
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusFor(domain.ErrValidation))
	assert.Equal(t, http.StatusNotFound, StatusFor(domain.ErrNotFound))
	assert.Equal(t, http.StatusUnauthorized, StatusFor(domain.ErrUnauthenticated))
	assert.Equal(t, http.StatusForbidden, StatusFor(domain.ErrForbidden))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(domain.ErrPersistence))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(errors.New("boom")))
	assert.Equal(t, http.StatusMethodNotAllowed, StatusFor(fiber.ErrMethodNotAllowed))
}
