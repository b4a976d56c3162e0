package routes

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"bookstore-api/internal/adapters/http/middleware"
	"bookstore-api/internal/adapters/persistence/models"
	"bookstore-api/internal/adapters/storage"
	"bookstore-api/internal/config"
	"bookstore-api/internal/core/domain"
	"bookstore-api/internal/pkg/jwt"
	"bookstore-api/internal/pkg/logging"
	"bookstore-api/internal/pkg/password"
	"bookstore-api/internal/testutil"

	"github.com/gofiber/fiber/v2"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	testKey      = "routes-test-signing-key-0123456789"
	testIssuer   = "bookstore-test"
	seedPassword = "seed-pass"
)

func TestMain(m *testing.M) {
	password.Cost = bcrypt.MinCost
	os.Exit(m.Run())
}

type server struct {
	app *fiber.App
	db  *gorm.DB
	dir string
}

func newServer(t *testing.T) *server {
	t.Helper()

	cfg := &config.Config{
		AppMode:           "dev",
		PasswordMinLength: 1,
		JWT:               config.JWTConfig{Key: testKey, Issuer: testIssuer, AccessTokenMins: 60},
		Seed:              config.SeedConfig{Users: true, Password: seedPassword},
	}

	db := testutil.NewDB(t)
	log := logging.Discard()
	require.NoError(t, config.NewSeeder(db, cfg, log).Run(context.Background()))

	tokens, err := jwt.NewManager(cfg.JWT.Key, cfg.JWT.Issuer, cfg.TokenValidity())
	require.NoError(t, err)

	dir := t.TempDir()
	store, err := storage.NewLocalStore(dir)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler(log)})
	Setup(app, Deps{DB: db, Config: cfg, Tokens: tokens, Assets: store, Log: log})

	return &server{app: app, db: db, dir: dir}
}

func (s *server) do(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func (s *server) login(t *testing.T, username, pw string) string {
	t.Helper()
	status, body := s.do(t, http.MethodPost, "/api/users/login", "", map[string]string{"username": username, "password": pw})
	require.Equal(t, http.StatusOK, status, string(body))

	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &res))
	require.NotEmpty(t, res.Token)
	return res.Token
}

func (s *server) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.db.Model(model).Count(&n).Error)
	return n
}

func TestRegisterAndLogin(t *testing.T) {
	s := newServer(t)

	status, body := s.do(t, http.MethodPost, "/api/users/register", "", map[string]string{"username": "u1", "password": "pw1"})
	require.Equal(t, http.StatusCreated, status, string(body))
	assert.JSONEq(t, `{"succeeded":true}`, string(body))

	token := s.login(t, "u1", "pw1")

	status, body = s.do(t, http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"username":"u1"`)
	assert.Contains(t, string(body), domain.RoleCustomer)

	status, body = s.do(t, http.MethodPost, "/api/users/login", "", map[string]string{"username": "u1", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.JSONEq(t, `{"username":"u1"}`, string(body))

	status, body = s.do(t, http.MethodPost, "/api/users/register", "", map[string]string{"username": "u1", "password": "pw1"})
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Contains(t, string(body), "DuplicateUserName")
}

func TestAuthorsArePublicToRead(t *testing.T) {
	s := newServer(t)

	status, _ := s.do(t, http.MethodGet, "/api/authors", "", nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = s.do(t, http.MethodPost, "/api/authors", "", map[string]string{"firstname": "a", "lastname": "b"})
	assert.Equal(t, http.StatusUnauthorized, status)

	token := s.login(t, "Customer1", seedPassword)
	status, body := s.do(t, http.MethodPost, "/api/authors", token, map[string]string{"firstname": "Ada", "lastname": "Palmer"})
	require.Equal(t, http.StatusCreated, status, string(body))

	var created models.AuthorDTO
	require.NoError(t, json.Unmarshal(body, &created))

	status, body = s.do(t, http.MethodGet, "/api/authors?page=1&limit=10", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"total":1`)

	status, _ = s.do(t, http.MethodPut, "/api/authors/"+itoa(created.ID), token,
		map[string]any{"id": created.ID + 1, "firstname": "Ada", "lastname": "Palmer"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(t, http.MethodPut, "/api/authors/"+itoa(created.ID), token, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(t, http.MethodPut, "/api/authors/"+itoa(created.ID), token,
		map[string]any{"id": created.ID, "firstname": "Ada", "lastname": "Palmer", "bio": "Terra Ignota"})
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = s.do(t, http.MethodDelete, "/api/authors/999", token, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.do(t, http.MethodDelete, "/api/authors/-1", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(t, http.MethodDelete, "/api/authors/"+itoa(created.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = s.do(t, http.MethodGet, "/api/authors/"+itoa(created.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestBookMutationsRequireAdministrator(t *testing.T) {
	s := newServer(t)
	customer := s.login(t, "Customer1", seedPassword)
	admin := s.login(t, "Admin", seedPassword)

	status, body := s.do(t, http.MethodPost, "/api/authors", customer, map[string]string{"firstname": "Ann", "lastname": "Leckie"})
	require.Equal(t, http.StatusCreated, status, string(body))
	var author models.AuthorDTO
	require.NoError(t, json.Unmarshal(body, &author))

	book := map[string]any{
		"title":     "Ancillary Justice",
		"isbn":      "978-0316246620",
		"image":     "aj.png",
		"file":      base64.StdEncoding.EncodeToString([]byte("cover")),
		"author_id": author.ID,
	}

	status, _ = s.do(t, http.MethodGet, "/api/books", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = s.do(t, http.MethodPost, "/api/books", customer, book)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Zero(t, s.count(t, &models.Book{}))
	_, err := os.Stat(s.dir + "/aj.png")
	assert.True(t, os.IsNotExist(err))

	status, body = s.do(t, http.MethodPost, "/api/books", admin, book)
	require.Equal(t, http.StatusCreated, status, string(body))
	var created models.BookDTO
	require.NoError(t, json.Unmarshal(body, &created))

	status, body = s.do(t, http.MethodGet, "/api/books/"+itoa(created.ID), customer, nil)
	require.Equal(t, http.StatusOK, status)
	var got models.BookDTO
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, book["file"], got.File)
	require.NotNil(t, got.Author)
	assert.Equal(t, "Leckie", got.Author.Lastname)

	status, _ = s.do(t, http.MethodDelete, "/api/books/"+itoa(created.ID), customer, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, int64(1), s.count(t, &models.Book{}))

	status, _ = s.do(t, http.MethodDelete, "/api/books/999", admin, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.do(t, http.MethodDelete, "/api/books/"+itoa(created.ID), admin, nil)
	assert.Equal(t, http.StatusNoContent, status)
	_, err = os.Stat(s.dir + "/aj.png")
	assert.True(t, os.IsNotExist(err))
}

func TestRejectedTokens(t *testing.T) {
	s := newServer(t)

	sign := func(key string, exp time.Time) string {
		claims := jwt.Claims{
			UserID: 1,
			Roles:  []string{domain.RoleAdministrator},
			RegisteredClaims: gojwt.RegisteredClaims{
				Subject:   "admin@localhost.com",
				Issuer:    testIssuer,
				Audience:  gojwt.ClaimStrings{testIssuer},
				ExpiresAt: gojwt.NewNumericDate(exp),
			},
		}
		token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(key))
		require.NoError(t, err)
		return token
	}

	expired := sign(testKey, time.Now().Add(-time.Minute))
	wrongKey := sign("some-other-key-some-other-key-000", time.Now().Add(time.Hour))
	valid := sign(testKey, time.Now().Add(time.Hour))

	for name, token := range map[string]string{"expired": expired, "wrong key": wrongKey, "garbage": "not.a.token"} {
		status, _ := s.do(t, http.MethodGet, "/api/books", token, nil)
		assert.Equal(t, http.StatusUnauthorized, status, name)
	}

	status, _ := s.do(t, http.MethodGet, "/api/books", valid, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestEveryAPIRouteHasAPolicy(t *testing.T) {
	s := newServer(t)

	seen := 0
	for _, r := range s.app.GetRoutes(true) {
		if !strings.HasPrefix(r.Path, "/api/") || r.Method == fiber.MethodHead {
			continue
		}
		seen++
		_, ok := AccessPolicy[middleware.RouteKey(r.Method, r.Path)]
		assert.True(t, ok, "no policy for %s %s", r.Method, r.Path)
	}
	assert.Equal(t, len(AccessPolicy), seen)
}

func TestHealth(t *testing.T) {
	s := newServer(t)

	status, body := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"database":"healthy"`)

	status, _ = s.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, status)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
