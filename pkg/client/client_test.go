package client

import (
	"context"
	"encoding/base64"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"bookstore-api/internal/adapters/http/middleware"
	"bookstore-api/internal/adapters/http/routes"
	"bookstore-api/internal/adapters/storage"
	"bookstore-api/internal/config"
	"bookstore-api/internal/pkg/jwt"
	"bookstore-api/internal/pkg/logging"
	"bookstore-api/internal/pkg/password"
	"bookstore-api/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const seedPassword = "client-seed-pass"

func TestMain(m *testing.M) {
	password.Cost = bcrypt.MinCost
	os.Exit(m.Run())
}

func newAPI(t *testing.T) *Client {
	t.Helper()

	cfg := &config.Config{
		AppMode:           "dev",
		PasswordMinLength: 1,
		Seed:              config.SeedConfig{Users: true, Password: seedPassword},
	}
	db := testutil.NewDB(t)
	log := logging.Discard()
	require.NoError(t, config.NewSeeder(db, cfg, log).Run(context.Background()))

	tokens, err := jwt.NewManager("client-test-key-client-test-key-0", "bookstore-client-test", time.Hour)
	require.NoError(t, err)
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler(log)})
	routes.Setup(app, routes.Deps{DB: db, Config: cfg, Tokens: tokens, Assets: store, Log: log})

	srv := httptest.NewServer(adaptor.FiberApp(app))
	t.Cleanup(srv.Close)

	return New(srv.URL, srv.Client())
}

func TestClient_RegisterLogin(t *testing.T) {
	c := newAPI(t)
	ctx := context.Background()

	require.NoError(t, c.Register(ctx, "reader", "reader@example.com", "pw1"))

	token, err := c.Login(ctx, "reader", "pw1")
	require.NoError(t, err)
	assert.Equal(t, token, c.Token())

	_, err = c.Login(ctx, "reader", "nope")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.StatusCode)
}

func TestClient_CatalogRoundTrip(t *testing.T) {
	c := newAPI(t)
	ctx := context.Background()

	_, err := c.Login(ctx, "Admin", seedPassword)
	require.NoError(t, err)

	authors := NewRepository[Author](c, AuthorsEndpoint)
	books := NewRepository[Book](c, BooksEndpoint)

	author, err := authors.Create(ctx, Author{Firstname: "N. K.", Lastname: "Jemisin"})
	require.NoError(t, err)

	cover := base64.StdEncoding.EncodeToString([]byte("png"))
	book, err := books.Create(ctx, Book{Title: "The Fifth Season", Isbn: "978-0316229296", Image: "fifth.png", File: cover, AuthorID: author.ID})
	require.NoError(t, err)

	got, err := books.Get(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, cover, got.File)
	require.NotNil(t, got.Author)
	assert.Equal(t, "Jemisin", got.Author.Lastname)

	got.Summary = "Broken Earth, book one"
	got.File = ""
	require.NoError(t, books.Update(ctx, got.ID, got))

	all, err := books.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Broken Earth, book one", all[0].Summary)
	assert.Equal(t, cover, all[0].File)

	require.NoError(t, books.Delete(ctx, book.ID))
	_, err = books.Get(ctx, book.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_CustomerCannotCreateBooks(t *testing.T) {
	c := newAPI(t)
	ctx := context.Background()

	_, err := c.Login(ctx, "Customer1", seedPassword)
	require.NoError(t, err)

	_, err = NewRepository[Book](c, BooksEndpoint).Create(ctx, Book{Title: "t", Isbn: "1", AuthorID: 1})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.StatusCode)

	c.Logout()
	_, err = NewRepository[Book](c, BooksEndpoint).GetAll(ctx)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.StatusCode)
}
