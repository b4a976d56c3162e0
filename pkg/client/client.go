// Package client is a Go client for the BookStore API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
)

// Endpoint paths, relative to the base URL
const (
	AuthorsEndpoint  = "api/authors/"
	BooksEndpoint    = "api/books/"
	RegisterEndpoint = "api/users/register/"
	LoginEndpoint    = "api/users/login/"
)

// ErrNotFound is returned when the API answers 404
var ErrNotFound = errors.New("not found")

// APIError is a non-success response
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bookstore api: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

// Unwrap maps 404 to ErrNotFound
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

// Client talks to one API instance and carries the token of the last login
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// New creates a client for baseURL. A nil httpClient uses http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// Token returns the current access token
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken replaces the access token
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Logout forgets the access token
func (c *Client) Logout() {
	c.SetToken("")
}

// Register creates an account
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	body := map[string]string{"username": username, "email": email, "password": password}
	return c.do(ctx, http.MethodPost, RegisterEndpoint, body, http.StatusCreated, nil)
}

// Login exchanges credentials for a token and keeps it for later calls
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var res struct {
		Token string `json:"token"`
	}
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, LoginEndpoint, body, http.StatusOK, &res); err != nil {
		return "", err
	}
	c.SetToken(res.Token)
	return res.Token, nil
}

func (c *Client) do(ctx context.Context, method, path string, in any, want int, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Repository is CRUD access to one resource collection
type Repository[T any] struct {
	client   *Client
	endpoint string
}

// NewRepository binds a repository to an endpoint such as AuthorsEndpoint
func NewRepository[T any](c *Client, endpoint string) *Repository[T] {
	return &Repository[T]{client: c, endpoint: endpoint}
}

// GetAll lists the collection
func (r *Repository[T]) GetAll(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.client.do(ctx, http.MethodGet, r.endpoint, nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one item
func (r *Repository[T]) Get(ctx context.Context, id uint) (*T, error) {
	var out T
	if err := r.client.do(ctx, http.MethodGet, r.item(id), nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create adds an item and returns it as stored
func (r *Repository[T]) Create(ctx context.Context, item any) (*T, error) {
	var out T
	if err := r.client.do(ctx, http.MethodPost, r.endpoint, item, http.StatusCreated, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces an item
func (r *Repository[T]) Update(ctx context.Context, id uint, item any) error {
	return r.client.do(ctx, http.MethodPut, r.item(id), item, http.StatusNoContent, nil)
}

// Delete removes an item
func (r *Repository[T]) Delete(ctx context.Context, id uint) error {
	return r.client.do(ctx, http.MethodDelete, r.item(id), nil, http.StatusNoContent, nil)
}

func (r *Repository[T]) item(id uint) string {
	return r.endpoint + strconv.FormatUint(uint64(id), 10)
}
