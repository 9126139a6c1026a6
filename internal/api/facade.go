package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/carelfelix2/scrapper/internal/models"
)

// LoginResult is the payload of a successful login.
type LoginResult struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken *string     `json:"refresh_token"`
	TokenType    string      `json:"token_type"`
	User         models.User `json:"user"`
}

// Login exchanges credentials for a token. It does not touch the session
// store; the caller decides what to do with the result.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var out LoginResult
	if err := c.post(ctx, "/api/v1/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CurrentUser fetches the profile the current token authenticates. Used to
// validate and rehydrate a persisted session.
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.get(ctx, "/api/v1/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateTask submits a scraping task. Build input with models.TaskInput.
func (c *Client) CreateTask(ctx context.Context, platform models.Platform, taskType string, input map[string]string) (*models.ScrapingTask, error) {
	body := map[string]any{
		"platform":   platform,
		"task_type":  taskType,
		"input_data": input,
	}
	var out models.ScrapingTask
	if err := c.post(ctx, "/api/v1/tasks", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetTask(ctx context.Context, id int64) (*models.ScrapingTask, error) {
	var out models.ScrapingTask
	if err := c.get(ctx, fmt.Sprintf("/api/v1/tasks/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListTasks(ctx context.Context, skip, limit int) (*Page[models.ScrapingTask], error) {
	var out Page[models.ScrapingTask]
	if err := c.get(ctx, "/api/v1/tasks", pageQuery(skip, limit), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListProducts lists collected products, optionally filtered by platform. An
// empty platform omits the query parameter entirely.
func (c *Client) ListProducts(ctx context.Context, platform models.Platform, skip, limit int) (*Page[models.Product], error) {
	q := pageQuery(skip, limit)
	if platform != "" {
		q.Set("platform", string(platform))
	}
	var out Page[models.Product]
	if err := c.get(ctx, "/api/v1/products", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	var out models.Product
	if err := c.get(ctx, fmt.Sprintf("/api/v1/products/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProductHistory fetches the append-only price series of one product, newest
// first, capped at limit points.
func (c *Client) ProductHistory(ctx context.Context, id int64, limit int) ([]models.PriceHistory, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out []models.PriceHistory
	if err := c.get(ctx, fmt.Sprintf("/api/v1/products/%d/history", id), q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SearchProducts(ctx context.Context, query string, skip, limit int) (*Page[models.Product], error) {
	var out Page[models.Product]
	path := "/api/v1/products/search/" + url.PathEscape(query)
	if err := c.get(ctx, path, pageQuery(skip, limit), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health probes the unauthenticated /health endpoint. Unlike every other
// endpoint it does not use the response envelope.
type Health struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

func (c *Client) HealthCheck(ctx context.Context) (*Health, error) {
	resp, err := c.rawGet(ctx, "/health")
	if err != nil {
		return nil, err
	}
	var out Health
	if err := decodeRaw(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func pageQuery(skip, limit int) url.Values {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))
	return q
}
