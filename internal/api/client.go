// Package api is the typed client for the Scrapper remote service. Every
// response arrives in a {success, message, data} envelope; list payloads wrap
// data as {total, page, page_size, items}. The client decodes the envelope and
// surfaces non-2xx responses as *APIError carrying the remote message.
package api

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/carelfelix2/scrapper/internal/session"
	"golang.org/x/time/rate"
)

// Client talks to one Scrapper API instance at a fixed base URL.
type Client struct {
	baseURL       string
	http          *http.Client
	maxConcurrent int
}

// Options tune the client beyond the base URL.
type Options struct {
	RateLimiter   *rate.Limiter
	MaxConcurrent int // fan-out bound for multi-page fetches; 0 means 5
	Transport     http.RoundTripper
}

// New creates a Client. The session store is read on every request to attach
// the bearer token.
func New(baseURL string, sess *session.Store, opts Options) *Client {
	maxConcurrent := opts.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 5
	}
	base := opts.Transport
	if base == nil {
		base = &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Transport: &authTransport{
				base:        base,
				session:     sess,
				rateLimiter: opts.RateLimiter,
			},
		},
		maxConcurrent: maxConcurrent,
	}
}

// APIError is a remote rejection: a non-2xx response with the message the
// service provided, or a generic one when the body carried none.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// envelope is the fixed wrapper every endpoint uses.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Page is the pagination wrapper list endpoints place inside the envelope.
type Page[T any] struct {
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Items    []T `json:"items"`
}

// get issues a GET and decodes the envelope's data field into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// post issues a JSON POST and decodes the envelope's data field into out.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := readBody(resp)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Message: remoteMessage(respBody)}
	}

	if out == nil {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return fmt.Errorf("%s %s: decode envelope: %w", method, path, err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return fmt.Errorf("%s %s: envelope has no data", method, path)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%s %s: decode data: %w", method, path, err)
	}
	return nil
}

// rawGet issues a GET whose response is not envelope-wrapped.
func (c *Client) rawGet(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	return resp, nil
}

// decodeRaw reads a non-envelope response body into out, closing it.
func decodeRaw(resp *http.Response, out any) error {
	defer resp.Body.Close()
	body, err := readBody(resp)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Message: remoteMessage(body)}
	}
	return json.Unmarshal(body, out)
}

// remoteMessage pulls a human-readable message out of an error body. The
// service uses the envelope's message field; validation-layer rejections use
// {"detail": ...} instead.
func remoteMessage(body []byte) string {
	var env struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(body, &env); err == nil {
		if env.Message != "" {
			return env.Message
		}
		if env.Detail != "" {
			return env.Detail
		}
	}
	return "request failed"
}

// readBody reads and decompresses a response body.
func readBody(resp *http.Response) ([]byte, error) {
	var reader io.ReadCloser
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		var err error
		reader, err = gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		defer reader.Close()
	case "br":
		reader = io.NopCloser(brotli.NewReader(resp.Body))
	default:
		reader = resp.Body
	}
	return io.ReadAll(reader)
}
