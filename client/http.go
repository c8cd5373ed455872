package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultBaseURL is where the Flask backend serves its JSON API.
const DefaultBaseURL = "http://127.0.0.1:5000/api"

const maxErrorBody = 64 * 1024

// APIError is returned for any non-2xx response. Message holds the backend's
// "error" field and is empty when the body did not carry one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status code %d", e.Status)
}

// ErrorMessage extracts a user-facing string from err: the backend's error
// field first, then the error text itself, then fallback.
func ErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if s := err.Error(); s != "" {
		return s
	}
	return fallback
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	log        zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets a per-request timeout. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.HTTPClient.Timeout = d }
}

// WithLogger attaches a logger for request tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTPClient = hc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{},
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetSettings reads the backend's option lists and active selection.
// A JSON null body yields (nil, nil).
func (c *Client) GetSettings(ctx context.Context) (*Settings, error) {
	resp, err := c.get(ctx, "/settings")
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	defer resp.Body.Close()
	if !success(resp.StatusCode) {
		return nil, c.parseError(resp)
	}
	var settings *Settings
	if err := json.NewDecoder(resp.Body).Decode(&settings); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	return settings, nil
}

// UpdateSettings sends a partial update. The response body is only checked
// for well-formedness.
func (c *Client) UpdateSettings(ctx context.Context, update SettingsUpdate) (*UpdateSettingsResponse, error) {
	resp, err := c.postJSON(ctx, "/settings", update)
	if err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}
	defer resp.Body.Close()
	if !success(resp.StatusCode) {
		return nil, c.parseError(resp)
	}
	var result UpdateSettingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode settings update: %w", err)
	}
	return &result, nil
}

// Chat sends one user message and returns the backend's reply.
func (c *Client) Chat(ctx context.Context, text string) (*ChatResponse, error) {
	resp, err := c.postJSON(ctx, "/chat", ChatRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("chat: %w", err)
	}
	defer resp.Body.Close()
	if !success(resp.StatusCode) {
		return nil, c.parseError(resp)
	}
	var result ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode chat: %w", err)
	}
	return &result, nil
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) postJSON(ctx context.Context, path string, body any) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Str("request_id", reqID).
			Msg("request failed")
		return nil, err
	}
	c.log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Str("request_id", reqID).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request done")
	return resp, nil
}

func (c *Client) parseError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &APIError{Status: resp.StatusCode}
	var payload ErrorResponse
	if json.Unmarshal(body, &payload) == nil {
		apiErr.Message = payload.Error
	}
	return apiErr
}

func success(status int) bool {
	return status >= 200 && status < 300
}
