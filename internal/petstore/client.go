package petstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store defines the CRUD surface of the pet backend. It is implemented by
// *Client and can be faked in tests.
type Store interface {
	List(ctx context.Context) ([]Pet, error)
	Get(ctx context.Context, id int64) (Pet, error)
	Create(ctx context.Context, pet Pet) (Pet, error)
	Update(ctx context.Context, id int64, pet Pet) (Pet, error)
	Delete(ctx context.Context, id int64) error
}

// Ensure Client implements Store at compile time.
var _ Store = (*Client)(nil)

// Client talks to the pet backend over HTTP.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	logger    *zap.Logger
	requestID func() string
}

const (
	DefaultBaseURL   = "http://localhost:8080/mingoy"
	defaultUserAgent = "petgallery/0.1"
	maxBodyBytes     = 1 << 20
)

// Option customizes a Client.
type Option func(*Client)

// WithTimeout bounds each request. Zero keeps the transport default (none).
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithHTTPClient swaps the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger attaches a logger used for request failures.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient builds a Client rooted at baseURL, e.g. http://localhost:8080/mingoy.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
		logger:    zap.NewNop(),
		requestID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// List fetches every pet.
func (c *Client) List(ctx context.Context) ([]Pet, error) {
	var pets []Pet
	if err := c.doJSON(ctx, "list", http.MethodGet, "pets", nil, &pets); err != nil {
		return nil, err
	}
	return pets, nil
}

// Get fetches a single pet by id.
func (c *Client) Get(ctx context.Context, id int64) (Pet, error) {
	var pet Pet
	if err := c.doJSON(ctx, "get", http.MethodGet, petPath(id), nil, &pet); err != nil {
		return Pet{}, err
	}
	return pet, nil
}

// Create posts pet without its id and returns the stored record.
func (c *Client) Create(ctx context.Context, pet Pet) (Pet, error) {
	var created Pet
	if err := c.doJSON(ctx, "create", http.MethodPost, "pets", pet.WithoutID(), &created); err != nil {
		return Pet{}, err
	}
	return created, nil
}

// Update replaces the pet stored under id. The backend may answer with a
// plain-text confirmation instead of the record; in that case the submitted
// record is returned with id applied.
func (c *Client) Update(ctx context.Context, id int64, pet Pet) (Pet, error) {
	sent := pet.WithID(id)
	raw, err := c.do(ctx, "update", http.MethodPut, petPath(id), sent)
	if err != nil {
		return Pet{}, err
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' || !json.Valid(trimmed) {
		return sent, nil
	}
	var updated Pet
	if err := json.Unmarshal(trimmed, &updated); err != nil {
		return sent, nil
	}
	if !updated.HasID() {
		updated = updated.WithID(id)
	}
	return updated, nil
}

// Delete removes the pet stored under id.
func (c *Client) Delete(ctx context.Context, id int64) error {
	_, err := c.do(ctx, "delete", http.MethodDelete, petPath(id), nil)
	return err
}

func (c *Client) doJSON(ctx context.Context, op, method, path string, in, out any) error {
	raw, err := c.do(ctx, op, method, path, in)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &RemoteStoreError{
			Op:     op,
			Method: method,
			Path:   c.resolve(path).Path,
			Cause:  fmt.Errorf("decode response: %w", err),
		}
	}
	return nil
}

func (c *Client) do(ctx context.Context, op, method, path string, in any) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	reqURL := c.resolve(path)
	requestID := c.requestID()
	fail := func(status int, cause error) error {
		err := &RemoteStoreError{
			Op:         op,
			Method:     method,
			Path:       reqURL.Path,
			StatusCode: status,
			RequestID:  requestID,
			Cause:      cause,
		}
		c.logger.Warn("pet store request failed",
			zap.String("op", op),
			zap.String("method", method),
			zap.String("url", reqURL.String()),
			zap.Int("status", status),
			zap.String("request_id", requestID),
			zap.Error(cause),
		)
		return err
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fail(0, fmt.Errorf("encode request: %w", err))
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return nil, fail(0, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-Id", requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fail(0, fmt.Errorf("execute request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fail(resp.StatusCode, fmt.Errorf("read response: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(raw))
		if msg == "" {
			return nil, fail(resp.StatusCode, errors.New(http.StatusText(resp.StatusCode)))
		}
		return nil, fail(resp.StatusCode, errors.New(msg))
	}

	c.logger.Debug("pet store request",
		zap.String("op", op),
		zap.String("method", method),
		zap.String("url", reqURL.String()),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", requestID),
	)
	return raw, nil
}

func (c *Client) resolve(path string) *url.URL {
	return c.baseURL.ResolveReference(&url.URL{Path: path})
}

func petPath(id int64) string {
	return "pets/" + strconv.FormatInt(id, 10)
}

// parseBaseURL normalizes the API root so relative references resolve under
// its path: a trailing slash is always present.
func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", raw)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
