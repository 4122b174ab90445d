// Package api holds the single choke point for outbound storefront requests.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heddiekitchen/storefront-client/internal/storage"
	pkgerrors "github.com/heddiekitchen/storefront-client/pkg/errors"
	"github.com/heddiekitchen/storefront-client/pkg/logger"
	"github.com/heddiekitchen/storefront-client/pkg/metrics"
)

const (
	requestIDHeader = "X-Request-Id"

	responseBodyReadLimit int64 = 1 << 20
)

var errBaseURLRequired = errors.New("api base url is required")

// TokenSource yields the current session credential. It is consulted fresh on
// every request so a login after client construction is still honored.
type TokenSource interface {
	Token() (string, bool)
}

// StorageTokenSource reads the credential from the durable session store.
func StorageTokenSource(store storage.Store) TokenSource {
	return storageTokenSource{store: store}
}

type storageTokenSource struct {
	store storage.Store
}

func (s storageTokenSource) Token() (string, bool) {
	if s.store == nil {
		return "", false
	}
	tok, err := s.store.Get(storage.KeyToken)
	if err != nil || tok == "" {
		return "", false
	}
	return tok, true
}

// Client wraps outbound requests to the storefront API. It attaches the
// session credential, tags each request with an id, and broadcasts a
// session-invalidated event whenever any response comes back 401.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	tokens     TokenSource
	logg       *logger.Logger
	metrics    *metrics.RequestMetrics

	mu               sync.Mutex
	onSessionInvalid []func()
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout overrides the default HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithTokenSource sets the credential source consulted per request.
func WithTokenSource(source TokenSource) Option {
	return func(c *Client) {
		c.tokens = source
	}
}

// WithLogger attaches the structured logger.
func WithLogger(logg *logger.Logger) Option {
	return func(c *Client) {
		c.logg = logg
	}
}

// WithMetrics attaches request metrics.
func WithMetrics(m *metrics.RequestMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient builds the storefront API client for the given base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errBaseURLRequired
	}

	client := &Client{
		baseURL:    trimmed,
		userAgent:  "storefront-client/1.0",
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// OnSessionInvalid registers a callback invoked whenever any response carries
// an authentication-failure status. Callbacks run before the 401 error is
// returned to the caller.
func (c *Client) OnSessionInvalid(fn func()) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onSessionInvalid = append(c.onSessionInvalid, fn)
}

func (c *Client) broadcastSessionInvalid() {
	c.mu.Lock()
	callbacks := make([]func(), len(c.onSessionInvalid))
	copy(callbacks, c.onSessionInvalid)
	c.mu.Unlock()
	for _, fn := range callbacks {
		fn()
	}
}

// Do issues one request and decodes a 2xx JSON body into out (ignored when
// out is nil). resource labels logs and metrics per API group.
func (c *Client) Do(ctx context.Context, method, path, resource string, body, out any) error {
	started := time.Now()
	err := c.do(ctx, method, path, resource, body, out)
	c.metrics.ObserveDuration(resource, time.Since(started))
	if err != nil {
		c.metrics.IncFailure(resource)
		return err
	}
	c.metrics.IncSuccess(resource)
	return nil
}

func (c *Client) do(ctx context.Context, method, path, resource string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode request body")
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}

	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if tok, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Token "+tok)
		}
	}

	if c.logg != nil {
		ctx = c.logg.WithRequestID(ctx, requestID)
		ctx = c.logg.WithResource(ctx, resource)
		c.logg.Debug(ctx, method+" "+path)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.logg != nil {
			c.logg.Error(ctx, "request failed", err)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "request failed")
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusUnauthorized {
		if c.logg != nil {
			c.logg.Warn(ctx, "session invalidated by api")
		}
		c.broadcastSessionInvalid()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeAPIError(resp)
		if c.logg != nil && resp.StatusCode >= 500 {
			c.logg.Error(ctx, "api returned server error", apiErr)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, responseBodyReadLimit)).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode response body")
	}
	return nil
}

// decodeAPIError pulls the failure message out of a non-2xx body. The API
// responds with either {"message": ...} or {"error": ...}.
func decodeAPIError(resp *http.Response) *pkgerrors.Error {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Detail  string `json:"detail"`
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
	if err == nil && len(raw) > 0 {
		_ = json.Unmarshal(raw, &payload)
	}
	message := payload.Message
	if message == "" {
		message = payload.Error
	}
	if message == "" {
		message = payload.Detail
	}
	return pkgerrors.NewAPIError(resp.StatusCode, message)
}
