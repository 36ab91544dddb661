// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the backend /api root.
	DefaultBaseURL = "http://127.0.0.1:8000/api"

	// MaxResponseSize caps how much of a response body is read.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB limit

	// RequestIDHeader carries the per-request correlation ID.
	RequestIDHeader = "X-Request-ID"
)

// sharedHTTPClient has no Timeout; answers can take as long as the backend needs.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// TokenSource supplies the current credential for authorized calls.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed TokenSource.
type StaticToken string

// Token returns the fixed credential.
func (s StaticToken) Token() string { return string(s) }

// Client talks to the CodeHelp backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	logger     *zap.Logger

	mu     sync.RWMutex
	tokens TokenSource
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the shared HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithTokenSource sets the credential source for authorized calls.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// NewClient creates a client for the backend rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: sharedHTTPClient,
		userAgent:  "codehelp-tui",
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetTokenSource replaces the credential source.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = ts
}

// BaseURL returns the /api root the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

// serverRoot strips the trailing /api segment for endpoints outside it.
func (c *Client) serverRoot() string {
	return strings.TrimSuffix(c.baseURL, "/api")
}

// request describes one exchange.
type request struct {
	op         string
	method     string
	url        string
	body       io.Reader
	contentTyp string
	authorized bool
	// loginStyle maps every non-2xx to ErrAuth.
	loginStyle bool
}

func (c *Client) jsonRequest(op, method, path string, payload any, authorized bool) (request, error) {
	req := request{op: op, method: method, url: c.baseURL + path, authorized: authorized}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return req, fmt.Errorf("%s: failed to marshal request: %w", op, err)
		}
		req.body = bytes.NewReader(data)
		req.contentTyp = "application/json"
	}
	return req, nil
}

// do performs r and decodes a 2xx JSON body into out (when non-nil).
func (c *Client) do(ctx context.Context, r request, out any) error {
	httpReq, err := http.NewRequestWithContext(ctx, r.method, r.url, r.body)
	if err != nil {
		return &Error{Kind: KindNetwork, Op: r.op, Message: "invalid request", Err: err}
	}

	requestID := uuid.NewString()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set(RequestIDHeader, requestID)
	if r.contentTyp != "" {
		httpReq.Header.Set("Content-Type", r.contentTyp)
	}
	if r.authorized {
		httpReq.Header.Set("Authorization", "Bearer "+c.token())
	}

	// Headers are never logged; they carry the credential.
	log := c.logger.With(
		zap.String("op", r.op),
		zap.String("method", r.method),
		zap.String("path", httpReq.URL.Path),
		zap.String("request_id", requestID),
	)
	log.Debug("api request")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	httpReq.Header.Del("Authorization")
	if err != nil {
		log.Warn("api request failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return transportError(r.op, err)
	}
	defer resp.Body.Close()

	body, err := readResponse(resp)
	log.Info("api response",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)
	if err != nil {
		return &Error{Kind: KindNetwork, Op: r.op, Status: resp.StatusCode, Message: "could not read server response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := classify(r.op, resp.StatusCode, body)
		if r.loginStyle {
			apiErr.Kind = KindAuth
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Kind: KindNetwork, Op: r.op, Status: resp.StatusCode, Message: "unexpected server response", Err: err}
	}
	return nil
}

// readResponse reads the response body with a size limit.
func readResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) > MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

func formBody(values url.Values) io.Reader {
	return strings.NewReader(values.Encode())
}
