// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

/*
client.go - Algorithm Service REST client

The Algorithm Service exposes two JSON roots: the catalog API
(/api/peliculas) and the algorithms API (/api/algoritmos). Request
descriptors resolve full URLs themselves, so the client only executes
models.Request values and returns raw bodies for the normalizers.
Nothing is retried here.
*/

package algoapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/cinegraph/internal/logging"
	"github.com/tomtom215/cinegraph/internal/metrics"
	"github.com/tomtom215/cinegraph/internal/models"
)

// DefaultMaxBodyBytes bounds how much of a response body is read.
const DefaultMaxBodyBytes int64 = 32 << 20

// ErrBodyTooLarge is returned when a response exceeds the configured limit.
var ErrBodyTooLarge = errors.New("algorithm service response exceeds size limit")

// StatusError reports a non-2xx response from the Algorithm Service.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s returned status %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s returned status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// Service is the Algorithm Service surface used by the catalog and dispatcher.
// Both Client and CircuitBreakerClient implement it.
type Service interface {
	Do(ctx context.Context, req models.Request) ([]byte, error)
	Info(ctx context.Context) (map[string]string, error)
	Ping(ctx context.Context) (string, error)
}

var _ Service = (*Client)(nil)

// Config holds client settings.
type Config struct {
	CatalogURL    string
	AlgorithmsURL string

	// Timeout bounds a whole HTTP exchange. Zero means 30s.
	Timeout time.Duration

	// MaxBodyBytes bounds response size. Zero means DefaultMaxBodyBytes.
	MaxBodyBytes int64

	// RequestsPerSecond paces outbound calls. Zero disables pacing.
	RequestsPerSecond float64
	Burst             int

	UserAgent string
}

// Client talks to the Algorithm Service over HTTP.
type Client struct {
	catalogURL    string
	algorithmsURL string
	httpClient    *http.Client
	limiter       *rate.Limiter
	maxBody       int64
	userAgent     string
}

// NewClient creates a client. Trailing slashes on base URLs are removed.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "Cinegraph"
	}

	c := &Client{
		catalogURL:    strings.TrimSuffix(cfg.CatalogURL, "/"),
		algorithmsURL: strings.TrimSuffix(cfg.AlgorithmsURL, "/"),
		httpClient:    &http.Client{Timeout: timeout},
		maxBody:       maxBody,
		userAgent:     userAgent,
	}
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	return c
}

// Do executes req and returns the raw response body.
func (c *Client) Do(ctx context.Context, req models.Request) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for request slot: %w", err)
		}
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader = http.NoBody
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if id := logging.CorrelationIDFromContext(ctx); id != "" {
		httpReq.Header.Set("X-Correlation-ID", id)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		metrics.UpstreamRequestDuration.WithLabelValues(method, "error").Observe(time.Since(start).Seconds())
		return nil, fmt.Errorf("%s %s failed: %w", method, req.URL, err)
	}
	defer func() { _ = resp.Body.Close() }()
	metrics.UpstreamRequestDuration.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", req.URL, err)
	}
	if int64(len(data)) > c.maxBody {
		return nil, fmt.Errorf("%s: %w", req.URL, ErrBodyTooLarge)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{
			Method:     method,
			URL:        req.URL,
			StatusCode: resp.StatusCode,
			Body:       truncate(strings.TrimSpace(string(data)), 256),
		}
	}

	logging.Ctx(ctx).Debug().
		Str("method", method).
		Str("url", req.URL).
		Int("bytes", len(data)).
		Dur("elapsed", time.Since(start)).
		Msg("Algorithm service call completed")

	return data, nil
}

// Info fetches the algorithm descriptions published under {algorithms}/info.
func (c *Client) Info(ctx context.Context) (map[string]string, error) {
	data, err := c.Do(ctx, models.Request{Method: http.MethodGet, URL: c.algorithmsURL + "/info"})
	if err != nil {
		return nil, fmt.Errorf("algorithm info request failed: %w", err)
	}
	var info map[string]string
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to decode algorithm info: %w", err)
	}
	return info, nil
}

// Ping calls {catalog}/test and returns the service's greeting text.
func (c *Client) Ping(ctx context.Context) (string, error) {
	data, err := c.Do(ctx, models.Request{Method: http.MethodGet, URL: c.catalogURL + "/test"})
	if err != nil {
		return "", fmt.Errorf("catalog ping failed: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
