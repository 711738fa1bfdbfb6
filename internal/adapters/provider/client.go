// Package provider holds the HTTP plumbing shared by the upstream data
// clients (Statcast, Stats API, leaderboard, images).
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/okian/pitchcard/pkg/logger"
	"github.com/okian/pitchcard/pkg/metrics"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "pitchcard/1.0"
	errorBodyLimit   = 4096
)

// Client performs GET requests against one upstream and records metrics
// under its name.
type Client struct {
	name      string
	http      *http.Client
	timeout   time.Duration
	userAgent string
	limiter   *rate.Limiter
	logger    logger.Logger
}

// NewClient creates a client for the named upstream.
func NewClient(name string, opts ...Option) *Client {
	c := &Client{
		name:      name,
		timeout:   defaultTimeout,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}
	if c.logger == nil {
		c.logger = logger.Get().Named("provider." + name)
	}
	return c
}

// Name returns the upstream name used in metrics.
func (c *Client) Name() string { return c.name }

// Logger returns the client's logger.
func (c *Client) Logger() logger.Logger { return c.logger }

// Get fetches url and returns the body and its content type.
func (c *Client) Get(ctx context.Context, url string) ([]byte, string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			metrics.RecordProviderRequest(c.name, "throttled")
			return nil, "", fmt.Errorf("%w: %s: %w", ErrRequest, c.name, err)
		}
	}

	start := time.Now()
	defer func() {
		metrics.RecordProviderLatency(c.name, float64(time.Since(start).Milliseconds()))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		metrics.RecordProviderRequest(c.name, "error")
		return nil, "", fmt.Errorf("%w: %s: %w", ErrRequest, c.name, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordProviderRequest(c.name, "error")
		return nil, "", fmt.Errorf("%w: %s: %w", ErrRequest, c.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RecordProviderRequest(c.name, "status")
		b, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return nil, "", fmt.Errorf("%w: %s: status %d body=%q", ErrStatus, c.name, resp.StatusCode, string(b))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordProviderRequest(c.name, "error")
		return nil, "", fmt.Errorf("%w: %s: read body: %w", ErrRequest, c.name, err)
	}
	metrics.RecordProviderRequest(c.name, "ok")
	return body, resp.Header.Get("Content-Type"), nil
}

// GetJSON fetches url and decodes the JSON body into v.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	body, _, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDecode, c.name, err)
	}
	return nil
}
