// Package httpx is the fetch collaborator the source fetchers delegate to:
// a retrying GET with exponential backoff, a TTL response cache, and
// per-host rate limiting. Fetchers never implement retry or caching
// themselves.
package httpx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const userAgent = "jobradar/1.0 (+local)"

// Getter fetches a URL body. Fetchers depend on this instead of *Client
// so tests can hand them canned payloads.
type Getter interface {
	Get(ctx context.Context, url string, headers map[string]string) (body string, err error)
}

type statusError struct {
	code int
}

func (e *statusError) Error() string { return fmt.Sprintf("status %d", e.code) }

// Client implements Getter with retry, backoff and caching.
type Client struct {
	hc      *http.Client
	limiter *HostLimiter
	cache   *ResponseCache
	logger  *zap.Logger

	retries   int
	baseDelay time.Duration
}

type Option func(*Client)

func WithRetries(n int) Option              { return func(c *Client) { c.retries = n } }
func WithBaseDelay(d time.Duration) Option  { return func(c *Client) { c.baseDelay = d } }
func WithTimeout(d time.Duration) Option    { return func(c *Client) { c.hc.Timeout = d } }
func WithCache(cache *ResponseCache) Option { return func(c *Client) { c.cache = cache } }
func WithLimiter(hl *HostLimiter) Option    { return func(c *Client) { c.limiter = hl } }
func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.hc = hc } }

func NewClient(logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		hc:        &http.Client{Timeout: 20 * time.Second},
		logger:    logger,
		retries:   2,
		baseDelay: 2 * time.Second,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) Get(ctx context.Context, url string, headers map[string]string) (string, error) {
	if c.cache != nil {
		if body, ok := c.cache.Get(url); ok {
			return body, nil
		}
	}

	var lastErr error
	for attempt := 0; ; attempt++ {
		body, err := c.getOnce(ctx, url, headers)
		if err == nil {
			if c.cache != nil {
				c.cache.Put(url, body)
			}
			return body, nil
		}
		lastErr = err

		if !isRetryable(err) || attempt >= c.retries {
			break
		}

		delay := c.backoffDelay(attempt + 1)
		c.logger.Debug("retrying after transient error",
			zap.String("url", url),
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
	}

	return "", lastErr
}

func (c *Client) getOnce(ctx context.Context, url string, headers map[string]string) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.WaitURL(ctx, url); err != nil {
			return "", err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return "", &statusError{code: res.StatusCode}
	}

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// backoffDelay is baseDelay * 2^(attempt-1) with ±30% jitter.
func (c *Client) backoffDelay(attempt int) time.Duration {
	delay := c.baseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
	}
	jitter := float64(delay) * 0.3
	return time.Duration(float64(delay) + (rand.Float64()*2-1)*jitter)
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.code == http.StatusTooManyRequests || se.code >= 500
	}
	// Network/DNS errors: retryable.
	return true
}
