package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/unimatch/backend/internal/domain"
)

const maxAttempts = 3

// Client fetches a catalog document over HTTP
type Client struct {
	httpClient  *http.Client
	url         string
	rateLimiter *rate.Limiter
	logger      *zap.Logger
	backoff     func(attempt int) time.Duration
}

// NewClient creates a remote catalog client
func NewClient(url string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		url: url,
		// one fetch per second, enough burst for a full retry cycle
		rateLimiter: rate.NewLimiter(rate.Every(time.Second), maxAttempts),
		logger:      logger.Named("catalog"),
		backoff:     exponentialBackoff,
	}
}

// exponentialBackoff returns 500ms, 1s, 2s for attempts 1, 2, 3
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500<<(attempt-1)) * time.Millisecond
}

func (c *Client) doRequest(ctx context.Context) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "UniMatch/1.0")
	req.Header.Set("Accept", "application/yaml, application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogFetch, err)
	}
	return resp, nil
}

// Fetch downloads and parses the catalog, retrying transport errors and
// non-200 responses other than 404.
func (c *Client) Fetch(ctx context.Context) ([]domain.Institution, error) {
	c.logger.Info("fetching catalog", zap.String("url", c.url))

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx)
		if err != nil {
			c.logger.Warn("catalog request failed", zap.Int("attempt", attempt), zap.Error(err))
			lastErr = err
			if err := c.wait(ctx, attempt); err != nil {
				return nil, err
			}
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", domain.ErrCatalogNotFound, c.url)
		}
		if !successful(resp.StatusCode) || readErr != nil {
			c.logger.Warn("catalog fetch error",
				zap.Int("attempt", attempt),
				zap.Int("status", resp.StatusCode),
				zap.NamedError("read_error", readErr))
			lastErr = fmt.Errorf("%w: status %d", domain.ErrCatalogFetch, resp.StatusCode)
			if err := c.wait(ctx, attempt); err != nil {
				return nil, err
			}
			continue
		}

		institutions, err := Parse(body)
		if err != nil {
			c.logger.Error("catalog document rejected", zap.Error(err))
			return nil, err
		}

		c.logger.Info("catalog fetched", zap.Int("institutions", len(institutions)))
		return institutions, nil
	}

	c.logger.Error("all catalog fetch attempts failed", zap.Error(lastErr))
	return nil, lastErr
}

// wait sleeps for the backoff of attempt unless it was the last one
func (c *Client) wait(ctx context.Context, attempt int) error {
	if attempt == maxAttempts {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.backoff(attempt)):
		return nil
	}
}

func successful(status int) bool {
	return status >= 200 && status < 300
}
