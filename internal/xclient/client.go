package xclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Sentinel errors for the two fetch failures the operator acts on.
// Both are fatal for the bulk timeline fetch; there is no partial-timeline
// fallback and no automatic retry in this tool.
var (
	ErrAuthentication = errors.New("authentication rejected")
	ErrRateLimited    = errors.New("rate limited")
)

// HTTPClient is the shared rate-limited transport for API calls.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewHTTPClient(rps float64, burst int) *HTTPClient {
	return &HTTPClient{
		baseURL:    "https://api.twitter.com/1.1",
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    newLimiter(rps, burst),
	}
}

// do performs one request after waiting for the limiter. A single attempt:
// the batch is re-invoked whole on failure rather than retried piecemeal.
func (c *HTTPClient) do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return c.httpClient.Do(req)
}

// statusErr maps an HTTP status to the error taxonomy.
func statusErr(code int) error {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return fmt.Errorf("api status %d: %w", code, ErrAuthentication)
	case code == http.StatusTooManyRequests:
		return fmt.Errorf("api status %d: %w", code, ErrRateLimited)
	default:
		return fmt.Errorf("api status %d", code)
	}
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
