package travellermap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/traveller-trade-go/internal/domain/shared"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/world"
)

const (
	DefaultBaseURL     = "https://travellermap.com"
	defaultTimeout     = 30 * time.Second
	defaultMaxRetries  = 3
	defaultBackoffBase = time.Second
)

// ErrNotFound is returned when the service has no sector or hex matching the query
var ErrNotFound = errors.New("map service returned not found")

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL     string
	Timeout     time.Duration
	RateLimit   float64
	Burst       int
	MaxRetries  int
	BackoffBase time.Duration

	BreakerThreshold int
	BreakerTimeout   time.Duration

	Clock      shared.Clock
	HTTPClient *http.Client
}

// Client queries the Traveller Map web service
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	breaker     *CircuitBreaker
	baseURL     string
	maxRetries  int
	backoffBase time.Duration
	clock       shared.Clock
}

// NewClient creates a map service client
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 2
	}
	if opts.Burst <= 0 {
		opts.Burst = 2
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	if opts.BackoffBase == 0 {
		opts.BackoffBase = defaultBackoffBase
	}
	if opts.BreakerThreshold <= 0 {
		opts.BreakerThreshold = 5
	}
	if opts.BreakerTimeout == 0 {
		opts.BreakerTimeout = time.Minute
	}
	if opts.Clock == nil {
		opts.Clock = shared.SystemClock{}
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}

	return &Client{
		httpClient:  opts.HTTPClient,
		rateLimiter: rate.NewLimiter(rate.Limit(opts.RateLimit), opts.Burst),
		breaker:     NewCircuitBreaker(opts.BreakerThreshold, opts.BreakerTimeout, opts.Clock),
		baseURL:     opts.BaseURL,
		maxRetries:  opts.MaxRetries,
		backoffBase: opts.BackoffBase,
		clock:       opts.Clock,
	}
}

// JumpWorlds lists every world within jump parsecs of origin, origin included
func (c *Client) JumpWorlds(ctx context.Context, origin shared.SectorHex, jump int) ([]*world.World, error) {
	query := url.Values{}
	query.Set("sector", origin.Sector())
	query.Set("hex", origin.Hex())
	query.Set("jump", strconv.Itoa(jump))

	var response JumpWorldsResponse
	err := c.breaker.Call(func() error {
		return c.get(ctx, "/api/jumpworlds?"+query.Encode(), &response)
	}, func(err error) bool {
		return errors.Is(err, ErrNotFound)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load jump worlds around %s: %w", origin, err)
	}

	return ToWorlds(response.Worlds), nil
}

// BreakerState exposes the circuit state for status output
func (c *Client) BreakerState() CircuitState {
	return c.breaker.State()
}

// retryableError marks a failure worth another attempt
type retryableError struct {
	message    string
	retryAfter time.Duration
}

func (e *retryableError) Error() string {
	return e.message
}

// get performs a GET with rate limiting and exponential backoff + jitter
// on network errors, 429 and 5xx responses
func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		err := c.do(ctx, path, result)
		if err == nil {
			return nil
		}

		var retryable *retryableError
		if !errors.As(err, &retryable) {
			return err
		}
		lastErr = err

		if attempt >= c.maxRetries {
			break
		}
		if ctx.Err() != nil {
			return fmt.Errorf("context cancelled: %w", ctx.Err())
		}

		delay := addJitter(c.backoffBase * time.Duration(1<<attempt))
		if retryable.retryAfter > 0 {
			delay = retryable.retryAfter
		}
		c.clock.Sleep(delay)
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

func (c *Client) do(ctx context.Context, path string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &retryableError{message: fmt.Sprintf("network error: %v", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &retryableError{message: fmt.Sprintf("failed to read response: %v", err)}
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		var retryAfter time.Duration
		if seconds, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
			retryAfter = time.Duration(seconds) * time.Second
		}
		return &retryableError{message: "rate limited (429)", retryAfter: retryAfter}
	case resp.StatusCode >= 500:
		return &retryableError{message: fmt.Sprintf("server error (%d)", resp.StatusCode)}
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusBadRequest:
		return fmt.Errorf("%w (%d): %s", ErrNotFound, resp.StatusCode, truncate(body))
	case resp.StatusCode >= 400:
		return fmt.Errorf("request failed (%d): %s", resp.StatusCode, truncate(body))
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// addJitter spreads d by up to ±25%
func addJitter(d time.Duration) time.Duration {
	if d < 4 {
		return d
	}
	jitter := time.Duration(rand.Int63n(int64(d)/2)) - d/4
	return d + jitter
}

func truncate(body []byte) string {
	const limit = 200
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}
