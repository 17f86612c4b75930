package gather

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"
)

// Fetcher wraps an HTTP client with bounded retries and exponential backoff.
// Rate-limit responses (429) back off more aggressively than other failures
// so the upstream is given room to recover.
type Fetcher struct {
	client      *http.Client
	logger      arbor.ILogger
	userAgent   string
	maxAttempts int
	backoffUnit time.Duration
}

// NewFetcher creates a Fetcher. backoffUnit is the base of the exponential
// backoff; production uses one second, tests shorten it.
func NewFetcher(client *http.Client, logger arbor.ILogger, userAgent string, maxAttempts int, backoffUnit time.Duration) *Fetcher {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Fetcher{
		client:      client,
		logger:      logger,
		userAgent:   userAgent,
		maxAttempts: maxAttempts,
		backoffUnit: backoffUnit,
	}
}

// Get fetches the URL, retrying transient failures. It returns the response
// body on the first 2xx response, or an error once all attempts are spent.
// A 429 sleeps 2^(attempt+1) backoff units before the next try; any other
// failure sleeps 2^attempt units.
func (f *Fetcher) Get(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt < f.maxAttempts; attempt++ {
		if attempt > 0 {
			f.logger.Debug().
				Str("url", url).
				Int("attempt", attempt+1).
				Msg("Retrying fetch")
		}

		body, retryAfter, err := f.doRequest(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if attempt == f.maxAttempts-1 {
			break
		}

		delay := f.backoffUnit * (1 << uint(attempt))
		if retryAfter {
			// Rate limited: wait 2^(attempt+1) units
			delay = f.backoffUnit * (1 << uint(attempt+1))
			f.logger.Warn().
				Str("url", url).
				Dur("delay", delay).
				Msg("Rate limited by upstream, backing off")
		}

		if err := sleepCtx(ctx, delay); err != nil {
			return nil, err
		}
	}

	return nil, fmt.Errorf("fetch %s failed after %d attempts: %w", url, f.maxAttempts, lastErr)
}

// doRequest performs a single attempt. The bool result reports whether the
// failure was a rate-limit response.
func (f *Fetcher) doRequest(ctx context.Context, url string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, err
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		io.Copy(io.Discard, resp.Body)
		return nil, true, fmt.Errorf("rate limited (status %d)", resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, false, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, false, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
