package httpcatalog

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/nsarvani/Statify/internal/core/ports"
	"github.com/nsarvani/Statify/internal/logging"
)

const (
	defaultMaxRetries = 3
	defaultBackoff    = 500 * time.Millisecond
	maxBackoff        = 30 * time.Second
)

// errRetryable marks a response that should be attempted again.
var errRetryable = errors.New("retryable response")

// retryAfterBackOff lets a server-provided Retry-After delay replace the next
// computed interval while still counting against the retry budget.
type retryAfterBackOff struct {
	backoff.BackOff
	hint time.Duration
}

func (b *retryAfterBackOff) NextBackOff() time.Duration {
	next := b.BackOff.NextBackOff()
	if next == backoff.Stop {
		return next
	}
	if b.hint > 0 {
		next, b.hint = b.hint, 0
	}
	return next
}

func (s *Source) newBackOff() *retryAfterBackOff {
	expo := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(s.baseBackoff),
		backoff.WithMultiplier(2),
		backoff.WithRandomizationFactor(0),
		backoff.WithMaxInterval(maxBackoff),
		backoff.WithMaxElapsedTime(0),
	)
	return &retryAfterBackOff{
		BackOff: backoff.WithMaxRetries(expo, uint64(s.maxRetries-1)),
	}
}

// doRequestWithRetry sends req, retrying transport errors, 429 and 5xx up to
// maxRetries attempts in total.
func (s *Source) doRequestWithRetry(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	bo := s.newBackOff()

	attempt := 0
	var resp *http.Response
	operation := func() error {
		attempt++
		// #nosec G107 -- URL comes from operator configuration
		r, err := s.httpClient.Do(req.Clone(ctx))
		retryAfter, retry := shouldRetry(r, err)
		if !retry {
			resp = r
			return nil
		}
		if ctx.Err() != nil {
			if r != nil {
				_ = r.Body.Close()
			}
			return backoff.Permanent(ctx.Err())
		}
		bo.hint = retryAfter
		if err != nil {
			return err
		}
		_ = r.Body.Close()
		return fmt.Errorf("%w: status %d", errRetryable, r.StatusCode)
	}

	notify := func(err error, wait time.Duration) {
		logging.Ctx(ctx).Warn().
			Err(err).
			Int("attempt", attempt).
			Int("max_attempts", s.maxRetries).
			Dur("backoff", wait).
			Msg("catalog http: retrying")
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(bo, ctx), notify); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("catalog http: request canceled: %w", ctx.Err())
		}
		return nil, fmt.Errorf("catalog http: request failed after %d attempts: %w: %w", attempt, ports.ErrCatalogUnavailable, err)
	}
	return resp, nil
}

func shouldRetry(resp *http.Response, err error) (time.Duration, bool) {
	if err != nil {
		return 0, true
	}
	if resp == nil {
		return 0, false
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
		return parseRetryAfter(resp), true
	}

	return 0, false
}

func parseRetryAfter(resp *http.Response) time.Duration {
	if resp == nil {
		return 0
	}

	retryAfter := resp.Header.Get("Retry-After")
	if retryAfter == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}

	if when, err := http.ParseTime(retryAfter); err == nil {
		until := time.Until(when)
		if until > 0 {
			return until
		}
	}

	return 0
}
