package scrape

import (
	"context"
	"time"

	"github.com/fwojciec/lodestone"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Retryable reports whether a failed fetch may succeed if repeated.
// A missing page stays missing and a rejected URL stays rejected.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	switch lodestone.ErrorCode(err) {
	case lodestone.ENOTFOUND, lodestone.EINVALID:
		return false
	}
	return true
}

// FetchWithRetryDelays calls fetch until it succeeds, fails with an error
// that is not Retryable, or runs out of delays. Each delay is waited out
// before the next attempt, so len(delays)+1 attempts are made at most.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger LogFunc, delays []time.Duration) (string, error) {
	for attempt := 0; ; attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		if !Retryable(err) || attempt == len(delays) {
			return "", err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}

		if logger != nil {
			logger("  retry %s in %s (attempt %d of %d, %s): %v",
				url, delays[attempt], attempt+2, len(delays)+1, lodestone.ErrorCode(err), err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}
}
