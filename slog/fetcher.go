// Package slog provides log/slog decorators for lodestone services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/lodestone"
)

var _ lodestone.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher and logs one line per fetch, keyed by host.
// Failures are logged at warn level with their error code.
type LoggingFetcher struct {
	next   lodestone.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next lodestone.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"host", lodestone.Host(url),
			"url", url,
			"duration", time.Since(begin),
		}
		if err != nil {
			attrs = append(attrs, "code", lodestone.ErrorCode(err), "err", err)
			f.logger.WarnContext(ctx, "fetch failed", attrs...)
			return
		}
		f.logger.InfoContext(ctx, "fetch", append(attrs, "bytes", len(html))...)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
