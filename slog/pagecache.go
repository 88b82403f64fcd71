package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/lodestone"
)

var _ lodestone.PageCache = (*LoggingPageCache)(nil)

// LoggingPageCache wraps a PageCache with debug logging.
// Misses are logged as hits=false rather than as errors.
type LoggingPageCache struct {
	next   lodestone.PageCache
	logger *slog.Logger
}

// NewLoggingPageCache creates a new LoggingPageCache.
func NewLoggingPageCache(next lodestone.PageCache, logger *slog.Logger) *LoggingPageCache {
	return &LoggingPageCache{next: next, logger: logger}
}

// FindPage delegates to the wrapped cache and logs hit or miss.
func (c *LoggingPageCache) FindPage(ctx context.Context, url string) (page *lodestone.CachedPage, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", url,
			"hit", err == nil,
			"duration", time.Since(begin),
		}
		if err == nil {
			attrs = append(attrs, "age", time.Since(page.FetchedAt).Round(time.Second))
		} else if lodestone.ErrorCode(err) != lodestone.ENOTFOUND {
			attrs = append(attrs, "err", err)
		}
		c.logger.Debug("cache lookup", attrs...)
	}(time.Now())
	return c.next.FindPage(ctx, url)
}

// SavePage delegates to the wrapped cache and logs the operation.
func (c *LoggingPageCache) SavePage(ctx context.Context, page *lodestone.CachedPage) (err error) {
	defer func(begin time.Time) {
		c.logger.Debug("cache store",
			"url", page.URL,
			"bytes", len(page.Body),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.SavePage(ctx, page)
}

// DeletePage delegates to the wrapped cache and logs the operation.
func (c *LoggingPageCache) DeletePage(ctx context.Context, url string) (err error) {
	defer func(begin time.Time) {
		c.logger.Debug("cache delete",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.DeletePage(ctx, url)
}
