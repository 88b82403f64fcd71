package scrape

import (
	"context"
	"time"

	"github.com/fwojciec/lodestone"
)

var _ lodestone.Fetcher = (*CachingFetcher)(nil)

// CachingFetcher serves pages from a PageCache while they are fresh and
// falls back to the wrapped Fetcher otherwise, storing what it fetches.
type CachingFetcher struct {
	next  lodestone.Fetcher
	cache lodestone.PageCache

	// TTL is how long a cached page stays fresh. Zero means forever.
	TTL time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewCachingFetcher wraps next with cache.
func NewCachingFetcher(next lodestone.Fetcher, cache lodestone.PageCache, ttl time.Duration) *CachingFetcher {
	return &CachingFetcher{next: next, cache: cache, TTL: ttl, Now: time.Now}
}

// Fetch returns the cached body for url if fresh, fetching it otherwise.
func (f *CachingFetcher) Fetch(ctx context.Context, url string) (string, error) {
	page, err := f.cache.FindPage(ctx, url)
	switch {
	case err == nil:
		if f.TTL <= 0 || f.now().Sub(page.FetchedAt) < f.TTL {
			return page.Body, nil
		}
	case lodestone.ErrorCode(err) != lodestone.ENOTFOUND:
		return "", err
	}

	html, err := f.next.Fetch(ctx, url)
	if err != nil {
		return "", err
	}

	if err := f.cache.SavePage(ctx, &lodestone.CachedPage{
		URL:       url,
		Body:      html,
		FetchedAt: f.now(),
	}); err != nil {
		return "", err
	}
	return html, nil
}

// Close closes the wrapped fetcher.
func (f *CachingFetcher) Close() error {
	return f.next.Close()
}

func (f *CachingFetcher) now() time.Time {
	if f.Now == nil {
		return time.Now()
	}
	return f.Now()
}
