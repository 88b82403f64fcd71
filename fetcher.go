package lodestone

import (
	"context"
	"net/url"
	"time"
)

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch retrieves the page at url and returns its markup.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// CachedPage is a previously fetched response body.
type CachedPage struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Body        string    `json:"body"`
	ContentHash string    `json:"contentHash"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the page contains invalid fields.
func (p *CachedPage) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "cached page URL required")
	}
	return nil
}

// PageCache stores fetched responses keyed by URL.
type PageCache interface {
	// FindPage returns the cached page for url.
	// Returns ENOTFOUND if the URL has not been cached.
	FindPage(ctx context.Context, url string) (*CachedPage, error)

	// SavePage stores page, replacing any earlier entry for the same URL.
	SavePage(ctx context.Context, page *CachedPage) error

	// DeletePage removes the cached page for url.
	// Returns ENOTFOUND if the URL has not been cached.
	DeletePage(ctx context.Context, url string) error
}

// DomainLimiter rate limits requests per domain.
type DomainLimiter interface {
	// Wait blocks until a request to domain is allowed or ctx is done.
	Wait(ctx context.Context, domain string) error
}

// SnapshotStore keeps a copy of the markup each definition was bound to.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, name, html string) error
}

// Host returns the host of rawURL, or rawURL itself if it has none.
func Host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}
