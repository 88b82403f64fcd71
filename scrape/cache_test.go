package scrape_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/lodestone"
	"github.com/fwojciec/lodestone/mock"
	"github.com/fwojciec/lodestone/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("returns fresh cached page without fetching", func(t *testing.T) {
		t.Parallel()

		cache := &mock.PageCache{
			FindPageFn: func(ctx context.Context, url string) (*lodestone.CachedPage, error) {
				return &lodestone.CachedPage{URL: url, Body: "cached", FetchedAt: now.Add(-time.Minute)}, nil
			},
		}
		next := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				t.Fatal("should not fetch")
				return "", nil
			},
		}

		f := scrape.NewCachingFetcher(next, cache, time.Hour)
		f.Now = func() time.Time { return now }

		html, err := f.Fetch(context.Background(), "https://example.com/a")
		require.NoError(t, err)
		assert.Equal(t, "cached", html)
	})

	t.Run("refetches stale page and stores it", func(t *testing.T) {
		t.Parallel()

		var saved *lodestone.CachedPage
		cache := &mock.PageCache{
			FindPageFn: func(ctx context.Context, url string) (*lodestone.CachedPage, error) {
				return &lodestone.CachedPage{URL: url, Body: "stale", FetchedAt: now.Add(-2 * time.Hour)}, nil
			},
			SavePageFn: func(ctx context.Context, page *lodestone.CachedPage) error {
				saved = page
				return nil
			},
		}
		next := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "fresh", nil
			},
		}

		f := scrape.NewCachingFetcher(next, cache, time.Hour)
		f.Now = func() time.Time { return now }

		html, err := f.Fetch(context.Background(), "https://example.com/a")
		require.NoError(t, err)
		assert.Equal(t, "fresh", html)
		require.NotNil(t, saved)
		assert.Equal(t, "https://example.com/a", saved.URL)
		assert.Equal(t, "fresh", saved.Body)
		assert.Equal(t, now, saved.FetchedAt)
	})

	t.Run("zero TTL never expires", func(t *testing.T) {
		t.Parallel()

		cache := &mock.PageCache{
			FindPageFn: func(ctx context.Context, url string) (*lodestone.CachedPage, error) {
				return &lodestone.CachedPage{URL: url, Body: "ancient", FetchedAt: now.AddDate(-5, 0, 0)}, nil
			},
		}

		f := scrape.NewCachingFetcher(&mock.Fetcher{}, cache, 0)
		f.Now = func() time.Time { return now }

		html, err := f.Fetch(context.Background(), "https://example.com/a")
		require.NoError(t, err)
		assert.Equal(t, "ancient", html)
	})

	t.Run("fetches on cache miss", func(t *testing.T) {
		t.Parallel()

		cache := &mock.PageCache{
			FindPageFn: func(ctx context.Context, url string) (*lodestone.CachedPage, error) {
				return nil, lodestone.Errorf(lodestone.ENOTFOUND, "not cached")
			},
			SavePageFn: func(ctx context.Context, page *lodestone.CachedPage) error { return nil },
		}
		next := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) { return "fetched", nil },
		}

		html, err := scrape.NewCachingFetcher(next, cache, time.Hour).Fetch(context.Background(), "https://example.com/a")
		require.NoError(t, err)
		assert.Equal(t, "fetched", html)
	})

	t.Run("returns cache errors other than not found", func(t *testing.T) {
		t.Parallel()

		cache := &mock.PageCache{
			FindPageFn: func(ctx context.Context, url string) (*lodestone.CachedPage, error) {
				return nil, errors.New("disk on fire")
			},
		}

		_, err := scrape.NewCachingFetcher(&mock.Fetcher{}, cache, time.Hour).Fetch(context.Background(), "https://example.com/a")
		assert.EqualError(t, err, "disk on fire")
	})

	t.Run("does not cache fetch failures", func(t *testing.T) {
		t.Parallel()

		cache := &mock.PageCache{
			FindPageFn: func(ctx context.Context, url string) (*lodestone.CachedPage, error) {
				return nil, lodestone.Errorf(lodestone.ENOTFOUND, "not cached")
			},
			SavePageFn: func(ctx context.Context, page *lodestone.CachedPage) error {
				t.Fatal("should not save")
				return nil
			},
		}
		next := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) { return "", errors.New("timeout") },
		}

		_, err := scrape.NewCachingFetcher(next, cache, time.Hour).Fetch(context.Background(), "https://example.com/a")
		assert.EqualError(t, err, "timeout")
	})
}

func TestCachingFetcher_Close(t *testing.T) {
	t.Parallel()

	closed := false
	next := &mock.Fetcher{CloseFn: func() error {
		closed = true
		return nil
	}}

	require.NoError(t, scrape.NewCachingFetcher(next, &mock.PageCache{}, 0).Close())
	assert.True(t, closed)
}
