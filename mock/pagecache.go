package mock

import (
	"context"

	"github.com/fwojciec/lodestone"
)

var _ lodestone.PageCache = (*PageCache)(nil)

// PageCache is a mock implementation of lodestone.PageCache.
type PageCache struct {
	FindPageFn   func(ctx context.Context, url string) (*lodestone.CachedPage, error)
	SavePageFn   func(ctx context.Context, page *lodestone.CachedPage) error
	DeletePageFn func(ctx context.Context, url string) error
}

func (c *PageCache) FindPage(ctx context.Context, url string) (*lodestone.CachedPage, error) {
	return c.FindPageFn(ctx, url)
}

func (c *PageCache) SavePage(ctx context.Context, page *lodestone.CachedPage) error {
	return c.SavePageFn(ctx, page)
}

func (c *PageCache) DeletePage(ctx context.Context, url string) error {
	return c.DeletePageFn(ctx, url)
}
