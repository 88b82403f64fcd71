package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fwojciec/lodestone"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ lodestone.PageCache = (*PageCache)(nil)

// PageCache implements lodestone.PageCache using SQLite.
type PageCache struct {
	db *DB
}

// NewPageCache creates a new PageCache.
func NewPageCache(db *DB) *PageCache {
	return &PageCache{db: db}
}

// FindPage retrieves the cached page for url.
func (c *PageCache) FindPage(ctx context.Context, url string) (*lodestone.CachedPage, error) {
	var page lodestone.CachedPage
	var fetchedAt string

	err := c.db.QueryRowContext(ctx, `
		SELECT id, url, body, content_hash, fetched_at
		FROM pages
		WHERE url = ?
	`, url).Scan(&page.ID, &page.URL, &page.Body, &page.ContentHash, &fetchedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, lodestone.Errorf(lodestone.ENOTFOUND, "page %q not cached", url)
	}
	if err != nil {
		return nil, err
	}

	page.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
	if err != nil {
		return nil, err
	}

	return &page, nil
}

// SavePage stores page, replacing any earlier entry for the same URL.
// ID and ContentHash are always assigned; FetchedAt defaults to now.
func (c *PageCache) SavePage(ctx context.Context, page *lodestone.CachedPage) error {
	if err := page.Validate(); err != nil {
		return err
	}

	if page.FetchedAt.IsZero() {
		page.FetchedAt = time.Now()
	}
	page.FetchedAt = page.FetchedAt.UTC().Truncate(time.Second)
	page.ContentHash = hashContent(page.Body)

	// An existing row keeps its ID.
	return c.db.QueryRowContext(ctx, `
		INSERT INTO pages (id, url, body, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			body = excluded.body,
			content_hash = excluded.content_hash,
			fetched_at = excluded.fetched_at
		RETURNING id
	`, uuid.New().String(), page.URL, page.Body, page.ContentHash,
		page.FetchedAt.Format(time.RFC3339)).Scan(&page.ID)
}

// DeletePage removes the cached page for url.
func (c *PageCache) DeletePage(ctx context.Context, url string) error {
	result, err := c.db.ExecContext(ctx, "DELETE FROM pages WHERE url = ?", url)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return lodestone.Errorf(lodestone.ENOTFOUND, "page %q not cached", url)
	}

	return nil
}

// PurgePages removes every page fetched before the given time and returns
// the number of pages removed.
func (c *PageCache) PurgePages(ctx context.Context, before time.Time) (int, error) {
	result, err := c.db.ExecContext(ctx, "DELETE FROM pages WHERE fetched_at < ?",
		before.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(rows), nil
}
