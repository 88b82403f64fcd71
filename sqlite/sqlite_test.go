package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/lodestone/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("creates the pages table", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		require.NoError(t, db.Open())
		defer db.Close()

		rows, err := db.QueryContext(context.Background(), "SELECT name FROM pragma_table_info('pages') ORDER BY cid")
		require.NoError(t, err)
		defer rows.Close()

		var columns []string
		for rows.Next() {
			var name string
			require.NoError(t, rows.Scan(&name))
			columns = append(columns, name)
		}
		require.NoError(t, rows.Err())
		assert.Equal(t, []string{"id", "url", "body", "content_hash", "fetched_at"}, columns)
	})

	t.Run("rejects a second row for the same url", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		require.NoError(t, db.Open())
		defer db.Close()

		ctx := context.Background()
		const insert = "INSERT INTO pages (id, url, fetched_at) VALUES (?, ?, '2026-01-01T00:00:00Z')"
		_, err := db.ExecContext(ctx, insert, "a", "https://example.com/u/1")
		require.NoError(t, err)
		_, err = db.ExecContext(ctx, insert, "b", "https://example.com/u/1")
		require.Error(t, err)
	})

	t.Run("indexes pages by fetch time", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		require.NoError(t, db.Open())
		defer db.Close()

		var count int
		err := db.QueryRowContext(context.Background(),
			"SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name = 'idx_pages_fetched_at'").Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("reopening keeps cached pages", func(t *testing.T) {
		t.Parallel()

		path := t.TempDir() + "/cache.db"
		ctx := context.Background()

		db := sqlite.NewDB(path)
		require.NoError(t, db.Open())
		_, err := db.ExecContext(ctx, "INSERT INTO pages (id, url, fetched_at) VALUES ('a', 'https://example.com/u/1', '2026-01-01T00:00:00Z')")
		require.NoError(t, err)
		require.NoError(t, db.Close())

		db = sqlite.NewDB(path)
		require.NoError(t, db.Open())
		defer db.Close()

		var journalMode string
		require.NoError(t, db.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&journalMode))
		assert.Equal(t, "wal", journalMode)

		var count int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM pages").Scan(&count))
		assert.Equal(t, 1, count)
	})

	t.Run("returns error for invalid path", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB("/nonexistent/path/cache.db")
		require.Error(t, db.Open())
	})
}
