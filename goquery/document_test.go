package goquery_test

import (
	"sync"
	"testing"

	"github.com/fwojciec/lodestone"
	"github.com/fwojciec/lodestone/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("parses a fragment into a queryable document", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.NewParser().Parse(`<h1>Hi</h1><div class="byline">By Jane Doe</div>`)
		require.NoError(t, err)

		sel, ok := doc.SelectFirst(".byline")
		require.True(t, ok)
		assert.Equal(t, "By Jane Doe", sel.Text())
	})

	t.Run("parses empty markup", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.NewParser().Parse("")
		require.NoError(t, err)

		_, ok := doc.SelectFirst("h1")
		assert.False(t, ok)
	})
}

func TestDocument_SelectFirst(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<body>
<ul>
	<li class="item"><a href="/first">First</a></li>
	<li class="item"><a href="/second">Second</a></li>
</ul>
<p>Some <b>bold</b> text</p>
</body>
</html>`

	doc, err := goquery.NewParser().Parse(html)
	require.NoError(t, err)

	t.Run("returns first match in document order", func(t *testing.T) {
		t.Parallel()

		sel, ok := doc.SelectFirst("li.item a")
		require.True(t, ok)
		assert.Equal(t, "First", sel.Text())

		href, ok := sel.Attr("href")
		assert.True(t, ok)
		assert.Equal(t, "/first", href)
	})

	t.Run("reports missing attribute", func(t *testing.T) {
		t.Parallel()

		sel, ok := doc.SelectFirst("li.item a")
		require.True(t, ok)

		_, ok = sel.Attr("title")
		assert.False(t, ok)
	})

	t.Run("text includes descendants", func(t *testing.T) {
		t.Parallel()

		sel, ok := doc.SelectFirst("p")
		require.True(t, ok)
		assert.Equal(t, "Some bold text", sel.Text())
	})

	t.Run("selects within a selection", func(t *testing.T) {
		t.Parallel()

		list, ok := doc.SelectFirst("ul")
		require.True(t, ok)

		sel, ok := list.SelectFirst("li:nth-child(2) a")
		require.True(t, ok)
		assert.Equal(t, "Second", sel.Text())

		_, ok = list.SelectFirst("p")
		assert.False(t, ok)
	})

	t.Run("returns false when nothing matches", func(t *testing.T) {
		t.Parallel()

		_, ok := doc.SelectFirst(".missing")
		assert.False(t, ok)
	})

	t.Run("invalid selector matches nothing", func(t *testing.T) {
		t.Parallel()

		_, ok := doc.SelectFirst("li[")
		assert.False(t, ok)
	})

	t.Run("reuses compiled selectors across documents", func(t *testing.T) {
		t.Parallel()

		const valid, invalid = "ul > li.item:last-child a", "ul > li["
		other, err := goquery.NewParser().Parse(`<ul><li class="item"><a>Only</a></li></ul>`)
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				doc.SelectFirst(valid)
				other.SelectFirst(invalid)
			}()
		}
		wg.Wait()

		assert.Equal(t, 2, goquery.CompiledSelectors(valid, invalid))

		sel, ok := doc.SelectFirst(valid)
		require.True(t, ok)
		assert.Equal(t, "Second", sel.Text())
		sel, ok = other.SelectFirst(valid)
		require.True(t, ok)
		assert.Equal(t, "Only", sel.Text())
		_, ok = other.SelectFirst(invalid)
		assert.False(t, ok)
	})
}

func TestCheckSelectors(t *testing.T) {
	t.Parallel()

	t.Run("accepts valid selectors", func(t *testing.T) {
		t.Parallel()

		def := lodestone.MustParseDefinition("profile", `{
			"name": {"selector": "h1.name"},
			"stats": {"hp": {"selector": "table tr:nth-child(2) > td", "regex": "(\\d+)"}}
		}`)

		assert.NoError(t, goquery.CheckSelectors(def))
	})

	t.Run("names the element with an invalid selector", func(t *testing.T) {
		t.Parallel()

		def := lodestone.MustParseDefinition("profile", `{
			"name": {"selector": "h1"},
			"stats": {"hp": {"selector": "td["}}
		}`)

		err := goquery.CheckSelectors(def)
		require.Error(t, err)
		assert.Equal(t, lodestone.EINVALID, lodestone.ErrorCode(err))
		assert.Contains(t, lodestone.ErrorMessage(err), "profile.stats.hp")
	})
}
