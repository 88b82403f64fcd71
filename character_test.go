package lodestone_test

import (
	"testing"

	"github.com/fwojciec/lodestone"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharacter(t *testing.T) {
	t.Parallel()

	profile := lodestone.MustParseDefinition("character", `{
		"name": {"selector": "h1"},
		"server": {"selector": ".server"}
	}`)
	profile.Bind(parse(t, `<h1>Alys Vale</h1><p class="server">Ragnarok</p>`))

	classes := lodestone.MustParseDefinition("classjob", `{
		"paladin": {"level": {"selector": ".pld", "regex": "Lv\\. (\\d+)"}},
		"server": {"selector": ".home"}
	}`)
	classes.Bind(parse(t, `<span class="pld">Lv. 90</span><span class="home">Odin</span>`))

	char := lodestone.NewCharacter(profile, classes)

	t.Run("serializes a flat merge with later definitions winning", func(t *testing.T) {
		t.Parallel()

		b, err := json.Marshal(char.Serialize())
		require.NoError(t, err)
		assert.Equal(t, `{"name":"Alys Vale","server":"Odin","paladin":{"level":"90"}}`, string(b))
	})

	t.Run("get returns the first match", func(t *testing.T) {
		t.Parallel()

		v, ok := char.Value("server")
		require.True(t, ok)
		assert.Equal(t, "Ragnarok", v)

		n, ok := char.Get("paladin")
		require.True(t, ok)
		c, ok := n.(*lodestone.Container)
		require.True(t, ok)
		lvl, ok := c.Value("level")
		require.True(t, ok)
		assert.Equal(t, "90", lvl)
	})

	t.Run("unknown and container names have no value", func(t *testing.T) {
		t.Parallel()

		_, ok := char.Get("missing")
		assert.False(t, ok)
		_, ok = char.Value("missing")
		assert.False(t, ok)
		_, ok = char.Value("paladin")
		assert.False(t, ok)
	})

	t.Run("empty character serializes to empty object", func(t *testing.T) {
		t.Parallel()

		b, err := json.Marshal(lodestone.NewCharacter().Serialize())
		require.NoError(t, err)
		assert.Equal(t, `{}`, string(b))
	})
}
