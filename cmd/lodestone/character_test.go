package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/lodestone"
	main "github.com/fwojciec/lodestone/cmd/lodestone"
	"github.com/fwojciec/lodestone/goquery"
	"github.com/fwojciec/lodestone/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCharacter(t *testing.T) *lodestone.Character {
	t.Helper()
	doc, err := goquery.NewParser().Parse(`<h1>Alys Vale</h1><div class="pld">90</div>`)
	require.NoError(t, err)

	profile := lodestone.MustParseDefinition("character", `{"name": {"selector": "h1"}}`)
	jobs := lodestone.MustParseDefinition("classjob", `{"paladin": {"level": {"selector": ".pld"}}}`)
	profile.Bind(doc)
	jobs.Bind(doc)
	return lodestone.NewCharacter(profile, jobs)
}

func TestCharacterCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints character as JSON", func(t *testing.T) {
		t.Parallel()

		var gotID string
		characters := &mock.CharacterService{
			FindCharacterByIDFn: func(_ context.Context, id string) (*lodestone.Character, error) {
				gotID = id
				return newCharacter(t), nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:        context.Background(),
			Stdout:     stdout,
			Stderr:     &bytes.Buffer{},
			Characters: characters,
		}

		cmd := &main.CharacterCmd{ID: "42", Format: "json"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "42", gotID)
		assert.JSONEq(t, `{"name":"Alys Vale","paladin":{"level":"90"}}`, stdout.String())
	})

	t.Run("prints character as YAML", func(t *testing.T) {
		t.Parallel()

		characters := &mock.CharacterService{
			FindCharacterByIDFn: func(_ context.Context, id string) (*lodestone.Character, error) {
				return newCharacter(t), nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:        context.Background(),
			Stdout:     stdout,
			Stderr:     &bytes.Buffer{},
			Characters: characters,
		}

		cmd := &main.CharacterCmd{ID: "42", Format: "yaml"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "name: Alys Vale\npaladin:\n  level: \"90\"\n", stdout.String())
	})

	t.Run("reports service errors", func(t *testing.T) {
		t.Parallel()

		characters := &mock.CharacterService{
			FindCharacterByIDFn: func(_ context.Context, id string) (*lodestone.Character, error) {
				return nil, lodestone.Errorf(lodestone.ENOTFOUND, "character %s not found", id)
			},
		}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:        context.Background(),
			Stdout:     &bytes.Buffer{},
			Stderr:     stderr,
			Characters: characters,
		}

		cmd := &main.CharacterCmd{ID: "7", Format: "json"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, lodestone.ENOTFOUND, lodestone.ErrorCode(err))
		assert.Contains(t, stderr.String(), "character 7 not found")
	})
}
