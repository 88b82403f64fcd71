package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/lodestone"
	main "github.com/fwojciec/lodestone/cmd/lodestone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCheckCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("reports element counts for valid files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeFile(t, filepath.Join(dir, "character.json"), `{
			"name": {"selector": "h1"},
			"meta": {"server": {"selector": ".world", "regex": "(\\w+)"}}
		}`)
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}}

		cmd := &main.CheckCmd{Definitions: []string{path}}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "ok    "+path+" (2 elements)")
	})

	t.Run("checks every file and returns the first error", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		bad := writeFile(t, filepath.Join(dir, "bad.json"), `{"name": {"selector": "h1[", "attribute": "x"}}`)
		dup := writeFile(t, filepath.Join(dir, "dup.json"), `{"Name": {"selector": "h1"}, "name": {"selector": "h2"}}`)
		good := writeFile(t, filepath.Join(dir, "good.json"), `{"name": {"selector": "h1"}}`)
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}}

		cmd := &main.CheckCmd{Definitions: []string{bad, dup, good}}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, lodestone.EINVALID, lodestone.ErrorCode(err))
		output := stdout.String()
		assert.Contains(t, output, "FAIL  "+bad)
		assert.Contains(t, output, "FAIL  "+dup)
		assert.Contains(t, output, "ok    "+good)
	})
}
