package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/lodestone"
	"github.com/fwojciec/lodestone/fs"
)

// Run executes the extract command. Sources starting with http:// or
// https:// are fetched; anything else is read from disk.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	def, err := fs.LoadDefinition(c.Definition)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lodestone.ErrorMessage(err))
		return err
	}

	if isURL(c.Source) {
		if err := deps.Scraper.ScrapeURL(deps.Ctx, def, c.Source); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", lodestone.ErrorMessage(err))
			return err
		}
	} else {
		markup, err := os.ReadFile(c.Source)
		if err != nil {
			return fmt.Errorf("read %s: %w", c.Source, err)
		}
		doc, err := deps.Parser.Parse(string(markup))
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", lodestone.ErrorMessage(err))
			return err
		}
		def.Bind(doc)
	}

	return writeRecord(deps.Stdout, c.Format, def.Serialize())
}
