package main

import (
	"fmt"

	"github.com/fwojciec/lodestone"
	"github.com/fwojciec/lodestone/fs"
	"github.com/fwojciec/lodestone/goquery"
)

// Run executes the check command. Every file is checked; the first error
// is returned after all have been reported.
func (c *CheckCmd) Run(deps *Dependencies) error {
	var first error
	for _, path := range c.Definitions {
		err := checkDefinition(path, deps)
		if err != nil {
			fmt.Fprintf(deps.Stdout, "FAIL  %s: %s\n", path, lodestone.ErrorMessage(err))
			if first == nil {
				first = err
			}
		}
	}
	return first
}

func checkDefinition(path string, deps *Dependencies) error {
	def, err := fs.LoadDefinition(path)
	if err != nil {
		return err
	}
	if err := goquery.CheckSelectors(def); err != nil {
		return err
	}

	var n int
	_ = def.Root().Walk(func([]string, *lodestone.Element) error {
		n++
		return nil
	})
	fmt.Fprintf(deps.Stdout, "ok    %s (%d elements)\n", path, n)
	return nil
}
