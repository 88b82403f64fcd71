package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/lodestone"
)

// Run executes the purge command.
func (c *PurgeCmd) Run(deps *Dependencies) error {
	n, err := deps.Cache.PurgePages(deps.Ctx, time.Now().Add(-c.OlderThan))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lodestone.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Removed %d cached pages\n", n)
	return nil
}
