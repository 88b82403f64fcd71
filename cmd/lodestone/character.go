package main

import (
	"fmt"

	"github.com/fwojciec/lodestone"
)

// Run executes the character command.
func (c *CharacterCmd) Run(deps *Dependencies) error {
	character, err := deps.Characters.FindCharacterByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lodestone.ErrorMessage(err))
		return err
	}
	return writeRecord(deps.Stdout, c.Format, character.Serialize())
}
