package scrape

import (
	"context"

	"github.com/fwojciec/lodestone"
)

var _ lodestone.CharacterService = (*CharacterService)(nil)

// CharacterService builds characters by compiling a fresh set of
// definitions per request and scraping each one with the character's ID.
type CharacterService struct {
	Definitions lodestone.DefinitionSource
	Scraper     *Scraper
}

// FindCharacterByID scrapes every definition with {id} set to id.
func (s *CharacterService) FindCharacterByID(ctx context.Context, id string) (*lodestone.Character, error) {
	if id == "" {
		return nil, lodestone.Errorf(lodestone.EINVALID, "character ID required")
	}

	defs, err := s.Definitions.Definitions()
	if err != nil {
		return nil, err
	}

	if err := s.Scraper.ScrapeAll(ctx, defs, map[string]string{"id": id}); err != nil {
		return nil, err
	}
	return lodestone.NewCharacter(defs...), nil
}
