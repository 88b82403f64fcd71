package lodestone

import "context"

// Character is a read-only view over several bound definitions, typically
// one per profile page, presented as a single record.
type Character struct {
	defs []*Definition
}

// NewCharacter returns a view over defs. The definitions should already be
// bound to their documents.
func NewCharacter(defs ...*Definition) *Character {
	return &Character{defs: defs}
}

// Definitions returns the underlying definitions in order.
func (c *Character) Definitions() []*Definition {
	return c.defs
}

// Get looks name up among the top-level children of each definition and
// returns the first match.
func (c *Character) Get(name string) (Node, bool) {
	for _, d := range c.defs {
		if n, ok := d.Get(name); ok {
			return n, true
		}
	}
	return nil, false
}

// Value evaluates the entry Get would return for name.
// Returns false if there is no such entry or it is a container.
func (c *Character) Value(name string) (string, bool) {
	for _, d := range c.defs {
		n, ok := d.Get(name)
		if !ok {
			continue
		}
		e, ok := n.(*Element)
		if !ok {
			return "", false
		}
		return e.Evaluate(d.Ref().Document()), true
	}
	return "", false
}

// Serialize merges the values of every definition into one flat record.
// Later definitions overwrite earlier ones on key collision.
func (c *Character) Serialize() *Record {
	rec := NewRecord()
	for _, d := range c.defs {
		vals := d.Values()
		for _, k := range vals.Keys() {
			v, _ := vals.Get(k)
			rec.Set(k, v)
		}
	}
	return rec
}

// CharacterService assembles characters from their profile pages.
type CharacterService interface {
	// FindCharacterByID fetches every profile page of the character and
	// returns a view over the bound definitions.
	FindCharacterByID(ctx context.Context, id string) (*Character, error)
}
