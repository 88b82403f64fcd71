package mock

import (
	"context"

	"github.com/fwojciec/lodestone"
)

// Compile-time interface verification.
var (
	_ lodestone.DefinitionSource = (*DefinitionSource)(nil)
	_ lodestone.CharacterService = (*CharacterService)(nil)
	_ lodestone.SnapshotStore    = (*SnapshotStore)(nil)
	_ lodestone.DomainLimiter    = (*DomainLimiter)(nil)
)

// DefinitionSource is a mock implementation of lodestone.DefinitionSource.
type DefinitionSource struct {
	DefinitionsFn func() ([]*lodestone.Definition, error)
}

func (s *DefinitionSource) Definitions() ([]*lodestone.Definition, error) {
	return s.DefinitionsFn()
}

// CharacterService is a mock implementation of lodestone.CharacterService.
type CharacterService struct {
	FindCharacterByIDFn func(ctx context.Context, id string) (*lodestone.Character, error)
}

func (s *CharacterService) FindCharacterByID(ctx context.Context, id string) (*lodestone.Character, error) {
	return s.FindCharacterByIDFn(ctx, id)
}

// SnapshotStore is a mock implementation of lodestone.SnapshotStore.
type SnapshotStore struct {
	SaveSnapshotFn func(ctx context.Context, name, html string) error
}

func (s *SnapshotStore) SaveSnapshot(ctx context.Context, name, html string) error {
	return s.SaveSnapshotFn(ctx, name, html)
}

// DomainLimiter is a mock implementation of lodestone.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
