package levelconfig

import (
	"context"

	"github.com/atelier-community/atelier/internal/domain/level"
)

// Reader is the read path the entitlement engine depends on.
type Reader interface {
	// FindByRank returns the row for rank or ErrLevelConfigNotFound.
	FindByRank(ctx context.Context, rank level.Rank) (*LevelConfig, error)
}

// Repository defines the interface for level config persistence
type Repository interface {
	Reader

	// List returns every configured level ordered by rank
	List(ctx context.Context) ([]*LevelConfig, error)

	// Upsert creates or replaces the row for the config's rank
	Upsert(ctx context.Context, cfg *LevelConfig) error

	// Delete removes the row for rank
	Delete(ctx context.Context, rank level.Rank) error
}

// Invalidator drops cached copies of a rank after a write.
type Invalidator interface {
	Invalidate(ctx context.Context, rank level.Rank) error
}
