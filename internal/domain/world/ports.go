package world

import (
	"context"
	"time"

	"github.com/andrescamacho/traveller-trade-go/internal/domain/shared"
)

// Provider resolves worlds and their jump neighbours. Within a run the same
// key always yields the same *World instance.
type Provider interface {
	LoadWorld(ctx context.Context, key shared.SectorHex, forceRefresh bool) (*World, error)
	Neighbours(ctx context.Context, key shared.SectorHex) ([]*World, error)
}

// SnapshotSource supplies observed market data for a world
type SnapshotSource interface {
	LoadSnapshot(ctx context.Context, key shared.SectorHex) (*TradeSnapshot, error)
}

// CachedJumpWorlds is a stored answer to "which worlds lie within jump
// parsecs of origin". Worlds includes origin itself.
type CachedJumpWorlds struct {
	Origin    shared.SectorHex
	Jump      int
	Worlds    []*World
	FetchedAt time.Time
}

// JumpWorldsRepository persists map service answers between runs
type JumpWorldsRepository interface {
	// Get returns nil without error on a cache miss
	Get(ctx context.Context, origin shared.SectorHex, jump int) (*CachedJumpWorlds, error)
	Save(ctx context.Context, entry *CachedJumpWorlds) error

	// Clear removes every entry and reports how many were removed
	Clear(ctx context.Context) (int64, error)
}
