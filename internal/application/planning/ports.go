package planning

import (
	"context"

	"github.com/andrescamacho/traveller-trade-go/internal/domain/navigation"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/shared"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/world"
)

// ShipCatalog resolves named ship profiles. An empty name is the default ship.
type ShipCatalog interface {
	BuildShip(name string) (*navigation.Ship, error)
}

// ProviderFactory opens a world provider whose neighbourhoods reach jump parsecs
type ProviderFactory func(jump int) (world.Provider, error)

// SnapshotSourceFactory opens the snapshot file at path
type SnapshotSourceFactory func(path string) world.SnapshotSource

// WorldPrefetcher is implemented by providers that can warm several worlds at once
type WorldPrefetcher interface {
	Prefetch(ctx context.Context, keys []shared.SectorHex, parallelism int) error
}
