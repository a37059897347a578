package trading

import (
	"context"

	"github.com/andrescamacho/traveller-trade-go/internal/domain/world"
)

// FreightPacker selects the subset of freight lots with the largest total
// tonnage that fits in capacity (0/1 knapsack on tons)
type FreightPacker interface {
	Pack(ctx context.Context, lots []world.FreightLot, capacity int) ([]world.FreightLot, error)
}
