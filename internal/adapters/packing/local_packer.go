package packing

import (
	"context"
	"sort"

	"github.com/andrescamacho/traveller-trade-go/internal/domain/trading"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/world"
)

// ExactCapacityLimit is the largest hold, in tons, packed by the exact solver.
// Larger holds fall back to largest-first.
const ExactCapacityLimit = 10000

// LocalPacker solves freight packing in process
type LocalPacker struct {
	exactLimit int
}

var _ trading.FreightPacker = (*LocalPacker)(nil)

func NewLocalPacker() *LocalPacker {
	return &LocalPacker{exactLimit: ExactCapacityLimit}
}

// Pack returns the lots with the largest total tonnage that fit in capacity.
// The result keeps the input order of the chosen lots.
func (p *LocalPacker) Pack(ctx context.Context, lots []world.FreightLot, capacity int) ([]world.FreightLot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if capacity <= 0 || len(lots) == 0 {
		return nil, nil
	}

	var chosen []bool
	if capacity <= p.exactLimit {
		chosen = subsetSum(lots, capacity)
	} else {
		chosen = largestFirst(lots, capacity)
	}

	packed := make([]world.FreightLot, 0, len(lots))
	for i, lot := range lots {
		if chosen[i] {
			packed = append(packed, lot)
		}
	}
	return packed, nil
}

// subsetSum is the 0/1 knapsack where weight equals value.
// take[i][c] records that lot i was the last one added to reach c tons.
func subsetSum(lots []world.FreightLot, capacity int) []bool {
	reachable := make([]bool, capacity+1)
	reachable[0] = true
	take := make([][]bool, len(lots))

	for i, lot := range lots {
		take[i] = make([]bool, capacity+1)
		if lot.Tons <= 0 || lot.Tons > capacity {
			continue
		}
		for c := capacity; c >= lot.Tons; c-- {
			if !reachable[c] && reachable[c-lot.Tons] {
				reachable[c] = true
				take[i][c] = true
			}
		}
	}

	best := capacity
	for !reachable[best] {
		best--
	}

	chosen := make([]bool, len(lots))
	for i := len(lots) - 1; i >= 0 && best > 0; i-- {
		if take[i][best] {
			chosen[i] = true
			best -= lots[i].Tons
		}
	}
	return chosen
}

func largestFirst(lots []world.FreightLot, capacity int) []bool {
	order := make([]int, len(lots))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return lots[order[a]].Tons > lots[order[b]].Tons
	})

	chosen := make([]bool, len(lots))
	remaining := capacity
	for _, i := range order {
		if lots[i].Tons > 0 && lots[i].Tons <= remaining {
			chosen[i] = true
			remaining -= lots[i].Tons
		}
	}
	return chosen
}
