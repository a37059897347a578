package helpers

import (
	"context"
	"sync"

	"github.com/andrescamacho/traveller-trade-go/internal/domain/world"
)

// MockFreightPacker is a trading.FreightPacker returning a canned result and
// recording every call
type MockFreightPacker struct {
	mu sync.Mutex

	Result []world.FreightLot
	Err    error

	// Capacities holds the capacity passed to each Pack call
	Capacities []int
}

func (p *MockFreightPacker) Pack(_ context.Context, lots []world.FreightLot, capacity int) ([]world.FreightLot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Capacities = append(p.Capacities, capacity)
	return p.Result, p.Err
}
