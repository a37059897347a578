package helpers

import (
	"context"
	"fmt"
	"sync"

	"github.com/andrescamacho/traveller-trade-go/internal/domain/shared"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/world"
)

// MockWorldGraph is an in-memory world.Provider with explicit adjacency
type MockWorldGraph struct {
	mu sync.RWMutex

	worlds     map[shared.SectorHex]*world.World
	neighbours map[shared.SectorHex][]*world.World

	// Loads counts LoadWorld calls per key
	Loads map[shared.SectorHex]int

	// NeighbourErr, when set, is returned from every Neighbours call
	NeighbourErr error
}

// NewMockWorldGraph creates an empty graph
func NewMockWorldGraph() *MockWorldGraph {
	return &MockWorldGraph{
		worlds:     make(map[shared.SectorHex]*world.World),
		neighbours: make(map[shared.SectorHex][]*world.World),
		Loads:      make(map[shared.SectorHex]int),
	}
}

// AddWorld registers a world built from the given fields. hex is the four
// digit hex in sector "Test"; x and y are global coordinates.
func (g *MockWorldGraph) AddWorld(name, hex string, x, y int, uwp, zone, allegiance, remarks string) *world.World {
	w, err := world.NewWorld(name, shared.MustSectorHex("Test", hex), x, y, uwp, zone, allegiance, remarks)
	if err != nil {
		panic(fmt.Sprintf("invalid fixture world %s: %v", name, err))
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.worlds[w.Key()] = w
	return w
}

// AddPlainWorld registers an agricultural, population 8 world with a class A starport
func (g *MockWorldGraph) AddPlainWorld(name, hex string, x, y int) *world.World {
	return g.AddWorld(name, hex, x, y, "A788899-C", "", "CsIm", "Ag")
}

// Connect makes a and b neighbours of each other. Neighbour order follows
// the order of Connect calls.
func (g *MockWorldGraph) Connect(a, b *world.World) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.neighbours[a.Key()] = append(g.neighbours[a.Key()], b)
	g.neighbours[b.Key()] = append(g.neighbours[b.Key()], a)
}

// World returns a registered world by hex
func (g *MockWorldGraph) World(hex string) *world.World {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.worlds[shared.MustSectorHex("Test", hex)]
}

func (g *MockWorldGraph) LoadWorld(_ context.Context, key shared.SectorHex, _ bool) (*world.World, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Loads[key]++

	w, ok := g.worlds[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", world.ErrWorldNotFound, key)
	}
	return w, nil
}

func (g *MockWorldGraph) Neighbours(_ context.Context, key shared.SectorHex) ([]*world.World, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.NeighbourErr != nil {
		return nil, g.NeighbourErr
	}
	if _, ok := g.worlds[key]; !ok {
		return nil, fmt.Errorf("%w: %s", world.ErrWorldNotFound, key)
	}
	return append([]*world.World(nil), g.neighbours[key]...), nil
}
