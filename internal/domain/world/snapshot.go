package world

import (
	"time"

	"github.com/andrescamacho/traveller-trade-go/internal/domain/shared"
)

// SnapshotGood is one observed market line
type SnapshotGood struct {
	Name  string
	Tons  float64
	Price float64
}

// FreightLot is one itemized freight consignment offered for a destination
type FreightLot struct {
	Label string
	Tons  int
}

// TradeSnapshot is a point-in-time market observation at one world. When
// present on the search origin it replaces computed availability, prices,
// freight and passenger demand for legs leaving that world.
type TradeSnapshot struct {
	World      shared.SectorHex
	ObservedAt time.Time
	Available  map[string]SnapshotGood
	Desired    map[string]SnapshotGood
	Freight    map[shared.SectorHex][]FreightLot
	Passengers map[shared.SectorHex]map[shared.PassageKind]int
}

// AvailableGood returns the snapshot line for a good offered for sale
func (s *TradeSnapshot) AvailableGood(name string) (SnapshotGood, bool) {
	if s == nil {
		return SnapshotGood{}, false
	}
	g, ok := s.Available[name]
	return g, ok
}

// DesiredGood returns the snapshot line for a good the market is buying
func (s *TradeSnapshot) DesiredGood(name string) (SnapshotGood, bool) {
	if s == nil {
		return SnapshotGood{}, false
	}
	g, ok := s.Desired[name]
	return g, ok
}

// FreightTo returns the lots offered for dest (nil when none)
func (s *TradeSnapshot) FreightTo(dest shared.SectorHex) []FreightLot {
	if s == nil {
		return nil
	}
	return s.Freight[dest]
}

// PassengersTo returns the observed passenger demand for dest. ok is false
// when the snapshot has no data for that destination.
func (s *TradeSnapshot) PassengersTo(dest shared.SectorHex) (map[shared.PassageKind]int, bool) {
	if s == nil {
		return nil, false
	}
	demand, ok := s.Passengers[dest]
	return demand, ok
}
