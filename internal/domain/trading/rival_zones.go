package trading

import (
	"github.com/andrescamacho/traveller-trade-go/internal/domain/shared"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/world"
)

// DefaultRivalPenalty is the passenger roll penalty between rival zones
const DefaultRivalPenalty = 2

// RivalZones names two groups of worlds with hostile relations. Few
// passengers book passage from one to the other.
type RivalZones struct {
	A       shared.HexSet
	B       shared.HexSet
	Penalty int
}

// Between reports whether a jump from origin to dest crosses the rivalry
func (r RivalZones) Between(origin, dest *world.World) bool {
	o, d := origin.Key(), dest.Key()
	return (r.A.Contains(o) && r.B.Contains(d)) || (r.B.Contains(o) && r.A.Contains(d))
}
