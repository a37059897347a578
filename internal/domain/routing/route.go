package routing

import (
	"github.com/andrescamacho/traveller-trade-go/internal/domain/contract"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/navigation"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/shared"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/world"
)

// Route is an immutable search node: a sequence of jumps from the start
// world with the money, time and contract state it has accumulated.
//
// Invariants:
// - capital never goes negative
// - weeks never decrease from parent to child
// - the contract state is owned by this route alone
type Route struct {
	startingCapital  float64
	startingNetWorth float64
	worlds           []*world.World
	avoid            shared.HexSet
	condition        *CompleteCondition
	ship             *navigation.Ship
	priorWeeks       int
	weeks            int
	profit           float64
	netWorth         float64
	state            contract.State
	ledger           []string
	complete         bool
}

// NewStartRoute creates the seed route of a search
func NewStartRoute(
	ship *navigation.Ship,
	start *world.World,
	condition *CompleteCondition,
	capital float64,
	priorWeeks int,
	avoid shared.HexSet,
	state contract.State,
) *Route {
	state = state.Clone()
	netWorth := capital
	if c := ship.Contract(); c != nil {
		netWorth -= c.AccruedObligation(state)
	}

	return &Route{
		startingCapital:  capital,
		startingNetWorth: netWorth,
		worlds:           []*world.World{start},
		avoid:            avoid,
		condition:        condition,
		ship:             ship,
		priorWeeks:       priorWeeks,
		netWorth:         netWorth,
		state:            state,
		complete:         condition.IsComplete(start, 0, 0),
	}
}

// extend builds a child one jump further on. Slices and state are copied so
// the parent stays untouched.
func (r *Route) extend(next *world.World, legWeeks int, capital, netWorth float64, state contract.State, lines []string) *Route {
	worlds := make([]*world.World, len(r.worlds), len(r.worlds)+1)
	copy(worlds, r.worlds)
	worlds = append(worlds, next)

	ledger := make([]string, len(r.ledger), len(r.ledger)+len(lines))
	copy(ledger, r.ledger)
	ledger = append(ledger, lines...)

	weeks := r.weeks + legWeeks
	profit := capital - r.startingCapital

	return &Route{
		startingCapital:  r.startingCapital,
		startingNetWorth: r.startingNetWorth,
		worlds:           worlds,
		avoid:            r.avoid,
		condition:        r.condition,
		ship:             r.ship,
		priorWeeks:       r.priorWeeks,
		weeks:            weeks,
		profit:           profit,
		netWorth:         netWorth,
		state:            state,
		ledger:           ledger,
		complete:         r.condition.IsComplete(next, weeks, profit),
	}
}

func (r *Route) StartingCapital() float64      { return r.startingCapital }
func (r *Route) Condition() *CompleteCondition { return r.condition }
func (r *Route) Ship() *navigation.Ship        { return r.ship }
func (r *Route) Profit() float64               { return r.profit }
func (r *Route) NetWorth() float64             { return r.netWorth }
func (r *Route) IsComplete() bool              { return r.complete }

// Capital is the cash on hand at the end of the route
func (r *Route) Capital() float64 {
	return r.startingCapital + r.profit
}

// Weeks is the time spent on this route
func (r *Route) Weeks() int {
	return r.weeks
}

// TotalWeeks includes the weeks elapsed before the route began, which
// decide where 4-week maintenance boundaries fall
func (r *Route) TotalWeeks() int {
	return r.priorWeeks + r.weeks
}

// Current is the world the route ends at
func (r *Route) Current() *world.World {
	return r.worlds[len(r.worlds)-1]
}

// Worlds returns the visited worlds in order, start first
func (r *Route) Worlds() []*world.World {
	return append([]*world.World(nil), r.worlds...)
}

// Ledger returns the report lines in order
func (r *Route) Ledger() []string {
	return append([]string(nil), r.ledger...)
}

// State returns a copy of the contract state at the end of the route
func (r *Route) State() contract.State {
	return r.state.Clone()
}

// NetProfit is the gain in net worth, which discounts profit a contract
// will take later
func (r *Route) NetProfit() float64 {
	return r.netWorth - r.startingNetWorth
}

// ProfitPerWeek is net profit over the weeks spent, 0 before the first jump
func (r *Route) ProfitPerWeek() float64 {
	if r.weeks == 0 {
		return 0
	}
	return r.NetProfit() / float64(r.weeks)
}

// ProjectedWeeks estimates the route's total length: weeks spent plus the
// expected time to cover the remaining distance to a fixed destination
func (r *Route) ProjectedWeeks() int {
	dest := r.condition.Destination()
	if r.complete || dest == nil {
		return r.weeks
	}
	return r.weeks + r.ship.ExpectedDuration(r.Current().DistanceTo(dest))
}

func (r *Route) visitCount(w *world.World, window int) int {
	from := len(r.worlds) - window
	if from < 0 {
		from = 0
	}
	count := 0
	for _, v := range r.worlds[from:] {
		if v.Equal(w) {
			count++
		}
	}
	return count
}

func (r *Route) hasVisited(w *world.World) bool {
	return r.visitCount(w, len(r.worlds)) > 0
}

func (r *Route) previous() *world.World {
	if len(r.worlds) < 2 {
		return nil
	}
	return r.worlds[len(r.worlds)-2]
}
