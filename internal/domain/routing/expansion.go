package routing

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/andrescamacho/traveller-trade-go/internal/domain/market"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/trading"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/world"
)

// WeeksPerMaintenance is the length of a maintenance and payment cycle
const WeeksPerMaintenance = 4

// expander generates the children of a route
type expander struct {
	worlds      world.Provider
	analyzer    *trading.EdgeAnalyzer
	goods       []*market.TradeGood
	cycleWindow int
	parallelism int
}

type candidate struct {
	dest   *world.World
	child  *Route
	reason PruneReason
}

// expand prices a jump to every acceptable neighbour of the route's current
// world. Rejected jumps come back in pruned, in neighbour order.
func (e *expander) expand(ctx context.Context, r *Route) (children []*Route, pruned []PruneReason, err error) {
	if r.complete {
		return nil, nil, nil
	}

	current := r.Current()
	neighbours, err := e.worlds.Neighbours(ctx, current.Key())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load neighbours of %s: %w", current, err)
	}

	legal := 0
	for _, nb := range neighbours {
		if _, rejected := e.rejectStatic(r, nb); !rejected {
			legal++
		}
	}

	candidates := make([]candidate, 0, len(neighbours))
	for _, nb := range neighbours {
		if reason, rejected := e.rejectForRoute(r, nb, legal); rejected {
			pruned = append(pruned, reason)
			continue
		}
		if reason, rejected := e.rejectStatic(r, nb); rejected {
			pruned = append(pruned, reason)
			continue
		}
		candidates = append(candidates, candidate{dest: nb})
	}

	if err := e.priceAll(ctx, r, candidates); err != nil {
		return nil, nil, err
	}

	for _, c := range candidates {
		if c.child == nil {
			pruned = append(pruned, c.reason)
			continue
		}
		children = append(children, c.child)
	}
	return children, pruned, nil
}

// priceAll fills in each candidate, in parallel when configured. Every
// goroutine writes only its own slot.
func (e *expander) priceAll(ctx context.Context, r *Route, candidates []candidate) error {
	if e.parallelism <= 1 || len(candidates) < 2 {
		for i := range candidates {
			child, reason, err := e.jump(ctx, r, candidates[i].dest)
			if err != nil {
				return err
			}
			candidates[i].child, candidates[i].reason = child, reason
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelism)
	for i := range candidates {
		g.Go(func() error {
			child, reason, err := e.jump(gctx, r, candidates[i].dest)
			if err != nil {
				return err
			}
			candidates[i].child, candidates[i].reason = child, reason
			return nil
		})
	}
	return g.Wait()
}

// rejectForRoute applies the rules that depend on the route's history
func (e *expander) rejectForRoute(r *Route, nb *world.World, legalNeighbours int) (PruneReason, bool) {
	if r.condition.Destination() != nil && r.hasVisited(nb) {
		return PruneRevisit, true
	}
	if r.visitCount(nb, e.cycleWindow) > 1 {
		return PruneCycle, true
	}
	if r.avoid.Contains(nb.Key()) {
		return PruneAvoided, true
	}
	if legalNeighbours >= 3 && len(r.worlds) > 1 && r.previous().Equal(nb) {
		return PruneBacktrack, true
	}
	return "", false
}

// rejectStatic applies the rules that depend only on the destination and ship
func (e *expander) rejectStatic(r *Route, nb *world.World) (PruneReason, bool) {
	if nb.Zone == world.ZoneRed {
		return PruneRedZone, true
	}
	if !nb.UWP.Size.IsKnown() {
		return PruneUnknownSize, true
	}
	if r.ship.IsBannedAllegiance(nb.Allegiance) {
		return PruneBannedAllegiance, true
	}
	if r.Current().DistanceTo(nb) > r.ship.MaxRange() {
		return PruneOutOfRange, true
	}
	return "", false
}

// jump prices the leg from the route's current world to dest and builds the
// child route. A nil child with a reason means the branch is infeasible.
//
// Order within a leg:
//  1. buy fuel
//  2. at a 4-week boundary: maintenance, life support, contract income, contract payment
//  3. passenger fares
//  4. speculative cargo and freight
//  5. the contract's arrival cut on the leg's trading profit
func (e *expander) jump(ctx context.Context, r *Route, dest *world.World) (*Route, PruneReason, error) {
	origin := r.Current()
	ship := r.ship
	terms := ship.Contract()
	state := r.state.Clone()

	distance := origin.DistanceTo(dest)
	legWeeks := ship.LegDuration(distance)
	prior := r.TotalWeeks()
	next := prior + legWeeks

	opening := r.Capital()
	capital := opening
	var lines []string

	fuel := ship.FuelCost(distance)
	lines = append(lines, fmt.Sprintf("Buy unrefined fuel for %.2f, capital %.2f->%.2f", fuel, capital, capital-fuel))
	capital -= fuel

	if prior/WeeksPerMaintenance < next/WeeksPerMaintenance {
		lines = append(lines, fmt.Sprintf("Ship maintenance paid of %.2f, capital: %.2f->%.2f",
			ship.MonthlyMaintenance(), capital, capital-ship.MonthlyMaintenance()))
		capital -= ship.MonthlyMaintenance()

		if support := ship.MonthlyLifeSupport(); support > 0 {
			lines = append(lines, fmt.Sprintf("Crew life support paid of %.2f, capital: %.2f->%.2f", support, capital, capital-support))
			capital -= support
		}

		if terms != nil {
			if income := terms.PeriodicIncome(); income > 0 {
				lines = append(lines, fmt.Sprintf("Monthly income of %.2f, capital: %.2f->%.2f", income, capital, capital+income))
				capital += income
			}
			if payment := terms.PeriodicPayment(state); payment > 0 {
				lines = append(lines, fmt.Sprintf("Mortgage paid of %.2f, capital: %.2f->%.2f", payment, capital, capital-payment))
				capital -= payment
			}
		}
	} else {
		lines = append(lines, fmt.Sprintf("No maintenance or mortgage as we go from %d->%d weeks", prior, next))
	}

	legStart := capital

	manifest := e.analyzer.Passengers(origin, dest, ship)
	if manifest.Revenue > 0 {
		lines = append(lines, fmt.Sprintf("%s, capital %.2f->%.2f", manifest.Describe(), capital, capital+manifest.Revenue))
		capital += manifest.Revenue
	}

	quote, err := e.analyzer.PriceCargo(ctx, origin, dest, e.goods, ship, capital)
	if err != nil {
		return nil, "", err
	}
	if !quote.Feasible {
		return nil, PruneOutOfRange, nil
	}
	lines = append(lines, quote.Ledger()...)
	capital = quote.FinalCapital

	if terms != nil {
		if cut := terms.ArrivalCut(state, dest, capital-legStart); cut != nil {
			if cut.Amount != 0 {
				lines = append(lines, fmt.Sprintf("%s, capital: %.2f->%.2f", cut.Reason, capital, capital-cut.Amount))
			} else {
				lines = append(lines, cut.Reason)
			}
			capital -= cut.Amount
		}
	}

	if capital < 0 {
		return nil, PruneNegativeCapital, nil
	}

	netWorth := capital
	if terms != nil {
		netWorth -= terms.AccruedObligation(state)
	}

	header := fmt.Sprintf("%s -> %s (%d parsecs, %d weeks) %s capital %.2f -> %.2f",
		origin.Name, dest.Name, distance, legWeeks, dest.Key(), opening, capital)

	return r.extend(dest, legWeeks, capital, netWorth, state, append([]string{header}, lines...)), "", nil
}
