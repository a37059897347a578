package contract

import (
	"fmt"

	"github.com/andrescamacho/traveller-trade-go/internal/domain/shared"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/world"
)

// DefaultRevenueShareRate is the backer's share of realized profit
const DefaultRevenueShareRate = 0.75

// RevenueShareTerms configures a RevenueShare
type RevenueShareTerms struct {
	// Backer names the party taking the cut
	Backer string

	// Rate is the fraction of profit taken, DefaultRevenueShareRate when zero
	Rate float64

	MonthlyIncome float64

	// HomeWorlds have no way to settle: profit earned on legs ending there
	// is deferred until the next settling world
	HomeWorlds shared.HexSet

	// SafeWorlds are exempt: no cut is taken and the deferred balance carries on
	SafeWorlds shared.HexSet
}

// RevenueShare hands a fixed share of every profitable leg to a backer
type RevenueShare struct {
	terms RevenueShareTerms
}

func NewRevenueShare(terms RevenueShareTerms) (*RevenueShare, error) {
	if terms.Rate == 0 {
		terms.Rate = DefaultRevenueShareRate
	}
	if terms.Rate < 0 || terms.Rate > 1 {
		return nil, fmt.Errorf("%w: revenue share rate %.2f outside 0..1", ErrInvalidContract, terms.Rate)
	}
	if terms.MonthlyIncome < 0 {
		return nil, fmt.Errorf("%w: monthly income cannot be negative", ErrInvalidContract)
	}
	if terms.Backer == "" {
		terms.Backer = "Backer"
	}
	return &RevenueShare{terms: terms}, nil
}

func (r *RevenueShare) Name() string {
	return "revenue-share"
}

func (r *RevenueShare) Rate() float64 {
	return r.terms.Rate
}

func (r *RevenueShare) PeriodicPayment(State) float64 {
	return 0
}

func (r *RevenueShare) PeriodicIncome() float64 {
	return r.terms.MonthlyIncome
}

func (r *RevenueShare) ArrivalCut(state State, destination *world.World, legProfit float64) *Cut {
	if legProfit < 0 {
		return &Cut{Reason: "No profits to cut"}
	}

	deferred := state.Get(UncutProfits)

	if r.terms.SafeWorlds.Contains(destination.Key()) {
		return nil
	}

	if r.terms.HomeWorlds.Contains(destination.Key()) {
		state[UncutProfits] = deferred + legProfit
		return &Cut{Reason: fmt.Sprintf(
			"No settlement with %s in %s, uncut profits rise from %.2f to %.2f",
			r.terms.Backer, destination.Name, deferred, deferred+legProfit,
		)}
	}

	total := legProfit + deferred
	cut := total * r.terms.Rate
	delete(state, UncutProfits)

	if deferred > 0 {
		return &Cut{Amount: cut, Reason: fmt.Sprintf(
			"%s takes %.0f%% (%.2f) of total profits %.2f since last settlement",
			r.terms.Backer, r.terms.Rate*100, cut, total,
		)}
	}
	return &Cut{Amount: cut, Reason: fmt.Sprintf(
		"%s takes %.0f%% (%.2f) of leg profits", r.terms.Backer, r.terms.Rate*100, cut,
	)}
}

// AccruedObligation is the share of deferred profit the backer will take
// at the next settling world
func (r *RevenueShare) AccruedObligation(state State) float64 {
	return state.Get(UncutProfits) * r.terms.Rate
}
