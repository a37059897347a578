package contract

import "github.com/andrescamacho/traveller-trade-go/internal/domain/world"

// Contract adjusts a ship's cash flow. Route logic only talks to this
// interface; variants keep their bookkeeping in the per-route State.
type Contract interface {
	// Name identifies the contract in ledgers and reports
	Name() string

	// PeriodicPayment is the amount owed at a 4-week boundary. It records
	// the payment in state.
	PeriodicPayment(state State) float64

	// PeriodicIncome is the amount received at a 4-week boundary
	PeriodicIncome() float64

	// ArrivalCut settles the contract on arriving at destination after a leg
	// that earned legProfit. Returns nil when the contract takes nothing.
	ArrivalCut(state State, destination *world.World, legProfit float64) *Cut

	// AccruedObligation is money already owed but not yet collected
	AccruedObligation(state State) float64
}

// Cut is a settlement taken at arrival
type Cut struct {
	Amount float64
	Reason string
}
