package contract

import (
	"fmt"

	"github.com/andrescamacho/traveller-trade-go/internal/domain/world"
)

// DefaultMortgageTerm is the number of monthly installments when none is given
const DefaultMortgageTerm = 240

// Mortgage repays a fixed principal in monthly installments
type Mortgage struct {
	principal   float64
	installment float64
}

// NewMortgage creates a mortgage. A non-positive installment defaults to
// principal / DefaultMortgageTerm.
func NewMortgage(principal, installment float64) (*Mortgage, error) {
	if principal <= 0 {
		return nil, fmt.Errorf("%w: mortgage principal must be positive", ErrInvalidContract)
	}
	if installment <= 0 {
		installment = principal / DefaultMortgageTerm
	}
	return &Mortgage{principal: principal, installment: installment}, nil
}

func (m *Mortgage) Name() string {
	return "mortgage"
}

func (m *Mortgage) Principal() float64   { return m.principal }
func (m *Mortgage) Installment() float64 { return m.installment }

// PeriodicPayment returns the installment, or whatever is left of the
// principal when that is smaller
func (m *Mortgage) PeriodicPayment(state State) float64 {
	paid := state.Get(MortgagePaid)
	payment := m.installment
	if remaining := m.principal - paid; remaining < payment {
		payment = remaining
	}
	if payment < 0 {
		payment = 0
	}
	state[MortgagePaid] = paid + payment
	return payment
}

func (m *Mortgage) PeriodicIncome() float64 {
	return 0
}

func (m *Mortgage) ArrivalCut(State, *world.World, float64) *Cut {
	return nil
}

func (m *Mortgage) AccruedObligation(State) float64 {
	return 0
}
