package contract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/traveller-trade-go/internal/domain/contract"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/shared"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/world"
)

var (
	homeHex  = shared.MustSectorHex("Reft", "1822")
	safeHex  = shared.MustSectorHex("Reft", "2325")
	otherHex = shared.MustSectorHex("Reft", "1426")
)

func worldAt(t *testing.T, name string, hex shared.SectorHex) *world.World {
	t.Helper()
	w, err := world.NewWorld(name, hex, 0, 0, "A788899-C", "", "Im", "")
	require.NoError(t, err)
	return w
}

func revenueShare(t *testing.T) *contract.RevenueShare {
	t.Helper()
	rs, err := contract.NewRevenueShare(contract.RevenueShareTerms{
		Backer:     "Stern Metal",
		HomeWorlds: shared.NewHexSet(homeHex),
		SafeWorlds: shared.NewHexSet(safeHex),
	})
	require.NoError(t, err)
	return rs
}

func TestMortgage_DefaultInstallment(t *testing.T) {
	m, err := contract.NewMortgage(48000, 0)

	require.NoError(t, err)
	assert.Equal(t, 200.0, m.Installment())
}

func TestMortgage_PaysDownRemainingPrincipal(t *testing.T) {
	// Arrange
	m, err := contract.NewMortgage(1000, 400)
	require.NoError(t, err)
	state := contract.NewState()

	// Act
	payments := []float64{
		m.PeriodicPayment(state),
		m.PeriodicPayment(state),
		m.PeriodicPayment(state),
		m.PeriodicPayment(state),
	}

	// Assert
	assert.Equal(t, []float64{400, 400, 200, 0}, payments)
	assert.Equal(t, 1000.0, state.Get(contract.MortgagePaid))
	assert.Zero(t, m.PeriodicIncome())
	assert.Zero(t, m.AccruedObligation(state))
	assert.Nil(t, m.ArrivalCut(state, worldAt(t, "Any", otherHex), 5000))
}

func TestNewMortgage_RejectsNonPositivePrincipal(t *testing.T) {
	_, err := contract.NewMortgage(0, 100)
	assert.ErrorIs(t, err, contract.ErrInvalidContract)
}

func TestRevenueShare_CutsOrdinaryLeg(t *testing.T) {
	rs := revenueShare(t)
	state := contract.NewState()

	cut := rs.ArrivalCut(state, worldAt(t, "Other", otherHex), 10000)

	require.NotNil(t, cut)
	assert.InDelta(t, 7500, cut.Amount, 0.001)
	assert.Contains(t, cut.Reason, "Stern Metal")
}

func TestRevenueShare_DeferAtHomeThenCutAtSeventyFivePercent(t *testing.T) {
	// Arrange
	rs := revenueShare(t)
	state := contract.NewState()

	// Act: profitable leg ending at home is deferred
	deferral := rs.ArrivalCut(state, worldAt(t, "Home", homeHex), 8000)

	// Assert
	require.NotNil(t, deferral)
	assert.Zero(t, deferral.Amount)
	assert.Equal(t, 8000.0, state.Get(contract.UncutProfits))
	assert.InDelta(t, 6000, rs.AccruedObligation(state), 0.001)

	// Act: zero-profit leg ending elsewhere settles the balance
	settlement := rs.ArrivalCut(state, worldAt(t, "Other", otherHex), 0)

	// Assert
	require.NotNil(t, settlement)
	assert.InDelta(t, 6000, settlement.Amount, 0.001)
	assert.Zero(t, state.Get(contract.UncutProfits))
	assert.Zero(t, rs.AccruedObligation(state))
}

func TestRevenueShare_LossTakesNothingAndKeepsBalance(t *testing.T) {
	rs := revenueShare(t)
	state := contract.State{contract.UncutProfits: 4000}

	cut := rs.ArrivalCut(state, worldAt(t, "Other", otherHex), -100)

	require.NotNil(t, cut)
	assert.Zero(t, cut.Amount)
	assert.Equal(t, 4000.0, state.Get(contract.UncutProfits))
}

func TestRevenueShare_SafeWorldIsExempt(t *testing.T) {
	rs := revenueShare(t)
	state := contract.State{contract.UncutProfits: 4000}

	cut := rs.ArrivalCut(state, worldAt(t, "Safe", safeHex), 2000)

	assert.Nil(t, cut)
	assert.Equal(t, 4000.0, state.Get(contract.UncutProfits))
}

func TestNewRevenueShare_Validation(t *testing.T) {
	_, err := contract.NewRevenueShare(contract.RevenueShareTerms{Rate: 1.5})
	assert.ErrorIs(t, err, contract.ErrInvalidContract)

	rs, err := contract.NewRevenueShare(contract.RevenueShareTerms{})
	require.NoError(t, err)
	assert.Equal(t, contract.DefaultRevenueShareRate, rs.Rate())
	assert.Zero(t, rs.PeriodicPayment(contract.NewState()))
}

func TestState_CloneIsIndependent(t *testing.T) {
	parent := contract.State{contract.MortgagePaid: 100}

	child := parent.Clone()
	child[contract.MortgagePaid] = 500

	assert.Equal(t, 100.0, parent.Get(contract.MortgagePaid))
	assert.Equal(t, 500.0, child.Get(contract.MortgagePaid))

	var nilState contract.State
	assert.NotNil(t, nilState.Clone())
}
