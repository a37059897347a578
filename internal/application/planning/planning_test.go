package planning_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/traveller-trade-go/internal/application/planning"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/market"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/navigation"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/routing"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/shared"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/trading"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/world"
	"github.com/andrescamacho/traveller-trade-go/test/helpers"
)

type stubShips map[string]*navigation.Ship

func (s stubShips) BuildShip(name string) (*navigation.Ship, error) {
	if name == "" {
		name = "trader"
	}
	ship, ok := s[name]
	if !ok {
		return nil, fmt.Errorf("unknown ship profile %q", name)
	}
	return ship, nil
}

type emptyCatalog struct{}

func (emptyCatalog) AllTradeGoods(context.Context) ([]*market.TradeGood, error) { return nil, nil }

type stubSnapshots map[shared.SectorHex]*world.TradeSnapshot

func (s stubSnapshots) LoadSnapshot(_ context.Context, key shared.SectorHex) (*world.TradeSnapshot, error) {
	snap, ok := s[key]
	if !ok {
		return nil, world.ErrSnapshotNotFound
	}
	return snap, nil
}

// fixture is a line of worlds A - B - C one parsec apart, plus an isolated D.
// The trader earns 36000 per leg: 40000 freight less 4000 fuel over 2 weeks.
type fixture struct {
	graph      *helpers.MockWorldGraph
	a, b, c, d *world.World
	ships      stubShips
	jumps      []int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	g := helpers.NewMockWorldGraph()
	f := &fixture{graph: g}
	f.a = g.AddPlainWorld("A", "0101", 0, 0)
	f.b = g.AddPlainWorld("B", "0201", 1, 0)
	f.c = g.AddPlainWorld("C", "0301", 2, 0)
	f.d = g.AddPlainWorld("D", "0601", 5, 0)
	g.Connect(f.a, f.b)
	g.Connect(f.b, f.c)

	ship, err := navigation.NewShip(navigation.ShipSpec{Name: "trader", FuelPerJump: 40, JumpRating: 1, FuelTank: 40, Cargo: 40})
	require.NoError(t, err)
	f.ships = stubShips{"trader": ship}
	return f
}

func (f *fixture) provider(jump int) (world.Provider, error) {
	f.jumps = append(f.jumps, jump)
	return f.graph, nil
}

func (f *fixture) analyzer() *trading.EdgeAnalyzer {
	return trading.NewEdgeAnalyzer(helpers.NewFixtureTables(), nil, trading.RivalZones{})
}

func (f *fixture) planHandler(snapshots planning.SnapshotSourceFactory) *planning.PlanVoyageHandler {
	return planning.NewPlanVoyageHandler(f.ships, f.provider, snapshots, emptyCatalog{}, f.analyzer(), routing.DefaultSearchOptions(), nil)
}

func TestPlanVoyage_ChainsStops(t *testing.T) {
	// Arrange
	f := newFixture(t)
	cmd := &planning.PlanVoyageCommand{
		Start:   "Test 0101",
		Stops:   []string{"Test 0201", "Test 0301"},
		Capital: 10000,
	}

	// Act
	resp, err := f.planHandler(nil).Handle(context.Background(), cmd)

	// Assert
	require.NoError(t, err)
	voyage := resp.(*planning.PlanVoyageResponse)
	require.Len(t, voyage.Legs, 2)
	assert.Equal(t, []string{"Test 0101", "Test 0201"}, voyage.Legs[0].Worlds)
	assert.Equal(t, []string{"Test 0201", "Test 0301"}, voyage.Legs[1].Worlds)
	assert.Equal(t, 46000.0, voyage.Legs[0].CapitalAfter)
	assert.Equal(t, 46000.0, voyage.Legs[1].CapitalBefore, "capital carries into the next leg")
	assert.Equal(t, 4, voyage.TotalWeeks)
	assert.Equal(t, 72000.0, voyage.TotalProfit)
	assert.Equal(t, 82000.0, voyage.FinalCapital)
	assert.Equal(t, 18000.0, voyage.ProfitPerWeek)
	assert.InDelta(t, 100*(2*36000.0/10000+4*36000.0/46000)/4, voyage.PercentPerWeek, 1e-9)
	assert.Equal(t, []int{1}, f.jumps, "the provider reaches the ship's range")
}

func TestPlanVoyage_OpenEndedLeg(t *testing.T) {
	f := newFixture(t)
	weeks := 2

	resp, err := f.planHandler(nil).Handle(context.Background(), &planning.PlanVoyageCommand{
		Start:    "Test 0101",
		Capital:  10000,
		MaxWeeks: &weeks,
	})

	require.NoError(t, err)
	voyage := resp.(*planning.PlanVoyageResponse)
	require.Len(t, voyage.Legs, 1)
	assert.Equal(t, "weeks >= 2", voyage.Legs[0].Condition)
	assert.Equal(t, 2, voyage.TotalWeeks)
	assert.Equal(t, 36000.0, voyage.TotalProfit)
}

func TestPlanVoyage_UnreachableStop(t *testing.T) {
	f := newFixture(t)

	_, err := f.planHandler(nil).Handle(context.Background(), &planning.PlanVoyageCommand{
		Start:   "Test 0101",
		Stops:   []string{"Test 0601"},
		Capital: 10000,
	})

	assert.ErrorIs(t, err, planning.ErrNoViableRoute)
}

func TestPlanVoyage_Validation(t *testing.T) {
	f := newFixture(t)
	handler := f.planHandler(nil)

	_, err := handler.Handle(context.Background(), &planning.PlanVoyageCommand{Start: "Test 0101", Capital: 10000})
	assert.ErrorIs(t, err, planning.ErrNothingToPlan)

	_, err = handler.Handle(context.Background(), &planning.PlanVoyageCommand{Start: "Test 0101", Stops: []string{"Test 0201"}, Capital: -1})
	var validation *shared.ValidationError
	assert.True(t, errors.As(err, &validation))

	_, err = handler.Handle(context.Background(), &planning.PlanVoyageCommand{Start: "Test 0101", Stops: []string{"Test 0201"}, Ship: "ghost"})
	assert.ErrorContains(t, err, "unknown ship profile")

	_, err = handler.Handle(context.Background(), &planning.QuoteJumpQuery{})
	assert.ErrorContains(t, err, "invalid request type")
}

func TestPlanVoyage_UsesSnapshotAtLegStart(t *testing.T) {
	// Arrange
	f := newFixture(t)
	snapshots := stubSnapshots{
		f.a.Key(): {
			World:   f.a.Key(),
			Freight: map[shared.SectorHex][]world.FreightLot{f.b.Key(): {{Label: "ore", Tons: 25}, {Label: "grain", Tons: 20}}},
		},
	}
	var opened string
	factory := func(path string) world.SnapshotSource {
		opened = path
		return snapshots
	}

	// Act
	resp, err := f.planHandler(factory).Handle(context.Background(), &planning.PlanVoyageCommand{
		Start:        "Test 0101",
		Stops:        []string{"Test 0201"},
		Capital:      10000,
		SnapshotPath: "observed.json",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "observed.json", opened)
	voyage := resp.(*planning.PlanVoyageResponse)
	assert.Equal(t, 21000.0, voyage.TotalProfit, "largest lot first: the 20 ton lot no longer fits")
}

func TestQuoteJump(t *testing.T) {
	// Arrange
	f := newFixture(t)
	handler := planning.NewQuoteJumpHandler(f.ships, f.provider, nil, emptyCatalog{}, f.analyzer())

	// Act
	resp, err := handler.Handle(context.Background(), &planning.QuoteJumpQuery{From: "Test 0101", To: "Test 0201", Capital: 10000})

	// Assert
	require.NoError(t, err)
	quote := resp.(*planning.QuoteJumpResponse)
	assert.True(t, quote.Feasible)
	assert.Equal(t, 1, quote.Distance)
	assert.Equal(t, 2, quote.Weeks)
	assert.Equal(t, 4000.0, quote.FuelCost)
	assert.Equal(t, 40, quote.Freight.Tons)
	assert.Equal(t, 40000.0, quote.CargoProfit)
	assert.Equal(t, 1, quote.To.Distance)
	assert.NotEmpty(t, quote.Ledger)
}

func TestQuoteJump_OutOfRange(t *testing.T) {
	f := newFixture(t)
	handler := planning.NewQuoteJumpHandler(f.ships, f.provider, nil, emptyCatalog{}, f.analyzer())

	resp, err := handler.Handle(context.Background(), &planning.QuoteJumpQuery{From: "Test 0101", To: "Test 0601", Capital: 10000})

	require.NoError(t, err)
	quote := resp.(*planning.QuoteJumpResponse)
	assert.False(t, quote.Feasible)
	assert.Equal(t, 5, quote.Distance)
	assert.Zero(t, quote.CargoProfit)
}

func TestShowWorld(t *testing.T) {
	// Arrange
	f := newFixture(t)
	handler := planning.NewShowWorldHandler(f.ships, f.provider)

	// Act
	resp, err := handler.Handle(context.Background(), &planning.ShowWorldQuery{World: "Test 0201"})

	// Assert
	require.NoError(t, err)
	shown := resp.(*planning.ShowWorldResponse)
	assert.Equal(t, "B", shown.World.Name)
	assert.Equal(t, "A788899-C", shown.World.UWP)
	assert.Equal(t, 1, shown.Jump)
	require.Len(t, shown.Neighbours, 2)
	assert.Equal(t, "Test 0101", shown.Neighbours[0].Location)
	assert.Equal(t, "Test 0301", shown.Neighbours[1].Location)
}

func TestShowWorld_UnknownWorld(t *testing.T) {
	f := newFixture(t)

	_, err := planning.NewShowWorldHandler(f.ships, f.provider).Handle(context.Background(), &planning.ShowWorldQuery{World: "Test 0909", Jump: 2})

	assert.ErrorIs(t, err, world.ErrWorldNotFound)
	assert.Equal(t, []int{2}, f.jumps)
}
