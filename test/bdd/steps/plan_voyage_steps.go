package steps

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/traveller-trade-go/internal/application/planning"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/market"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/navigation"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/routing"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/trading"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/world"
	"github.com/andrescamacho/traveller-trade-go/test/helpers"
)

type noGoods struct{}

func (noGoods) AllTradeGoods(context.Context) ([]*market.TradeGood, error) { return nil, nil }

type shipCatalog map[string]*navigation.Ship

func (c shipCatalog) BuildShip(name string) (*navigation.Ship, error) {
	ship, ok := c[name]
	if !ok {
		return nil, fmt.Errorf("unknown ship profile %q", name)
	}
	return ship, nil
}

type planVoyageContext struct {
	graph    *helpers.MockWorldGraph
	ships    shipCatalog
	shipName string

	response *planning.PlanVoyageResponse
	err      error
}

func (pc *planVoyageContext) reset() {
	pc.graph = helpers.NewMockWorldGraph()
	pc.ships = shipCatalog{}
	pc.shipName = ""
	pc.response = nil
	pc.err = nil
}

func (pc *planVoyageContext) handler() *planning.PlanVoyageHandler {
	provider := func(int) (world.Provider, error) { return pc.graph, nil }
	analyzer := trading.NewEdgeAnalyzer(helpers.NewFixtureTables(), nil, trading.RivalZones{})
	return planning.NewPlanVoyageHandler(pc.ships, provider, nil, noGoods{}, analyzer, routing.DefaultSearchOptions(), nil)
}

// Given steps

func (pc *planVoyageContext) theFollowingWorldsInSector(sector string, table *godog.Table) error {
	if sector != "Test" {
		return fmt.Errorf("fixture worlds live in sector Test, got %q", sector)
	}
	for _, row := range table.Rows[1:] {
		name, err := cellValue(table, row, "name")
		if err != nil {
			return err
		}
		hex, err := cellValue(table, row, "hex")
		if err != nil {
			return err
		}
		x, err := cellInt(table, row, "x")
		if err != nil {
			return err
		}
		y, err := cellInt(table, row, "y")
		if err != nil {
			return err
		}
		pc.graph.AddPlainWorld(name, hex, x, y)
	}
	return nil
}

func (pc *planVoyageContext) areNeighbours(a, b string) error {
	wa, wb := pc.graph.World(a), pc.graph.World(b)
	if wa == nil || wb == nil {
		return fmt.Errorf("unknown world %s or %s", a, b)
	}
	pc.graph.Connect(wa, wb)
	return nil
}

func (pc *planVoyageContext) aShipWithTonsOfCargoAndJump(name string, cargo, jump int) error {
	ship, err := navigation.NewShip(navigation.ShipSpec{
		Name:        name,
		FuelPerJump: 40,
		JumpRating:  jump,
		FuelTank:    40 * jump,
		Cargo:       cargo,
	})
	if err != nil {
		return err
	}
	pc.ships[name] = ship
	pc.shipName = name
	return nil
}

// When steps

func (pc *planVoyageContext) iPlanAVoyageFromThroughWithCapital(start, stops string, capital float64) error {
	var list []string
	for _, s := range strings.Split(stops, ",") {
		if s = strings.TrimSpace(s); s != "" {
			list = append(list, s)
		}
	}

	resp, err := pc.handler().Handle(context.Background(), &planning.PlanVoyageCommand{
		Ship:    pc.shipName,
		Start:   start,
		Stops:   list,
		Capital: capital,
	})
	pc.err = err
	if err == nil {
		pc.response = resp.(*planning.PlanVoyageResponse)
	}
	return nil
}

// Then steps

func (pc *planVoyageContext) voyage() (*planning.PlanVoyageResponse, error) {
	if pc.err != nil {
		return nil, fmt.Errorf("planning failed: %w", pc.err)
	}
	if pc.response == nil {
		return nil, fmt.Errorf("no voyage planned")
	}
	return pc.response, nil
}

func (pc *planVoyageContext) theVoyageShouldHaveLegs(n int) error {
	v, err := pc.voyage()
	if err != nil {
		return err
	}
	if len(v.Legs) != n {
		return fmt.Errorf("expected %d legs, got %d", n, len(v.Legs))
	}
	return nil
}

func (pc *planVoyageContext) legShouldVisit(leg int, expected string) error {
	v, err := pc.voyage()
	if err != nil {
		return err
	}
	if leg < 1 || leg > len(v.Legs) {
		return fmt.Errorf("voyage has no leg %d", leg)
	}
	if got := strings.Join(v.Legs[leg-1].Worlds, " -> "); got != expected {
		return fmt.Errorf("expected leg %d to visit %q, got %q", leg, expected, got)
	}
	return nil
}

func (pc *planVoyageContext) legShouldStartWithCapital(leg int, expected float64) error {
	v, err := pc.voyage()
	if err != nil {
		return err
	}
	if leg < 1 || leg > len(v.Legs) {
		return fmt.Errorf("voyage has no leg %d", leg)
	}
	return closeTo("leg capital", expected, v.Legs[leg-1].CapitalBefore)
}

func (pc *planVoyageContext) theTotalProfitShouldBe(expected float64) error {
	v, err := pc.voyage()
	if err != nil {
		return err
	}
	return closeTo("total profit", expected, v.TotalProfit)
}

func (pc *planVoyageContext) theFinalCapitalShouldBe(expected float64) error {
	v, err := pc.voyage()
	if err != nil {
		return err
	}
	return closeTo("final capital", expected, v.FinalCapital)
}

func (pc *planVoyageContext) theVoyageShouldTakeWeeks(expected int) error {
	v, err := pc.voyage()
	if err != nil {
		return err
	}
	if v.TotalWeeks != expected {
		return fmt.Errorf("expected %d weeks, got %d", expected, v.TotalWeeks)
	}
	return nil
}

func (pc *planVoyageContext) planningShouldFailWith(expected string) error {
	if pc.err == nil {
		return fmt.Errorf("expected planning to fail with %q, but it succeeded", expected)
	}
	if !strings.Contains(pc.err.Error(), expected) {
		return fmt.Errorf("expected error containing %q, got %q", expected, pc.err.Error())
	}
	return nil
}

func closeTo(what string, expected, got float64) error {
	if math.Abs(expected-got) > 0.01 {
		return fmt.Errorf("expected %s %.2f, got %.2f", what, expected, got)
	}
	return nil
}

func InitializePlanVoyageScenario(ctx *godog.ScenarioContext) {
	pc := &planVoyageContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		pc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the following worlds in sector "([^"]*)":$`, pc.theFollowingWorldsInSector)
	ctx.Step(`^"([^"]*)" and "([^"]*)" are neighbours$`, pc.areNeighbours)
	ctx.Step(`^a ship "([^"]*)" with (\d+) tons of cargo and jump (\d+)$`, pc.aShipWithTonsOfCargoAndJump)

	// When steps
	ctx.Step(`^I plan a voyage from "([^"]*)" through "([^"]*)" with capital (\d+)$`, pc.iPlanAVoyageFromThroughWithCapital)

	// Then steps
	ctx.Step(`^the voyage should have (\d+) legs$`, pc.theVoyageShouldHaveLegs)
	ctx.Step(`^leg (\d+) should visit "([^"]*)"$`, pc.legShouldVisit)
	ctx.Step(`^leg (\d+) should start with capital (\d+)$`, pc.legShouldStartWithCapital)
	ctx.Step(`^the total profit should be (\d+)$`, pc.theTotalProfitShouldBe)
	ctx.Step(`^the final capital should be (\d+)$`, pc.theFinalCapitalShouldBe)
	ctx.Step(`^the voyage should take (\d+) weeks$`, pc.theVoyageShouldTakeWeeks)
	ctx.Step(`^planning should fail with "([^"]*)"$`, pc.planningShouldFailWith)
}
