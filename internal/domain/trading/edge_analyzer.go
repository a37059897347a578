package trading

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/andrescamacho/traveller-trade-go/internal/domain/market"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/navigation"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/shared"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/world"
)

// EdgeAnalyzer prices a single jump: speculative cargo, freight and passengers.
//
// This is a domain service with no infrastructure dependencies beyond the
// ports it is handed. It holds no mutable state and is safe for concurrent use
// as long as its packer is.
type EdgeAnalyzer struct {
	tables market.EconomicTables
	packer FreightPacker
	rivals RivalZones
}

// NewEdgeAnalyzer creates an analyzer. packer may be nil, in which case
// observed freight lots are loaded greedily largest first.
func NewEdgeAnalyzer(tables market.EconomicTables, packer FreightPacker, rivals RivalZones) *EdgeAnalyzer {
	return &EdgeAnalyzer{tables: tables, packer: packer, rivals: rivals}
}

// EdgeQuote is the cargo side of one priced jump
type EdgeQuote struct {
	Origin      *world.World
	Destination *world.World
	Distance    int

	// Feasible is false when the ship cannot carry enough fuel for the jump
	Feasible bool
	Cargo    int

	StartingCapital    float64
	FinalCapital       float64
	CashAfterPurchases float64

	Deals   []ExecutedDeal
	Freight FreightLoad
	Skipped map[SkipReason][]string
}

// Profit is the cargo and freight profit of the leg
func (q *EdgeQuote) Profit() float64 {
	return q.FinalCapital - q.StartingCapital
}

// Ledger renders the executed trades as report lines
func (q *EdgeQuote) Ledger() []string {
	lines := make([]string, 0, len(q.Deals)+2)
	running := q.StartingCapital
	for _, d := range q.Deals {
		lines = append(lines, fmt.Sprintf("%s, capital: %.2f->%.2f", d, running, running+d.Profit))
		running += d.Profit
	}
	if q.Freight.Tons > 0 {
		lines = append(lines, fmt.Sprintf("Do %d tons of freight for %.2f, capital: %.2f->%.2f",
			q.Freight.Tons, q.Freight.Revenue, running, running+q.Freight.Revenue))
	}
	lines = append(lines, fmt.Sprintf("Cash after goods are purchased is %.2f", q.CashAfterPurchases))
	return lines
}

// PriceCargo selects and executes the cargo plan for a jump from origin to dest.
//
// Parameters:
//   - origin, dest: Endpoints of the jump (origin may carry a trade snapshot)
//   - goods: The trade good catalog
//   - ship: Supplies cargo capacity and broker skill
//   - capital: Cash available for purchases
//
// Returns:
//   - EdgeQuote with Feasible=false when the jump is out of fuel range
//   - Error only when the freight packer fails
//
// Goods whose margin does not beat the freight rate are skipped, since the
// hold space earns more as freight. The rest are ranked by the value of the
// tonnage they fill plus freight on what they leave empty, then bought
// greedily. Any remaining hold is filled with freight.
func (a *EdgeAnalyzer) PriceCargo(
	ctx context.Context,
	origin, dest *world.World,
	goods []*market.TradeGood,
	ship *navigation.Ship,
	capital float64,
) (*EdgeQuote, error) {
	distance := origin.DistanceTo(dest)
	quote := &EdgeQuote{
		Origin:             origin,
		Destination:        dest,
		Distance:           distance,
		StartingCapital:    capital,
		FinalCapital:       capital,
		CashAfterPurchases: capital,
		Skipped:            make(map[SkipReason][]string),
	}

	cargo, ok := ship.CargoCapacity(distance)
	if !ok {
		return quote, nil
	}
	quote.Feasible = true
	quote.Cargo = cargo

	freightRate := a.tables.Fare(shared.PassageFreight, distance)
	deals := a.candidateDeals(quote, goods, ship, cargo, capital, freightRate)

	for _, deal := range deals {
		if capital < deal.PurchasePrice {
			continue
		}
		amount := minInt(int(math.Floor(capital/deal.PurchasePrice)), deal.Tons, cargo)
		if amount <= 0 {
			continue
		}

		executed := ExecutedDeal{
			Good:          deal.Good,
			Tons:          amount,
			PurchasePrice: deal.PurchasePrice,
			SalePrice:     deal.SalePrice,
			Profit:        float64(amount) * deal.Margin(),
		}
		quote.Deals = append(quote.Deals, executed)
		quote.FinalCapital += executed.Profit
		cargo -= amount
		capital -= float64(amount) * deal.PurchasePrice
	}
	quote.CashAfterPurchases = capital

	if cargo > 0 {
		load, err := a.fillFreight(ctx, origin, dest, cargo, freightRate)
		if err != nil {
			return nil, err
		}
		quote.Freight = load
		quote.FinalCapital += load.Revenue
	}

	return quote, nil
}

func (a *EdgeAnalyzer) candidateDeals(
	quote *EdgeQuote,
	goods []*market.TradeGood,
	ship *navigation.Ship,
	cargo int,
	capital float64,
	freightRate float64,
) []Deal {
	origin, dest := quote.Origin, quote.Destination
	deals := make([]Deal, 0, len(goods))

	for _, good := range goods {
		if !good.IsAvailable(origin) {
			quote.Skipped[SkipUnavailable] = append(quote.Skipped[SkipUnavailable], good.Name())
			continue
		}
		if good.IsIllegal(origin) || good.IsIllegal(dest) {
			quote.Skipped[SkipIllegal] = append(quote.Skipped[SkipIllegal], good.Name())
			continue
		}

		purchase := good.PurchasePrice(a.tables, ship.BrokerSkill(), origin)
		if purchase <= 0 || purchase > capital {
			quote.Skipped[SkipUnaffordable] = append(quote.Skipped[SkipUnaffordable], good.Name())
			continue
		}

		sale := good.SalePrice(a.tables, ship.BrokerSkill(), dest)
		margin := sale - purchase
		if margin <= freightRate {
			quote.Skipped[SkipNoMargin] = append(quote.Skipped[SkipNoMargin],
				fmt.Sprintf("%s (%.2f - %.2f)", good.Name(), sale, purchase))
			continue
		}

		tons := math.Min(good.TonsAvailable(origin), float64(cargo))
		tons = math.Min(tons, capital/purchase)

		deals = append(deals, Deal{
			Good:          good.Name(),
			Tons:          int(math.Floor(tons)),
			PurchasePrice: purchase,
			SalePrice:     sale,
			SortValue:     tons*margin + (float64(cargo)-tons)*freightRate,
		})
	}

	sort.SliceStable(deals, func(i, j int) bool {
		return deals[i].SortValue > deals[j].SortValue
	})
	return deals
}

// fillFreight loads plain freight into the remaining hold. With observed
// freight lots at the origin only whole lots can be carried.
func (a *EdgeAnalyzer) fillFreight(ctx context.Context, origin, dest *world.World, cargo int, rate float64) (FreightLoad, error) {
	if origin.Snapshot == nil {
		return FreightLoad{Tons: cargo, Rate: rate, Revenue: float64(cargo) * rate}, nil
	}

	lots := origin.Snapshot.FreightTo(dest.Key())
	if len(lots) == 0 {
		return FreightLoad{Rate: rate}, nil
	}

	var packed []world.FreightLot
	if a.packer != nil {
		var err error
		packed, err = a.packer.Pack(ctx, lots, cargo)
		if err != nil {
			return FreightLoad{}, fmt.Errorf("%w: %s -> %s: %v", ErrFreightPacking, origin, dest, err)
		}
	} else {
		packed = largestFirst(lots, cargo)
	}

	tons := 0
	for _, lot := range packed {
		tons += lot.Tons
	}
	if tons > cargo {
		return FreightLoad{}, fmt.Errorf("%w: packed %d tons into %d", ErrFreightPacking, tons, cargo)
	}

	return FreightLoad{Tons: tons, Rate: rate, Revenue: float64(tons) * rate, Lots: packed}, nil
}

func largestFirst(lots []world.FreightLot, capacity int) []world.FreightLot {
	sorted := append([]world.FreightLot(nil), lots...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Tons > sorted[j].Tons })

	var out []world.FreightLot
	for _, lot := range sorted {
		if lot.Tons > 0 && lot.Tons <= capacity {
			out = append(out, lot)
			capacity -= lot.Tons
		}
	}
	return out
}

func minInt(values ...int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
