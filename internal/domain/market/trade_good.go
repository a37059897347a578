package market

import (
	"fmt"
	"sort"

	"github.com/andrescamacho/traveller-trade-go/internal/domain/world"
)

// TradeGoodSpec carries the catalog fields of a speculative trade good
type TradeGoodSpec struct {
	Name string

	// Availability lists the trade codes where the good is sold.
	// Empty means the good is available everywhere.
	Availability []string

	TonsDice          int
	TonsMultiplier    float64
	BasePrice         float64
	PurchaseModifiers map[string]int
	SaleModifiers     map[string]int

	// MaxLawLevel makes the good illegal at worlds with law >= the value
	MaxLawLevel *int
}

// TradeGood is an immutable speculative cargo type.
//
// Prices are computed from the expected value of the broker roll against the
// modified price table, so the same good/world pair always prices the same.
type TradeGood struct {
	name              string
	availability      map[string]struct{}
	tonsDice          int
	tonsMultiplier    float64
	basePrice         float64
	purchaseModifiers map[string]int
	saleModifiers     map[string]int
	maxLawLevel       *int
}

// NewTradeGood validates spec and creates a TradeGood
func NewTradeGood(spec TradeGoodSpec) (*TradeGood, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidTradeGood)
	}
	if spec.BasePrice <= 0 {
		return nil, fmt.Errorf("%w: %s base price must be positive", ErrInvalidTradeGood, spec.Name)
	}
	if spec.TonsDice < 0 || spec.TonsMultiplier < 0 {
		return nil, fmt.Errorf("%w: %s tonnage must be non-negative", ErrInvalidTradeGood, spec.Name)
	}

	g := &TradeGood{
		name:              spec.Name,
		tonsDice:          spec.TonsDice,
		tonsMultiplier:    spec.TonsMultiplier,
		basePrice:         spec.BasePrice,
		purchaseModifiers: copyModifiers(spec.PurchaseModifiers),
		saleModifiers:     copyModifiers(spec.SaleModifiers),
	}

	if len(spec.Availability) > 0 {
		g.availability = make(map[string]struct{}, len(spec.Availability))
		for _, code := range spec.Availability {
			g.availability[code] = struct{}{}
		}
	}
	if spec.MaxLawLevel != nil {
		law := *spec.MaxLawLevel
		g.maxLawLevel = &law
	}

	return g, nil
}

func (g *TradeGood) Name() string              { return g.name }
func (g *TradeGood) BasePrice() float64        { return g.basePrice }
func (g *TradeGood) AvailableEverywhere() bool { return g.availability == nil }

// Availability returns the sorted trade codes restricting the good
func (g *TradeGood) Availability() []string {
	codes := make([]string, 0, len(g.availability))
	for code := range g.availability {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// IsAvailable reports whether the good can be bought at w.
// A world snapshot, when present, is authoritative.
func (g *TradeGood) IsAvailable(w *world.World) bool {
	if w.Snapshot != nil {
		_, ok := w.Snapshot.AvailableGood(g.name)
		return ok
	}

	if !w.UWP.Size.IsKnown() {
		return false
	}
	if g.availability == nil {
		return true
	}
	for _, remark := range w.Remarks {
		if _, ok := g.availability[remark]; ok {
			return true
		}
	}
	return false
}

// IsIllegal reports whether the good breaks w's law level.
// Worlds with unknown law never ban it.
func (g *TradeGood) IsIllegal(w *world.World) bool {
	if g.maxLawLevel == nil {
		return false
	}
	law, known := w.UWP.Law.Value()
	if !known {
		return false
	}
	return *g.maxLawLevel <= law
}

// PurchasePrice is the expected per-ton price paid when buying at w
func (g *TradeGood) PurchasePrice(tables EconomicTables, skill int, w *world.World) float64 {
	if line, ok := w.Snapshot.AvailableGood(g.name); ok && line.Price > 0 {
		return line.Price
	}
	return g.bestPrice(tables, skill, w, PricePurchase)
}

// SalePrice is the expected per-ton price received when selling at w
func (g *TradeGood) SalePrice(tables EconomicTables, skill int, w *world.World) float64 {
	if line, ok := w.Snapshot.DesiredGood(g.name); ok && line.Price > 0 {
		return line.Price
	}
	return g.bestPrice(tables, skill, w, PriceSale)
}

// TonsAvailable is the expected tonnage on offer at w
func (g *TradeGood) TonsAvailable(w *world.World) float64 {
	if !g.IsAvailable(w) {
		return 0
	}
	if line, ok := w.Snapshot.AvailableGood(g.name); ok {
		return line.Tons
	}

	modifier := 0.0
	if pop, known := w.UWP.Population.Value(); known {
		switch {
		case pop <= 3:
			modifier = -3
		case pop >= 9:
			modifier = 3
		}
	}

	return (float64(g.tonsDice)*AverageDie + modifier) * g.tonsMultiplier
}

// bestPrice applies the largest modifier matching any of w's remarks
// (0 when none match) to an average 3D6 roll
func (g *TradeGood) bestPrice(tables EconomicTables, skill int, w *world.World, kind PriceKind) float64 {
	modifiers := g.purchaseModifiers
	if kind == PriceSale {
		modifiers = g.saleModifiers
	}

	best, found := 0, false
	for _, remark := range w.Remarks {
		if m, ok := modifiers[remark]; ok && (!found || m > best) {
			best, found = m, true
		}
	}

	roll := float64(best+skill) + 3*AverageDie
	return InterpolatedPrice(tables, roll, kind) * g.basePrice / 100
}

func copyModifiers(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
