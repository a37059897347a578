package market

import (
	"context"

	"github.com/andrescamacho/traveller-trade-go/internal/domain/shared"
)

// PriceKind selects the purchase or sale column of the modified price table
type PriceKind string

const (
	PricePurchase PriceKind = "purchase"
	PriceSale     PriceKind = "sale"
)

// EconomicTables is a read-only oracle over the static rule tables.
// Callers pass integer arguments already clamped to the table domains
// (see ClampPriceRoll and ClampPassengerRoll).
type EconomicTables interface {
	// ModifiedPrice returns the percentage of base price for a 3D6 roll
	ModifiedPrice(roll int, kind PriceKind) float64

	// PassengerDice returns how many D6 of passengers a 2D6 traffic roll yields
	PassengerDice(roll int) float64

	// Fare returns the per-passenger (or per-ton for freight) fare for a jump distance
	Fare(kind shared.PassageKind, distance int) float64

	// LifeSupport returns the per-parsec life support cost of one passenger
	LifeSupport(kind shared.PassageKind) float64
}

// Catalog provides the full list of speculative trade goods.
// Implementations load once per run.
type Catalog interface {
	AllTradeGoods(ctx context.Context) ([]*TradeGood, error)
}
