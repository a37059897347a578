package trading

import (
	"fmt"

	"github.com/andrescamacho/traveller-trade-go/internal/domain/world"
)

// SkipReason tags why a good was left out of an edge quote
type SkipReason string

const (
	SkipUnavailable  SkipReason = "unavailable"
	SkipIllegal      SkipReason = "illegal"
	SkipUnaffordable SkipReason = "unaffordable"
	SkipNoMargin     SkipReason = "no_margin"
)

// Deal is a candidate speculative purchase
type Deal struct {
	Good          string
	Tons          int
	PurchasePrice float64
	SalePrice     float64

	// SortValue credits the tonnage left over for freight, so a thin deal
	// on a few tons does not outrank filling the hold with freight
	SortValue float64
}

// Margin is the per-ton profit
func (d Deal) Margin() float64 {
	return d.SalePrice - d.PurchasePrice
}

// ExecutedDeal is a purchase actually made
type ExecutedDeal struct {
	Good          string
	Tons          int
	PurchasePrice float64
	SalePrice     float64
	Profit        float64
}

func (d ExecutedDeal) String() string {
	return fmt.Sprintf("Buy %d of %s at %.2f, sell at %.2f, total profit: %.2f",
		d.Tons, d.Good, d.PurchasePrice, d.SalePrice, d.Profit)
}

// FreightLoad is the freight carried on the leg
type FreightLoad struct {
	Tons    int
	Rate    float64
	Revenue float64

	// Lots is set when the load was packed from observed freight lots
	Lots []world.FreightLot
}
