package helpers

import (
	"github.com/andrescamacho/traveller-trade-go/internal/domain/market"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/shared"
)

// FixtureTables is an in-memory market.EconomicTables holding the standard
// rule values, so domain tests run without the rules adapter
type FixtureTables struct {
	Purchase   map[int]float64
	Sale       map[int]float64
	Passengers map[int]float64
	Fares      map[shared.PassageKind]map[int]float64
	Support    map[shared.PassageKind]float64
}

var _ market.EconomicTables = (*FixtureTables)(nil)

func NewFixtureTables() *FixtureTables {
	t := &FixtureTables{
		Purchase:   map[int]float64{},
		Sale:       map[int]float64{},
		Passengers: map[int]float64{},
		Fares:      map[shared.PassageKind]map[int]float64{},
		Support: map[shared.PassageKind]float64{
			shared.PassageHigh:   3000,
			shared.PassageMiddle: 2000,
			shared.PassageBasic:  1000,
			shared.PassageLow:    0,
		},
	}

	purchase := []float64{300, 250, 200, 175, 150, 135, 125, 120, 115, 110, 105, 100, 95, 90, 85, 80, 75, 70, 65, 60, 55, 50, 45, 40, 35, 30, 25, 20, 15}
	sale := []float64{10, 20, 30, 40, 45, 50, 55, 60, 65, 70, 75, 80, 85, 90, 100, 105, 110, 115, 120, 125, 130, 140, 150, 160, 175, 200, 250, 300, 400}
	for i := range purchase {
		t.Purchase[i-3] = purchase[i]
		t.Sale[i-3] = sale[i]
	}

	dice := []float64{0, 1, 1, 2, 2, 2, 3, 3, 3, 3, 4, 4, 4, 5, 5, 6, 7, 8, 9, 10}
	for i, d := range dice {
		t.Passengers[i+1] = d
	}

	fares := map[shared.PassageKind][]float64{
		shared.PassageHigh:    {9000, 14000, 21000, 34000, 60000, 210000},
		shared.PassageMiddle:  {6500, 10000, 14000, 23000, 40000, 130000},
		shared.PassageBasic:   {2000, 3000, 5000, 8000, 14000, 55000},
		shared.PassageLow:     {700, 1300, 2200, 3900, 7200, 27000},
		shared.PassageFreight: {1000, 1600, 2600, 4400, 8500, 32000},
	}
	for kind, byDistance := range fares {
		t.Fares[kind] = map[int]float64{}
		for i, fare := range byDistance {
			t.Fares[kind][i+1] = fare
		}
	}

	return t
}

func (t *FixtureTables) ModifiedPrice(roll int, kind market.PriceKind) float64 {
	if kind == market.PriceSale {
		return t.Sale[roll]
	}
	return t.Purchase[roll]
}

func (t *FixtureTables) PassengerDice(roll int) float64 {
	return t.Passengers[roll]
}

func (t *FixtureTables) Fare(kind shared.PassageKind, distance int) float64 {
	if distance < 1 {
		distance = 1
	}
	if distance > 6 {
		distance = 6
	}
	return t.Fares[kind][distance]
}

func (t *FixtureTables) LifeSupport(kind shared.PassageKind) float64 {
	return t.Support[kind]
}
