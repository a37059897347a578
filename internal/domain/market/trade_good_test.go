package market_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/traveller-trade-go/internal/domain/market"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/shared"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/world"
	"github.com/andrescamacho/traveller-trade-go/test/helpers"
)

func newWorld(t *testing.T, uwp, remarks string) *world.World {
	t.Helper()
	w, err := world.NewWorld("Test", shared.MustSectorHex("Reft", "0101"), 0, 0, uwp, "", "Im", remarks)
	require.NoError(t, err)
	return w
}

func electronics(t *testing.T) *market.TradeGood {
	t.Helper()
	law := 6
	g, err := market.NewTradeGood(market.TradeGoodSpec{
		Name:              "Advanced Electronics",
		Availability:      []string{"In", "Ht"},
		TonsDice:          2,
		TonsMultiplier:    10,
		BasePrice:         20000,
		PurchaseModifiers: map[string]int{"In": 2, "Ht": 3},
		SaleModifiers:     map[string]int{"Ni": 2, "Po": 1, "As": -1},
		MaxLawLevel:       &law,
	})
	require.NoError(t, err)
	return g
}

func TestNewTradeGood_Validation(t *testing.T) {
	_, err := market.NewTradeGood(market.TradeGoodSpec{Name: "", BasePrice: 100})
	assert.ErrorIs(t, err, market.ErrInvalidTradeGood)

	_, err = market.NewTradeGood(market.TradeGoodSpec{Name: "Ore", BasePrice: 0})
	assert.ErrorIs(t, err, market.ErrInvalidTradeGood)
}

func TestTradeGood_Availability(t *testing.T) {
	good := electronics(t)

	assert.True(t, good.IsAvailable(newWorld(t, "A788899-C", "In Ri")))
	assert.False(t, good.IsAvailable(newWorld(t, "A788899-C", "Ag Ni")))
	assert.False(t, good.IsAvailable(newWorld(t, "A?88899-C", "In")), "unknown size is never available")

	everywhere, err := market.NewTradeGood(market.TradeGoodSpec{Name: "Common Goods", TonsDice: 2, TonsMultiplier: 10, BasePrice: 2000})
	require.NoError(t, err)
	assert.True(t, everywhere.AvailableEverywhere())
	assert.True(t, everywhere.IsAvailable(newWorld(t, "A788899-C", "")))
}

func TestTradeGood_DisjointRemarksGiveNoTonnage(t *testing.T) {
	good := electronics(t)
	w := newWorld(t, "A788899-C", "Ag Ga Ri")

	assert.False(t, good.IsAvailable(w))
	assert.Zero(t, good.TonsAvailable(w))
}

func TestTradeGood_Legality(t *testing.T) {
	good := electronics(t)

	assert.False(t, good.IsIllegal(newWorld(t, "A788895-C", "In")))
	assert.True(t, good.IsIllegal(newWorld(t, "A788896-C", "In")), "law equal to threshold is illegal")
	assert.True(t, good.IsIllegal(newWorld(t, "A78889A-C", "In")))
	assert.False(t, good.IsIllegal(newWorld(t, "A78889?-C", "In")))
}

func TestTradeGood_PurchasePriceUsesBestModifier(t *testing.T) {
	// Arrange
	tables := helpers.NewFixtureTables()
	good := electronics(t)
	w := newWorld(t, "A788899-C", "In Ht")

	// Act
	price := good.PurchasePrice(tables, 2, w)

	// Assert: roll 3+2+10.5 = 15.5, average of 65% and 60%
	assert.InDelta(t, 12500, price, 0.001)
}

func TestTradeGood_SalePrice(t *testing.T) {
	tables := helpers.NewFixtureTables()
	good := electronics(t)

	// roll 2+2+10.5 = 14.5, average of 115% and 120%
	assert.InDelta(t, 23500, good.SalePrice(tables, 2, newWorld(t, "A788899-C", "Ni Po")), 0.001)

	// only a negative modifier matches: roll -1+2+10.5 = 11.5, average of 100% and 105%
	assert.InDelta(t, 20500, good.SalePrice(tables, 2, newWorld(t, "A788899-C", "As")), 0.001)

	// nothing matches: roll 12.5, average of 105% and 110%
	assert.InDelta(t, 21500, good.SalePrice(tables, 2, newWorld(t, "A788899-C", "Ga")), 0.001)
}

func TestInterpolatedPrice_IntegerRollHitsExactRow(t *testing.T) {
	tables := helpers.NewFixtureTables()

	for roll := market.PriceRollMin; roll <= market.PriceRollMax; roll++ {
		assert.Equal(t, tables.Purchase[roll], market.InterpolatedPrice(tables, float64(roll), market.PricePurchase))
		assert.Equal(t, tables.Sale[roll], market.InterpolatedPrice(tables, float64(roll), market.PriceSale))
	}
}

func TestInterpolatedPrice_ClampsOutOfRangeRolls(t *testing.T) {
	tables := helpers.NewFixtureTables()

	assert.Equal(t, 300.0, market.InterpolatedPrice(tables, -10.5, market.PricePurchase))
	assert.Equal(t, 400.0, market.InterpolatedPrice(tables, 40.5, market.PriceSale))
}

func TestTradeGood_TonsAvailableByPopulation(t *testing.T) {
	good := electronics(t)

	assert.Equal(t, 40.0, good.TonsAvailable(newWorld(t, "A788399-C", "In")))
	assert.Equal(t, 70.0, good.TonsAvailable(newWorld(t, "A788899-C", "In")))
	assert.Equal(t, 100.0, good.TonsAvailable(newWorld(t, "A788999-C", "In")))
}

func TestTradeGood_SnapshotOverrides(t *testing.T) {
	tables := helpers.NewFixtureTables()
	good := electronics(t)
	base := newWorld(t, "A788899-C", "Ag")
	snap := &world.TradeSnapshot{
		World: base.Key(),
		Available: map[string]world.SnapshotGood{
			"Advanced Electronics": {Name: "Advanced Electronics", Tons: 12, Price: 18000},
		},
		Desired: map[string]world.SnapshotGood{
			"Advanced Electronics": {Name: "Advanced Electronics", Price: 26000},
		},
	}
	observed := base.WithSnapshot(snap)

	assert.False(t, good.IsAvailable(base))
	assert.True(t, good.IsAvailable(observed))
	assert.Equal(t, 12.0, good.TonsAvailable(observed))
	assert.Equal(t, 18000.0, good.PurchasePrice(tables, 2, observed))
	assert.Equal(t, 26000.0, good.SalePrice(tables, 2, observed))
}

func TestExpectedPassengers(t *testing.T) {
	tables := helpers.NewFixtureTables()

	// roll 10.5 sits between 3 and 4 dice
	assert.InDelta(t, 3.5*3.5, market.ExpectedPassengers(tables, 10.5), 0.001)
	assert.Equal(t, 0.0, market.ExpectedPassengers(tables, -4))
	assert.Equal(t, 35.0, market.ExpectedPassengers(tables, 30))
}
