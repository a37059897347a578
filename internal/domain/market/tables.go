package market

import "math"

// AverageDie is the expected value of one D6
const AverageDie = 3.5

// Table domains
const (
	PriceRollMin     = -3
	PriceRollMax     = 25
	PassengerRollMin = 1
	PassengerRollMax = 20
)

func ClampPriceRoll(roll int) int {
	return clamp(roll, PriceRollMin, PriceRollMax)
}

func ClampPassengerRoll(roll int) int {
	return clamp(roll, PassengerRollMin, PassengerRollMax)
}

// InterpolatedPrice looks up the table entries either side of a fractional
// roll and averages them. At an integer roll both lookups hit the same row.
func InterpolatedPrice(tables EconomicTables, roll float64, kind PriceKind) float64 {
	lower := tables.ModifiedPrice(ClampPriceRoll(int(math.Floor(roll))), kind)
	upper := tables.ModifiedPrice(ClampPriceRoll(int(math.Ceil(roll))), kind)
	return (lower + upper) / 2
}

// ExpectedPassengers converts a fractional traffic roll into the expected
// passenger count, interpolating the same way as prices
func ExpectedPassengers(tables EconomicTables, roll float64) float64 {
	lower := tables.PassengerDice(ClampPassengerRoll(int(math.Floor(roll))))
	upper := tables.PassengerDice(ClampPassengerRoll(int(math.Ceil(roll))))
	return (lower + upper) / 2 * AverageDie
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
