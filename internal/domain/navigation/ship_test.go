package navigation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/traveller-trade-go/internal/domain/navigation"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/shared"
)

// fuel-tender profile: jump-1 drive with 160 tons of drop tanks in the hold
func tender(t *testing.T) *navigation.Ship {
	t.Helper()
	ship, err := navigation.NewShip(navigation.ShipSpec{
		Name:               "Perfect Stranger",
		MonthlyMaintenance: 8946.84,
		FuelPerJump:        40,
		JumpRating:         1,
		FuelTank:           40,
		Cargo:              12,
		CargoFuel:          160,
		Passages: []navigation.PassageAllotment{
			{Kind: shared.PassageLow, Seats: 9},
			{Kind: shared.PassageMiddle, Seats: 10},
		},
		BrokerSkill:       2,
		StewardSkill:      2,
		BannedAllegiances: []string{"Im", "As"},
	})
	require.NoError(t, err)
	return ship
}

func TestShip_CargoCapacityShrinksWithFuel(t *testing.T) {
	ship := tender(t)

	tests := []struct {
		distance int
		cargo    int
		ok       bool
	}{
		{1, 172, true},
		{2, 132, true},
		{5, 12, true},
		{6, 0, false},
	}

	for _, tt := range tests {
		cargo, ok := ship.CargoCapacity(tt.distance)
		assert.Equal(t, tt.ok, ok, "distance %d", tt.distance)
		assert.Equal(t, tt.cargo, cargo, "distance %d", tt.distance)
	}
}

func TestShip_RangeAndDurations(t *testing.T) {
	ship := tender(t)

	assert.Equal(t, 5, ship.MaxRange())
	assert.Equal(t, 3, ship.JumpsRequired(3))
	assert.Equal(t, 4, ship.LegDuration(3))
	assert.Equal(t, 4, ship.ExpectedDuration(3))
	assert.Equal(t, 0, ship.ExpectedDuration(0))
	assert.Equal(t, 8, ship.ExpectedDuration(6))
}

func TestShip_FuelCost(t *testing.T) {
	ship := tender(t)

	assert.Equal(t, 4000.0, ship.FuelCost(1))
	assert.Equal(t, 12000.0, ship.FuelCost(3))
}

func TestShip_BannedAllegiance(t *testing.T) {
	ship := tender(t)

	assert.True(t, ship.IsBannedAllegiance("ImDd"))
	assert.True(t, ship.IsBannedAllegiance("AsMw"))
	assert.False(t, ship.IsBannedAllegiance("CsIm"))
	assert.False(t, ship.IsBannedAllegiance(""))
}

func TestNewShip_Validation(t *testing.T) {
	base := navigation.ShipSpec{Name: "Solo", FuelPerJump: 10, JumpRating: 2, FuelTank: 20, Cargo: 18}

	tests := []struct {
		name   string
		mutate func(*navigation.ShipSpec)
	}{
		{"empty name", func(s *navigation.ShipSpec) { s.Name = "" }},
		{"no fuel burn", func(s *navigation.ShipSpec) { s.FuelPerJump = 0 }},
		{"no drive", func(s *navigation.ShipSpec) { s.JumpRating = 0 }},
		{"tank too small", func(s *navigation.ShipSpec) { s.FuelTank = 5 }},
		{"negative seats", func(s *navigation.ShipSpec) {
			s.Passages = []navigation.PassageAllotment{{Kind: shared.PassageMiddle, Seats: -1}}
		}},
		{"freight berth", func(s *navigation.ShipSpec) {
			s.Passages = []navigation.PassageAllotment{{Kind: shared.PassageFreight, Seats: 1}}
		}},
	}

	_, err := navigation.NewShip(base)
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := base
			tt.mutate(&spec)

			_, err := navigation.NewShip(spec)

			var validationErr *shared.ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}
