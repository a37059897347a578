package navigation

import (
	"fmt"
	"math"
	"strings"

	"github.com/andrescamacho/traveller-trade-go/internal/domain/contract"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/shared"
)

// UnrefinedFuelPrice is the cost of one ton of unrefined fuel
const UnrefinedFuelPrice = 100

// PassageAllotment is the number of berths the ship sells in one class
type PassageAllotment struct {
	Kind  shared.PassageKind
	Seats int
}

// ShipSpec carries the configuration of a Ship
type ShipSpec struct {
	Name string

	MonthlyMaintenance float64
	MonthlyLifeSupport float64

	// FuelPerJump is tons burned per parsec jumped
	FuelPerJump int
	JumpRating  int
	FuelTank    int
	Cargo       int

	// CargoFuel is cargo hold space given over to drop tanks. Fuel not burned
	// on a jump returns to cargo capacity.
	CargoFuel int

	Passages     []PassageAllotment
	BrokerSkill  int
	StewardSkill int
	Contract     contract.Contract

	BannedAllegiances []string
}

// Ship is an immutable trade vessel profile.
//
// Invariants:
// - FuelPerJump and JumpRating are positive
// - Fuel tank plus cargo fuel covers at least one parsec
// - Tonnages and seat counts are non-negative
//
// Range:
//   - MaxRange is how far the combined tankage reaches; legs longer than the
//     jump drive rating are flown as several jumps on the same fuel load
type Ship struct {
	name               string
	monthlyMaintenance float64
	monthlyLifeSupport float64
	fuelPerJump        int
	jumpRating         int
	fuelTank           int
	cargo              int
	cargoFuel          int
	passages           []PassageAllotment
	brokerSkill        int
	stewardSkill       int
	contract           contract.Contract
	bannedAllegiances  []string
}

// NewShip validates spec and creates a Ship
func NewShip(spec ShipSpec) (*Ship, error) {
	s := &Ship{
		name:               spec.Name,
		monthlyMaintenance: spec.MonthlyMaintenance,
		monthlyLifeSupport: spec.MonthlyLifeSupport,
		fuelPerJump:        spec.FuelPerJump,
		jumpRating:         spec.JumpRating,
		fuelTank:           spec.FuelTank,
		cargo:              spec.Cargo,
		cargoFuel:          spec.CargoFuel,
		passages:           append([]PassageAllotment(nil), spec.Passages...),
		brokerSkill:        spec.BrokerSkill,
		stewardSkill:       spec.StewardSkill,
		contract:           spec.Contract,
		bannedAllegiances:  append([]string(nil), spec.BannedAllegiances...),
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Ship) validate() error {
	if s.name == "" {
		return shared.NewValidationError("name", "cannot be empty")
	}
	if s.fuelPerJump <= 0 {
		return shared.NewValidationError("fuel_per_jump", "must be positive")
	}
	if s.jumpRating <= 0 {
		return shared.NewValidationError("jump_rating", "must be positive")
	}
	if s.fuelTank < 0 || s.cargo < 0 || s.cargoFuel < 0 {
		return shared.NewValidationError("tonnage", "cannot be negative")
	}
	if s.monthlyMaintenance < 0 || s.monthlyLifeSupport < 0 {
		return shared.NewValidationError("monthly_costs", "cannot be negative")
	}
	if s.MaxRange() < 1 {
		return shared.NewValidationError("fuel_tank", fmt.Sprintf(
			"%d tons of fuel cannot cover one parsec at %d tons per parsec", s.fuelTank+s.cargoFuel, s.fuelPerJump,
		))
	}
	for _, p := range s.passages {
		if p.Seats < 0 {
			return shared.NewValidationError("passages", fmt.Sprintf("%s seats cannot be negative", p.Kind))
		}
		if p.Kind == shared.PassageFreight {
			return shared.NewValidationError("passages", "freight is not a passenger class")
		}
	}
	return nil
}

// Getters

func (s *Ship) Name() string                 { return s.name }
func (s *Ship) MonthlyMaintenance() float64  { return s.monthlyMaintenance }
func (s *Ship) MonthlyLifeSupport() float64  { return s.monthlyLifeSupport }
func (s *Ship) JumpRating() int              { return s.jumpRating }
func (s *Ship) BrokerSkill() int             { return s.brokerSkill }
func (s *Ship) StewardSkill() int            { return s.stewardSkill }
func (s *Ship) Contract() contract.Contract  { return s.contract }
func (s *Ship) Passages() []PassageAllotment { return append([]PassageAllotment(nil), s.passages...) }
func (s *Ship) BannedAllegiances() []string  { return append([]string(nil), s.bannedAllegiances...) }

// CargoCapacity is the hold space available for a jump of distance parsecs.
// Fuel beyond the main tank comes out of the cargo fuel allowance; ok is
// false when the combined tankage cannot cover the jump.
func (s *Ship) CargoCapacity(distance int) (int, bool) {
	fuelRequired := distance*s.fuelPerJump - s.fuelTank
	if fuelRequired < 0 {
		fuelRequired = 0
	}
	if s.cargoFuel < fuelRequired {
		return 0, false
	}
	return s.cargo + s.cargoFuel - fuelRequired, true
}

// MaxRange is the furthest jump the combined tankage covers, in parsecs
func (s *Ship) MaxRange() int {
	return (s.cargoFuel + s.fuelTank) / s.fuelPerJump
}

// JumpsRequired is the number of jumps the drive needs to cover distance
func (s *Ship) JumpsRequired(distance int) int {
	return ceilDiv(distance, s.jumpRating)
}

// ExpectedDuration estimates weeks to cover distance: a week in jump per
// jump plus a week of transit and refuelling per fuel load
func (s *Ship) ExpectedDuration(distance int) int {
	return ceilDiv(distance, s.MaxRange()) + s.JumpsRequired(distance)
}

// LegDuration is the weeks one leg of distance takes, including a week in port
func (s *Ship) LegDuration(distance int) int {
	return s.JumpsRequired(distance) + 1
}

// FuelCost is the price of unrefined fuel for distance
func (s *Ship) FuelCost(distance int) float64 {
	return float64(distance*s.fuelPerJump) * UnrefinedFuelPrice
}

// IsBannedAllegiance reports whether allegiance starts with any banned prefix
func (s *Ship) IsBannedAllegiance(allegiance string) bool {
	for _, prefix := range s.bannedAllegiances {
		if prefix != "" && strings.HasPrefix(allegiance, prefix) {
			return true
		}
	}
	return false
}

func (s *Ship) String() string {
	return fmt.Sprintf("Ship(%s, J-%d, %dt cargo)", s.name, s.jumpRating, s.cargo)
}

func ceilDiv(n, d int) int {
	return int(math.Ceil(float64(n) / float64(d)))
}
