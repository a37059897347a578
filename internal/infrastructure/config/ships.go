package config

import (
	"fmt"

	"github.com/andrescamacho/traveller-trade-go/internal/domain/contract"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/navigation"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/shared"
)

// Contract types accepted in ship profiles
const (
	ContractNone         = "none"
	ContractMortgage     = "mortgage"
	ContractRevenueShare = "revenue_share"
)

// ShipProfile is a named ship configuration
type ShipProfile struct {
	MonthlyMaintenance float64 `mapstructure:"monthly_maintenance" validate:"min=0"`
	MonthlyLifeSupport float64 `mapstructure:"monthly_life_support" validate:"min=0"`

	FuelPerJump int `mapstructure:"fuel_per_jump" validate:"min=1"`
	JumpRating  int `mapstructure:"jump_rating" validate:"min=1"`
	FuelTank    int `mapstructure:"fuel_tank" validate:"min=0"`
	Cargo       int `mapstructure:"cargo" validate:"min=0"`
	CargoFuel   int `mapstructure:"cargo_fuel" validate:"min=0"`

	// Passages keep their listed order in the ledger
	Passages []PassageProfile `mapstructure:"passages" validate:"dive"`

	BrokerSkill  int `mapstructure:"broker_skill"`
	StewardSkill int `mapstructure:"steward_skill"`

	// BannedAllegiances are allegiance code prefixes the ship cannot enter
	BannedAllegiances []string `mapstructure:"banned_allegiances"`

	Contract ContractProfile `mapstructure:"contract"`
}

// PassageProfile is the number of berths sold in one class
type PassageProfile struct {
	Kind  string `mapstructure:"kind" validate:"required,oneof=high middle basic low"`
	Seats int    `mapstructure:"seats" validate:"min=0"`
}

// ContractProfile configures the financing contract of a ship
type ContractProfile struct {
	Type string `mapstructure:"type" validate:"omitempty,oneof=none mortgage revenue_share"`

	// Mortgage
	Principal   float64 `mapstructure:"principal" validate:"min=0"`
	Installment float64 `mapstructure:"installment" validate:"min=0"`

	// Revenue share; home and safe worlds come from the politics section
	Backer        string  `mapstructure:"backer"`
	Rate          float64 `mapstructure:"rate" validate:"min=0,max=1"`
	MonthlyIncome float64 `mapstructure:"monthly_income" validate:"min=0"`
}

// Build converts the profile into a domain ship
func (p ShipProfile) Build(name string, politics PoliticsConfig) (*navigation.Ship, error) {
	terms, err := p.Contract.build(politics)
	if err != nil {
		return nil, fmt.Errorf("ship %s: %w", name, err)
	}

	passages := make([]navigation.PassageAllotment, 0, len(p.Passages))
	for _, pp := range p.Passages {
		kind, err := shared.ParsePassageKind(pp.Kind)
		if err != nil {
			return nil, fmt.Errorf("ship %s: %w", name, err)
		}
		passages = append(passages, navigation.PassageAllotment{Kind: kind, Seats: pp.Seats})
	}

	return navigation.NewShip(navigation.ShipSpec{
		Name:               name,
		MonthlyMaintenance: p.MonthlyMaintenance,
		MonthlyLifeSupport: p.MonthlyLifeSupport,
		FuelPerJump:        p.FuelPerJump,
		JumpRating:         p.JumpRating,
		FuelTank:           p.FuelTank,
		Cargo:              p.Cargo,
		CargoFuel:          p.CargoFuel,
		Passages:           passages,
		BrokerSkill:        p.BrokerSkill,
		StewardSkill:       p.StewardSkill,
		Contract:           terms,
		BannedAllegiances:  p.BannedAllegiances,
	})
}

func (c ContractProfile) build(politics PoliticsConfig) (contract.Contract, error) {
	switch c.Type {
	case "", ContractNone:
		return nil, nil
	case ContractMortgage:
		return contract.NewMortgage(c.Principal, c.Installment)
	case ContractRevenueShare:
		home, err := shared.ParseHexSet(politics.HomeWorlds)
		if err != nil {
			return nil, fmt.Errorf("politics.home_worlds: %w", err)
		}
		safe, err := shared.ParseHexSet(politics.SafeWorlds)
		if err != nil {
			return nil, fmt.Errorf("politics.safe_worlds: %w", err)
		}
		return contract.NewRevenueShare(contract.RevenueShareTerms{
			Backer:        c.Backer,
			Rate:          c.Rate,
			MonthlyIncome: c.MonthlyIncome,
			HomeWorlds:    home,
			SafeWorlds:    safe,
		})
	}
	return nil, fmt.Errorf("unknown contract type %q", c.Type)
}

// DefaultShips are the built-in ship profiles
func DefaultShips() map[string]ShipProfile {
	mortgage := func(principal float64) ContractProfile {
		return ContractProfile{Type: ContractMortgage, Principal: principal}
	}
	return map[string]ShipProfile{
		"perfect-stranger": {
			MonthlyMaintenance: 8946.84,
			FuelPerJump:        40, JumpRating: 1, FuelTank: 40, Cargo: 12, CargoFuel: 160,
			Passages:     []PassageProfile{{Kind: "low", Seats: 9}, {Kind: "middle", Seats: 10}},
			StewardSkill: 2, BrokerSkill: 2,
			Contract: ContractProfile{Type: ContractRevenueShare, Backer: "Stern Metal", Rate: 0.75},
		},
		"solo": {
			MonthlyMaintenance: 3737,
			FuelPerJump:        10, JumpRating: 2, FuelTank: 20, Cargo: 18,
			Passages:     []PassageProfile{{Kind: "middle", Seats: 1}},
			StewardSkill: 2, BrokerSkill: 2,
			Contract: mortgage(44840250),
		},
		"far-trader": {
			MonthlyMaintenance: 4443,
			FuelPerJump:        40, JumpRating: 2, FuelTank: 40, Cargo: 63,
			Passages:     []PassageProfile{{Kind: "low", Seats: 6}, {Kind: "middle", Seats: 7}},
			StewardSkill: 2, BrokerSkill: 2,
			Contract: mortgage(53320500),
		},
		"empress-marava": {
			MonthlyMaintenance: 4513,
			FuelPerJump:        40, JumpRating: 2, FuelTank: 40, Cargo: 57,
			Passages:     []PassageProfile{{Kind: "low", Seats: 4}, {Kind: "middle", Seats: 6}},
			StewardSkill: 2, BrokerSkill: 2,
			Contract: mortgage(54158200),
		},
		"booty-pirates-trader": {
			MonthlyMaintenance: 5516,
			FuelPerJump:        20, JumpRating: 2, FuelTank: 20, Cargo: 66, CargoFuel: 20,
			StewardSkill: 2, BrokerSkill: 4,
			BannedAllegiances: []string{"Im", "As"},
			Contract:          mortgage(47610000),
		},
	}
}
