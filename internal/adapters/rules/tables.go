package rules

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/traveller-trade-go/internal/domain/market"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/shared"
)

// Maximum jump distance with its own fare column
const MaxFareDistance = 6

type tablesFile struct {
	ModifiedPrice []struct {
		Roll     int     `yaml:"roll"`
		Purchase float64 `yaml:"purchase"`
		Sale     float64 `yaml:"sale"`
	} `yaml:"modified_price"`

	PassengerDice []struct {
		Roll int     `yaml:"roll"`
		Dice float64 `yaml:"dice"`
	} `yaml:"passenger_dice"`

	Fares       map[string][]float64 `yaml:"fares"`
	LifeSupport map[string]float64   `yaml:"life_support"`
}

// Tables implements market.EconomicTables over the YAML rule tables
type Tables struct {
	purchase    map[int]float64
	sale        map[int]float64
	passengers  map[int]float64
	fares       map[shared.PassageKind][]float64
	lifeSupport map[shared.PassageKind]float64
	source      string
}

var _ market.EconomicTables = (*Tables)(nil)

// LoadTables reads rule tables from path, or the embedded defaults when path is empty
func LoadTables(path string) (*Tables, error) {
	raw, source, err := readSource(path, "tables.yaml")
	if err != nil {
		return nil, err
	}
	return ParseTables(raw, source)
}

// ParseTables decodes and checks a tables document. Every roll in the
// table domains and every fare column must be present.
func ParseTables(raw []byte, source string) (*Tables, error) {
	var file tablesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRules, source, err)
	}

	t := &Tables{
		purchase:    make(map[int]float64),
		sale:        make(map[int]float64),
		passengers:  make(map[int]float64),
		fares:       make(map[shared.PassageKind][]float64),
		lifeSupport: make(map[shared.PassageKind]float64),
		source:      source,
	}

	for _, row := range file.ModifiedPrice {
		t.purchase[row.Roll] = row.Purchase
		t.sale[row.Roll] = row.Sale
	}
	for roll := market.PriceRollMin; roll <= market.PriceRollMax; roll++ {
		if _, ok := t.purchase[roll]; !ok {
			return nil, fmt.Errorf("%w: %s: modified_price is missing roll %d", ErrInvalidRules, source, roll)
		}
	}

	for _, row := range file.PassengerDice {
		t.passengers[row.Roll] = row.Dice
	}
	for roll := market.PassengerRollMin; roll <= market.PassengerRollMax; roll++ {
		if _, ok := t.passengers[roll]; !ok {
			return nil, fmt.Errorf("%w: %s: passenger_dice is missing roll %d", ErrInvalidRules, source, roll)
		}
	}

	for name, column := range file.Fares {
		kind, err := shared.ParsePassageKind(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: fares: %v", ErrInvalidRules, source, err)
		}
		if len(column) != MaxFareDistance {
			return nil, fmt.Errorf("%w: %s: fares.%s needs %d distances, has %d", ErrInvalidRules, source, name, MaxFareDistance, len(column))
		}
		t.fares[kind] = column
	}
	for _, kind := range []shared.PassageKind{shared.PassageHigh, shared.PassageMiddle, shared.PassageBasic, shared.PassageLow, shared.PassageFreight} {
		if _, ok := t.fares[kind]; !ok {
			return nil, fmt.Errorf("%w: %s: fares.%s is missing", ErrInvalidRules, source, kind)
		}
	}

	for name, cost := range file.LifeSupport {
		kind, err := shared.ParsePassageKind(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: life_support: %v", ErrInvalidRules, source, err)
		}
		t.lifeSupport[kind] = cost
	}

	return t, nil
}

// Source names where the tables were loaded from
func (t *Tables) Source() string {
	return t.source
}

func (t *Tables) ModifiedPrice(roll int, kind market.PriceKind) float64 {
	roll = market.ClampPriceRoll(roll)
	if kind == market.PriceSale {
		return t.sale[roll]
	}
	return t.purchase[roll]
}

func (t *Tables) PassengerDice(roll int) float64 {
	return t.passengers[market.ClampPassengerRoll(roll)]
}

// Fare clamps distance to 1..6; jumps beyond 6 parsecs pay the 6 parsec fare
func (t *Tables) Fare(kind shared.PassageKind, distance int) float64 {
	column := t.fares[kind]
	if len(column) == 0 {
		return 0
	}
	if distance < 1 {
		distance = 1
	}
	if distance > len(column) {
		distance = len(column)
	}
	return column[distance-1]
}

func (t *Tables) LifeSupport(kind shared.PassageKind) float64 {
	return t.lifeSupport[kind]
}
