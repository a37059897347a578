package rules

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/andrescamacho/traveller-trade-go/internal/domain/market"
)

// tradeGoodRecord is one catalog entry. Availability is either the string
// "All" or a list of trade codes.
type tradeGoodRecord struct {
	Name             string          `json:"name"`
	Availability     json.RawMessage `json:"availability"`
	TonsDice         int             `json:"tonsDice"`
	TonsMultiplier   float64         `json:"tonsMultiplier"`
	BasePrice        float64         `json:"basePrice"`
	PurchaseModifier map[string]int  `json:"purchaseModifier"`
	SaleModifier     map[string]int  `json:"saleModifier"`
	MaxLawLevel      *int            `json:"maxLawLevel"`
}

// JSONCatalog implements market.Catalog over a trade goods JSON file.
// The file is read and validated once.
type JSONCatalog struct {
	path string

	once  sync.Once
	goods []*market.TradeGood
	err   error
}

var _ market.Catalog = (*JSONCatalog)(nil)

// NewJSONCatalog creates a catalog reading path, or the embedded catalog when path is empty
func NewJSONCatalog(path string) *JSONCatalog {
	return &JSONCatalog{path: path}
}

func (c *JSONCatalog) AllTradeGoods(_ context.Context) ([]*market.TradeGood, error) {
	c.once.Do(func() {
		raw, source, err := readSource(c.path, "trade_goods.json")
		if err != nil {
			c.err = err
			return
		}
		c.goods, c.err = ParseCatalog(raw, source)
	})
	if c.err != nil {
		return nil, c.err
	}
	return append([]*market.TradeGood(nil), c.goods...), nil
}

// ParseCatalog validates raw against the catalog schema and builds the goods
func ParseCatalog(raw []byte, source string) ([]*market.TradeGood, error) {
	if err := validateJSON("trade_goods.schema.json", source, raw); err != nil {
		return nil, err
	}

	var records []tradeGoodRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRules, source, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", market.ErrEmptyCatalog, source)
	}

	seen := make(map[string]bool, len(records))
	goods := make([]*market.TradeGood, 0, len(records))
	for _, rec := range records {
		if seen[rec.Name] {
			return nil, fmt.Errorf("%w: %s: duplicate trade good %q", ErrInvalidRules, source, rec.Name)
		}
		seen[rec.Name] = true

		availability, err := parseAvailability(rec.Availability)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %s: %v", ErrInvalidRules, source, rec.Name, err)
		}

		good, err := market.NewTradeGood(market.TradeGoodSpec{
			Name:              rec.Name,
			Availability:      availability,
			TonsDice:          rec.TonsDice,
			TonsMultiplier:    rec.TonsMultiplier,
			BasePrice:         rec.BasePrice,
			PurchaseModifiers: rec.PurchaseModifier,
			SaleModifiers:     rec.SaleModifier,
			MaxLawLevel:       rec.MaxLawLevel,
		})
		if err != nil {
			return nil, err
		}
		goods = append(goods, good)
	}
	return goods, nil
}

// parseAvailability returns nil for "All"
func parseAvailability(raw json.RawMessage) ([]string, error) {
	var all string
	if err := json.Unmarshal(raw, &all); err == nil {
		if all != "All" {
			return nil, fmt.Errorf("availability must be \"All\" or a list, got %q", all)
		}
		return nil, nil
	}

	var codes []string
	if err := json.Unmarshal(raw, &codes); err != nil {
		return nil, err
	}
	return codes, nil
}
