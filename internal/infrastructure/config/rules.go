package config

import (
	"fmt"
	"time"

	"github.com/andrescamacho/traveller-trade-go/internal/domain/routing"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/shared"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/trading"
)

// RulesConfig points at rule table and catalog files. Empty paths use the
// embedded defaults.
type RulesConfig struct {
	TablesPath  string `mapstructure:"tables_path"`
	CatalogPath string `mapstructure:"catalog_path"`
}

// PackingConfig selects the freight packer
type PackingConfig struct {
	// Mode is "local" for the in-process packer or "grpc" for the packing service
	Mode string `mapstructure:"mode" validate:"required,oneof=local grpc"`

	// gRPC service address (host:port), required in grpc mode
	Address string `mapstructure:"address"`

	Timeout time.Duration `mapstructure:"timeout"`
}

// SearchConfig bounds each route search
type SearchConfig struct {
	StaleCompletionLimit int           `mapstructure:"stale_completion_limit" validate:"min=1"`
	CycleWindow          int           `mapstructure:"cycle_window" validate:"min=1"`
	MaxIterations        int           `mapstructure:"max_iterations" validate:"min=0"`
	Timeout              time.Duration `mapstructure:"timeout"`
	Parallelism          int           `mapstructure:"parallelism" validate:"min=1,max=64"`
}

// PoliticsConfig names regions as "<sector> <hex>" strings
type PoliticsConfig struct {
	// HomeWorlds defer revenue share settlement
	HomeWorlds []string `mapstructure:"home_worlds"`

	// SafeWorlds are exempt from revenue share cuts
	SafeWorlds []string `mapstructure:"safe_worlds"`

	// Passenger traffic between the two rival zones is penalized
	RivalZoneA   []string `mapstructure:"rival_zone_a"`
	RivalZoneB   []string `mapstructure:"rival_zone_b"`
	RivalPenalty int      `mapstructure:"rival_penalty" validate:"min=0"`
}

// Options converts the search section into routing options
func (s SearchConfig) Options() routing.SearchOptions {
	return routing.SearchOptions{
		StaleCompletionLimit: s.StaleCompletionLimit,
		CycleWindow:          s.CycleWindow,
		MaxIterations:        s.MaxIterations,
		Timeout:              s.Timeout,
		Parallelism:          s.Parallelism,
	}
}

// RivalZones parses the rival zone lists
func (p PoliticsConfig) RivalZones() (trading.RivalZones, error) {
	a, err := shared.ParseHexSet(p.RivalZoneA)
	if err != nil {
		return trading.RivalZones{}, fmt.Errorf("politics.rival_zone_a: %w", err)
	}
	b, err := shared.ParseHexSet(p.RivalZoneB)
	if err != nil {
		return trading.RivalZones{}, fmt.Errorf("politics.rival_zone_b: %w", err)
	}
	return trading.RivalZones{A: a, B: b, Penalty: p.RivalPenalty}, nil
}
