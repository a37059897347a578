package routing

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/traveller-trade-go/internal/domain/world"
)

// CompletionSpec lists the ways a route can finish. At least one must be set.
type CompletionSpec struct {
	Destination *world.World
	MaxProfit   *float64
	MaxWeeks    *int
}

// CompleteCondition decides when a route stops growing
type CompleteCondition struct {
	destination *world.World
	maxProfit   *float64
	maxWeeks    *int
}

func NewCompleteCondition(spec CompletionSpec) (*CompleteCondition, error) {
	if spec.Destination == nil && spec.MaxProfit == nil && spec.MaxWeeks == nil {
		return nil, ErrIncompleteCondition
	}
	return &CompleteCondition{
		destination: spec.Destination,
		maxProfit:   spec.MaxProfit,
		maxWeeks:    spec.MaxWeeks,
	}, nil
}

// Destination is the fixed end world, nil for open-ended conditions
func (c *CompleteCondition) Destination() *world.World {
	return c.destination
}

// IsComplete checks the route's current world, weeks elapsed on the route
// (excluding prior duration) and profit against every configured ceiling
func (c *CompleteCondition) IsComplete(current *world.World, routeWeeks int, profit float64) bool {
	if c.destination != nil && c.destination.Equal(current) {
		return true
	}
	if c.maxProfit != nil && profit >= *c.maxProfit {
		return true
	}
	if c.maxWeeks != nil && routeWeeks >= *c.maxWeeks {
		return true
	}
	return false
}

func (c *CompleteCondition) String() string {
	var parts []string
	if c.destination != nil {
		parts = append(parts, "destination "+c.destination.String())
	}
	if c.maxProfit != nil {
		parts = append(parts, fmt.Sprintf("profit >= %.2f", *c.maxProfit))
	}
	if c.maxWeeks != nil {
		parts = append(parts, fmt.Sprintf("weeks >= %d", *c.maxWeeks))
	}
	return strings.Join(parts, " or ")
}
