package planning

import (
	"context"
	"fmt"

	"github.com/andrescamacho/traveller-trade-go/internal/application/common"
	"github.com/andrescamacho/traveller-trade-go/internal/application/mediator"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/contract"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/market"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/routing"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/shared"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/trading"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/world"
)

// PlanVoyageCommand plans a voyage through fixed stops, optionally followed
// by an open-ended leg bounded by profit or duration
type PlanVoyageCommand struct {
	Ship    string   // Optional: profile name, default ship when empty
	Start   string   // "<sector> <hex>"
	Stops   []string // Visited in order
	Avoid   []string // Worlds no leg may pass through
	Capital float64

	// StartWeeks is the time already spent before the voyage, which
	// decides where 4-week boundaries fall
	StartWeeks int

	// MaxProfit and MaxWeeks bound an extra open-ended leg after the last stop
	MaxProfit *float64
	MaxWeeks  *int

	ForceRefresh bool
	SnapshotPath string
}

// PlanVoyageResponse is the planned voyage
type PlanVoyageResponse struct {
	Ship          string
	Legs          []LegDTO
	TotalWeeks    int
	TotalProfit   float64
	FinalCapital  float64
	ProfitPerWeek float64

	// PercentPerWeek is the duration-weighted capital growth per week
	PercentPerWeek float64
}

// PlanVoyageHandler handles PlanVoyageCommand
type PlanVoyageHandler struct {
	ships     ShipCatalog
	worlds    ProviderFactory
	snapshots SnapshotSourceFactory
	catalog   market.Catalog
	analyzer  *trading.EdgeAnalyzer
	options   routing.SearchOptions
	observer  routing.Observer
}

// NewPlanVoyageHandler creates a new PlanVoyageHandler. snapshots and
// observer may be nil.
func NewPlanVoyageHandler(
	ships ShipCatalog,
	worlds ProviderFactory,
	snapshots SnapshotSourceFactory,
	catalog market.Catalog,
	analyzer *trading.EdgeAnalyzer,
	options routing.SearchOptions,
	observer routing.Observer,
) *PlanVoyageHandler {
	return &PlanVoyageHandler{
		ships:     ships,
		worlds:    worlds,
		snapshots: snapshots,
		catalog:   catalog,
		analyzer:  analyzer,
		options:   options,
		observer:  observer,
	}
}

type voyageLeg struct {
	target    string
	condition func(dest *world.World) (*routing.CompleteCondition, error)
}

// Handle executes the PlanVoyage command
func (h *PlanVoyageHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*PlanVoyageCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *PlanVoyageCommand")
	}
	if err := validateVoyage(cmd); err != nil {
		return nil, err
	}

	logger := common.LoggerFromContext(ctx)

	ship, err := h.ships.BuildShip(cmd.Ship)
	if err != nil {
		return nil, fmt.Errorf("failed to build ship: %w", err)
	}

	start, err := shared.ParseSectorHex(cmd.Start)
	if err != nil {
		return nil, shared.NewValidationError("start", err.Error())
	}
	stops := make([]shared.SectorHex, 0, len(cmd.Stops))
	for _, s := range cmd.Stops {
		key, err := shared.ParseSectorHex(s)
		if err != nil {
			return nil, shared.NewValidationError("stops", err.Error())
		}
		stops = append(stops, key)
	}
	avoid, err := shared.ParseHexSet(cmd.Avoid)
	if err != nil {
		return nil, shared.NewValidationError("avoid", err.Error())
	}

	provider, err := h.worlds(ship.MaxRange())
	if err != nil {
		return nil, fmt.Errorf("failed to open world provider: %w", err)
	}

	// A forced refresh reloads each world as its leg begins instead
	if prefetcher, ok := provider.(WorldPrefetcher); ok && !cmd.ForceRefresh {
		keys := append([]shared.SectorHex{start}, stops...)
		if err := prefetcher.Prefetch(ctx, keys, h.options.Parallelism); err != nil {
			return nil, fmt.Errorf("failed to load voyage worlds: %w", err)
		}
	}

	goods, err := h.catalog.AllTradeGoods(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load trade goods: %w", err)
	}

	var snapshots world.SnapshotSource
	if h.snapshots != nil && cmd.SnapshotPath != "" {
		snapshots = h.snapshots(cmd.SnapshotPath)
	}

	observer := routing.Observer(&loggingObserver{logger: logger})
	if h.observer != nil {
		observer = routing.MultiObserver{observer, h.observer}
	}
	searcher := routing.NewSearcher(provider, h.analyzer, goods, h.options, observer)

	legs := make([]voyageLeg, 0, len(stops)+1)
	for _, stop := range stops {
		legs = append(legs, voyageLeg{
			target: stop.String(),
			condition: func(*world.World) (*routing.CompleteCondition, error) {
				dest, err := provider.LoadWorld(ctx, stop, cmd.ForceRefresh)
				if err != nil {
					return nil, err
				}
				return routing.NewCompleteCondition(routing.CompletionSpec{Destination: dest})
			},
		})
	}
	if cmd.MaxProfit != nil || cmd.MaxWeeks != nil {
		legs = append(legs, voyageLeg{
			target: "open",
			condition: func(*world.World) (*routing.CompleteCondition, error) {
				return routing.NewCompleteCondition(routing.CompletionSpec{MaxProfit: cmd.MaxProfit, MaxWeeks: cmd.MaxWeeks})
			},
		})
	}

	resp := &PlanVoyageResponse{Ship: ship.Name()}
	capital := cmd.Capital
	priorWeeks := cmd.StartWeeks
	state := contract.NewState()
	from := start
	growth := 0.0

	for i, leg := range legs {
		origin, err := h.legOrigin(ctx, provider, snapshots, from, cmd.ForceRefresh)
		if err != nil {
			return nil, err
		}
		condition, err := leg.condition(origin)
		if err != nil {
			return nil, fmt.Errorf("leg %d to %s: %w", i+1, leg.target, err)
		}

		logger.Log("INFO", "Planning leg", map[string]interface{}{
			"leg":     i + 1,
			"from":    from.String(),
			"to":      leg.target,
			"capital": capital,
		})

		best, stats, err := searcher.FindBestRoute(ctx, routing.SearchRequest{
			Ship:       ship,
			Start:      origin,
			Condition:  condition,
			Capital:    capital,
			PriorWeeks: priorWeeks,
			Avoid:      avoid,
			State:      state,
		})
		if err != nil {
			return nil, fmt.Errorf("leg %d to %s: %w", i+1, leg.target, err)
		}
		if best == nil {
			return nil, fmt.Errorf("leg %d to %s: %w", i+1, leg.target, ErrNoViableRoute)
		}

		resp.Legs = append(resp.Legs, legToDTO(best, stats))
		resp.TotalWeeks += best.Weeks()
		if capital > 0 {
			growth += float64(resp.TotalWeeks) * best.Profit() / capital
		}

		capital = best.Capital()
		priorWeeks = best.TotalWeeks()
		state = best.State()
		from = best.Current().Key()
	}

	resp.FinalCapital = capital
	resp.TotalProfit = capital - cmd.Capital
	if resp.TotalWeeks > 0 {
		resp.ProfitPerWeek = resp.TotalProfit / float64(resp.TotalWeeks)
		resp.PercentPerWeek = 100 * growth / float64(resp.TotalWeeks)
	}

	logger.Log("INFO", "Voyage planned", map[string]interface{}{
		"legs":         len(resp.Legs),
		"weeks":        resp.TotalWeeks,
		"total_profit": resp.TotalProfit,
	})
	return resp, nil
}

// legOrigin loads the world a leg starts from, with its trade snapshot attached
func (h *PlanVoyageHandler) legOrigin(ctx context.Context, provider world.Provider, snapshots world.SnapshotSource, key shared.SectorHex, forceRefresh bool) (*world.World, error) {
	origin, err := provider.LoadWorld(ctx, key, forceRefresh)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if snapshots == nil {
		return origin, nil
	}
	return withSnapshot(ctx, snapshots, origin)
}

func validateVoyage(cmd *PlanVoyageCommand) error {
	if cmd.Start == "" {
		return shared.NewValidationError("start", "is required")
	}
	if cmd.Capital < 0 {
		return shared.NewValidationError("capital", "cannot be negative")
	}
	if cmd.StartWeeks < 0 {
		return shared.NewValidationError("start_weeks", "cannot be negative")
	}
	if cmd.MaxWeeks != nil && *cmd.MaxWeeks <= 0 {
		return shared.NewValidationError("max_weeks", "must be positive")
	}
	if len(cmd.Stops) == 0 && cmd.MaxProfit == nil && cmd.MaxWeeks == nil {
		return ErrNothingToPlan
	}
	return nil
}
