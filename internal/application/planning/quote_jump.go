package planning

import (
	"context"
	"errors"
	"fmt"

	"github.com/andrescamacho/traveller-trade-go/internal/application/mediator"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/market"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/shared"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/trading"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/world"
)

// QuoteJumpQuery prices a single jump without searching
type QuoteJumpQuery struct {
	Ship         string
	From         string
	To           string
	Capital      float64
	SnapshotPath string
	ForceRefresh bool
}

// QuoteJumpResponse breaks down the economics of the jump. Fuel, contract
// payments and maintenance are left to the route search.
type QuoteJumpResponse struct {
	From     WorldDTO
	To       WorldDTO
	Distance int
	Weeks    int
	Feasible bool
	Cargo    int
	FuelCost float64

	Deals      []trading.ExecutedDeal
	Freight    trading.FreightLoad
	Skipped    map[string][]string
	Passengers trading.PassengerManifest

	CargoProfit float64
	Ledger      []string
}

// QuoteJumpHandler handles QuoteJumpQuery
type QuoteJumpHandler struct {
	ships     ShipCatalog
	worlds    ProviderFactory
	snapshots SnapshotSourceFactory
	catalog   market.Catalog
	analyzer  *trading.EdgeAnalyzer
}

func NewQuoteJumpHandler(
	ships ShipCatalog,
	worlds ProviderFactory,
	snapshots SnapshotSourceFactory,
	catalog market.Catalog,
	analyzer *trading.EdgeAnalyzer,
) *QuoteJumpHandler {
	return &QuoteJumpHandler{
		ships:     ships,
		worlds:    worlds,
		snapshots: snapshots,
		catalog:   catalog,
		analyzer:  analyzer,
	}
}

func (h *QuoteJumpHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*QuoteJumpQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *QuoteJumpQuery")
	}
	if query.Capital < 0 {
		return nil, shared.NewValidationError("capital", "cannot be negative")
	}

	fromKey, err := shared.ParseSectorHex(query.From)
	if err != nil {
		return nil, shared.NewValidationError("from", err.Error())
	}
	toKey, err := shared.ParseSectorHex(query.To)
	if err != nil {
		return nil, shared.NewValidationError("to", err.Error())
	}

	ship, err := h.ships.BuildShip(query.Ship)
	if err != nil {
		return nil, fmt.Errorf("failed to build ship: %w", err)
	}

	provider, err := h.worlds(ship.MaxRange())
	if err != nil {
		return nil, fmt.Errorf("failed to open world provider: %w", err)
	}

	origin, err := provider.LoadWorld(ctx, fromKey, query.ForceRefresh)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", fromKey, err)
	}
	dest, err := provider.LoadWorld(ctx, toKey, query.ForceRefresh)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", toKey, err)
	}

	if h.snapshots != nil && query.SnapshotPath != "" {
		origin, err = withSnapshot(ctx, h.snapshots(query.SnapshotPath), origin)
		if err != nil {
			return nil, err
		}
	}

	goods, err := h.catalog.AllTradeGoods(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load trade goods: %w", err)
	}

	quote, err := h.analyzer.PriceCargo(ctx, origin, dest, goods, ship, query.Capital)
	if err != nil {
		return nil, err
	}

	distance := origin.DistanceTo(dest)
	resp := &QuoteJumpResponse{
		From:        worldToDTO(origin, nil),
		To:          worldToDTO(dest, origin),
		Distance:    distance,
		Feasible:    quote.Feasible,
		Cargo:       quote.Cargo,
		Deals:       quote.Deals,
		Freight:     quote.Freight,
		Skipped:     make(map[string][]string, len(quote.Skipped)),
		CargoProfit: quote.Profit(),
	}
	for reason, names := range quote.Skipped {
		resp.Skipped[string(reason)] = names
	}
	if !quote.Feasible {
		return resp, nil
	}

	resp.Weeks = ship.LegDuration(distance)
	resp.FuelCost = ship.FuelCost(distance)
	resp.Passengers = h.analyzer.Passengers(origin, dest, ship)
	resp.Ledger = append(quote.Ledger(), resp.Passengers.Describe())
	return resp, nil
}

func withSnapshot(ctx context.Context, source world.SnapshotSource, w *world.World) (*world.World, error) {
	snap, err := source.LoadSnapshot(ctx, w.Key())
	if err != nil {
		if errors.Is(err, world.ErrSnapshotNotFound) {
			return w, nil
		}
		return nil, fmt.Errorf("failed to load snapshot for %s: %w", w.Key(), err)
	}
	return w.WithSnapshot(snap), nil
}
