package planning

import (
	"context"
	"fmt"
	"sort"

	"github.com/andrescamacho/traveller-trade-go/internal/application/mediator"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/shared"
)

// ShowWorldQuery lists a world and the worlds within jump range of it
type ShowWorldQuery struct {
	World string
	// Jump radius in parsecs; 0 uses the range of Ship
	Jump         int
	Ship         string
	ForceRefresh bool
}

type ShowWorldResponse struct {
	World      WorldDTO
	Jump       int
	Neighbours []WorldDTO
}

// ShowWorldHandler handles ShowWorldQuery
type ShowWorldHandler struct {
	ships  ShipCatalog
	worlds ProviderFactory
}

func NewShowWorldHandler(ships ShipCatalog, worlds ProviderFactory) *ShowWorldHandler {
	return &ShowWorldHandler{ships: ships, worlds: worlds}
}

func (h *ShowWorldHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ShowWorldQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ShowWorldQuery")
	}

	key, err := shared.ParseSectorHex(query.World)
	if err != nil {
		return nil, shared.NewValidationError("world", err.Error())
	}

	jump := query.Jump
	if jump <= 0 {
		ship, err := h.ships.BuildShip(query.Ship)
		if err != nil {
			return nil, fmt.Errorf("failed to build ship: %w", err)
		}
		jump = ship.MaxRange()
	}

	provider, err := h.worlds(jump)
	if err != nil {
		return nil, fmt.Errorf("failed to open world provider: %w", err)
	}

	w, err := provider.LoadWorld(ctx, key, query.ForceRefresh)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	neighbours, err := provider.Neighbours(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load neighbours of %s: %w", key, err)
	}

	resp := &ShowWorldResponse{World: worldToDTO(w, nil), Jump: jump}
	for _, n := range neighbours {
		resp.Neighbours = append(resp.Neighbours, worldToDTO(n, w))
	}
	sort.SliceStable(resp.Neighbours, func(i, j int) bool {
		a, b := resp.Neighbours[i], resp.Neighbours[j]
		if a.Distance != b.Distance {
			return a.Distance < b.Distance
		}
		return a.Location < b.Location
	})
	return resp, nil
}
