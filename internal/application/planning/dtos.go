package planning

import (
	"github.com/andrescamacho/traveller-trade-go/internal/domain/routing"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/world"
)

// WorldDTO is a world as shown to the user
type WorldDTO struct {
	Name       string
	Location   string
	UWP        string
	Starport   string
	Zone       string
	Allegiance string
	Remarks    []string
	Distance   int
}

func worldToDTO(w *world.World, from *world.World) WorldDTO {
	dto := WorldDTO{
		Name:       w.Name,
		Location:   w.Location.String(),
		UWP:        w.UWP.String(),
		Starport:   w.Starport(),
		Zone:       string(w.Zone),
		Allegiance: w.Allegiance,
		Remarks:    append([]string(nil), w.Remarks...),
	}
	if from != nil {
		dto.Distance = from.DistanceTo(w)
	}
	return dto
}

// SearchStatsDTO summarizes the search behind one leg
type SearchStatsDTO struct {
	Iterations   int
	Expanded     int
	Completed    int
	Improvements int
	Pruned       map[string]int
	StopReason   string
	ElapsedMs    int64
}

func statsToDTO(stats routing.SearchStats) SearchStatsDTO {
	pruned := make(map[string]int, len(stats.Pruned))
	for reason, n := range stats.Pruned {
		pruned[string(reason)] = n
	}
	return SearchStatsDTO{
		Iterations:   stats.Iterations,
		Expanded:     stats.Expanded,
		Completed:    stats.Completed,
		Improvements: stats.Improvements,
		Pruned:       pruned,
		StopReason:   string(stats.StopReason),
		ElapsedMs:    stats.Elapsed.Milliseconds(),
	}
}

// LegDTO is one planned leg of a voyage: the best route from one stop to the next
type LegDTO struct {
	From          string
	To            string
	Condition     string
	Worlds        []string
	Weeks         int
	Profit        float64
	NetProfit     float64
	CapitalBefore float64
	CapitalAfter  float64
	Ledger        []string
	Stats         SearchStatsDTO
}

func legToDTO(route *routing.Route, stats routing.SearchStats) LegDTO {
	worlds := route.Worlds()
	names := make([]string, len(worlds))
	for i, w := range worlds {
		names[i] = w.Location.String()
	}
	return LegDTO{
		From:          names[0],
		To:            names[len(names)-1],
		Condition:     route.Condition().String(),
		Worlds:        names,
		Weeks:         route.Weeks(),
		Profit:        route.Profit(),
		NetProfit:     route.NetProfit(),
		CapitalBefore: route.StartingCapital(),
		CapitalAfter:  route.Capital(),
		Ledger:        route.Ledger(),
		Stats:         statsToDTO(stats),
	}
}
