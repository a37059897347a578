package routing

// PruneReason tags why a candidate jump was not turned into a route
type PruneReason string

const (
	PruneRevisit          PruneReason = "revisit"
	PruneCycle            PruneReason = "cycle"
	PruneAvoided          PruneReason = "avoided"
	PruneBacktrack        PruneReason = "backtrack"
	PruneRedZone          PruneReason = "red_zone"
	PruneUnknownSize      PruneReason = "unknown_size"
	PruneBannedAllegiance PruneReason = "banned_allegiance"
	PruneOutOfRange       PruneReason = "out_of_range"
	PruneNegativeCapital  PruneReason = "negative_capital"
)

// Observer receives search progress. All calls come from the driver loop,
// including prunes found while edges were priced in parallel.
type Observer interface {
	// RouteExpanded is called after a route's children have been generated
	RouteExpanded(route *Route, children int, queueDepth int)

	// BranchPruned is called for every rejected candidate jump
	BranchPruned(reason PruneReason)

	// RouteCompleted is called for every completed route; improved is true
	// when it became the new best
	RouteCompleted(route *Route, improved bool)

	// SearchFinished is called once with the final statistics
	SearchFinished(stats SearchStats)
}

// NopObserver ignores all events
type NopObserver struct{}

func (NopObserver) RouteExpanded(*Route, int, int) {}
func (NopObserver) BranchPruned(PruneReason)       {}
func (NopObserver) RouteCompleted(*Route, bool)    {}
func (NopObserver) SearchFinished(SearchStats)     {}

// MultiObserver fans events out to several observers in order
type MultiObserver []Observer

func (m MultiObserver) RouteExpanded(route *Route, children int, queueDepth int) {
	for _, o := range m {
		o.RouteExpanded(route, children, queueDepth)
	}
}

func (m MultiObserver) BranchPruned(reason PruneReason) {
	for _, o := range m {
		o.BranchPruned(reason)
	}
}

func (m MultiObserver) RouteCompleted(route *Route, improved bool) {
	for _, o := range m {
		o.RouteCompleted(route, improved)
	}
}

func (m MultiObserver) SearchFinished(stats SearchStats) {
	for _, o := range m {
		o.SearchFinished(stats)
	}
}
