package routing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andrescamacho/traveller-trade-go/internal/domain/contract"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/market"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/navigation"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/shared"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/trading"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/world"
)

// Search defaults
const (
	DefaultStaleCompletionLimit = 10
	DefaultCycleWindow          = 10
)

// SearchOptions bound the search
type SearchOptions struct {
	// StaleCompletionLimit stops the search after this many completed routes
	// in a row fail to beat the best one
	StaleCompletionLimit int

	// CycleWindow is how many recent worlds are checked for repeats
	CycleWindow int

	// MaxIterations caps the number of routes popped, 0 for no cap
	MaxIterations int

	// Timeout caps wall-clock time, 0 for no cap
	Timeout time.Duration

	// Parallelism prices up to this many neighbours at once
	Parallelism int
}

func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		StaleCompletionLimit: DefaultStaleCompletionLimit,
		CycleWindow:          DefaultCycleWindow,
		Parallelism:          1,
	}
}

// SearchRequest describes one leg of a voyage to plan
type SearchRequest struct {
	Ship       *navigation.Ship
	Start      *world.World
	Condition  *CompleteCondition
	Capital    float64
	PriorWeeks int
	Avoid      shared.HexSet

	// State carries contract bookkeeping over from earlier legs. Nil starts fresh.
	State contract.State
}

// StopReason records why the search loop ended
type StopReason string

const (
	StopExhausted     StopReason = "queue_exhausted"
	StopNoImprovement StopReason = "no_improvement"
	StopIterationCap  StopReason = "iteration_cap"
	StopTimeout       StopReason = "timeout"
	StopCancelled     StopReason = "cancelled"
	StopFailed        StopReason = "failed"
)

// SearchStats summarizes a finished search
type SearchStats struct {
	Iterations    int
	Expanded      int
	Completed     int
	Improvements  int
	MaxQueueDepth int
	Pruned        map[PruneReason]int
	StopReason    StopReason
	Elapsed       time.Duration
}

// Searcher finds the most profitable route per week with a best-first
// search over the jump graph.
//
// The search is bounded, not exhaustive: it gives up once a run of
// completed routes fails to improve on the best one.
type Searcher struct {
	expander *expander
	options  SearchOptions
	observer Observer
	clock    shared.Clock
}

// NewSearcher creates a Searcher. Zero-valued options fall back to the
// defaults; a nil observer discards events.
func NewSearcher(
	worlds world.Provider,
	analyzer *trading.EdgeAnalyzer,
	goods []*market.TradeGood,
	options SearchOptions,
	observer Observer,
) *Searcher {
	defaults := DefaultSearchOptions()
	if options.StaleCompletionLimit <= 0 {
		options.StaleCompletionLimit = defaults.StaleCompletionLimit
	}
	if options.CycleWindow <= 0 {
		options.CycleWindow = defaults.CycleWindow
	}
	if options.Parallelism <= 0 {
		options.Parallelism = defaults.Parallelism
	}
	if observer == nil {
		observer = NopObserver{}
	}

	return &Searcher{
		expander: &expander{
			worlds:      worlds,
			analyzer:    analyzer,
			goods:       goods,
			cycleWindow: options.CycleWindow,
			parallelism: options.Parallelism,
		},
		options:  options,
		observer: observer,
		clock:    shared.SystemClock{},
	}
}

// WithClock replaces the clock used for elapsed time
func (s *Searcher) WithClock(clock shared.Clock) *Searcher {
	s.clock = clock
	return s
}

// FindBestRoute runs the search.
//
// Returns:
//   - The best completed route, or nil when none was found (not an error)
//   - Statistics about the run
//   - Error when world data cannot be loaded, pricing fails or ctx is cancelled
//
// Hitting MaxIterations or Timeout ends the search early and returns the
// best route found so far without error.
func (s *Searcher) FindBestRoute(ctx context.Context, req SearchRequest) (*Route, SearchStats, error) {
	if req.Ship == nil || req.Start == nil || req.Condition == nil {
		return nil, SearchStats{}, fmt.Errorf("%w: ship, start and condition are required", ErrInvalidSearchRequest)
	}
	if req.Capital < 0 {
		return nil, SearchStats{}, fmt.Errorf("%w: capital cannot be negative", ErrInvalidSearchRequest)
	}
	if req.PriorWeeks < 0 {
		return nil, SearchStats{}, fmt.Errorf("%w: prior weeks cannot be negative", ErrInvalidSearchRequest)
	}

	parent := ctx
	if s.options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.options.Timeout)
		defer cancel()
	}

	started := s.clock.Now()
	stats := SearchStats{Pruned: make(map[PruneReason]int)}
	finish := func(best *Route, reason StopReason, err error) (*Route, SearchStats, error) {
		stats.StopReason = reason
		stats.Elapsed = s.clock.Now().Sub(started)
		s.observer.SearchFinished(stats)
		return best, stats, err
	}

	queue := &routeQueue{}
	queue.push(NewStartRoute(req.Ship, req.Start, req.Condition, req.Capital, req.PriorWeeks, req.Avoid, req.State))

	var best *Route
	stale := 0

	for queue.Len() > 0 {
		if stale >= s.options.StaleCompletionLimit {
			return finish(best, StopNoImprovement, nil)
		}
		if s.options.MaxIterations > 0 && stats.Iterations >= s.options.MaxIterations {
			return finish(best, StopIterationCap, nil)
		}
		if err := ctx.Err(); err != nil {
			if parent.Err() != nil {
				return finish(best, StopCancelled, parent.Err())
			}
			return finish(best, StopTimeout, nil)
		}

		stats.Iterations++
		route := queue.pop()

		children, pruned, err := s.expander.expand(ctx, route)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) && parent.Err() == nil {
				return finish(best, StopTimeout, nil)
			}
			return finish(best, StopFailed, err)
		}

		stats.Expanded++
		for _, reason := range pruned {
			stats.Pruned[reason]++
			s.observer.BranchPruned(reason)
		}

		for _, child := range children {
			if !child.IsComplete() {
				queue.push(child)
				continue
			}

			stats.Completed++
			stale++
			improved := betterThan(child, best)
			if improved {
				best = child
				stale = 0
				stats.Improvements++
			}
			s.observer.RouteCompleted(child, improved)
		}

		if queue.Len() > stats.MaxQueueDepth {
			stats.MaxQueueDepth = queue.Len()
		}
		s.observer.RouteExpanded(route, len(children), queue.Len())
	}

	return finish(best, StopExhausted, nil)
}
