package planning

import (
	"github.com/andrescamacho/traveller-trade-go/internal/application/common"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/routing"
)

// loggingObserver reports search milestones on the run logger
type loggingObserver struct {
	routing.NopObserver
	logger common.RunLogger
}

func (o *loggingObserver) RouteCompleted(route *routing.Route, improved bool) {
	if !improved {
		return
	}
	o.logger.Log("DEBUG", "New best route", map[string]interface{}{
		"via":             route.Current().Location.String(),
		"jumps":           len(route.Worlds()) - 1,
		"weeks":           route.Weeks(),
		"profit_per_week": route.ProfitPerWeek(),
	})
}

func (o *loggingObserver) SearchFinished(stats routing.SearchStats) {
	o.logger.Log("INFO", "Search finished", map[string]interface{}{
		"stop_reason": string(stats.StopReason),
		"iterations":  stats.Iterations,
		"completed":   stats.Completed,
		"elapsed_ms":  stats.Elapsed.Milliseconds(),
	})
}
