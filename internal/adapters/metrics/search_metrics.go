package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/traveller-trade-go/internal/domain/routing"
)

// SearchMetricsCollector records route search progress. It implements
// routing.Observer so it can be handed straight to a Searcher.
type SearchMetricsCollector struct {
	expansions   prometheus.Counter
	children     prometheus.Histogram
	prunes       *prometheus.CounterVec
	completions  *prometheus.CounterVec
	queueDepth   prometheus.Gauge
	bestPerWeek  prometheus.Gauge
	searches     *prometheus.CounterVec
	durations    *prometheus.HistogramVec
	searchVolume prometheus.Histogram
}

var _ routing.Observer = (*SearchMetricsCollector)(nil)

// NewSearchMetricsCollector creates a collector whose metrics live under namespace
func NewSearchMetricsCollector(namespace string) *SearchMetricsCollector {
	return &SearchMetricsCollector{
		expansions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "expansions_total",
				Help:      "Total number of routes expanded",
			},
		),

		children: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "expansion_children",
				Help:      "Child routes generated per expansion",
				Buckets:   []float64{0, 1, 2, 4, 8, 16, 32, 64},
			},
		),

		prunes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "prunes_total",
				Help:      "Candidate jumps rejected, by reason",
			},
			[]string{"reason"},
		),

		completions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "completions_total",
				Help:      "Completed routes, by whether they improved on the best",
			},
			[]string{"improved"},
		),

		queueDepth: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "queue_depth",
				Help:      "Routes waiting in the frontier after the last expansion",
			},
		),

		bestPerWeek: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "best_profit_per_week",
				Help:      "Net profit per week of the best completed route",
			},
		),

		searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "runs_total",
				Help:      "Finished searches, by stop reason",
			},
			[]string{"stop_reason"},
		),

		durations: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "duration_seconds",
				Help:      "Search wall time distribution",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60},
			},
			[]string{"stop_reason"},
		),

		searchVolume: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "iterations",
				Help:      "Driver loop iterations per search",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
	}
}

// Register registers all search metrics with the Prometheus registry
func (c *SearchMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.expansions,
		c.children,
		c.prunes,
		c.completions,
		c.queueDepth,
		c.bestPerWeek,
		c.searches,
		c.durations,
		c.searchVolume,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

func (c *SearchMetricsCollector) RouteExpanded(_ *routing.Route, children int, queueDepth int) {
	c.expansions.Inc()
	c.children.Observe(float64(children))
	c.queueDepth.Set(float64(queueDepth))
}

func (c *SearchMetricsCollector) BranchPruned(reason routing.PruneReason) {
	c.prunes.WithLabelValues(string(reason)).Inc()
}

func (c *SearchMetricsCollector) RouteCompleted(route *routing.Route, improved bool) {
	c.completions.WithLabelValues(strconv.FormatBool(improved)).Inc()
	if improved {
		c.bestPerWeek.Set(route.ProfitPerWeek())
	}
}

func (c *SearchMetricsCollector) SearchFinished(stats routing.SearchStats) {
	reason := string(stats.StopReason)
	c.searches.WithLabelValues(reason).Inc()
	c.durations.WithLabelValues(reason).Observe(stats.Elapsed.Seconds())
	c.searchVolume.Observe(float64(stats.Iterations))
	c.queueDepth.Set(0)
}
