package metrics_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/traveller-trade-go/internal/adapters/metrics"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/navigation"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/routing"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/trading"
	"github.com/andrescamacho/traveller-trade-go/test/helpers"
)

// sumOf adds up every sample of the named family whose labels include want
func sumOf(t *testing.T, name string, want map[string]string) float64 {
	t.Helper()
	families, err := metrics.GetRegistry().Gather()
	require.NoError(t, err)

	total := 0.0
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, m := range family.GetMetric() {
			if !hasLabels(m, want) {
				continue
			}
			switch {
			case m.GetCounter() != nil:
				total += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				total += m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				total += float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return total
}

func hasLabels(m *dto.Metric, want map[string]string) bool {
	found := 0
	for _, pair := range m.GetLabel() {
		if v, ok := want[pair.GetName()]; ok && v == pair.GetValue() {
			found++
		}
	}
	return found == len(want)
}

func runThreeShapes(t *testing.T, observer routing.Observer) {
	t.Helper()
	g := helpers.NewMockWorldGraph()
	s := g.AddPlainWorld("S", "0101", 0, 0)
	p1 := g.AddPlainWorld("P1", "0201", 1, 0)
	p2 := g.AddPlainWorld("P2", "0102", 0, 1)
	p3 := g.AddPlainWorld("P3", "0202", 1, 1)
	d := g.AddPlainWorld("D", "0303", 2, 2)
	g.Connect(s, p1)
	g.Connect(s, p2)
	g.Connect(s, p3)
	g.Connect(p1, d)
	g.Connect(p2, d)
	g.Connect(p3, d)

	// Jump 2 so P1 and P2 reach D at a rounded 2 parsecs
	ship, err := navigation.NewShip(navigation.ShipSpec{Name: "Courier", FuelPerJump: 20, JumpRating: 2, FuelTank: 40, Cargo: 40})
	require.NoError(t, err)
	cond, err := routing.NewCompleteCondition(routing.CompletionSpec{Destination: d})
	require.NoError(t, err)

	analyzer := trading.NewEdgeAnalyzer(helpers.NewFixtureTables(), nil, trading.RivalZones{})
	searcher := routing.NewSearcher(g, analyzer, nil, routing.DefaultSearchOptions(), observer)
	_, _, err = searcher.FindBestRoute(context.Background(), routing.SearchRequest{Ship: ship, Start: s, Condition: cond, Capital: 10000})
	require.NoError(t, err)
}

func TestSearchMetricsCollector_RecordsSearch(t *testing.T) {
	// Arrange
	metrics.InitRegistry()
	t.Cleanup(func() { metrics.Registry = nil })
	collector := metrics.NewSearchMetricsCollector("tradeplanner")
	require.NoError(t, collector.Register())

	// Act
	runThreeShapes(t, collector)

	// Assert
	assert.Equal(t, 3.0, sumOf(t, "tradeplanner_search_completions_total", nil))
	assert.GreaterOrEqual(t, sumOf(t, "tradeplanner_search_completions_total", map[string]string{"improved": "true"}), 1.0)
	assert.Equal(t, 3.0, sumOf(t, "tradeplanner_search_prunes_total", map[string]string{"reason": "revisit"}))
	assert.Equal(t, 1.0, sumOf(t, "tradeplanner_search_runs_total", map[string]string{"stop_reason": "queue_exhausted"}))
	assert.Equal(t, 1.0, sumOf(t, "tradeplanner_search_duration_seconds", nil))
	assert.Positive(t, sumOf(t, "tradeplanner_search_expansions_total", nil))
	assert.Positive(t, sumOf(t, "tradeplanner_search_best_profit_per_week", nil))
}

func TestSearchMetricsCollector_RegisterWithoutRegistry(t *testing.T) {
	metrics.Registry = nil

	assert.NoError(t, metrics.NewSearchMetricsCollector("tradeplanner").Register())
	assert.False(t, metrics.IsEnabled())
	assert.NoError(t, metrics.WriteTextfile(filepath.Join(t.TempDir(), "unused.prom")))
}

func TestWriteTextfile(t *testing.T) {
	// Arrange
	metrics.InitRegistry()
	t.Cleanup(func() { metrics.Registry = nil })
	collector := metrics.NewSearchMetricsCollector("tradeplanner")
	require.NoError(t, collector.Register())
	collector.BranchPruned(routing.PruneRedZone)
	path := filepath.Join(t.TempDir(), "tradeplanner.prom")

	// Act
	err := metrics.WriteTextfile(path)

	// Assert
	require.NoError(t, err)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `tradeplanner_search_prunes_total{reason="red_zone"} 1`)
}
