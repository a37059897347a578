package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/traveller-trade-go/internal/application/planning"
)

// NewPlanCommand creates the plan command
func NewPlanCommand() *cobra.Command {
	var (
		shipName     string
		start        string
		stops        []string
		avoid        []string
		capital      float64
		startWeeks   int
		maxProfit    float64
		maxWeeks     int
		snapshotPath string
		refresh      bool
		showStats    bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan the most profitable voyage through a list of stops",
		Long: `Plan a voyage leg by leg. Each leg is the route with the best net profit
per week between consecutive stops. With --max-profit or --max-weeks an extra
open-ended leg is searched after the last stop.

Examples:
  tradeplanner plan --start "Reft 2225" --stop "Reft 2325" --capital 47950
  tradeplanner plan --ship far-trader --start "Reft 2225" --capital 100000 --max-weeks 12
  tradeplanner plan --start "Reft 2225" --stop "Reft 1426" --capital 47950 --snapshot snapshot.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if start == "" {
				return fmt.Errorf("--start is required")
			}
			if len(stops) == 0 && !cmd.Flags().Changed("max-profit") && !cmd.Flags().Changed("max-weeks") {
				return fmt.Errorf("at least one --stop, --max-profit or --max-weeks is required")
			}

			command := &planning.PlanVoyageCommand{
				Ship:         shipName,
				Start:        start,
				Stops:        stops,
				Avoid:        avoid,
				Capital:      capital,
				StartWeeks:   startWeeks,
				ForceRefresh: refresh,
				SnapshotPath: snapshotPath,
			}
			if cmd.Flags().Changed("max-profit") {
				command.MaxProfit = &maxProfit
			}
			if cmd.Flags().Changed("max-weeks") {
				command.MaxWeeks = &maxWeeks
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			response, err := a.mediator.Send(a.context(cmd.Context()), command)
			if err != nil {
				return fmt.Errorf("failed to plan voyage: %w", err)
			}

			result, ok := response.(*planning.PlanVoyageResponse)
			if !ok {
				return fmt.Errorf("unexpected response type")
			}

			printVoyage(cmd.OutOrStdout(), result, showStats)
			return nil
		},
	}

	cmd.Flags().StringVar(&shipName, "ship", "", "Ship profile (default: default_ship from config)")
	cmd.Flags().StringVar(&start, "start", "", "Starting world as \"<sector> <hex>\" (required)")
	cmd.Flags().StringArrayVar(&stops, "stop", nil, "Stop to visit, in order (repeatable)")
	cmd.Flags().StringArrayVar(&avoid, "avoid", nil, "World no route may pass through (repeatable)")
	cmd.Flags().Float64Var(&capital, "capital", 0, "Starting capital in credits")
	cmd.Flags().IntVar(&startWeeks, "start-weeks", 0, "Weeks already elapsed since the last maintenance payment")
	cmd.Flags().Float64Var(&maxProfit, "max-profit", 0, "End the open leg once profit reaches this amount")
	cmd.Flags().IntVar(&maxWeeks, "max-weeks", 0, "End the open leg after this many weeks")
	cmd.Flags().StringVar(&snapshotPath, "snapshot", "", "JSON file of observed goods, freight and passengers")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Refetch worlds from the map service")
	cmd.Flags().BoolVar(&showStats, "stats", false, "Show search statistics per leg")

	return cmd
}

func printVoyage(out io.Writer, result *planning.PlanVoyageResponse, showStats bool) {
	fmt.Fprintf(out, "Voyage for %s\n", result.Ship)
	fmt.Fprintln(out, strings.Repeat("=", 60))

	for i, leg := range result.Legs {
		fmt.Fprintf(out, "\nLeg %d: %s -> %s (%s)\n", i+1, leg.From, leg.To, leg.Condition)
		fmt.Fprintf(out, "  Route:   %s\n", strings.Join(leg.Worlds, " -> "))
		fmt.Fprintf(out, "  Weeks:   %d\n", leg.Weeks)
		fmt.Fprintf(out, "  Profit:  %.2f (net %.2f)\n", leg.Profit, leg.NetProfit)
		fmt.Fprintf(out, "  Capital: %.2f -> %.2f\n", leg.CapitalBefore, leg.CapitalAfter)
		fmt.Fprintln(out, "  Ledger:")
		for _, line := range leg.Ledger {
			fmt.Fprintf(out, "    %s\n", line)
		}
		if showStats {
			printStats(out, leg.Stats)
		}
	}

	fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Total weeks:\t%d\n", result.TotalWeeks)
	fmt.Fprintf(w, "Total profit:\t%.2f\n", result.TotalProfit)
	fmt.Fprintf(w, "Final capital:\t%.2f\n", result.FinalCapital)
	fmt.Fprintf(w, "Profit per week:\t%.2f\n", result.ProfitPerWeek)
	fmt.Fprintf(w, "Growth per week:\t%.2f%%\n", result.PercentPerWeek)
	w.Flush()
}

func printStats(out io.Writer, stats planning.SearchStatsDTO) {
	fmt.Fprintf(out, "  Search:  %s after %d iterations in %dms\n", stats.StopReason, stats.Iterations, stats.ElapsedMs)
	fmt.Fprintf(out, "           expanded %d, completed %d, improved %d\n", stats.Expanded, stats.Completed, stats.Improvements)
	for _, reason := range sortedKeys(stats.Pruned) {
		fmt.Fprintf(out, "           pruned %s: %d\n", reason, stats.Pruned[reason])
	}
}
