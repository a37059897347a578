package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/traveller-trade-go/internal/application/planning"
)

// NewQuoteCommand creates the quote command
func NewQuoteCommand() *cobra.Command {
	var (
		shipName     string
		from         string
		to           string
		capital      float64
		snapshotPath string
		refresh      bool
	)

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a single jump between two worlds",
		Long: `Show the cargo, freight and passengers the ship would carry on one jump,
and why each trade good was left out.

Examples:
  tradeplanner quote --from "Reft 2225" --to "Reft 2325" --capital 47950`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if from == "" || to == "" {
				return fmt.Errorf("--from and --to are required")
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			response, err := a.mediator.Send(a.context(cmd.Context()), &planning.QuoteJumpQuery{
				Ship:         shipName,
				From:         from,
				To:           to,
				Capital:      capital,
				SnapshotPath: snapshotPath,
				ForceRefresh: refresh,
			})
			if err != nil {
				return fmt.Errorf("failed to quote jump: %w", err)
			}

			result, ok := response.(*planning.QuoteJumpResponse)
			if !ok {
				return fmt.Errorf("unexpected response type")
			}

			printQuote(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVar(&shipName, "ship", "", "Ship profile (default: default_ship from config)")
	cmd.Flags().StringVar(&from, "from", "", "Origin world as \"<sector> <hex>\" (required)")
	cmd.Flags().StringVar(&to, "to", "", "Destination world as \"<sector> <hex>\" (required)")
	cmd.Flags().Float64Var(&capital, "capital", 0, "Capital available for speculative cargo")
	cmd.Flags().StringVar(&snapshotPath, "snapshot", "", "JSON file of observed goods, freight and passengers")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Refetch worlds from the map service")

	return cmd
}

func printQuote(out io.Writer, result *planning.QuoteJumpResponse) {
	fmt.Fprintf(out, "%s (%s) -> %s (%s)\n", result.From.Name, result.From.Location, result.To.Name, result.To.Location)
	fmt.Fprintf(out, "Distance: %d parsecs, %d weeks\n", result.Distance, result.Weeks)
	if !result.Feasible {
		fmt.Fprintln(out, "Out of range for this ship")
		return
	}
	fmt.Fprintf(out, "Cargo space: %d tons, fuel cost %.2f\n\n", result.Cargo, result.FuelCost)

	if len(result.Deals) > 0 {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "GOOD\tTONS\tBUY\tSELL\tPROFIT")
		fmt.Fprintln(w, "----\t----\t---\t----\t------")
		for _, d := range result.Deals {
			fmt.Fprintf(w, "%s\t%d\t%.2f\t%.2f\t%.2f\n", d.Good, d.Tons, d.PurchasePrice, d.SalePrice, d.Profit)
		}
		w.Flush()
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "Freight: %d tons at %.2f = %.2f\n", result.Freight.Tons, result.Freight.Rate, result.Freight.Revenue)
	fmt.Fprintf(out, "%s (%.2f)\n", result.Passengers.Describe(), result.Passengers.Revenue)
	fmt.Fprintf(out, "Cargo profit: %.2f\n", result.CargoProfit)

	if len(result.Skipped) > 0 {
		fmt.Fprintln(out, "\nSkipped:")
		for _, reason := range sortedKeys(result.Skipped) {
			fmt.Fprintf(out, "  %s: %d goods\n", reason, len(result.Skipped[reason]))
		}
	}
}
