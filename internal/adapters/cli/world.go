package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/traveller-trade-go/internal/application/planning"
)

// NewWorldCommand creates the world command
func NewWorldCommand() *cobra.Command {
	var (
		shipName string
		jump     int
		refresh  bool
	)

	cmd := &cobra.Command{
		Use:   `world "<sector> <hex>"`,
		Short: "Show a world and its neighbours",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			response, err := a.mediator.Send(a.context(cmd.Context()), &planning.ShowWorldQuery{
				World:        args[0],
				Jump:         jump,
				Ship:         shipName,
				ForceRefresh: refresh,
			})
			if err != nil {
				return fmt.Errorf("failed to load world: %w", err)
			}

			result, ok := response.(*planning.ShowWorldResponse)
			if !ok {
				return fmt.Errorf("unexpected response type")
			}

			out := cmd.OutOrStdout()
			wd := result.World
			fmt.Fprintf(out, "%s (%s)\n", wd.Name, wd.Location)
			fmt.Fprintf(out, "  UWP:        %s\n", wd.UWP)
			fmt.Fprintf(out, "  Starport:   %s\n", wd.Starport)
			fmt.Fprintf(out, "  Zone:       %s\n", wd.Zone)
			fmt.Fprintf(out, "  Allegiance: %s\n", wd.Allegiance)
			fmt.Fprintf(out, "  Remarks:    %s\n", strings.Join(wd.Remarks, " "))
			fmt.Fprintf(out, "\nWithin %d parsecs: %d worlds\n\n", result.Jump, len(result.Neighbours))

			if len(result.Neighbours) == 0 {
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "DIST\tLOCATION\tNAME\tUWP\tZONE\tALLEGIANCE")
			fmt.Fprintln(w, "----\t--------\t----\t---\t----\t----------")
			for _, n := range result.Neighbours {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", n.Distance, n.Location, n.Name, n.UWP, n.Zone, n.Allegiance)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&shipName, "ship", "", "Ship whose range sets the radius")
	cmd.Flags().IntVar(&jump, "jump", 0, "Radius in parsecs (default: ship range)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Refetch the world from the map service")

	return cmd
}
