package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewShipsCommand creates the ships command
func NewShipsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ships",
		Short: "List configured ship profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tJUMP\tRANGE\tCARGO\tBERTHS\tCONTRACT")
			fmt.Fprintln(w, "----\t----\t-----\t-----\t------\t--------")
			for _, name := range sortedKeys(cfg.Ships) {
				ship, err := cfg.BuildShip(name)
				if err != nil {
					return err
				}
				profile := cfg.Ships[name]

				berths := make([]string, 0, len(profile.Passages))
				for _, p := range profile.Passages {
					berths = append(berths, fmt.Sprintf("%d %s", p.Seats, p.Kind))
				}
				contract := "none"
				if c := ship.Contract(); c != nil {
					contract = c.Name()
				}
				marker := ""
				if name == cfg.DefaultShip {
					marker = " *"
				}

				fmt.Fprintf(w, "%s%s\tJ-%d\t%d\t%d\t%s\t%s\n",
					name, marker, ship.JumpRating(), ship.MaxRange(), profile.Cargo, strings.Join(berths, ", "), contract)
			}
			return w.Flush()
		},
	}
}
