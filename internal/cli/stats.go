package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newStatsCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show record counts and open pipeline value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.coord.RefreshStats(cmd.Context()); err != nil {
				return err
			}
			st := s.coord.Stats()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Companies\t%d\n", st.Companies)
			fmt.Fprintf(w, "Contacts\t%d\n", st.Contacts)
			fmt.Fprintf(w, "Deals\t%d\n", st.Deals)
			fmt.Fprintf(w, "Pipeline value\t%s\n", money(st.DealValue))
			return w.Flush()
		},
	}
}
