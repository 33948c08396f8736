package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"crm-service/internal/crmstate"
	"crm-service/internal/domain/deal"
	"crm-service/internal/domain/shared"

	"github.com/spf13/cobra"
)

func newBoardCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Show every deal grouped by pipeline stage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.coord.SetView(cmd.Context(), crmstate.ViewPipeline); err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, col := range s.coord.Board().Columns() {
				fmt.Fprintf(w, "%s (%d)\t%s\t\n", strings.ToUpper(col.Label), col.Count, money(col.TotalValue))
				for _, d := range col.Deals {
					fmt.Fprintf(w, "  #%d %s\t%s\t%s\n", d.ID, d.Name, money(d.Value), dash(d.ContactName()))
				}
			}
			return w.Flush()
		},
	}
}

func newMoveCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "move <deal-id> <stage>",
		Short: "Move a deal to another pipeline stage",
		Example: `  crmctl move 12 negotiation
  crmctl move 12 won`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid deal ID %q", args[0])
			}
			stage := deal.Stage(strings.ToLower(strings.TrimSpace(args[1])))

			board := s.coord.Board()
			if err := board.MoveTo(cmd.Context(), id, stage); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved deal %d to %s\n", id, stage.Label())
			return nil
		},
	}
}

func newAddDealCmd(s *session) *cobra.Command {
	var (
		req       deal.CreateDealRequest
		value     string
		contactID int64
	)

	cmd := &cobra.Command{
		Use:   "add-deal",
		Short: "Create a deal",
		Example: `  crmctl add-deal --name "Renewal" --value 12000 --stage proposal --contact-id 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Value = shared.Amount(shared.ParseAmount(value))
			if contactID > 0 {
				req.ContactID = shared.SomeID(contactID)
			}

			created, err := s.coord.AddDeal(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Deal created: %s (ID: %d)\n", created.Name, created.ID)
			fmt.Fprintf(out, "  Value: %s\n", money(created.Value))
			fmt.Fprintf(out, "  Stage: %s\n", created.Stage.Label())
			if name := created.ContactName(); name != "" {
				fmt.Fprintf(out, "  Contact: %s\n", name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "deal name (required)")
	cmd.Flags().StringVar(&value, "value", "0", "deal value")
	cmd.Flags().StringVar(&req.Stage, "stage", string(deal.StageProspect), "pipeline stage")
	cmd.Flags().Int64Var(&contactID, "contact-id", 0, "contact the deal belongs to")
	cmd.Flags().StringVar(&req.CloseDate, "close-date", "", "expected close date")
	cmd.Flags().StringVar(&req.Notes, "notes", "", "notes")
	return cmd
}
