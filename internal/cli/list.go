package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"crm-service/internal/domain/listing"

	"github.com/spf13/cobra"
)

type listFlags struct {
	page    int
	limit   int
	sort    string
	order   string
	search  string
	filters map[string]string
}

func (f listFlags) params() listing.Params {
	return listing.Request{
		Page:   strconv.Itoa(f.page),
		Limit:  strconv.Itoa(f.limit),
		Sort:   f.sort,
		Order:  f.order,
		Search: f.search,
	}.Params()
}

func newListCmd(s *session) *cobra.Command {
	var f listFlags

	cmd := &cobra.Command{
		Use:   "list <companies|contacts|deals>",
		Short: "Show one page of companies, contacts or deals",
		Long: `List fetches one page exactly as the web views do.

Filters are key=value pairs:
  companies: industry
  contacts:  status, company_id
  deals:     stage, contact_id

Example:
  crmctl list deals --sort value --order desc --filter stage=won
  crmctl list contacts --search acme --page 2`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"companies", "contacts", "deals"},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "companies":
				return s.listCompanies(cmd, f)
			case "contacts":
				return s.listContacts(cmd, f)
			case "deals":
				return s.listDeals(cmd, f)
			default:
				return fmt.Errorf("unknown entity %q (valid: companies, contacts, deals)", args[0])
			}
		},
	}

	cmd.Flags().IntVar(&f.page, "page", listing.DefaultPage, "page number")
	cmd.Flags().IntVar(&f.limit, "limit", listing.DefaultLimit, "rows per page (max 100)")
	cmd.Flags().StringVar(&f.sort, "sort", listing.DefaultSort, "sort column")
	cmd.Flags().StringVar(&f.order, "order", string(listing.Desc), "asc or desc")
	cmd.Flags().StringVar(&f.search, "search", "", "text search")
	cmd.Flags().StringToStringVar(&f.filters, "filter", nil, "entity filter as key=value")
	return cmd
}

func (s *session) listCompanies(cmd *cobra.Command, f listFlags) error {
	list := s.coord.Companies
	if err := list.SetParams(cmd.Context(), f.params(), f.filters); err != nil {
		return err
	}
	snap := list.Snapshot()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDOMAIN\tINDUSTRY\tCONTACTS")
	for _, c := range snap.Rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n", c.ID, c.Name, dash(c.Domain), dash(c.Industry), c.ContactCount)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	pageFooter(cmd.OutOrStdout(), snap.Page, snap.TotalPages(), snap.Total)
	return nil
}

func (s *session) listContacts(cmd *cobra.Command, f listFlags) error {
	list := s.coord.Contacts
	if err := list.SetParams(cmd.Context(), f.params(), f.filters); err != nil {
		return err
	}
	snap := list.Snapshot()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tCOMPANY\tSTATUS")
	for _, c := range snap.Rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", c.ID, c.FullName(), dash(c.Email), orDash(c.CompanyName), c.Status)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	pageFooter(cmd.OutOrStdout(), snap.Page, snap.TotalPages(), snap.Total)
	return nil
}

func (s *session) listDeals(cmd *cobra.Command, f listFlags) error {
	list := s.coord.Deals
	if err := list.SetParams(cmd.Context(), f.params(), f.filters); err != nil {
		return err
	}
	snap := list.Snapshot()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tVALUE\tSTAGE\tCONTACT\tCOMPANY")
	for _, d := range snap.Rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			d.ID, d.Name, money(d.Value), d.Stage.Label(), dash(d.ContactName()), orDash(d.CompanyName))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	pageFooter(cmd.OutOrStdout(), snap.Page, snap.TotalPages(), snap.Total)
	fmt.Fprintf(cmd.OutOrStdout(), "Total value: %s\n", money(snap.TotalValue))
	return nil
}
