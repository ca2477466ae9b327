package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/pders01/roost/internal/catalog"
	"github.com/pders01/roost/internal/debuglog"
	"github.com/pders01/roost/internal/favourites"
	"github.com/pders01/roost/internal/search"
	"github.com/pders01/roost/internal/tui"
)

type searchOptions struct {
	form     search.FormInput
	keywords string
	sortBy   string
	limit    int
	asJSON   bool
}

func newSearchCmd(root *rootOptions) *cobra.Command {
	o := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Filter the catalog and print matching listings",
		Example: `  roost search --type house --max-price 500000
  roost search --min-beds 2 --max-beds 3 --postcode BR1 --sort price-asc
  roost search --added-within 30 --keywords garden --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(root)
			if err != nil {
				return err
			}
			defer e.Close()
			return runSearch(cmd.OutOrStdout(), e, o)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.form.Type, "type", "t", "", "Property type: any, house or flat")
	f.StringVar(&o.form.MinBedrooms, "min-beds", "", "Minimum bedrooms")
	f.StringVar(&o.form.MaxBedrooms, "max-beds", "", "Maximum bedrooms")
	f.StringVar(&o.form.MinPrice, "min-price", "", "Minimum price in pounds, e.g. 250000 or 250,000")
	f.StringVar(&o.form.MaxPrice, "max-price", "", "Maximum price in pounds")
	f.StringVar(&o.form.AddedWithin, "added-within", "", "Only listings added in the last N days (7, 30, 90, 365 or any)")
	f.StringVar(&o.form.AddedSince, "since", "", "Only listings added on or after YYYY-MM-DD")
	f.StringVarP(&o.form.Postcode, "postcode", "p", "", "Postcode area, e.g. BR5")
	f.StringVarP(&o.keywords, "keywords", "k", "", "Free-text keywords matched against location and description")
	f.StringVarP(&o.sortBy, "sort", "s", "", "Sort: featured, price-asc, price-desc, beds-desc, newest (default from config)")
	f.IntVarP(&o.limit, "limit", "n", 0, "Print at most N listings")
	f.BoolVar(&o.asJSON, "json", false, "Print results as JSON")
	return cmd
}

func runSearch(w io.Writer, e *env, o *searchOptions) error {
	q, err := o.form.Query(e.formDefaults())
	if err != nil {
		return err
	}

	sortName := o.sortBy
	if sortName == "" {
		sortName = e.cfg.Search.DefaultSort
	}
	criterion, err := search.ParseSortCriterion(sortName)
	if err != nil {
		return err
	}

	session := search.NewSession(e.catalog.Listings(), search.NewEngine())
	if o.keywords != "" {
		if !e.cfg.Search.KeywordIndex {
			return fmt.Errorf("keyword search is disabled (search.keyword_index = false)")
		}
		idx, err := search.NewKeywordIndex(e.catalog.Listings())
		if err != nil {
			return fmt.Errorf("building keyword index: %w", err)
		}
		defer idx.Close()
		session.UseKeywords(idx)
	}

	results, err := session.SubmitWithKeywords(q, o.keywords)
	if err != nil {
		return err
	}
	if criterion != search.SortFeatured {
		if results, err = session.SetSort(criterion); err != nil {
			return err
		}
	}
	debuglog.WithFields(map[string]interface{}{
		"query":   q.String(),
		"sort":    string(criterion),
		"results": len(results),
	}).Infof("cli search")

	total := len(results)
	if o.limit > 0 && total > o.limit {
		results = results[:o.limit]
	}

	if o.asJSON {
		return writeJSON(w, e.favourites, results)
	}
	if len(results) == 0 {
		fmt.Fprintln(w, tui.MsgNoResults)
		return nil
	}
	fmt.Fprintln(w, listingTable(results, e.favourites))
	fmt.Fprintf(w, "%s · %s · %s\n", tui.MsgResultsCount(total), q.String(), criterion.Label())
	return nil
}

type listingJSON struct {
	catalog.Listing
	Saved bool `json:"saved"`
}

func writeJSON(w io.Writer, favs *favourites.Store, listings []catalog.Listing) error {
	out := make([]listingJSON, len(listings))
	for i, l := range listings {
		out[i] = listingJSON{Listing: l, Saved: favs.Contains(l.ID)}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// listingTable renders listings as a bordered table. A star marks saved ones.
func listingTable(listings []catalog.Listing, favs *favourites.Store) string {
	rows := make([][]string, len(listings))
	for i, l := range listings {
		saved := ""
		if favs != nil && favs.Contains(l.ID) {
			saved = "★"
		}
		added := ""
		if t := l.AddedOn(); !t.IsZero() {
			added = t.Format("2 Jan 2006")
		}
		rows[i] = []string{saved, l.ID, catalog.FormatPrice(l.Price), strconv.Itoa(l.Bedrooms), string(l.Type), l.Location, added}
	}

	headerStyle := lipgloss.NewStyle().Foreground(tui.SecondaryColor).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(tui.MutedColor)).
		Headers("", "ID", "PRICE", "BEDS", "TYPE", "LOCATION", "ADDED").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return cellStyle.Foreground(tui.FavouriteColor)
			case col == 2:
				return cellStyle.Foreground(tui.PrimaryColor)
			default:
				return cellStyle
			}
		}).
		Render()
}
