package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pders01/roost/internal/catalog"
	"github.com/pders01/roost/internal/tui"
)

func newStatsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarise the catalog and saved listings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(root, func(e *env) error {
				return runStats(cmd.OutOrStdout(), e)
			})
		},
	}
}

func runStats(w io.Writer, e *env) error {
	s := catalog.ComputeStats(e.catalog.Listings())
	label := tui.LabelStyle.Render

	fmt.Fprintf(w, "%s%d (%d houses, %d flats)\n", label("Listings"), s.Total, s.Houses(), s.Flats())
	if s.Total > 0 {
		fmt.Fprintf(w, "%s%s – %s\n", label("Price range"), catalog.FormatPrice(s.MinPrice), catalog.FormatPrice(s.MaxPrice))
		fmt.Fprintf(w, "%s%s\n", label("Average"), catalog.FormatPrice(s.AveragePrice))
		fmt.Fprintf(w, "%s%s (%s)\n", label("Cheapest"), s.Cheapest.Location, s.Cheapest.ID)
		fmt.Fprintf(w, "%s%s (%s)\n", label("Dearest"), s.MostExpensive.Location, s.MostExpensive.ID)
	}
	fmt.Fprintf(w, "%s%d\n", label("Saved"), e.favourites.Len())
	return nil
}
