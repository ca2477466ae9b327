package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pders01/roost/internal/favourites"
	"github.com/pders01/roost/internal/tui"
)

func newFavCmd(root *rootOptions) *cobra.Command {
	favCmd := &cobra.Command{
		Use:     "fav",
		Aliases: []string{"favourites", "favorites"},
		Short:   "Manage saved listings",
	}

	var asJSON bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List saved listings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(root)
			if err != nil {
				return err
			}
			defer e.Close()
			return runFavList(cmd.OutOrStdout(), e, asJSON)
		},
	}
	listCmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")

	addCmd := &cobra.Command{
		Use:   "add <id>...",
		Short: "Save listings by id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(root, func(e *env) error {
				for _, id := range args {
					if err := applyFav(cmd.OutOrStdout(), e, favourites.AddToFavourites{ID: id}, id); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	removeCmd := &cobra.Command{
		Use:     "remove <id>...",
		Aliases: []string{"rm"},
		Short:   "Remove saved listings by id",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(root, func(e *env) error {
				for _, id := range args {
					if err := applyFav(cmd.OutOrStdout(), e, favourites.RemoveFromFavourites{ID: id}, id); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every saved listing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(root, func(e *env) error {
				if _, err := e.favourites.Apply(favourites.ClearFavourites{}, nil); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), tui.MsgFavouritesCleared)
				return nil
			})
		},
	}

	favCmd.AddCommand(listCmd, addCmd, removeCmd, clearCmd)
	return favCmd
}

func withEnv(root *rootOptions, fn func(e *env) error) error {
	e, err := openEnv(root)
	if err != nil {
		return err
	}
	defer e.Close()
	return fn(e)
}

func applyFav(w io.Writer, e *env, msg favourites.Message, id string) error {
	changed, err := e.favourites.Apply(msg, e.resolve)
	if err != nil {
		return err
	}

	location := id
	if l, ok := e.catalog.Get(id); ok {
		location = l.Location
	}
	switch m := msg.(type) {
	case favourites.AddToFavourites:
		if !changed {
			fmt.Fprintf(w, "%s is already saved\n", m.ID)
			return nil
		}
		fmt.Fprintln(w, tui.MsgFavouriteAdded(location))
	case favourites.RemoveFromFavourites:
		if !changed {
			fmt.Fprintf(w, "%s was not saved\n", m.ID)
			return nil
		}
		fmt.Fprintln(w, tui.MsgFavouriteRemoved(location))
	}
	return nil
}

func runFavList(w io.Writer, e *env, asJSON bool) error {
	saved := e.favourites.List()
	if asJSON {
		return writeJSON(w, e.favourites, saved)
	}
	if len(saved) == 0 {
		fmt.Fprintln(w, tui.MsgNoFavourites)
		return nil
	}
	fmt.Fprintln(w, listingTable(saved, nil))
	return nil
}
