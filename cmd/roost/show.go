package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pders01/roost/internal/catalog"
	"github.com/pders01/roost/internal/media"
	"github.com/pders01/roost/internal/tui"
)

var errUnknownID = errors.New("no listing with that id")

func lookup(e *env, id string) (catalog.Listing, error) {
	l, ok := e.catalog.Get(id)
	if !ok {
		return catalog.Listing{}, fmt.Errorf("%w: %q", errUnknownID, id)
	}
	return l, nil
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 100
}

func newShowCmd(root *rootOptions) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one listing in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(root)
			if err != nil {
				return err
			}
			defer e.Close()
			return runShow(cmd.OutOrStdout(), e, args[0], raw, terminalWidth())
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Print markdown instead of rendering it")
	return cmd
}

func runShow(w io.Writer, e *env, id string, raw bool, width int) error {
	l, err := lookup(e, id)
	if err != nil {
		return err
	}
	saved := e.favourites.Contains(l.ID)
	if raw {
		_, err := io.WriteString(w, tui.ListingMarkdown(l, saved))
		return err
	}
	out, err := tui.RenderListing(l, saved, width, e.cfg.UI.Listing)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

func newOpenCmd(root *rootOptions) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "open <id> [n]",
		Short: "Open a listing's picture, floor plan or details page",
		Long:  "Open the n-th media item of a listing (1-based, default 1) with the configured viewer.\nUse --list to see what is available.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(root)
			if err != nil {
				return err
			}
			defer e.Close()

			l, err := lookup(e, args[0])
			if err != nil {
				return err
			}
			launcher := media.NewLauncher(e.cfg)
			if list {
				return listTargets(cmd.OutOrStdout(), launcher.Targets(l))
			}

			n := 1
			if len(args) == 2 {
				if n, err = strconv.Atoi(args[1]); err != nil {
					return fmt.Errorf("media number %q is not a number", args[1])
				}
			}
			t, err := launcher.OpenListing(l, n-1)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tui.MsgOpened(t.Label, launcher.Viewer(t.Kind)))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&list, "list", "l", false, "List media instead of opening")
	return cmd
}

func listTargets(w io.Writer, targets []media.Target) error {
	if len(targets) == 0 {
		return media.ErrNoMedia
	}
	for i, t := range targets {
		fmt.Fprintf(w, "%d. %-11s %-6s %s\n", i+1, t.Label, t.Kind, t.Location)
	}
	return nil
}
