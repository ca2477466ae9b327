package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pders01/roost/internal/favourites"
	"github.com/pders01/roost/internal/tui"
)

// Version is the version of the application, set at build time
var Version = "dev"

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath  string
	dbPath      string
	catalogPath string
	logLevel    string
	quiet       bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "roost",
		Short:         "Search property listings and keep a shortlist",
		Long:          "roost filters a catalog of property listings by type, price, bedrooms, recency and postcode,\nand keeps a persistent list of favourites. Run without a subcommand for the terminal UI.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(opts)
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to configuration file")
	root.PersistentFlags().StringVar(&opts.dbPath, "db", "", "Path to database file (overrides config)")
	root.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "", "Path to a .json or .toml catalog (overrides config)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error, off")
	root.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "Skip startup banner")

	root.AddCommand(
		newSearchCmd(opts),
		newShowCmd(opts),
		newOpenCmd(opts),
		newStatsCmd(opts),
		newFavCmd(opts),
		configCmd,
		versionCmd,
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(opts *rootOptions) error {
	if !opts.quiet {
		tui.ShowBanner(Version)
	}

	e, err := openEnv(opts)
	if err != nil {
		return err
	}
	defer e.Close()

	tui.ApplyColors(e.cfg.UI.Colors)
	app := tui.NewApp(e.catalog, e.favourites, e.cfg)
	defer app.Close()

	if msg := tui.MsgRestored(e.restored, e.favourites.Len()); msg != "" {
		kind := tui.StatusInfo
		if e.restored == favourites.RecoveredFromCorruption {
			kind = tui.StatusWarn
		}
		app.SetStatus(msg, kind)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}
	return nil
}
