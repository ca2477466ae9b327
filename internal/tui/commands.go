package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/roost/internal/catalog"
	"github.com/pders01/roost/internal/debuglog"
	"github.com/pders01/roost/internal/favourites"
	"github.com/pders01/roost/internal/media"
	"github.com/pders01/roost/internal/search"
)

// submitSearch runs q against the session. A non-featured default sort from
// the config is applied straight after the submit.
func (a *App) submitSearch(q search.Query, keywords string) tea.Cmd {
	initial := a.initialSort
	return func() tea.Msg {
		results, err := a.session.SubmitWithKeywords(q, keywords)
		if err != nil {
			return resultsMsg{err: fmt.Errorf("search: %w", err)}
		}
		if initial != search.SortFeatured {
			if results, err = a.session.SetSort(initial); err != nil {
				return resultsMsg{err: fmt.Errorf("sort: %w", err)}
			}
		}
		return resultsMsg{results: results}
	}
}

func (a *App) applySort(c search.SortCriterion) tea.Cmd {
	return func() tea.Msg {
		results, err := a.session.SetSort(c)
		if err != nil {
			return sortedMsg{err: err}
		}
		return sortedMsg{results: results, criterion: c}
	}
}

// toggleFavourite saves l, or drops it when it is already saved.
func (a *App) toggleFavourite(l catalog.Listing) tea.Cmd {
	return func() tea.Msg {
		var msg favourites.Message = favourites.AddToFavourites{ID: l.ID}
		added := true
		if a.favourites.Contains(l.ID) {
			msg = favourites.RemoveFromFavourites{ID: l.ID}
			added = false
		}

		resolve := favourites.Resolver(a.catalog.Get)
		if _, err := a.favourites.Apply(msg, resolve); err != nil {
			debuglog.WithFields(map[string]interface{}{"listing": l.ID}).Errorf("favourite toggle failed: %v", err)
			return favouriteToggledMsg{listing: l, err: fmt.Errorf("favourites: %w", err)}
		}
		return favouriteToggledMsg{listing: l, added: added}
	}
}

func (a *App) clearFavourites() tea.Cmd {
	return func() tea.Msg {
		if _, err := a.favourites.Apply(favourites.ClearFavourites{}, nil); err != nil {
			return favouritesClearedMsg{err: fmt.Errorf("favourites: %w", err)}
		}
		return favouritesClearedMsg{}
	}
}

func (a *App) renderDetail(l catalog.Listing) tea.Cmd {
	saved := a.favourites.Contains(l.ID)
	return func() tea.Msg {
		r, err := a.getRenderer()
		if err != nil {
			return detailRenderedMsg{content: "Error initializing renderer: " + err.Error()}
		}
		rendered, err := r.Render(ListingMarkdown(l, saved))
		if err != nil {
			return detailRenderedMsg{content: fmt.Sprintf("Failed to render listing: %s\n\nPress Escape to go back.", err)}
		}
		return detailRenderedMsg{content: rendered}
	}
}

func (a *App) openTarget(t media.Target) tea.Cmd {
	return func() tea.Msg {
		if err := a.launcher.Open(t); err != nil {
			return mediaOpenedMsg{target: t, err: fmt.Errorf("failed to open %s: %w", t.Label, err)}
		}
		return mediaOpenedMsg{target: t, viewer: a.launcher.Viewer(t.Kind)}
	}
}
