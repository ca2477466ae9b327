package tui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/roost/internal/catalog"
	"github.com/pders01/roost/internal/config"
	"github.com/pders01/roost/internal/search"
)

type KeyHandler struct {
	app         *App
	keys        config.KeyBindings
	modifierKey string
}

func NewKeyHandler(app *App, cfg *config.Config) *KeyHandler {
	modifierKey := cfg.Keys.Modifier + "+"
	return &KeyHandler{app: app, keys: cfg.Keys.Bindings, modifierKey: modifierKey}
}

// mod returns the chord for a configured binding, e.g. "ctrl+f".
func (kh *KeyHandler) mod(binding string) string {
	return kh.modifierKey + binding
}

func (kh *KeyHandler) HandleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if kh.app.view == ViewSearch {
		return kh.handleFormKeys(msg)
	}

	if kh.isFiltering(key) {
		return kh.delegateToCharm(msg)
	}

	if model, cmd, handled := kh.handleCustomKeys(key); handled {
		return model, cmd
	}

	return kh.delegateToCharm(msg)
}

// isFiltering reports whether the active list owns the keyboard for its
// filter prompt.
func (kh *KeyHandler) isFiltering(key string) bool {
	l := kh.activeList()
	if l == nil {
		return false
	}
	switch l.FilterState() {
	case list.Filtering:
		return key != "ctrl+c"
	case list.FilterApplied:
		return key == kh.keys.Back
	default:
		return false
	}
}

func (kh *KeyHandler) activeList() *list.Model {
	switch kh.app.view {
	case ViewResults:
		return &kh.app.resultList
	case ViewFavourites:
		return &kh.app.favList
	case ViewMedia:
		return &kh.app.mediaList
	default:
		return nil
	}
}

// handleFormKeys routes keys while the search form has focus. Printable keys
// always go to the focused input.
func (kh *KeyHandler) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form := kh.app.form

	switch key := msg.String(); key {
	case "ctrl+c":
		return kh.app, tea.Quit
	case kh.keys.Back:
		return kh.navigateBack()
	case "enter":
		q, keywords, err := form.query()
		if err != nil {
			kh.app.SetStatus(err.Error(), StatusError)
			return kh.app, nil
		}
		kh.app.SetStatus(MsgSearching, StatusInfo)
		return kh.app, kh.app.submitSearch(q, keywords)
	case "tab", "down":
		form.focusNext()
		return kh.app, nil
	case "shift+tab", "up":
		form.focusPrev()
		return kh.app, nil
	case kh.mod(kh.keys.Clear):
		form.reset()
		kh.app.clearStatus()
		return kh.app, nil
	case kh.mod(kh.keys.Favourites):
		return kh.showFavourites()
	case kh.mod(kh.keys.Search):
		if kh.app.session.State() == search.HasResults {
			kh.app.view = ViewResults
		}
		return kh.app, nil
	case kh.mod(kh.keys.Sort):
		if kh.app.session.State() != search.HasResults {
			kh.app.SetStatus(MsgSearchFirst, StatusWarn)
			return kh.app, nil
		}
		kh.app.view = ViewResults
		return kh.app, kh.app.applySort(kh.app.session.SortCriterion().Next())
	default:
		return kh.app, form.update(msg)
	}
}

// handleCustomKeys handles only our custom action keys
func (kh *KeyHandler) handleCustomKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "ctrl+c", kh.keys.Quit:
		return kh.app, tea.Quit, true
	case kh.keys.Back:
		model, cmd := kh.navigateBack()
		return model, cmd, true
	case kh.mod(kh.keys.Search):
		kh.app.view = ViewSearch
		return kh.app, nil, true
	case kh.mod(kh.keys.Favourites):
		if kh.app.view != ViewFavourites {
			model, cmd := kh.showFavourites()
			return model, cmd, true
		}
	}

	switch kh.app.view {
	case ViewResults:
		return kh.handleResultsCustomKeys(key)
	case ViewFavourites:
		return kh.handleFavouritesCustomKeys(key)
	case ViewDetail:
		return kh.handleDetailCustomKeys(key)
	case ViewMedia:
		return kh.handleMediaCustomKeys(key)
	case ViewClearConfirm:
		return kh.handleClearConfirmKeys(key)
	default:
		return kh.app, nil, false
	}
}

func (kh *KeyHandler) handleResultsCustomKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case kh.mod(kh.keys.Sort):
		if kh.app.session.State() != search.HasResults {
			kh.app.SetStatus(MsgSearchFirst, StatusWarn)
			return kh.app, nil, true
		}
		return kh.app, kh.app.applySort(kh.app.session.SortCriterion().Next()), true
	case kh.mod(kh.keys.Favourite):
		if l, ok := kh.selectedListing(); ok {
			return kh.app, kh.app.toggleFavourite(l), true
		}
		return kh.app, nil, true
	case kh.mod(kh.keys.OpenMedia):
		if l, ok := kh.selectedListing(); ok {
			model, cmd := kh.openMedia(l)
			return model, cmd, true
		}
		return kh.app, nil, true
	}
	return kh.app, nil, false
}

func (kh *KeyHandler) handleFavouritesCustomKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case kh.mod(kh.keys.Favourite):
		if l, ok := kh.selectedListing(); ok {
			return kh.app, kh.app.toggleFavourite(l), true
		}
		return kh.app, nil, true
	case kh.mod(kh.keys.Clear):
		if kh.app.favourites.Len() > 0 {
			kh.app.view = ViewClearConfirm
		}
		return kh.app, nil, true
	case kh.mod(kh.keys.OpenMedia):
		if l, ok := kh.selectedListing(); ok {
			model, cmd := kh.openMedia(l)
			return model, cmd, true
		}
		return kh.app, nil, true
	}
	return kh.app, nil, false
}

func (kh *KeyHandler) handleDetailCustomKeys(key string) (tea.Model, tea.Cmd, bool) {
	if kh.app.current == nil {
		return kh.app, nil, false
	}
	switch key {
	case kh.mod(kh.keys.Favourite):
		return kh.app, kh.app.toggleFavourite(*kh.app.current), true
	case kh.mod(kh.keys.OpenMedia):
		model, cmd := kh.openMedia(*kh.app.current)
		return model, cmd, true
	}
	return kh.app, nil, false
}

func (kh *KeyHandler) handleMediaCustomKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "enter", kh.mod(kh.keys.OpenMedia):
		if item, ok := kh.app.mediaList.SelectedItem().(mediaItem); ok {
			return kh.app, kh.app.openTarget(item.target), true
		}
		return kh.app, nil, true
	}
	return kh.app, nil, false
}

func (kh *KeyHandler) handleClearConfirmKeys(key string) (tea.Model, tea.Cmd, bool) {
	if key == "enter" {
		return kh.app, kh.app.clearFavourites(), true
	}
	return kh.app, nil, false
}

// delegateToCharm lets Charm handle all keys we don't intercept
func (kh *KeyHandler) delegateToCharm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	enter := msg.String() == "enter"

	switch kh.app.view {
	case ViewResults:
		filtering := kh.app.resultList.FilterState() == list.Filtering
		kh.app.resultList, cmd = kh.app.resultList.Update(msg)
		if enter && !filtering {
			if i, ok := kh.app.resultList.SelectedItem().(listingItem); ok {
				return kh.showDetail(i.listing)
			}
		}
		return kh.app, cmd

	case ViewFavourites:
		filtering := kh.app.favList.FilterState() == list.Filtering
		kh.app.favList, cmd = kh.app.favList.Update(msg)
		if enter && !filtering {
			if i, ok := kh.app.favList.SelectedItem().(listingItem); ok {
				return kh.showDetail(i.listing)
			}
		}
		return kh.app, cmd

	case ViewMedia:
		kh.app.mediaList, cmd = kh.app.mediaList.Update(msg)
		return kh.app, cmd

	case ViewDetail:
		kh.app.viewport, cmd = kh.app.viewport.Update(msg)
		return kh.app, cmd

	default:
		return kh.app, nil
	}
}

func (kh *KeyHandler) selectedListing() (catalog.Listing, bool) {
	l := kh.activeList()
	if l == nil {
		return catalog.Listing{}, false
	}
	item, ok := l.SelectedItem().(listingItem)
	return item.listing, ok
}

func (kh *KeyHandler) showDetail(l catalog.Listing) (tea.Model, tea.Cmd) {
	kh.app.current = &l
	kh.app.detailFrom = kh.app.view
	kh.app.view = ViewDetail
	kh.app.loadingDetail = true
	kh.app.clearStatus()
	return kh.app, kh.app.renderDetail(l)
}

func (kh *KeyHandler) showFavourites() (tea.Model, tea.Cmd) {
	kh.app.refreshFavourites()
	kh.app.view = ViewFavourites
	kh.app.clearStatus()
	return kh.app, nil
}

// openMedia opens a listing's only media target directly, or lists them
// when there are several.
func (kh *KeyHandler) openMedia(l catalog.Listing) (tea.Model, tea.Cmd) {
	targets := kh.app.launcher.Targets(l)
	switch len(targets) {
	case 0:
		kh.app.SetStatus(MsgNoMedia, StatusWarn)
		return kh.app, nil
	case 1:
		return kh.app, kh.app.openTarget(targets[0])
	}

	items := make([]list.Item, len(targets))
	for i, t := range targets {
		items[i] = mediaItem{target: t}
	}
	kh.app.mediaList.SetItems(items)
	kh.app.mediaList.Select(0)
	kh.app.mediaList.Title = "› media · " + truncateEnd(l.Location, 50)
	kh.app.mediaFrom = kh.app.view
	kh.app.view = ViewMedia
	return kh.app, nil
}

// navigateBack implements smart back navigation
func (kh *KeyHandler) navigateBack() (tea.Model, tea.Cmd) {
	hasResults := kh.app.session.State() == search.HasResults

	switch kh.app.view {
	case ViewSearch:
		if hasResults {
			kh.app.view = ViewResults
			return kh.app, nil
		}
		return kh.app, tea.Quit

	case ViewResults:
		kh.app.view = ViewSearch
		return kh.app, nil

	case ViewFavourites:
		if hasResults {
			kh.app.view = ViewResults
		} else {
			kh.app.view = ViewSearch
		}
		return kh.app, nil

	case ViewDetail:
		kh.app.view = kh.app.detailFrom
		kh.app.current = nil
		return kh.app, nil

	case ViewMedia:
		kh.app.view = kh.app.mediaFrom
		kh.app.mediaList.SetItems([]list.Item{})
		return kh.app, nil

	case ViewClearConfirm:
		kh.app.view = ViewFavourites
		return kh.app, nil

	default:
		return kh.app, tea.Quit
	}
}

// GetHelpForCurrentView returns only our custom help text (Charm handles the rest)
func (kh *KeyHandler) GetHelpForCurrentView() []string {
	m := kh.mod
	k := kh.keys

	switch kh.app.view {
	case ViewSearch:
		return []string{"enter: search", "tab: next field", m(k.Clear) + ": reset", m(k.Favourites) + ": favourites", k.Back + ": back"}

	case ViewResults:
		return []string{
			"enter: details",
			m(k.Favourite) + ": save",
			m(k.Sort) + ": sort (" + kh.app.session.SortCriterion().Label() + ")",
			m(k.OpenMedia) + ": media",
			m(k.Search) + ": search",
			m(k.Favourites) + ": favourites",
		}

	case ViewFavourites:
		help := []string{m(k.Search) + ": search"}
		if kh.app.favourites.Len() > 0 {
			help = append([]string{"enter: details", m(k.Favourite) + ": remove", m(k.OpenMedia) + ": media"}, help...)
			help = append(help, m(k.Clear)+": clear all")
		}
		return help

	case ViewDetail:
		return []string{m(k.Favourite) + ": save/remove", m(k.OpenMedia) + ": media", k.Back + ": back"}

	case ViewMedia:
		return []string{"enter: open", k.Back + ": back"}

	case ViewClearConfirm:
		return []string{"enter: confirm", k.Back + ": cancel"}

	default:
		return []string{}
	}
}
