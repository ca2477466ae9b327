package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/roost/internal/catalog"
	"github.com/pders01/roost/internal/config"
	"github.com/pders01/roost/internal/debuglog"
	"github.com/pders01/roost/internal/favourites"
	"github.com/pders01/roost/internal/media"
	"github.com/pders01/roost/internal/search"
)

type App struct {
	config     *config.Config
	catalog    *catalog.Catalog
	session    *search.Session
	favourites *favourites.Store
	launcher   *media.Launcher
	index      *search.KeywordIndex
	keyHandler *KeyHandler

	form        *searchForm
	resultList  list.Model
	favList     list.Model
	mediaList   list.Model
	viewport    viewport.Model
	view        View
	detailFrom  View // where esc leaves the detail view for
	mediaFrom   View
	current     *catalog.Listing
	stats       catalog.Stats
	initialSort search.SortCriterion

	status     string
	statusKind StatusKind
	width      int
	height     int

	glamourRenderer *glamour.TermRenderer
	rendererWidth   int
	loadingDetail   bool
}

// Option customises an App at construction.
type Option func(*App)

// WithSession replaces the default search session, e.g. one with a fixed clock.
func WithSession(s *search.Session) Option {
	return func(a *App) { a.session = s }
}

// WithKeywordIndex supplies a prebuilt keyword index instead of building one.
func WithKeywordIndex(idx *search.KeywordIndex) Option {
	return func(a *App) { a.index = idx }
}

// WithLauncher replaces the media launcher.
func WithLauncher(l *media.Launcher) Option {
	return func(a *App) { a.launcher = l }
}

func newList(title string) list.Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)
	return l
}

func NewApp(cat *catalog.Catalog, favs *favourites.Store, cfg *config.Config, opts ...Option) *App {
	mediaList := newList("› media")
	mediaList.SetFilteringEnabled(false)

	app := &App{
		config:     cfg,
		catalog:    cat,
		favourites: favs,
		resultList: newList("› results"),
		favList:    newList("› favourites"),
		mediaList:  mediaList,
		viewport:   viewport.New(0, 0),
		view:       ViewSearch,
		detailFrom: ViewResults,
		stats:      catalog.ComputeStats(cat.Listings()),
	}
	for _, opt := range opts {
		opt(app)
	}

	if app.session == nil {
		app.session = search.NewSession(cat.Listings(), search.NewEngine())
	}
	if app.launcher == nil {
		app.launcher = media.NewLauncher(cfg)
	}
	if app.index == nil && cfg.Search.KeywordIndex {
		idx, err := search.NewKeywordIndex(cat.Listings())
		if err != nil {
			debuglog.Warnf("keyword index unavailable: %v", err)
		} else {
			app.index = idx
		}
	}
	if app.index != nil {
		app.session.UseKeywords(app.index)
		logIndexStats(app.index)
	}

	if c, err := search.ParseSortCriterion(cfg.Search.DefaultSort); err == nil {
		app.initialSort = c
	} else {
		debuglog.Warnf("ignoring default sort: %v", err)
		app.initialSort = search.SortFeatured
	}

	app.form = newSearchForm(search.FormDefaults{
		PriceMin:    cfg.Search.PriceMin,
		PriceMax:    cfg.Search.PriceMax,
		BedroomsMin: cfg.Search.BedroomsMin,
		BedroomsMax: cfg.Search.BedroomsMax,
	}, app.index != nil)
	app.keyHandler = NewKeyHandler(app, cfg)
	app.refreshFavourites()

	return app
}

func logIndexStats(s search.DebugStatser) {
	n, err := s.DocCount()
	if err != nil {
		debuglog.Warnf("keyword index stats: %v", err)
		return
	}
	debuglog.WithFields(map[string]interface{}{"docs": n}).Debugf("keyword index ready")
}

// Close releases the keyword index.
func (a *App) Close() error {
	if a.index == nil {
		return nil
	}
	return a.index.Close()
}

// SetStatus shows text in the status bar until the next status change.
func (a *App) SetStatus(text string, kind StatusKind) {
	a.status = text
	a.statusKind = kind
}

func (a *App) clearStatus() {
	a.status = ""
	a.statusKind = StatusInfo
}

func (a *App) getRenderer() (*glamour.TermRenderer, error) {
	w := wrapWidth(a.width, a.config.UI.Listing)
	if a.glamourRenderer == nil || abs(a.rendererWidth-w) > 10 {
		r, err := NewRenderer(a.width, a.config.UI.Listing)
		if err != nil {
			return nil, err
		}
		a.glamourRenderer = r
		a.rendererWidth = w
	}
	return a.glamourRenderer, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func (a *App) Init() tea.Cmd {
	return tea.EnterAltScreen
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resultList.SetSize(msg.Width, msg.Height-3)
		a.favList.SetSize(msg.Width, msg.Height-3)
		a.mediaList.SetSize(msg.Width, msg.Height-3)
		a.viewport.Width = msg.Width
		a.viewport.Height = msg.Height - 3

	case tea.KeyMsg:
		return a.keyHandler.HandleKey(msg)

	case resultsMsg:
		if msg.err != nil {
			a.SetStatus(msg.err.Error(), StatusError)
			return a, nil
		}
		a.setResults(msg.results)
		a.resultList.Select(0)
		a.view = ViewResults
		if len(msg.results) == 0 {
			a.SetStatus(MsgNoResults, StatusWarn)
		} else {
			a.SetStatus(MsgResultsCount(len(msg.results)), StatusInfo)
		}
		return a, nil

	case sortedMsg:
		if msg.err != nil {
			a.SetStatus(msg.err.Error(), StatusError)
			return a, nil
		}
		a.setResults(msg.results)
		a.resultList.Select(0)
		a.SetStatus(MsgSortedBy(msg.criterion.Label()), StatusInfo)
		return a, nil

	case favouriteToggledMsg:
		if msg.err != nil {
			a.SetStatus(msg.err.Error(), StatusError)
			return a, nil
		}
		a.refreshFavourites()
		a.refreshResultMarkers()
		if msg.added {
			a.SetStatus(MsgFavouriteAdded(msg.listing.Location), StatusSuccess)
		} else {
			a.SetStatus(MsgFavouriteRemoved(msg.listing.Location), StatusInfo)
		}
		if a.view == ViewDetail && a.current != nil && a.current.ID == msg.listing.ID {
			return a, a.renderDetail(*a.current)
		}
		return a, nil

	case favouritesClearedMsg:
		if msg.err != nil {
			a.SetStatus(msg.err.Error(), StatusError)
			return a, nil
		}
		a.refreshFavourites()
		a.refreshResultMarkers()
		a.view = ViewFavourites
		a.SetStatus(MsgFavouritesCleared, StatusSuccess)
		return a, nil

	case detailRenderedMsg:
		if a.view == ViewDetail {
			a.viewport.SetContent(msg.content)
			a.viewport.GotoTop()
			a.loadingDetail = false
		}
		return a, nil

	case mediaOpenedMsg:
		if msg.err != nil {
			a.SetStatus(msg.err.Error(), StatusError)
		} else {
			a.SetStatus(MsgOpened(msg.target.Label, msg.viewer), StatusSuccess)
		}
		return a, nil

	}

	switch a.view {
	case ViewResults:
		newListModel, cmd := a.resultList.Update(msg)
		a.resultList = newListModel
		cmds = append(cmds, cmd)
	case ViewFavourites:
		newListModel, cmd := a.favList.Update(msg)
		a.favList = newListModel
		cmds = append(cmds, cmd)
	case ViewMedia:
		newListModel, cmd := a.mediaList.Update(msg)
		a.mediaList = newListModel
		cmds = append(cmds, cmd)
	case ViewDetail:
		switch msg.(type) {
		case tea.WindowSizeMsg, tea.MouseMsg:
			newViewport, cmd := a.viewport.Update(msg)
			a.viewport = newViewport
			cmds = append(cmds, cmd)
		}
	case ViewSearch:
		cmds = append(cmds, a.form.update(msg))
	}

	return a, tea.Batch(cmds...)
}

// setResults replaces the result list items and refreshes its title.
func (a *App) setResults(results []catalog.Listing) {
	a.resultList.SetItems(a.listingItems(results))
	a.resultList.Title = fmt.Sprintf("› %s · %s", strings.ToLower(MsgResultsCount(len(results))), strings.ToLower(a.session.SortCriterion().Label()))
}

func (a *App) listingItems(listings []catalog.Listing) []list.Item {
	items := make([]list.Item, len(listings))
	for i, l := range listings {
		items[i] = listingItem{
			listing: l,
			saved:   a.favourites.Contains(l.ID),
			preview: a.config.UI.Listing.PreviewLength,
		}
	}
	return items
}

func (a *App) refreshResultMarkers() {
	if a.session.State() != search.HasResults {
		return
	}
	idx := a.resultList.Index()
	a.resultList.SetItems(a.listingItems(a.session.Results()))
	a.resultList.Select(idx)
}

func (a *App) refreshFavourites() {
	saved := a.favourites.List()
	idx := a.favList.Index()
	a.favList.SetItems(a.listingItems(saved))
	if idx >= len(saved) {
		idx = len(saved) - 1
	}
	if idx >= 0 {
		a.favList.Select(idx)
	}
	a.favList.Title = fmt.Sprintf("› favourites (%d)", len(saved))
}

func (a *App) statsLine() string {
	s := a.stats
	parts := []string{
		fmt.Sprintf("%d listings", s.Total),
		fmt.Sprintf("%d houses", s.Houses()),
		fmt.Sprintf("%d flats", s.Flats()),
		fmt.Sprintf("%d saved", a.favourites.Len()),
	}
	if s.Total > 0 {
		parts = append(parts, catalog.FormatPrice(s.MinPrice)+"–"+catalog.FormatPrice(s.MaxPrice))
	}
	return strings.Join(parts, " · ")
}

func (a *App) View() string {
	var content string
	bodyHeight := a.height - 3

	switch a.view {
	case ViewSearch:
		rows := []string{renderHeader("› search", a.statsLine(), a.width), ""}
		if bodyHeight > 24 {
			rows = append(rows, GetWelcomeMessage(a.keyHandler.modifierKey+a.config.Keys.Bindings.Favourites), "")
		}
		rows = append(rows, a.form.view(a.width))
		if q := a.session.Query(); a.session.State() == search.HasResults {
			rows = append(rows, "", renderMuted("last search: "+q.String()))
		}
		content = ContentWrapper(a.width, bodyHeight).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))

	case ViewResults:
		if len(a.resultList.Items()) == 0 {
			content = renderNotice(a.width, bodyHeight, MsgNoResults,
				"Widen the price or bedroom range, or clear the postcode")
		} else {
			content = a.resultList.View()
		}

	case ViewFavourites:
		if len(a.favList.Items()) == 0 {
			content = renderNotice(a.width, bodyHeight, MsgNoFavourites,
				fmt.Sprintf("Press %s%s on a result to save it", a.keyHandler.modifierKey, a.config.Keys.Bindings.Favourite))
		} else {
			content = a.favList.View()
		}

	case ViewDetail:
		if a.loadingDetail {
			content = renderPlaced(a.width, bodyHeight, renderMuted("Loading…"))
		} else {
			content = a.viewport.View()
		}

	case ViewMedia:
		content = a.mediaList.View()

	case ViewClearConfirm:
		content = a.clearConfirmView(bodyHeight)
	}

	separatorWidth := a.width - 2
	if separatorWidth < 0 {
		separatorWidth = 0
	}
	separator := SeparatorStyle.Render("─" + strings.Repeat("─", separatorWidth))

	return lipgloss.JoinVertical(lipgloss.Top, content, separator, a.getCustomStatusBar())
}

func (a *App) clearConfirmView(height int) string {
	modalWidth := (a.width * 4) / 5
	if modalWidth < 20 {
		modalWidth = a.width
	}
	center := lipgloss.NewStyle().Width(modalWidth).Align(lipgloss.Center)

	return renderPlaced(a.width, height, lipgloss.JoinVertical(
		lipgloss.Center,
		ErrorMessageStyle.Render("⚠ Clear favourites"),
		"",
		center.Foreground(TextColor).Render(fmt.Sprintf("Remove all %d saved properties?", a.favourites.Len())),
		"",
		renderHelp("Enter: confirm • Esc: cancel"),
	))
}

func (a *App) getCustomStatusBar() string {
	commands := strings.Join(a.keyHandler.GetHelpForCurrentView(), " • ")

	line := commands
	if a.status != "" {
		status := a.statusKind.style().Render(a.statusKind.icon() + a.status)
		if commands != "" {
			line = status + renderMuted("  │  ") + commands
		} else {
			line = status
		}
	}

	return StatusBarStyle.
		Width(a.width).
		Render(line)
}

type listingItem struct {
	listing catalog.Listing
	saved   bool
	preview int
}

func (i listingItem) Title() string {
	l := i.listing
	title := PriceStyle.Render(catalog.FormatPrice(l.Price)) + " · " + catalog.FormatBedrooms(l.Bedrooms) + " " + strings.ToLower(string(l.Type))
	if i.saved {
		return FavouriteStyle.Render("★ ") + title
	}
	return title
}

func (i listingItem) Description() string {
	desc := i.listing.Location
	if preview := catalog.Preview(i.listing.Description, i.preview); preview != "" {
		desc += " • " + preview
	}
	return renderMuted(desc)
}

func (i listingItem) FilterValue() string {
	return i.listing.Location + " " + string(i.listing.Type)
}

type mediaItem struct {
	target media.Target
}

func (i mediaItem) Title() string { return i.target.Label }

func (i mediaItem) Description() string {
	return renderMuted(i.target.Kind.String() + " • " + truncateMiddle(i.target.Location, 72))
}

func (i mediaItem) FilterValue() string { return i.target.Label }

type resultsMsg struct {
	results []catalog.Listing
	err     error
}

type sortedMsg struct {
	results   []catalog.Listing
	criterion search.SortCriterion
	err       error
}

type favouriteToggledMsg struct {
	listing catalog.Listing
	added   bool
	err     error
}

type favouritesClearedMsg struct {
	err error
}

type detailRenderedMsg struct {
	content string
}

type mediaOpenedMsg struct {
	target media.Target
	viewer string
	err    error
}
