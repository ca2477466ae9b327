package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/roost/internal/catalog"
	"github.com/pders01/roost/internal/config"
	"github.com/pders01/roost/internal/favourites"
)

func TestKeyHandler_ModifierKey(t *testing.T) {
	app, _ := newTestApp(t)

	assert.NotNil(t, app.keyHandler)
	assert.Equal(t, "ctrl+", app.keyHandler.modifierKey)
	assert.Equal(t, "ctrl+f", app.keyHandler.mod("f"))
}

func TestKeyHandler_CustomModifier(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	cfg := config.TestConfig()
	cfg.Keys.Modifier = "alt"
	cfg.Search.KeywordIndex = false

	app := NewApp(cat, favourites.New(favourites.NewMemoryBackend()), cfg)
	app.view = ViewResults

	// alt+v opens favourites; ctrl+v no longer does.
	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyCtrlV})
	assert.Equal(t, ViewResults, model.(*App).view)

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'v'}, Alt: true})
	assert.Equal(t, ViewFavourites, model.(*App).view)
}

func TestKeyHandler_HelpForCurrentView(t *testing.T) {
	app, _ := newTestApp(t)

	tests := []struct {
		view     View
		contains []string
	}{
		{ViewSearch, []string{"enter: search", "ctrl+x: reset", "ctrl+v: favourites"}},
		{ViewResults, []string{"ctrl+f: save", "ctrl+o: sort (Featured)", "ctrl+p: media"}},
		{ViewFavourites, []string{"ctrl+s: search"}},
		{ViewDetail, []string{"ctrl+f: save/remove", "esc: back"}},
		{ViewMedia, []string{"enter: open"}},
		{ViewClearConfirm, []string{"enter: confirm", "esc: cancel"}},
	}

	for _, tt := range tests {
		t.Run(tt.view.String(), func(t *testing.T) {
			app.view = tt.view
			help := strings.Join(app.keyHandler.GetHelpForCurrentView(), " • ")
			for _, want := range tt.contains {
				assert.Contains(t, help, want)
			}
		})
	}
}

func TestKeyHandler_FavouritesHelpDependsOnContents(t *testing.T) {
	app, _ := newTestApp(t)
	app.view = ViewFavourites
	assert.NotContains(t, strings.Join(app.keyHandler.GetHelpForCurrentView(), " "), "clear all")

	l, _ := app.catalog.Get("prop2")
	_, err := app.favourites.Add(l)
	require.NoError(t, err)
	assert.Contains(t, strings.Join(app.keyHandler.GetHelpForCurrentView(), " "), "clear all")
}

func TestKeyHandler_QuitFromFormOnlyWithoutResults(t *testing.T) {
	app, _ := newTestApp(t)
	app.view = ViewSearch

	_, cmd := app.keyHandler.navigateBack()
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestSanitizeKeywords(t *testing.T) {
	assert.Equal(t, "garden station", sanitizeKeywords("  garden \t\n station  "))
	assert.Equal(t, "", sanitizeKeywords("   "))
	assert.Len(t, sanitizeKeywords(strings.Repeat("a", 300)), 256)
}
