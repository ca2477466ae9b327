package tui

import (
	"fmt"
	"strings"

	"github.com/pders01/roost/internal/favourites"
)

// Canonical short status messages used across the app.
const (
	MsgSearching         = "Searching…"
	MsgNoResults         = "No properties match"
	MsgNoFavourites      = "No favourites yet"
	MsgFavouritesCleared = "Favourites cleared"
	MsgNoMedia           = "No media for this listing"
	MsgSearchFirst       = "Run a search first"
)

func MsgResultsCount(n int) string {
	if n == 1 {
		return "1 result"
	}
	return fmt.Sprintf("%d results", n)
}

func MsgSortedBy(label string) string {
	return "Sorted by " + strings.ToLower(label)
}

func MsgFavouriteAdded(location string) string {
	return fmt.Sprintf("Saved '%s'", strings.TrimSpace(location))
}

func MsgFavouriteRemoved(location string) string {
	return fmt.Sprintf("Removed '%s'", strings.TrimSpace(location))
}

func MsgOpened(label, viewer string) string {
	if viewer == "" {
		return "Opened " + strings.ToLower(label)
	}
	return fmt.Sprintf("Opened %s with %s", strings.ToLower(label), viewer)
}

// MsgRestored reports the outcome of loading favourites at startup. An
// empty string means there is nothing worth telling the user.
func MsgRestored(outcome favourites.RestoreOutcome, n int) string {
	switch outcome {
	case favourites.RestoredSnapshot:
		if n == 1 {
			return "Restored 1 favourite"
		}
		return fmt.Sprintf("Restored %d favourites", n)
	case favourites.RecoveredFromCorruption:
		return "Saved favourites were unreadable and have been reset"
	default:
		return ""
	}
}
