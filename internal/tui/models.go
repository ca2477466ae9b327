package tui

type View int

const (
	ViewSearch View = iota
	ViewResults
	ViewFavourites
	ViewDetail
	ViewMedia
	ViewClearConfirm
)

func (v View) String() string {
	switch v {
	case ViewSearch:
		return "search"
	case ViewResults:
		return "results"
	case ViewFavourites:
		return "favourites"
	case ViewDetail:
		return "detail"
	case ViewMedia:
		return "media"
	case ViewClearConfirm:
		return "clear-confirm"
	default:
		return "unknown"
	}
}
