package tui

import "github.com/mattn/go-runewidth"

const ellipsis = "…"

// truncateEnd fits s into limit terminal cells, ending with an ellipsis when
// anything was cut.
func truncateEnd(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= limit {
		return s
	}
	return runewidth.Truncate(s, limit, ellipsis)
}

// truncateMiddle keeps both ends of s, which matters for media paths where
// the file name sits at the end.
func truncateMiddle(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	w := runewidth.StringWidth(s)
	if w <= limit {
		return s
	}
	if limit == 1 {
		return ellipsis
	}
	keep := limit - 1
	left := keep / 2
	right := keep - left
	return runewidth.Truncate(s, left, "") + ellipsis + runewidth.TruncateLeft(s, w-right, "")
}
