package tui

import "github.com/charmbracelet/lipgloss"

// renderHeader puts title and a muted subtitle on one line, cutting the
// subtitle first when the terminal is narrow.
func renderHeader(title, subtitle string, width int) string {
	head := HeaderStyle.Render(truncateEnd(title, width-2))
	if subtitle == "" {
		return head
	}
	room := width - 2 - lipgloss.Width(head) - 3
	if room < 8 {
		return head
	}
	return head + renderMuted(" · "+truncateEnd(subtitle, room))
}

// renderFormFrame boxes the search form. width is the inner content width.
func renderFormFrame(content string, width int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(AccentColor).
		Padding(0, 1).
		Width(width + 4).
		Render(content)
}

// renderNotice is the placeholder for an empty list: a headline and a hint.
func renderNotice(width, height int, headline, hint string) string {
	return renderPlaced(width, height, lipgloss.JoinVertical(
		lipgloss.Center,
		HeaderStyle.Render(headline),
		"",
		renderHelp(hint),
	))
}

func renderPlaced(width, height int, content string) string {
	if width <= 0 || height <= 0 {
		return content
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func renderMuted(text string) string {
	return lipgloss.NewStyle().Foreground(MutedColor).Render(text)
}

func renderHelp(text string) string {
	return HelpStyle.Render(text)
}
