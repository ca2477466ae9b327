package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/pders01/roost/internal/catalog"
	"github.com/pders01/roost/internal/config"
)

// ListingMarkdown renders a listing as the markdown shown in the detail view
// and by `roost show`.
func ListingMarkdown(l catalog.Listing, saved bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", l.Location)

	facts := []string{"**" + catalog.FormatPrice(l.Price) + "**", catalog.FormatBedrooms(l.Bedrooms), string(l.Type)}
	if l.Tenure != "" {
		facts = append(facts, l.Tenure)
	}
	b.WriteString(strings.Join(facts, " · "))
	b.WriteString("\n\n")

	if added := l.AddedOn(); !added.IsZero() {
		fmt.Fprintf(&b, "*Added %s*", added.Format("2 January 2006"))
		if saved {
			b.WriteString(" · ★ saved")
		}
		b.WriteString("\n\n")
	} else if saved {
		b.WriteString("★ saved\n\n")
	}

	b.WriteString("---\n\n")
	if desc := catalog.PlainDescription(l.Description); desc != "" {
		b.WriteString(desc)
		b.WriteString("\n\n")
	}

	if refs := l.Media(); len(refs) > 0 {
		b.WriteString("## Media\n\n")
		for i, ref := range refs {
			label := fmt.Sprintf("Image %d", i+1)
			if ref == l.FloorPlan {
				label = "Floor plan"
			}
			fmt.Fprintf(&b, "- %s: `%s`\n", label, ref)
		}
		b.WriteString("\n")
	}

	if l.URL != "" {
		fmt.Fprintf(&b, "[View details](%s)\n", l.URL)
	}
	return b.String()
}

// wrapWidth picks a readable word-wrap width for a terminal of the given
// width, bounded by the listing settings.
func wrapWidth(width int, lc config.ListingConfig) int {
	maxWidth, minWidth := lc.WordWrapMaxWidth, lc.WordWrapMinWidth
	if maxWidth <= 0 {
		maxWidth = 120
	}
	if minWidth <= 0 {
		minWidth = 40
	}

	w := (width * 9) / 10
	if w > maxWidth {
		w = maxWidth
	}
	if w < minWidth {
		w = minWidth
	}
	if width < 50 {
		w = width - 4
		if w < 20 {
			w = 20
		}
	}
	return w
}

// NewRenderer builds a glamour renderer sized for a terminal of width columns.
func NewRenderer(width int, lc config.ListingConfig) (*glamour.TermRenderer, error) {
	return glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrapWidth(width, lc)),
	)
}

// RenderListing renders a listing to styled terminal text.
func RenderListing(l catalog.Listing, saved bool, width int, lc config.ListingConfig) (string, error) {
	r, err := NewRenderer(width, lc)
	if err != nil {
		return "", fmt.Errorf("init renderer: %w", err)
	}
	out, err := r.Render(ListingMarkdown(l, saved))
	if err != nil {
		return "", fmt.Errorf("render listing: %w", err)
	}
	return out, nil
}
