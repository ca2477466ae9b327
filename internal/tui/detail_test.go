package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/roost/internal/catalog"
	"github.com/pders01/roost/internal/config"
)

func TestListingMarkdown(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	l, ok := cat.Get("prop1")
	require.True(t, ok)

	md := ListingMarkdown(l, false)
	assert.True(t, strings.HasPrefix(md, "# "+l.Location+"\n"))
	assert.Contains(t, md, "**£475,000** · 3 bedrooms · House")
	assert.Contains(t, md, "*Added 12 October 2022*")
	assert.Contains(t, md, "- Floor plan: `images/prop1floorplan.pdf`")
	assert.Contains(t, md, "[View details](properties/prop1.html)")
	assert.NotContains(t, md, "saved")
	assert.NotContains(t, md, "<br", "description markup should be stripped")

	assert.Contains(t, ListingMarkdown(l, true), "★ saved")
}

func TestListingMarkdownMinimal(t *testing.T) {
	md := ListingMarkdown(catalog.Listing{
		ID:       "bare",
		Type:     catalog.TypeFlat,
		Bedrooms: 1,
		Price:    100000,
		Location: "Somewhere",
	}, true)

	assert.Contains(t, md, "**£100,000** · 1 bedroom · Flat")
	assert.Contains(t, md, "★ saved")
	assert.NotContains(t, md, "## Media")
	assert.NotContains(t, md, "View details")
}

func TestWrapWidth(t *testing.T) {
	lc := config.ListingConfig{WordWrapMaxWidth: 100, WordWrapMinWidth: 40}

	tests := []struct {
		width, want int
	}{
		{200, 100},
		{100, 90},
		{60, 54},
		{52, 46},
		{45, 41},
		{10, 20},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, wrapWidth(tt.width, lc), "width %d", tt.width)
	}

	assert.Equal(t, 120, wrapWidth(500, config.ListingConfig{}), "zero config falls back to built-in bounds")
}

func TestRenderListing(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	l, _ := cat.Get("prop5")

	out, err := RenderListing(l, false, 100, config.Default().UI.Listing)
	require.NoError(t, err)
	assert.Contains(t, out, "Hampstead")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncateEnd("abc", 5))
	assert.Equal(t, "ab…", truncateEnd("abcdef", 3))
	assert.Equal(t, "", truncateEnd("abc", 0))
	assert.Equal(t, "ab…ef", truncateMiddle("abcdef", 5))
	assert.Equal(t, "images…c1.jpeg", truncateMiddle("images/prop1pic1.jpeg", 14))
}
