package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/roost/internal/config"
)

// AppName is the binary and data directory name.
const AppName = "roost"

// ASCII art logo lines for roost - canonical definition
var LogoLines = []string{
	"▄▄▄▄▄    ▄▄▄▄    ▄▄▄▄   ▄▄▄▄▄ ▄▄▄▄▄▄",
	"██  ▀█  ██  ██  ██  ██ ██▀      ██",
	"██▀▀█▄  ██  ██  ██  ██  ▀▀▀█▄   ██",
	"██   ██  ▀██▀    ▀██▀  ▄▄▄▄█▀   ██",
}

// Short form for narrow headers
const CompactLogo = `roost ›`

// Tagline is printed under the logo by ShowBanner.
const Tagline = "Property Search"

// Banner gradient colors
var BannerColors = []lipgloss.Color{
	lipgloss.Color("#FF6B6B"),
	lipgloss.Color("#FFA86B"),
	lipgloss.Color("#95E1D3"),
	lipgloss.Color("#4ECDC4"),
	lipgloss.Color("#FF6B6B"),
}

// Brand colors. Every entry except FavouriteColor can be overridden from
// the [ui.colors] config table.
var (
	// Brand accents
	PrimaryColor   = lipgloss.Color("#FF6B6B") // Coral - prices, logo
	SecondaryColor = lipgloss.Color("#4ECDC4") // Teal - headings
	AccentColor    = lipgloss.Color("#95E1D3") // Mint - selection

	// UI colors
	BackgroundColor = lipgloss.Color("#1A1A2E") // Deep night
	SurfaceColor    = lipgloss.Color("#16213E") // Midnight blue
	TextColor       = lipgloss.Color("#EAEAEA") // Soft white
	MutedColor      = lipgloss.Color("#94A3B8") // Muted gray-blue

	// Status colors
	FavouriteColor = lipgloss.Color("#FFE66D") // Bright yellow - saved
	ErrorColor     = lipgloss.Color("#F87171") // Red
	SuccessColor   = lipgloss.Color("#4ADE80") // Green
)

// Styled components. Rebuilt by ApplyColors.
var (
	LogoStyle          lipgloss.Style
	TitleStyle         lipgloss.Style
	HeaderStyle        lipgloss.Style
	StatusBarStyle     lipgloss.Style
	PriceStyle         lipgloss.Style
	FavouriteStyle     lipgloss.Style
	SelectedItemStyle  lipgloss.Style
	HelpStyle          lipgloss.Style
	LabelStyle         lipgloss.Style
	ErrorMessageStyle  lipgloss.Style
	SeparatorStyle     lipgloss.Style
	StatusInfoStyle    lipgloss.Style
	StatusSuccessStyle lipgloss.Style
	StatusWarnStyle    lipgloss.Style
	StatusErrorStyle   lipgloss.Style

	// Empty style for resetting
	EmptyStyle = lipgloss.NewStyle()
)

func init() {
	buildStyles()
}

// buildStyles derives every style from the current palette.
func buildStyles() {
	LogoStyle = lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Bold(true)

	TitleStyle = lipgloss.NewStyle().
		Foreground(TextColor).
		Background(SurfaceColor).
		Bold(true).
		Padding(0, 2)

	HeaderStyle = lipgloss.NewStyle().
		Foreground(SecondaryColor).
		Bold(true)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(MutedColor).
		Padding(0, 1)

	PriceStyle = lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Bold(true)

	FavouriteStyle = lipgloss.NewStyle().
		Foreground(FavouriteColor).
		Bold(true)

	SelectedItemStyle = lipgloss.NewStyle().
		Foreground(BackgroundColor).
		Background(AccentColor).
		Bold(true)

	HelpStyle = lipgloss.NewStyle().
		Foreground(MutedColor).
		Italic(true)

	LabelStyle = lipgloss.NewStyle().
		Foreground(TextColor).
		Width(14)

	// Error display style
	ErrorMessageStyle = lipgloss.NewStyle().
		Foreground(ErrorColor).
		Bold(true)

	SeparatorStyle = lipgloss.NewStyle().
		Foreground(MutedColor)

	// Status styles by severity
	StatusInfoStyle = lipgloss.NewStyle().
		Foreground(MutedColor)

	StatusSuccessStyle = lipgloss.NewStyle().
		Foreground(SuccessColor)

	StatusWarnStyle = lipgloss.NewStyle().
		Foreground(FavouriteColor)

	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ErrorColor).
		Bold(true)
}

// ApplyColors swaps the palette for the configured one. Empty entries keep
// the built-in color.
func ApplyColors(c config.UIColors) {
	set := func(dst *lipgloss.Color, v string) {
		if v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	set(&PrimaryColor, c.Primary)
	set(&SecondaryColor, c.Secondary)
	set(&AccentColor, c.Accent)
	set(&BackgroundColor, c.Background)
	set(&SurfaceColor, c.Surface)
	set(&TextColor, c.Text)
	set(&MutedColor, c.Muted)
	set(&ErrorColor, c.Error)
	set(&SuccessColor, c.Success)
	buildStyles()
}

// ContentWrapper returns a style for wrapping content with width and height constraints
func ContentWrapper(width, height int) lipgloss.Style {
	return EmptyStyle.Width(width).Height(height).MaxHeight(height)
}

// GetWelcomeMessage is the banner shown above an untouched search form.
func GetWelcomeMessage(favouritesKey string) string {
	return GetCompactBanner(fmt.Sprintf("Fill in the form and press enter • %s: favourites", favouritesKey))
}

// GetCompactBanner renders the logo with message centred underneath.
func GetCompactBanner(message string) string {
	var coloredLines []string
	for _, line := range LogoLines {
		coloredLines = append(coloredLines, LogoStyle.Render(line))
	}

	logo := lipgloss.JoinVertical(lipgloss.Center, coloredLines...)

	return lipgloss.JoinVertical(
		lipgloss.Center,
		logo,
		"",
		HelpStyle.Render(message),
	)
}

// ShowBanner prints the boxed startup banner to stdout.
func ShowBanner(version string) {
	// Logo lines plus a spacer before the tagline
	lines := make([]string, len(LogoLines)+1)
	copy(lines, LogoLines)
	lines[len(LogoLines)] = ""

	// Tagline carries the version for release builds only
	versionTag := version
	if versionTag != "" && versionTag != "dev" {
		// prefix with 'v' if not already prefixed
		if versionTag[0] != 'v' && versionTag[0] != 'V' {
			versionTag = "v" + versionTag
		}
		lines = append(lines, fmt.Sprintf("    %s %s", Tagline, versionTag))
	} else {
		lines = append(lines, "    "+Tagline)
	}

	// Gradient by line index
	var coloredLines []string
	for i, line := range lines {
		if line == "" {
			coloredLines = append(coloredLines, line)
			continue
		}
		style := lipgloss.NewStyle().
			Foreground(BannerColors[i%len(BannerColors)]).
			Bold(true)
		coloredLines = append(coloredLines, style.Render(line))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, coloredLines...)

	separator := lipgloss.NewStyle().
		Foreground(MutedColor).
		Render("◆ ─────────────────────────── ◆")

	banner := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(SecondaryColor).
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Center, content, "", separator))

	fmt.Println(banner)
}
