package theme

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
)

// Color palette: pond blues with a duck-bill accent
var (
	Primary   = lipgloss.Color("#0EA5E9") // Sky
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// categoryPalette maps the named color tags used by the built-in WADDLE
// categories to their badge colors.
var categoryPalette = map[string]color.Color{
	"fuchsia": lipgloss.Color("#C026D3"), // W  Wrong Identity
	"amber":   lipgloss.Color("#D97706"), // A  Alteration
	"red":     lipgloss.Color("#DC2626"), // D  Disruption
	"orange":  lipgloss.Color("#EA580C"), // D  Denial
	"blue":    lipgloss.Color("#2563EB"), // L  Leakage of Information
	"emerald": lipgloss.Color("#059669"), // E  Elevation of Privilege
}

// CategoryColor resolves a category color tag. A tag is either a palette
// name or a "#RRGGBB" hex value; anything else falls back to Primary.
func CategoryColor(tag string) color.Color {
	if c, ok := categoryPalette[strings.ToLower(tag)]; ok {
		return c
	}
	if len(tag) == 7 && tag[0] == '#' {
		return lipgloss.Color(tag)
	}
	return Primary
}

// Badge renders a short label on a colored background.
func Badge(label string, bg color.Color) string {
	return lipgloss.NewStyle().
		Background(bg).
		Foreground(Text).
		Bold(true).
		Padding(0, 1).
		Render(label)
}
