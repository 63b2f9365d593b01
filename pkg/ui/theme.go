package ui

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/alertguide/pkg/guide"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeFg returns the given hex color for ANSI256+ terminals and a safe
// ANSI white (color 7) for 16-color or lower terminals.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

// Theme is the visual configuration of the page. The guide has one layout;
// presets only swap palette and borders.
type Theme struct {
	Name     string
	Renderer *lipgloss.Renderer

	Primary lipgloss.AdaptiveColor
	Text    lipgloss.AdaptiveColor
	Subtext lipgloss.AdaptiveColor
	Muted   lipgloss.AdaptiveColor
	Border  lipgloss.AdaptiveColor
	Info    lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor

	// Direction accents: badge, icon, active tab.
	Buy      lipgloss.AdaptiveColor
	BuySoft  lipgloss.AdaptiveColor
	Sell     lipgloss.AdaptiveColor
	SellSoft lipgloss.AdaptiveColor

	CardBorder   lipgloss.Border
	ImageBorder  lipgloss.Border
	SummaryPanel lipgloss.AdaptiveColor

	// Pre-computed styles
	Base      lipgloss.Style
	Bold      lipgloss.Style
	MutedText lipgloss.Style
	Caption   lipgloss.Style
}

// ClassicTheme is the light card look: white cards, emerald/rose accents.
func ClassicTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Name:     "classic",
		Renderer: r,

		Primary: lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#60A5FA"}, // Blue
		Text:    lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F3F4F6"},
		Subtext: lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#D1D5DB"},
		Muted:   lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"},
		Border:  lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"},
		Info:    lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#93C5FD"},
		Warning: lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"},

		Buy:      lipgloss.AdaptiveColor{Light: "#047857", Dark: "#34D399"}, // Emerald
		BuySoft:  lipgloss.AdaptiveColor{Light: "#D1FAE5", Dark: "#064E3B"},
		Sell:     lipgloss.AdaptiveColor{Light: "#BE123C", Dark: "#FB7185"}, // Rose
		SellSoft: lipgloss.AdaptiveColor{Light: "#FFE4E6", Dark: "#4C0519"},

		CardBorder:   lipgloss.RoundedBorder(),
		ImageBorder:  lipgloss.NormalBorder(),
		SummaryPanel: lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#374151"},
	}
	return t.withStyles()
}

// DarkTheme is the Dracula-flavored variant with heavier borders.
func DarkTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Name:     "dark",
		Renderer: r,

		Primary: lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}, // Purple
		Text:    lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F8F8F2"},
		Subtext: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BFBFBF"},
		Muted:   lipgloss.AdaptiveColor{Light: "#666666", Dark: "#6272A4"},
		Border:  lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"},
		Info:    lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"},
		Warning: lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"},

		Buy:      lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"},
		BuySoft:  lipgloss.AdaptiveColor{Light: "#D4EDDA", Dark: "#1A3D2A"},
		Sell:     lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"},
		SellSoft: lipgloss.AdaptiveColor{Light: "#F8D7DA", Dark: "#3D1A1A"},

		CardBorder:   lipgloss.ThickBorder(),
		ImageBorder:  lipgloss.RoundedBorder(),
		SummaryPanel: lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#282A36"},
	}
	return t.withStyles()
}

func (t Theme) withStyles() Theme {
	r := t.Renderer
	t.Base = r.NewStyle().Foreground(t.Text)
	t.Bold = r.NewStyle().Foreground(t.Text).Bold(true)
	t.MutedText = r.NewStyle().Foreground(t.Muted)
	t.Caption = r.NewStyle().Foreground(t.Muted).Italic(true)
	return t
}

var themePresets = map[string]func(*lipgloss.Renderer) Theme{
	"classic": ClassicTheme,
	"dark":    DarkTheme,
}

// ThemeNames lists the available presets.
func ThemeNames() []string {
	names := make([]string, 0, len(themePresets))
	for n := range themePresets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ThemeByName returns the named preset. An empty name selects "classic".
func ThemeByName(name string, r *lipgloss.Renderer) (Theme, error) {
	if name == "" {
		name = "classic"
	}
	preset, ok := themePresets[strings.ToLower(name)]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(ThemeNames(), ", "))
	}
	return preset(r), nil
}

// Accent returns the direction's strong accent color.
func (t Theme) Accent(d guide.Direction) lipgloss.AdaptiveColor {
	if d == guide.Sell {
		return t.Sell
	}
	return t.Buy
}

// Soft returns the direction's tinted background color.
func (t Theme) Soft(d guide.Direction) lipgloss.AdaptiveColor {
	if d == guide.Sell {
		return t.SellSoft
	}
	return t.BuySoft
}

// Icon returns the trend glyph for the direction.
func (t Theme) Icon(d guide.Direction) string {
	if d == guide.Sell {
		return "▼"
	}
	return "▲"
}
