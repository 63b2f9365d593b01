package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/alertguide/pkg/assets"
	"github.com/vanderheijden86/alertguide/pkg/guide"
	"github.com/vanderheijden86/alertguide/pkg/metrics"
)

// RegionLookup returns the image region state for a reference.
type RegionLookup func(ref string) ImageRegion

// StepRenderer turns a step sequence into cards. It keeps no state between
// calls: output depends only on its arguments and the region lookup.
type StepRenderer struct {
	theme     Theme
	fallback  guide.FallbackCopy
	checklist string
	width     int
}

// NewStepRenderer builds a renderer for cards width cells wide.
func NewStepRenderer(theme Theme, g *guide.Guide, width int) StepRenderer {
	return StepRenderer{
		theme:     theme,
		fallback:  g.Fallback,
		checklist: g.Checklist,
		width:     width,
	}
}

// Width returns the total card width including borders.
func (s StepRenderer) Width() int { return s.width }

// RenderCards renders one card per step, in ordinal order.
func (s StepRenderer) RenderCards(seq guide.Sequence, dir guide.Direction, lookup RegionLookup) []string {
	defer metrics.Timer(metrics.CardRender)()

	cards := make([]string, 0, seq.Len())
	for i := 0; i < seq.Len(); i++ {
		step := seq.At(i)
		region := ImageRegion{Ref: step.ImageRef, Status: assets.StatusLoading}
		if lookup != nil {
			region = lookup(step.ImageRef)
		}
		cards = append(cards, s.RenderCard(step, dir, region))
	}
	return cards
}

// Render renders the whole sequence as one block.
func (s StepRenderer) Render(seq guide.Sequence, dir guide.Direction, lookup RegionLookup) string {
	return strings.Join(s.RenderCards(seq, dir, lookup), "\n\n")
}

// RenderCard renders a single step card: header row with ordinal badge,
// title and trend icon, then description, checklist hint and image region.
func (s StepRenderer) RenderCard(step guide.StepRecord, dir guide.Direction, region ImageRegion) string {
	t := s.theme
	r := t.Renderer
	accent := t.Accent(dir)

	inner := s.width - 4 // border + horizontal padding
	if inner < 20 {
		inner = 20
	}

	badge := r.NewStyle().
		Bold(true).
		Foreground(ThemeFg("#FFFFFF")).
		Background(accent).
		Padding(0, 1).
		Render(fmt.Sprintf("%d", step.Ordinal))
	icon := r.NewStyle().Foreground(accent).Bold(true).Render(t.Icon(dir))

	titleWidth := inner - lipgloss.Width(badge) - lipgloss.Width(icon) - 2
	title := r.NewStyle().Bold(true).Foreground(t.Text).
		Render(padRight(truncate(step.Title, titleWidth), titleWidth))
	header := lipgloss.JoinHorizontal(lipgloss.Center, badge, " ", title, " ", icon)

	rule := r.NewStyle().Foreground(t.Soft(dir)).Render(strings.Repeat("─", inner))

	parts := []string{header, rule, renderRichText(step.Description, t, inner)}
	if s.checklist != "" {
		check := r.NewStyle().Foreground(t.Info).Render("✔ ")
		hint := r.NewStyle().Foreground(t.Muted).Width(inner - 2).Render(s.checklist)
		parts = append(parts, "", lipgloss.JoinHorizontal(lipgloss.Top, check, hint))
	}
	parts = append(parts, "", renderImageRegion(region, t, s.fallback, inner))

	card := r.NewStyle().
		Border(t.CardBorder).
		BorderForeground(accent).
		Padding(0, 1).
		Width(s.width - 2)

	return card.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
