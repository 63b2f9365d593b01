package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/alertguide/pkg/assets"
	"github.com/vanderheijden86/alertguide/pkg/guide"
)

const (
	imageGlyph   = "▣"
	failureGlyph = "⚠"
	loadingGlyph = "…"

	imageRegionLines = 3
)

// ImageRegion is the render state of one step's screenshot.
type ImageRegion struct {
	Ref    string
	Status assets.Status
	Image  assets.Image
	Err    error
}

// regionFromStore seeds a region from whatever the store already knows.
func regionFromStore(s *assets.Store, ref string) ImageRegion {
	if s == nil {
		return ImageRegion{Ref: ref, Status: assets.StatusLoading}
	}
	status, img, err := s.Peek(ref)
	return ImageRegion{Ref: ref, Status: status, Image: img, Err: err}
}

// renderImageRegion draws the region for its status. A failed region shows
// the fallback notice with the literal reference and no image element.
func renderImageRegion(region ImageRegion, theme Theme, fallback guide.FallbackCopy, width int) string {
	r := theme.Renderer
	inner := width - 2
	if inner < 8 {
		inner = 8
	}

	var body string
	switch region.Status {
	case assets.StatusLoaded:
		img := region.Image
		body = r.NewStyle().Foreground(theme.Info).Render(
			fmt.Sprintf("%s %s %d×%d", imageGlyph, strings.ToUpper(img.Format), img.Width, img.Height))
	case assets.StatusFailed:
		warn := r.NewStyle().Foreground(theme.Warning).Bold(true).
			Render(failureGlyph + " " + fallback.Failed)
		hint := theme.MutedText.Render(fallback.Hint)
		ref := theme.Base.Render(region.Ref)
		body = lipgloss.JoinVertical(lipgloss.Center, warn, hint, ref)
	default:
		body = theme.MutedText.Render(fallback.Loading + " " + loadingGlyph)
	}

	box := r.NewStyle().
		Border(theme.ImageBorder).
		BorderForeground(theme.Border).
		Width(inner).
		Height(imageRegionLines).
		Align(lipgloss.Center, lipgloss.Center)

	caption := r.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Inherit(theme.Caption).
		Render(truncate(region.Ref, width))

	return lipgloss.JoinVertical(lipgloss.Left, box.Render(body), caption)
}
