package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/alertguide/pkg/guide"
)

const bulletGlyph = "• "

// renderInline styles a run of inline nodes. Emphasis is bold; nested
// emphasis stays bold.
func renderInline(nodes []guide.Node, base, strong lipgloss.Style) string {
	var b strings.Builder
	for _, n := range nodes {
		switch v := n.(type) {
		case guide.Text:
			b.WriteString(base.Render(v.Value))
		case guide.Emphasis:
			b.WriteString(renderInline(v.Children, strong, strong))
		case guide.Paragraph:
			b.WriteString(renderInline(v.Children, base, strong))
		}
	}
	return b.String()
}

// renderRichText lays out paragraphs and bullet lists to width cells.
func renderRichText(rt guide.RichText, theme Theme, width int) string {
	if width < 10 {
		width = 10
	}
	r := theme.Renderer
	base := r.NewStyle().Foreground(theme.Subtext)
	strong := theme.Bold
	wrap := r.NewStyle().Width(width)
	itemWrap := r.NewStyle().Width(width - lipgloss.Width(bulletGlyph))
	bullet := theme.MutedText.Render(bulletGlyph)
	indent := strings.Repeat(" ", lipgloss.Width(bulletGlyph))

	var blocks []string
	for _, block := range rt {
		switch v := block.(type) {
		case guide.Paragraph:
			blocks = append(blocks, wrap.Render(renderInline(v.Children, base, strong)))
		case guide.List:
			var items []string
			for _, item := range v.Items {
				lines := strings.Split(itemWrap.Render(renderInline(item, base, strong)), "\n")
				for i := range lines {
					if i == 0 {
						lines[i] = bullet + lines[i]
					} else {
						lines[i] = indent + lines[i]
					}
				}
				items = append(items, strings.Join(lines, "\n"))
			}
			blocks = append(blocks, strings.Join(items, "\n"))
		default:
			blocks = append(blocks, wrap.Render(renderInline([]guide.Node{v}, base, strong)))
		}
	}
	return strings.Join(blocks, "\n")
}
