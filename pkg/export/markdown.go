// Package export writes the guide out as a static document: Markdown for
// reading and terminal rendering, a self-contained HTML page, or JSON for
// scripts.
package export

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vanderheijden86/alertguide/pkg/assets"
	"github.com/vanderheijden86/alertguide/pkg/guide"
)

// Markdown renders the whole guide: header, notice, both tracks in tab order
// and the summary.
func Markdown(g *guide.Guide, store *assets.Store) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", g.Title))
	if g.Subtitle != "" {
		sb.WriteString(fmt.Sprintf("*%s*\n\n", g.Subtitle))
	}
	if len(g.Notice) > 0 {
		for _, line := range strings.Split(richTextMarkdown(g.Notice), "\n") {
			sb.WriteString("> " + line + "\n")
		}
		sb.WriteString("\n")
	}

	for _, d := range guide.Directions {
		writeTrack(&sb, g, d, store, 2)
	}

	writeSummary(&sb, g)
	return sb.String()
}

// MarkdownTrack renders a single direction, for terminal output.
func MarkdownTrack(g *guide.Guide, d guide.Direction, store *assets.Store) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", g.Title))
	writeTrack(&sb, g, d, store, 2)

	s := g.Track(d).Summary
	sb.WriteString(fmt.Sprintf("### %s\n\n", s.Title))
	sb.WriteString(richTextMarkdown(s.Items))
	sb.WriteString("\n")
	return sb.String()
}

// WriteMarkdown writes Markdown(g, store) to w.
func WriteMarkdown(w io.Writer, g *guide.Guide, store *assets.Store) error {
	_, err := io.WriteString(w, Markdown(g, store))
	return err
}

func writeTrack(sb *strings.Builder, g *guide.Guide, d guide.Direction, store *assets.Store, level int) {
	track := g.Track(d)
	h := strings.Repeat("#", level)

	sb.WriteString(fmt.Sprintf("%s %s\n\n", h, track.Heading))
	sb.WriteString(fmt.Sprintf("*%s*\n\n", g.StepCountLabel(d)))

	for _, step := range track.Steps.Steps() {
		sb.WriteString(fmt.Sprintf("%s# %d. %s\n\n", h, step.Ordinal, step.Title))
		sb.WriteString(richTextMarkdown(step.Description))
		sb.WriteString("\n")
		if g.Checklist != "" {
			sb.WriteString(fmt.Sprintf("- [ ] %s\n\n", g.Checklist))
		}
		sb.WriteString(imageMarkdown(g, step, store))
		sb.WriteString("\n\n")
	}
}

func writeSummary(sb *strings.Builder, g *guide.Guide) {
	sb.WriteString(fmt.Sprintf("## %s\n\n", g.SummaryTitle))
	for _, d := range guide.Directions {
		s := g.Track(d).Summary
		sb.WriteString(fmt.Sprintf("### %s\n\n", s.Title))
		sb.WriteString(richTextMarkdown(s.Items))
		sb.WriteString("\n")
	}
}

// imageMarkdown links the screenshot, or writes the fallback notice when the
// store knows it cannot be loaded.
func imageMarkdown(g *guide.Guide, step guide.StepRecord, store *assets.Store) string {
	if store != nil {
		if _, err := store.Load(step.ImageRef); err != nil {
			return fmt.Sprintf("> ⚠ **%s**  \n> %s `%s`", g.Fallback.Failed, g.Fallback.Hint, step.ImageRef)
		}
	}
	return fmt.Sprintf("![%s](%s)", escapeAlt(step.Title), escapeURL(step.ImageRef))
}

// richTextMarkdown renders blocks separated by blank lines.
func richTextMarkdown(rt guide.RichText) string {
	var blocks []string
	for _, n := range rt {
		switch v := n.(type) {
		case guide.Paragraph:
			blocks = append(blocks, inlineMarkdown(v.Children))
		case guide.List:
			var items []string
			for _, item := range v.Items {
				items = append(items, "- "+inlineMarkdown(item))
			}
			blocks = append(blocks, strings.Join(items, "\n"))
		default:
			blocks = append(blocks, inlineMarkdown([]guide.Node{v}))
		}
	}
	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

func inlineMarkdown(nodes []guide.Node) string {
	var sb strings.Builder
	for i, n := range nodes {
		switch v := n.(type) {
		case guide.Text:
			sb.WriteString(escapeMarkdown(v.Value))
		case guide.Emphasis:
			var next string
			if i+1 < len(nodes) {
				next = inlineMarkdown(nodes[i+1 : i+2])
			}
			prev, _ := utf8.DecodeLastRuneInString(sb.String())
			first, _ := utf8.DecodeRuneInString(next)
			sb.WriteString(strongMarkdown(guide.InlineText(v.Children), prev, first))
		case guide.Paragraph:
			sb.WriteString(inlineMarkdown(v.Children))
		}
	}
	return sb.String()
}

// strongMarkdown wraps s in ** delimiters. CommonMark only treats a
// delimiter run as an opener or closer when it is flanked correctly: a
// closing ** after punctuation must be followed by whitespace or
// punctuation, so "**가격(값)**을" stays literal. Punctuation that touches a
// word character outside the run is moved outside the delimiters.
func strongMarkdown(s string, prev, next rune) string {
	core := s
	var lead, trail string
	if isWordRune(prev) {
		i := 0
		for i < len(core) {
			r, size := utf8.DecodeRuneInString(core[i:])
			if !isPunctRune(r) {
				break
			}
			i += size
		}
		lead, core = core[:i], core[i:]
	}
	if isWordRune(next) {
		j := len(core)
		for j > 0 {
			r, size := utf8.DecodeLastRuneInString(core[:j])
			if !isPunctRune(r) {
				break
			}
			j -= size
		}
		core, trail = core[:j], core[j:]
	}
	if core == "" {
		return "**" + escapeMarkdown(s) + "**"
	}
	return escapeMarkdown(lead) + "**" + escapeMarkdown(core) + "**" + escapeMarkdown(trail)
}

func isPunctRune(r rune) bool { return unicode.IsPunct(r) || unicode.IsSymbol(r) }

func isWordRune(r rune) bool {
	return r != utf8.RuneError && !unicode.IsSpace(r) && !isPunctRune(r)
}

var markdownEscaper = strings.NewReplacer(
	"\\", "\\\\",
	"*", "\\*",
	"_", "\\_",
	"`", "\\`",
	"[", "\\[",
	"]", "\\]",
)

func escapeMarkdown(s string) string { return markdownEscaper.Replace(s) }

func escapeAlt(s string) string {
	return strings.NewReplacer("[", "(", "]", ")").Replace(s)
}

// escapeURL keeps non-ASCII file names readable but protects the link syntax.
func escapeURL(ref string) string {
	return strings.NewReplacer(" ", "%20", "(", "%28", ")", "%29").Replace(ref)
}
