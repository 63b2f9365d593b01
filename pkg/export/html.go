package export

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/vanderheijden86/alertguide/pkg/assets"
	"github.com/vanderheijden86/alertguide/pkg/guide"
)

const (
	fallbackWidth  = 640
	fallbackHeight = 180
)

// Palette shared by the page CSS and the SVG fallback blocks.
const (
	colorBuy      = "#047857"
	colorSell     = "#BE123C"
	colorBorder   = "#D1D5DB"
	colorMuted    = "#6B7280"
	colorWarning  = "#B45309"
	colorPanel    = "#F9FAFB"
	colorTextDark = "#111827"
)

type htmlPage struct {
	Lang      string
	Title     string
	Subtitle  string
	Notice    template.HTML
	Checklist string
	Tracks    []htmlTrack
	Summary   string
	Colors    map[string]string
}

type htmlTrack struct {
	ID        string
	Tab       string
	Heading   string
	StepCount string
	Accent    string
	Icon      string
	Checked   bool
	Steps     []htmlStep
	Summary   htmlSummary
}

type htmlStep struct {
	Ordinal     int
	Title       string
	Description template.HTML
	Image       string
	Width       int
	Height      int
	Fallback    template.HTML // set when the image cannot be loaded
}

type htmlSummary struct {
	Title string
	Items template.HTML
}

// WriteHTML writes a single self-contained page with both tabs. Tabs switch
// with CSS only. With a store, images that fail to resolve are replaced by
// an inline SVG notice naming the missing file.
func WriteHTML(w io.Writer, g *guide.Guide, store *assets.Store) error {
	page := htmlPage{
		Lang:      "ko",
		Title:     g.Title,
		Subtitle:  g.Subtitle,
		Notice:    richTextHTML(g.Notice),
		Checklist: g.Checklist,
		Summary:   g.SummaryTitle,
		Colors: map[string]string{
			"buy": colorBuy, "sell": colorSell, "border": colorBorder,
			"muted": colorMuted, "panel": colorPanel, "text": colorTextDark,
		},
	}

	for _, d := range guide.Directions {
		track := g.Track(d)
		ht := htmlTrack{
			ID:        d.String(),
			Tab:       track.Tab,
			Heading:   track.Heading,
			StepCount: g.StepCountLabel(d),
			Accent:    accentColor(d),
			Icon:      directionIcon(d),
			Checked:   d == guide.Buy,
			Summary:   htmlSummary{Title: track.Summary.Title, Items: richTextHTML(track.Summary.Items)},
		}
		for _, step := range track.Steps.Steps() {
			hs := htmlStep{
				Ordinal:     step.Ordinal,
				Title:       step.Title,
				Description: richTextHTML(step.Description),
				Image:       step.ImageRef,
			}
			if store != nil {
				img, err := store.Load(step.ImageRef)
				if err != nil {
					hs.Fallback = FallbackSVG(g.Fallback, step.ImageRef)
				} else {
					hs.Width, hs.Height = img.Width, img.Height
				}
			}
			ht.Steps = append(ht.Steps, hs)
		}
		page.Tracks = append(page.Tracks, ht)
	}

	return pageTemplate.Execute(w, page)
}

// FallbackSVG draws the missing-image notice: warning line, hint and the
// literal file reference inside a dashed frame.
func FallbackSVG(fc guide.FallbackCopy, ref string) template.HTML {
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(fallbackWidth, fallbackHeight,
		fmt.Sprintf(`viewBox="0 0 %d %d"`, fallbackWidth, fallbackHeight),
		`role="img"`,
		fmt.Sprintf(`aria-label="%s"`, template.HTMLEscapeString(fc.Failed+" "+ref)))
	canvas.Rect(1, 1, fallbackWidth-2, fallbackHeight-2,
		fmt.Sprintf("fill:%s;stroke:%s;stroke-width:2;stroke-dasharray:6,4", colorPanel, colorBorder))

	cx := fallbackWidth / 2
	canvas.Text(cx, 70, "⚠ "+fc.Failed,
		fmt.Sprintf("fill:%s;font-size:18px;font-weight:bold;text-anchor:middle;font-family:sans-serif", colorWarning))
	canvas.Text(cx, 100, fc.Hint,
		fmt.Sprintf("fill:%s;font-size:14px;text-anchor:middle;font-family:sans-serif", colorMuted))
	canvas.Text(cx, 128, ref,
		fmt.Sprintf("fill:%s;font-size:14px;text-anchor:middle;font-family:monospace", colorTextDark))
	canvas.End()

	// svgo writes an XML prolog; inline SVG must start at the element.
	out := buf.String()
	if i := strings.Index(out, "<svg"); i > 0 {
		out = out[i:]
	}
	return template.HTML(out)
}

func accentColor(d guide.Direction) string {
	if d == guide.Sell {
		return colorSell
	}
	return colorBuy
}

func directionIcon(d guide.Direction) string {
	if d == guide.Sell {
		return "▼"
	}
	return "▲"
}

// richTextHTML renders paragraphs as <p>, lists as <ul> and emphasis as
// <strong>. All text is escaped.
func richTextHTML(rt guide.RichText) template.HTML {
	var sb strings.Builder
	for _, n := range rt {
		switch v := n.(type) {
		case guide.Paragraph:
			sb.WriteString("<p>" + inlineHTML(v.Children) + "</p>")
		case guide.List:
			sb.WriteString("<ul>")
			for _, item := range v.Items {
				sb.WriteString("<li>" + inlineHTML(item) + "</li>")
			}
			sb.WriteString("</ul>")
		default:
			sb.WriteString("<p>" + inlineHTML([]guide.Node{v}) + "</p>")
		}
	}
	return template.HTML(sb.String())
}

func inlineHTML(nodes []guide.Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		switch v := n.(type) {
		case guide.Text:
			sb.WriteString(template.HTMLEscapeString(v.Value))
		case guide.Emphasis:
			sb.WriteString("<strong>" + inlineHTML(v.Children) + "</strong>")
		case guide.Paragraph:
			sb.WriteString(inlineHTML(v.Children))
		}
	}
	return sb.String()
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { margin: 0; font-family: system-ui, sans-serif; background: {{index .Colors "panel"}}; color: {{index .Colors "text"}}; }
header { position: sticky; top: 0; background: #fff; border-bottom: 1px solid {{index .Colors "border"}}; padding: 1rem 1.5rem; }
header h1 { margin: 0; font-size: 1.4rem; }
header p { margin: .25rem 0 0; color: {{index .Colors "muted"}}; }
main { max-width: 56rem; margin: 0 auto; padding: 1.5rem; }
.notice { border-left: 4px solid #1D4ED8; background: #EFF6FF; padding: .5rem 1rem; margin-bottom: 1.5rem; }
.tabs > input { display: none; }
.tabs > label { display: inline-block; padding: .6rem 1.2rem; border-radius: 999px; cursor: pointer; color: {{index .Colors "muted"}}; }
.panel { display: none; }
{{range .Tracks}}#tab-{{.ID}}:checked + label { background: {{.Accent}}; color: #fff; font-weight: bold; }
#tab-{{.ID}}:checked ~ #panel-{{.ID}} { display: block; }
{{end}}.card { background: #fff; border: 1px solid {{index .Colors "border"}}; border-radius: 12px; padding: 1rem 1.25rem; margin: 1rem 0; }
.card h3 { display: flex; align-items: center; gap: .6rem; margin: 0 0 .5rem; }
.badge { color: #fff; border-radius: 999px; padding: 0 .6rem; font-size: .9rem; }
.check { color: {{index .Colors "muted"}}; font-size: .9rem; }
.shot img, .shot svg { max-width: 100%; height: auto; border: 1px solid {{index .Colors "border"}}; border-radius: 8px; }
.caption { text-align: center; color: {{index .Colors "muted"}}; font-style: italic; font-size: .85rem; }
.summary { display: grid; grid-template-columns: 1fr 1fr; gap: 1rem; background: #fff; border: 1px solid {{index .Colors "border"}}; border-radius: 12px; padding: 1rem 1.25rem; }
@media (max-width: 40rem) { .summary { grid-template-columns: 1fr; } }
</style>
</head>
<body>
<header>
<h1>{{.Title}}</h1>
{{if .Subtitle}}<p>{{.Subtitle}}</p>{{end}}
</header>
<main>
{{if .Notice}}<div class="notice">{{.Notice}}</div>{{end}}
<div class="tabs">
{{range .Tracks}}<input type="radio" name="direction" id="tab-{{.ID}}"{{if .Checked}} checked{{end}}><label for="tab-{{.ID}}">{{.Icon}} {{.Tab}}</label>
{{end}}{{$checklist := .Checklist}}{{range .Tracks}}{{$accent := .Accent}}<section class="panel" id="panel-{{.ID}}">
<h2 style="color: {{$accent}}">{{.Icon}} {{.Heading}} <small>{{.StepCount}}</small></h2>
{{range .Steps}}<article class="card">
<h3><span class="badge" style="background: {{$accent}}">{{.Ordinal}}</span>{{.Title}}</h3>
{{.Description}}
{{if $checklist}}<p class="check">✔ {{$checklist}}</p>{{end}}
<div class="shot">{{if .Fallback}}{{.Fallback}}{{else}}<img src="{{.Image}}" alt="{{.Title}}"{{if .Width}} width="{{.Width}}" height="{{.Height}}"{{end}}>{{end}}</div>
<p class="caption">{{.Image}}</p>
</article>
{{end}}</section>
{{end}}</div>
<h2>{{.Summary}}</h2>
<div class="summary">
{{range .Tracks}}<div><h3 style="color: {{.Accent}}">{{.Icon}} {{.Summary.Title}}</h3>{{.Summary.Items}}</div>
{{end}}</div>
</main>
</body>
</html>
`))
