package export

import (
	"io"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/alertguide/pkg/assets"
	"github.com/vanderheijden86/alertguide/pkg/guide"
	"github.com/vanderheijden86/alertguide/pkg/version"
)

// Document is the JSON form of the guide.
type Document struct {
	Version  string     `json:"version"`
	Title    string     `json:"title"`
	Subtitle string     `json:"subtitle,omitempty"`
	Notice   string     `json:"notice,omitempty"`
	Tracks   []TrackDoc `json:"tracks"`
}

// TrackDoc is one direction.
type TrackDoc struct {
	Direction guide.Direction `json:"direction"`
	Tab       string          `json:"tab"`
	Heading   string          `json:"heading"`
	StepCount int             `json:"step_count"`
	Steps     []StepDoc       `json:"steps"`
	Summary   SummaryDoc      `json:"summary"`
}

// StepDoc is one card. Image fields beyond the reference are filled only
// when a store was supplied.
type StepDoc struct {
	Ordinal             int        `json:"ordinal"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	DescriptionMarkdown string     `json:"description_markdown"`
	Image               string     `json:"image"`
	ImageInfo           *ImageInfo `json:"image_info,omitempty"`
}

// ImageInfo reports how an image reference resolved.
type ImageInfo struct {
	Status string `json:"status"`
	Format string `json:"format,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Error  string `json:"error,omitempty"`
}

// SummaryDoc is the summary box entry for one direction.
type SummaryDoc struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// BuildDocument converts g. With a non-nil store every image is resolved and
// its outcome recorded.
func BuildDocument(g *guide.Guide, store *assets.Store) Document {
	doc := Document{
		Version:  version.Version,
		Title:    g.Title,
		Subtitle: g.Subtitle,
		Notice:   g.Notice.PlainText(),
	}
	for _, d := range guide.Directions {
		track := g.Track(d)
		td := TrackDoc{
			Direction: d,
			Tab:       track.Tab,
			Heading:   track.Heading,
			StepCount: track.Steps.Len(),
			Summary:   SummaryDoc{Title: track.Summary.Title, Items: summaryItems(track.Summary.Items)},
		}
		for _, step := range track.Steps.Steps() {
			sd := StepDoc{
				Ordinal:             step.Ordinal,
				Title:               step.Title,
				Description:         step.Description.PlainText(),
				DescriptionMarkdown: richTextMarkdown(step.Description),
				Image:               step.ImageRef,
			}
			if store != nil {
				sd.ImageInfo = imageInfo(store, step.ImageRef)
			}
			td.Steps = append(td.Steps, sd)
		}
		doc.Tracks = append(doc.Tracks, td)
	}
	return doc
}

// WriteJSON writes the document for g as indented JSON.
func WriteJSON(w io.Writer, g *guide.Guide, store *assets.Store) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(BuildDocument(g, store))
}

func imageInfo(store *assets.Store, ref string) *ImageInfo {
	img, err := store.Load(ref)
	if err != nil {
		return &ImageInfo{Status: assets.StatusFailed.String(), Error: err.Error()}
	}
	return &ImageInfo{
		Status: assets.StatusLoaded.String(),
		Format: img.Format,
		Width:  img.Width,
		Height: img.Height,
	}
}

// summaryItems flattens summary rich text to one string per list item or
// paragraph.
func summaryItems(rt guide.RichText) []string {
	var items []string
	for _, n := range rt {
		switch v := n.(type) {
		case guide.List:
			for _, item := range v.Items {
				items = append(items, guide.InlineText(item))
			}
		case guide.Paragraph:
			items = append(items, guide.InlineText(v.Children))
		}
	}
	return items
}
