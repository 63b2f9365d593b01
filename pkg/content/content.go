// Package content decodes guide content from YAML.
//
// The built-in guide is embedded at build time; a user-supplied file with the
// same shape replaces it wholesale:
//
//	title: "..."
//	buy:
//	  tab: "..."
//	  steps:
//	    - title: "..."
//	      image: "매수1.png"
//	      description:
//	        - p: "paragraph with **emphasis**"
//	        - list: ["item", "item"]
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/alertguide/pkg/guide"
	"github.com/vanderheijden86/alertguide/pkg/metrics"
)

//go:embed default.yaml
var defaultYAML []byte

// ErrEmptyBlock is returned for a description block with neither p nor list.
var ErrEmptyBlock = errors.New("description block has neither p nor list")

type blockFile struct {
	P    string   `yaml:"p,omitempty"`
	List []string `yaml:"list,omitempty"`
}

type stepFile struct {
	Title       string      `yaml:"title"`
	Image       string      `yaml:"image"`
	Description []blockFile `yaml:"description"`
}

type summaryFile struct {
	Title string      `yaml:"title"`
	Items []blockFile `yaml:"items"`
}

type trackFile struct {
	Tab     string      `yaml:"tab"`
	Heading string      `yaml:"heading"`
	Summary summaryFile `yaml:"summary"`
	Steps   []stepFile  `yaml:"steps"`
}

type fallbackFile struct {
	Failed  string `yaml:"failed"`
	Hint    string `yaml:"hint"`
	Loading string `yaml:"loading"`
}

type guideFile struct {
	Title        string       `yaml:"title"`
	Subtitle     string       `yaml:"subtitle"`
	Notice       []blockFile  `yaml:"notice"`
	Checklist    string       `yaml:"checklist"`
	StepCount    string       `yaml:"step_count"`
	SummaryTitle string       `yaml:"summary_title"`
	Fallback     fallbackFile `yaml:"fallback"`
	Buy          trackFile    `yaml:"buy"`
	Sell         trackFile    `yaml:"sell"`
}

// Default returns the embedded guide.
func Default() (*guide.Guide, error) {
	g, err := Parse(defaultYAML)
	if err != nil {
		return nil, fmt.Errorf("embedded guide: %w", err)
	}
	return g, nil
}

// DefaultYAML returns the raw embedded guide, for use as a starting template.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultYAML))
	copy(out, defaultYAML)
	return out
}

// Load reads a guide from path. An empty path yields the embedded guide.
func Load(path string) (*guide.Guide, error) {
	if path == "" {
		return Default()
	}
	defer metrics.Timer(metrics.ContentLoad)()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading guide: %w", err)
	}
	g, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Parse decodes and validates a guide document.
func Parse(data []byte) (*guide.Guide, error) {
	var f guideFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing guide: %w", err)
	}

	notice, err := richText(f.Notice)
	if err != nil {
		return nil, fmt.Errorf("notice: %w", err)
	}

	g := &guide.Guide{
		Title:        f.Title,
		Subtitle:     f.Subtitle,
		Notice:       notice,
		Checklist:    f.Checklist,
		StepCount:    f.StepCount,
		SummaryTitle: f.SummaryTitle,
		Fallback: guide.FallbackCopy{
			Failed:  orDefault(f.Fallback.Failed, "image failed to load"),
			Hint:    orDefault(f.Fallback.Hint, "check the file name:"),
			Loading: orDefault(f.Fallback.Loading, "loading image"),
		},
	}

	if g.Buy, err = track(f.Buy); err != nil {
		return nil, fmt.Errorf("buy: %w", err)
	}
	if g.Sell, err = track(f.Sell); err != nil {
		return nil, fmt.Errorf("sell: %w", err)
	}
	return g, nil
}

func track(f trackFile) (guide.Track, error) {
	items, err := richText(f.Summary.Items)
	if err != nil {
		return guide.Track{}, fmt.Errorf("summary: %w", err)
	}

	drafts := make([]guide.StepDraft, 0, len(f.Steps))
	for i, s := range f.Steps {
		desc, err := richText(s.Description)
		if err != nil {
			return guide.Track{}, fmt.Errorf("step %d: %w", i+1, err)
		}
		drafts = append(drafts, guide.StepDraft{
			Title:       s.Title,
			Description: desc,
			ImageRef:    s.Image,
		})
	}
	steps, err := guide.NewSequence(drafts)
	if err != nil {
		return guide.Track{}, err
	}

	return guide.Track{
		Tab:     f.Tab,
		Heading: f.Heading,
		Summary: guide.Summary{Title: f.Summary.Title, Items: items},
		Steps:   steps,
	}, nil
}

func richText(blocks []blockFile) (guide.RichText, error) {
	var rt guide.RichText
	for i, b := range blocks {
		switch {
		case b.P != "" && len(b.List) > 0:
			return nil, fmt.Errorf("block %d: p and list are exclusive", i+1)
		case b.P != "":
			rt = append(rt, guide.Para(b.P))
		case len(b.List) > 0:
			rt = append(rt, guide.Bullets(b.List...))
		default:
			return nil, fmt.Errorf("block %d: %w", i+1, ErrEmptyBlock)
		}
	}
	return rt, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
