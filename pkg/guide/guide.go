// Package guide holds the alert setup guide: two fixed step sequences, the
// copy around them, and the UI state that selects between them.
package guide

import "fmt"

// Summary is the "key points" box for one direction.
type Summary struct {
	Title string
	Items RichText
}

// Track is everything shown for one direction.
type Track struct {
	Tab     string // Tab button label
	Heading string // Section heading above the cards
	Summary Summary
	Steps   Sequence
}

// FallbackCopy is the text of the notice shown in place of an image that
// could not be loaded.
type FallbackCopy struct {
	Failed  string // e.g. "이미지 로드 실패"
	Hint    string // e.g. "파일명을 확인해주세요:"
	Loading string
}

// Guide is the complete, immutable guide content.
type Guide struct {
	Title        string
	Subtitle     string
	Notice       RichText
	Checklist    string // Hint shown under every card description
	StepCount    string // Format for the step count badge, e.g. "총 %d단계"
	SummaryTitle string
	Fallback     FallbackCopy

	Buy  Track
	Sell Track
}

// Track returns the track for d.
func (g *Guide) Track(d Direction) Track {
	if d == Sell {
		return g.Sell
	}
	return g.Buy
}

// Sequence returns the step sequence for d.
func (g *Guide) Sequence(d Direction) Sequence {
	return g.Track(d).Steps
}

// StepCountLabel formats the step count badge for d.
func (g *Guide) StepCountLabel(d Direction) string {
	format := g.StepCount
	if format == "" {
		format = "%d steps"
	}
	return fmt.Sprintf(format, g.Sequence(d).Len())
}

// ImageRefs returns the image references of both tracks, buy first.
func (g *Guide) ImageRefs() []string {
	refs := g.Buy.Steps.ImageRefs()
	return append(refs, g.Sell.Steps.ImageRefs()...)
}

// Validate checks both sequences.
func (g *Guide) Validate() error {
	for _, d := range Directions {
		if err := g.Sequence(d).Validate(); err != nil {
			return fmt.Errorf("%s track: %w", d, err)
		}
	}
	return nil
}
