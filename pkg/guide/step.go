package guide

import (
	"errors"
	"fmt"
)

// ErrEmptySequence is returned when a track has no steps.
var ErrEmptySequence = errors.New("step sequence is empty")

// StepRecord is one card of guidance. Records are built once from content
// and never mutated.
type StepRecord struct {
	Ordinal     int      // 1-based position within its sequence
	Title       string   // Card heading
	Description RichText // Paragraphs and bullet lists
	ImageRef    string   // Reference screenshot, e.g. "매수1.png"
}

// StepDraft is a step before it has been given its position.
type StepDraft struct {
	Title       string
	Description RichText
	ImageRef    string
}

// Sequence is an ordered, immutable list of steps.
type Sequence struct {
	steps []StepRecord
}

// NewSequence numbers drafts 1..N in the order given.
func NewSequence(drafts []StepDraft) (Sequence, error) {
	if len(drafts) == 0 {
		return Sequence{}, ErrEmptySequence
	}
	steps := make([]StepRecord, len(drafts))
	for i, d := range drafts {
		steps[i] = StepRecord{
			Ordinal:     i + 1,
			Title:       d.Title,
			Description: d.Description,
			ImageRef:    d.ImageRef,
		}
	}
	return Sequence{steps: steps}, nil
}

// MustSequence is NewSequence for static tables; it panics on empty input.
func MustSequence(drafts ...StepDraft) Sequence {
	s, err := NewSequence(drafts)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of steps.
func (s Sequence) Len() int { return len(s.steps) }

// At returns the step at zero-based index i.
func (s Sequence) At(i int) StepRecord { return s.steps[i] }

// Steps returns a copy of the steps in ordinal order.
func (s Sequence) Steps() []StepRecord {
	out := make([]StepRecord, len(s.steps))
	copy(out, s.steps)
	return out
}

// ImageRefs returns every image reference in ordinal order.
func (s Sequence) ImageRefs() []string {
	refs := make([]string, len(s.steps))
	for i, st := range s.steps {
		refs[i] = st.ImageRef
	}
	return refs
}

// Validate checks that ordinals run 1..N without gaps or duplicates.
func (s Sequence) Validate() error {
	if len(s.steps) == 0 {
		return ErrEmptySequence
	}
	for i, st := range s.steps {
		if st.Ordinal != i+1 {
			return fmt.Errorf("step %d has ordinal %d", i+1, st.Ordinal)
		}
	}
	return nil
}
