package guide

import (
	"errors"
	"testing"

	"pgregory.net/rapid"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"buy", Buy, false},
		{"BUY", Buy, false},
		{" long-entry ", Buy, false},
		{"sell", Sell, false},
		{"exit", Sell, false},
		{"hold", Buy, true},
		{"", Buy, true},
	}
	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDirection(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseDirection(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDirectionOther(t *testing.T) {
	if Buy.Other() != Sell || Sell.Other() != Buy {
		t.Error("Other should flip between buy and sell")
	}
}

func TestDirectionTextRoundTrip(t *testing.T) {
	for _, d := range Directions {
		b, err := d.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", d, err)
		}
		var got Direction
		if err := got.UnmarshalText(b); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", b, err)
		}
		if got != d {
			t.Errorf("round trip %v -> %v", d, got)
		}
	}
	if _, err := Direction(7).MarshalText(); err == nil {
		t.Error("expected error for invalid direction")
	}
}

func TestNewSequenceAssignsOrdinals(t *testing.T) {
	seq, err := NewSequence([]StepDraft{
		{Title: "a", ImageRef: "a.png"},
		{Title: "b", ImageRef: "b.png"},
		{Title: "c", ImageRef: "c.png"},
	})
	if err != nil {
		t.Fatalf("NewSequence: %v", err)
	}
	if seq.Len() != 3 {
		t.Fatalf("Len = %d, want 3", seq.Len())
	}
	for i, st := range seq.Steps() {
		if st.Ordinal != i+1 {
			t.Errorf("step %d ordinal = %d", i, st.Ordinal)
		}
	}
	if got := seq.ImageRefs(); got[1] != "b.png" {
		t.Errorf("ImageRefs()[1] = %q", got[1])
	}
	if err := seq.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestNewSequenceEmpty(t *testing.T) {
	_, err := NewSequence(nil)
	if !errors.Is(err, ErrEmptySequence) {
		t.Errorf("expected ErrEmptySequence, got %v", err)
	}
	if err := (Sequence{}).Validate(); !errors.Is(err, ErrEmptySequence) {
		t.Errorf("Validate on zero sequence: %v", err)
	}
}

func TestSequenceStepsIsCopy(t *testing.T) {
	seq := MustSequence(StepDraft{Title: "one"})
	steps := seq.Steps()
	steps[0].Title = "changed"
	if seq.At(0).Title != "one" {
		t.Error("Steps() must not expose the backing array")
	}
}

func TestSequenceOrdinalsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		titles := rapid.SliceOfN(rapid.String(), 1, 30).Draw(t, "titles")
		drafts := make([]StepDraft, len(titles))
		for i, title := range titles {
			drafts[i] = StepDraft{Title: title}
		}
		seq, err := NewSequence(drafts)
		if err != nil {
			t.Fatalf("NewSequence: %v", err)
		}
		if seq.Len() != len(titles) {
			t.Fatalf("Len = %d, want %d", seq.Len(), len(titles))
		}
		for i := 0; i < seq.Len(); i++ {
			st := seq.At(i)
			if st.Ordinal != i+1 || st.Title != titles[i] {
				t.Fatalf("step %d = (%d, %q)", i, st.Ordinal, st.Title)
			}
		}
		if err := seq.Validate(); err != nil {
			t.Fatalf("Validate: %v", err)
		}
	})
}

func TestGuideTrackSelection(t *testing.T) {
	g := &Guide{
		StepCount: "총 %d단계",
		Buy:       Track{Steps: MustSequence(StepDraft{ImageRef: "매수1.png"}, StepDraft{ImageRef: "매수2.png"})},
		Sell:      Track{Steps: MustSequence(StepDraft{ImageRef: "매도1.png"})},
	}
	if g.Sequence(Buy).Len() != 2 || g.Sequence(Sell).Len() != 1 {
		t.Fatal("Sequence returned the wrong track")
	}
	if got := g.StepCountLabel(Buy); got != "총 2단계" {
		t.Errorf("StepCountLabel = %q", got)
	}
	refs := g.ImageRefs()
	if len(refs) != 3 || refs[0] != "매수1.png" || refs[2] != "매도1.png" {
		t.Errorf("ImageRefs = %v", refs)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
	g.Sell = Track{}
	if err := g.Validate(); err == nil {
		t.Error("expected error for empty sell track")
	}
}

func TestUIStateDefaults(t *testing.T) {
	s := DefaultUIState()
	if s.ActiveDirection != Buy || s.HasScrolled {
		t.Errorf("default state = %+v", s)
	}
}

func TestUIStateSelectDirection(t *testing.T) {
	s := DefaultUIState()
	if s.SelectDirection(Buy) {
		t.Error("selecting the active direction should be a no-op")
	}
	if !s.SelectDirection(Sell) || s.ActiveDirection != Sell {
		t.Error("expected switch to sell")
	}
	if s.SelectDirection(Sell) {
		t.Error("second select of sell should be a no-op")
	}
	if s.SelectDirection(Direction(9)) || s.ActiveDirection != Sell {
		t.Error("invalid direction must be ignored")
	}
}

func TestUIStateOnScroll(t *testing.T) {
	s := DefaultUIState()
	if !s.OnScroll(50, 20) || !s.HasScrolled {
		t.Error("offset 50 should be past threshold 20")
	}
	if s.ActiveDirection != Buy {
		t.Error("scrolling must not change direction")
	}
	if s.OnScroll(30, 20) {
		t.Error("still scrolled; expected no change")
	}
	if !s.OnScroll(20, 20) || s.HasScrolled {
		t.Error("offset equal to threshold is not past it")
	}
}
