package guide

// DefaultScrollThreshold is the scroll offset past which the header switches
// to its compact, shadowed form.
const DefaultScrollThreshold = 20

// UIState is the page's only mutable state.
type UIState struct {
	ActiveDirection Direction
	HasScrolled     bool
}

// DefaultUIState is the state on load: buy tab, not scrolled.
func DefaultUIState() UIState {
	return UIState{ActiveDirection: Buy}
}

// SelectDirection makes d the active direction. Selecting the active
// direction again changes nothing.
func (s *UIState) SelectDirection(d Direction) (changed bool) {
	if !d.Valid() || s.ActiveDirection == d {
		return false
	}
	s.ActiveDirection = d
	return true
}

// OnScroll records whether offset is past threshold.
func (s *UIState) OnScroll(offset, threshold int) (changed bool) {
	scrolled := offset > threshold
	if scrolled == s.HasScrolled {
		return false
	}
	s.HasScrolled = scrolled
	return true
}
