package variations

// SelectionState holds the operator's selected color and length terms.
// Both sets are de-duplicated and keep insertion order, so the generated
// grid is stable across recomputations. Terms leave the sets either by an
// explicit toggle or by the reconciler's cleanup pass after a delete.
type SelectionState struct {
	colors  []string
	lengths []string
}

// NewSelectionState creates an empty selection
func NewSelectionState() *SelectionState {
	return &SelectionState{}
}

// ToggleColor adds the term if absent, removes it if present
func (s *SelectionState) ToggleColor(term string) {
	s.colors = toggle(s.colors, term)
}

// ToggleLength adds the term if absent, removes it if present
func (s *SelectionState) ToggleLength(term string) {
	s.lengths = toggle(s.lengths, term)
}

// AddColor adds a color term if not already selected
func (s *SelectionState) AddColor(term string) {
	if !contains(s.colors, term) {
		s.colors = append(s.colors, term)
	}
}

// AddLength adds a length term if not already selected
func (s *SelectionState) AddLength(term string) {
	if !contains(s.lengths, term) {
		s.lengths = append(s.lengths, term)
	}
}

// RemoveColor removes a color term from the selection
func (s *SelectionState) RemoveColor(term string) {
	s.colors = remove(s.colors, term)
}

// RemoveLength removes a length term from the selection
func (s *SelectionState) RemoveLength(term string) {
	s.lengths = remove(s.lengths, term)
}

// Colors returns the selected color terms in insertion order
func (s *SelectionState) Colors() []string {
	out := make([]string, len(s.colors))
	copy(out, s.colors)
	return out
}

// Lengths returns the selected length terms in insertion order
func (s *SelectionState) Lengths() []string {
	out := make([]string, len(s.lengths))
	copy(out, s.lengths)
	return out
}

// HasColor reports whether the color term is selected
func (s *SelectionState) HasColor(term string) bool {
	return contains(s.colors, term)
}

// HasLength reports whether the length term is selected
func (s *SelectionState) HasLength(term string) bool {
	return contains(s.lengths, term)
}

func toggle(terms []string, term string) []string {
	if contains(terms, term) {
		return remove(terms, term)
	}
	return append(terms, term)
}

func contains(terms []string, term string) bool {
	for _, t := range terms {
		if t == term {
			return true
		}
	}
	return false
}

func remove(terms []string, term string) []string {
	out := terms[:0]
	for _, t := range terms {
		if t != term {
			out = append(out, t)
		}
	}
	return out
}
