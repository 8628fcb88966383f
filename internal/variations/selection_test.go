package variations

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionState_ToggleAddsAndRemoves(t *testing.T) {
	s := NewSelectionState()

	s.ToggleColor("Black")
	s.ToggleColor("Brown")
	assert.Equal(t, []string{"Black", "Brown"}, s.Colors())

	s.ToggleColor("Black")
	assert.Equal(t, []string{"Brown"}, s.Colors())
	assert.False(t, s.HasColor("Black"))
	assert.True(t, s.HasColor("Brown"))
}

func TestSelectionState_AddIsIdempotent(t *testing.T) {
	s := NewSelectionState()
	s.AddLength("12\"")
	s.AddLength("12\"")
	s.AddLength("16\"")
	assert.Equal(t, []string{"12\"", "16\""}, s.Lengths())
}

func TestSelectionState_RemoveKeepsOrder(t *testing.T) {
	s := NewSelectionState()
	for _, c := range []string{"Black", "Brown", "Burgundy"} {
		s.AddColor(c)
	}
	s.RemoveColor("Brown")
	assert.Equal(t, []string{"Black", "Burgundy"}, s.Colors())

	s.RemoveColor("not selected")
	assert.Equal(t, []string{"Black", "Burgundy"}, s.Colors())
}

func TestSelectionState_AccessorsReturnCopies(t *testing.T) {
	s := NewSelectionState()
	s.AddColor("Black")

	colors := s.Colors()
	colors[0] = "mutated"
	assert.Equal(t, []string{"Black"}, s.Colors())
}
