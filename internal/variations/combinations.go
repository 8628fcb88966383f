// Package variations implements the variable-product variation matrix:
// attribute term selection, cartesian combination generation and
// reconciliation of combinations against persisted variant records.
package variations

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/wastwagon/juellehairgh.com-sub001/internal/models"
)

// Combination is an ephemeral pairing of selected terms, possibly linked to
// an existing variant record. Combinations are rebuilt from scratch whenever
// the selections or the variant list change; they are never mutated in place.
type Combination struct {
	Color           *string
	Length          *string
	ComboKey        string
	ExistingVariant *models.ProductVariant
}

// GenerateCombinations derives the displayed combination set from the
// selected color/length terms and the current variant list.
//
// Three mutually exclusive cases, in priority order: both dimensions selected
// (full cartesian product, color-major), colors only, lengths only. A variant
// is matched to a combination by a case-insensitive substring check on its
// Name (which dimension(s) it encodes) plus exact equality of its Value with
// the combination key. The substring check deliberately tolerates
// operator-entered dimension names like "Hair Color"; it is the same rule
// the save path uses to derive Name, so a save never loses its match.
func GenerateCombinations(colorTerms, lengthTerms []string, variants []models.ProductVariant) []Combination {
	switch {
	case len(colorTerms) > 0 && len(lengthTerms) > 0:
		combos := make([]Combination, 0, len(colorTerms)*len(lengthTerms))
		for _, c := range colorTerms {
			for _, l := range lengthTerms {
				c, l := c, l
				key := c + " / " + l
				combos = append(combos, Combination{
					Color:    &c,
					Length:   &l,
					ComboKey: key,
					ExistingVariant: findVariant(variants, func(v *models.ProductVariant) bool {
						name := strings.ToLower(v.Name)
						return strings.Contains(name, "color") && strings.Contains(name, "length") && v.Value == key
					}),
				})
			}
		}
		return combos

	case len(colorTerms) > 0:
		combos := make([]Combination, 0, len(colorTerms))
		for _, c := range colorTerms {
			c := c
			combos = append(combos, Combination{
				Color:    &c,
				ComboKey: c,
				ExistingVariant: findVariant(variants, func(v *models.ProductVariant) bool {
					name := strings.ToLower(v.Name)
					return (strings.Contains(name, "color") || strings.Contains(name, "colour")) &&
						!strings.Contains(name, "length") && v.Value == c
				}),
			})
		}
		return combos

	case len(lengthTerms) > 0:
		combos := make([]Combination, 0, len(lengthTerms))
		for _, l := range lengthTerms {
			l := l
			combos = append(combos, Combination{
				Length:   &l,
				ComboKey: l,
				ExistingVariant: findVariant(variants, func(v *models.ProductVariant) bool {
					name := strings.ToLower(v.Name)
					return strings.Contains(name, "length") && !strings.Contains(name, "color") && v.Value == l
				}),
			})
		}
		return combos

	default:
		return []Combination{}
	}
}

func findVariant(variants []models.ProductVariant, match func(*models.ProductVariant) bool) *models.ProductVariant {
	for i := range variants {
		if match(&variants[i]) {
			return &variants[i]
		}
	}
	return nil
}

// Matrix is a memoized view over GenerateCombinations: it recomputes the
// combination set only when the input hash (selections plus variant list)
// changes, and hands out the same derived slice otherwise.
type Matrix struct {
	selection *SelectionState
	variants  []models.ProductVariant

	hash   uint64
	combos []Combination
}

// NewMatrix creates a matrix over the given selection state
func NewMatrix(selection *SelectionState) *Matrix {
	return &Matrix{selection: selection}
}

// SetVariants replaces the backing variant list
func (m *Matrix) SetVariants(variants []models.ProductVariant) {
	m.variants = variants
}

// Variants returns the current backing variant list
func (m *Matrix) Variants() []models.ProductVariant {
	return m.variants
}

// Combinations returns the derived combination set, recomputing it only when
// the inputs have changed since the last call
func (m *Matrix) Combinations() []Combination {
	h := m.inputHash()
	if m.combos == nil || h != m.hash {
		m.combos = GenerateCombinations(m.selection.Colors(), m.selection.Lengths(), m.variants)
		m.hash = h
	}
	return m.combos
}

func (m *Matrix) inputHash() uint64 {
	h := fnv.New64a()
	for _, c := range m.selection.Colors() {
		h.Write([]byte("c:" + c + "\x00"))
	}
	for _, l := range m.selection.Lengths() {
		h.Write([]byte("l:" + l + "\x00"))
	}
	// Every field a combination exposes through ExistingVariant has to feed
	// the hash, or a save that changes only that field serves a stale matrix.
	for i := range m.variants {
		v := &m.variants[i]
		fmt.Fprintf(h, "v:%s:%s:%s:%g:%d", v.ID, v.Name, v.Value, v.PriceGhs, v.Stock)
		if v.CompareAtPriceGhs != nil {
			fmt.Fprintf(h, ":s%g", *v.CompareAtPriceGhs)
		}
		if v.SKU != nil {
			h.Write([]byte(":k" + *v.SKU))
		}
		h.Write([]byte{0})
	}
	return h.Sum64()
}
