package variations

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wastwagon/juellehairgh.com-sub001/internal/models"
)

func variant(name, value string, price float64) models.ProductVariant {
	return models.ProductVariant{
		ID:       uuid.New(),
		Name:     name,
		Value:    value,
		PriceGhs: price,
	}
}

func TestGenerateCombinations_CartesianProduct(t *testing.T) {
	colors := []string{"Natural Black", "Chocolate Brown", "Burgundy"}
	lengths := []string{"12\"", "16\""}

	combos := GenerateCombinations(colors, lengths, nil)

	require.Len(t, combos, 6)

	// Color-major ordering: all lengths of the first color before the second
	expected := []string{
		"Natural Black / 12\"",
		"Natural Black / 16\"",
		"Chocolate Brown / 12\"",
		"Chocolate Brown / 16\"",
		"Burgundy / 12\"",
		"Burgundy / 16\"",
	}
	seen := make(map[string]bool)
	for i, combo := range combos {
		assert.Equal(t, expected[i], combo.ComboKey)
		assert.False(t, seen[combo.ComboKey], "combo keys must be unique")
		seen[combo.ComboKey] = true
		require.NotNil(t, combo.Color)
		require.NotNil(t, combo.Length)
		assert.Equal(t, *combo.Color+" / "+*combo.Length, combo.ComboKey)
	}
}

func TestGenerateCombinations_ColorsOnly(t *testing.T) {
	combos := GenerateCombinations([]string{"Black", "Brown"}, nil, nil)

	require.Len(t, combos, 2)
	assert.Equal(t, "Black", combos[0].ComboKey)
	assert.Equal(t, "Brown", combos[1].ComboKey)
	for _, combo := range combos {
		assert.NotNil(t, combo.Color)
		assert.Nil(t, combo.Length)
	}
}

func TestGenerateCombinations_LengthsOnly(t *testing.T) {
	combos := GenerateCombinations(nil, []string{"10\"", "14\"", "18\""}, nil)

	require.Len(t, combos, 3)
	for i, l := range []string{"10\"", "14\"", "18\""} {
		assert.Equal(t, l, combos[i].ComboKey)
		assert.Nil(t, combos[i].Color)
		require.NotNil(t, combos[i].Length)
		assert.Equal(t, l, *combos[i].Length)
	}
}

func TestGenerateCombinations_Empty(t *testing.T) {
	combos := GenerateCombinations(nil, nil, []models.ProductVariant{
		variant("Color", "Black", 50),
	})

	assert.Empty(t, combos)
}

func TestGenerateCombinations_MatchesTwoDimensionalVariant(t *testing.T) {
	v := variant("Color / Length", "Black / 12\"", 85)
	combos := GenerateCombinations([]string{"Black"}, []string{"12\"", "16\""}, []models.ProductVariant{v})

	require.Len(t, combos, 2)
	require.NotNil(t, combos[0].ExistingVariant)
	assert.Equal(t, v.ID, combos[0].ExistingVariant.ID)
	assert.Nil(t, combos[1].ExistingVariant, "unsaved combination stays unmatched")
}

func TestGenerateCombinations_NameMatchToleratesPrefixes(t *testing.T) {
	// Operator-entered dimension names still attach as long as the dimension
	// word appears somewhere in them.
	v := variant("Hair Color / Hair Length", "Burgundy / 16\"", 120)
	combos := GenerateCombinations([]string{"Burgundy"}, []string{"16\""}, []models.ProductVariant{v})

	require.Len(t, combos, 1)
	require.NotNil(t, combos[0].ExistingVariant)
	assert.Equal(t, v.ID, combos[0].ExistingVariant.ID)
}

func TestGenerateCombinations_ColorOnlyMatching(t *testing.T) {
	tests := []struct {
		name        string
		variantName string
		wantMatch   bool
	}{
		{"plain color", "Color", true},
		{"british spelling", "Colour", true},
		{"prefixed", "Hair Color", true},
		{"two-dimensional record does not match one-dimensional combo", "Color / Length", false},
		{"length record never matches a color combo", "Length", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := variant(tt.variantName, "Black", 60)
			combos := GenerateCombinations([]string{"Black"}, nil, []models.ProductVariant{v})

			require.Len(t, combos, 1)
			if tt.wantMatch {
				require.NotNil(t, combos[0].ExistingVariant)
				assert.Equal(t, v.ID, combos[0].ExistingVariant.ID)
			} else {
				assert.Nil(t, combos[0].ExistingVariant)
			}
		})
	}
}

func TestGenerateCombinations_LengthOnlyMatching(t *testing.T) {
	match := variant("Length", "14\"", 70)
	decoy := variant("Color / Length", "Black / 14\"", 95)
	combos := GenerateCombinations(nil, []string{"14\""}, []models.ProductVariant{decoy, match})

	require.Len(t, combos, 1)
	require.NotNil(t, combos[0].ExistingVariant)
	assert.Equal(t, match.ID, combos[0].ExistingVariant.ID)
}

func TestGenerateCombinations_ValueMustMatchExactly(t *testing.T) {
	v := variant("Color", "black", 60)
	combos := GenerateCombinations([]string{"Black"}, nil, []models.ProductVariant{v})

	require.Len(t, combos, 1)
	assert.Nil(t, combos[0].ExistingVariant, "value comparison is case-sensitive")
}

func TestGenerateCombinations_FirstMatchWins(t *testing.T) {
	first := variant("Color", "Black", 40)
	second := variant("Colour", "Black", 99)
	combos := GenerateCombinations([]string{"Black"}, nil, []models.ProductVariant{first, second})

	require.Len(t, combos, 1)
	require.NotNil(t, combos[0].ExistingVariant)
	assert.Equal(t, first.ID, combos[0].ExistingVariant.ID)
}

func TestGenerateCombinations_Idempotent(t *testing.T) {
	colors := []string{"Black", "Brown"}
	lengths := []string{"12\"", "16\""}
	variants := []models.ProductVariant{
		variant("Color / Length", "Black / 12\"", 85),
		variant("Color / Length", "Brown / 16\"", 90),
	}

	a := GenerateCombinations(colors, lengths, variants)
	b := GenerateCombinations(colors, lengths, variants)

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].ComboKey, b[i].ComboKey)
		if a[i].ExistingVariant == nil {
			assert.Nil(t, b[i].ExistingVariant)
		} else {
			require.NotNil(t, b[i].ExistingVariant)
			assert.Equal(t, a[i].ExistingVariant.ID, b[i].ExistingVariant.ID)
		}
	}
}

func TestMatrix_MemoizesUntilInputsChange(t *testing.T) {
	sel := NewSelectionState()
	sel.AddColor("Black")
	sel.AddLength("12\"")
	m := NewMatrix(sel)

	first := m.Combinations()
	second := m.Combinations()
	assert.Equal(t, fmt.Sprintf("%p", first), fmt.Sprintf("%p", second), "unchanged inputs reuse the derived slice")

	sel.AddLength("16\"")
	third := m.Combinations()
	require.Len(t, third, 2)

	m.SetVariants([]models.ProductVariant{variant("Color / Length", "Black / 16\"", 75)})
	fourth := m.Combinations()
	require.Len(t, fourth, 2)
	assert.NotNil(t, fourth[1].ExistingVariant)
}

func TestMatrix_RecomputesOnSalePriceOrSKUChange(t *testing.T) {
	sel := NewSelectionState()
	sel.AddColor("Black")
	m := NewMatrix(sel)

	v := variant("Color", "Black", 40)
	sale := 35.0
	v.CompareAtPriceGhs = &sale
	m.SetVariants([]models.ProductVariant{v})

	combo := m.Combinations()[0]
	require.NotNil(t, combo.ExistingVariant)
	require.NotNil(t, combo.ExistingVariant.CompareAtPriceGhs)
	assert.Equal(t, 35.0, *combo.ExistingVariant.CompareAtPriceGhs)

	// Same id/name/value/price/stock, different sale price
	newSale := 20.0
	v.CompareAtPriceGhs = &newSale
	m.SetVariants([]models.ProductVariant{v})

	combo = m.Combinations()[0]
	require.NotNil(t, combo.ExistingVariant.CompareAtPriceGhs)
	assert.Equal(t, 20.0, *combo.ExistingVariant.CompareAtPriceGhs)

	// Clearing the sale price is a change too
	v.CompareAtPriceGhs = nil
	m.SetVariants([]models.ProductVariant{v})
	assert.Nil(t, m.Combinations()[0].ExistingVariant.CompareAtPriceGhs)

	// And so is an SKU-only edit
	sku := "JH-001"
	v.SKU = &sku
	m.SetVariants([]models.ProductVariant{v})
	require.NotNil(t, m.Combinations()[0].ExistingVariant.SKU)
	assert.Equal(t, "JH-001", *m.Combinations()[0].ExistingVariant.SKU)
}
