package variations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wastwagon/juellehairgh.com-sub001/internal/models"
)

func TestDerivedPrice_FirstPricedVariantWins(t *testing.T) {
	variants := []models.ProductVariant{
		variant("Color", "Black", 0),
		variant("Color", "Brown", 45),
		variant("Color", "Burgundy", 30),
	}

	price, ok := DerivedPrice(variants)
	require.True(t, ok)
	assert.Equal(t, 45.0, price, "unpriced variants are skipped, list order decides")
}

func TestDerivedPrice_NoPricedVariant(t *testing.T) {
	price, ok := DerivedPrice([]models.ProductVariant{variant("Color", "Black", 0)})
	assert.False(t, ok)
	assert.Zero(t, price)

	price, ok = DerivedPrice(nil)
	assert.False(t, ok)
	assert.Zero(t, price)
}

func TestSubmitPrice(t *testing.T) {
	priced := []models.ProductVariant{variant("Color", "Black", 80)}

	assert.Equal(t, 25.0, SubmitPrice(models.ProductTypeSimple, 25, priced), "simple products keep the manual price")
	assert.Equal(t, 80.0, SubmitPrice(models.ProductTypeVariable, 25, priced), "variable products derive from variants")
	assert.Equal(t, 0.0, SubmitPrice(models.ProductTypeVariable, 25, nil), "variable with no priced variant is numeric zero, never omitted")
}

func TestFormState_SwitchParksAndRestoresPrice(t *testing.T) {
	f := NewFormState(models.ProductTypeSimple, 0)
	f.SetManualPrice(35)

	f.SwitchTo(models.ProductTypeVariable)
	assert.Equal(t, models.ProductTypeVariable, f.ProductType())
	assert.Zero(t, f.ManualPrice())

	// Entering a price while variable is ignored
	f.SetManualPrice(99)
	assert.Zero(t, f.ManualPrice())

	f.SwitchTo(models.ProductTypeSimple)
	assert.Equal(t, 35.0, f.ManualPrice(), "switching back restores the parked price")

	// Round-tripping twice is lossless
	f.SwitchTo(models.ProductTypeVariable)
	f.SwitchTo(models.ProductTypeSimple)
	assert.Equal(t, 35.0, f.ManualPrice())
}

func TestFormState_SwitchToSameTypeIsNoOp(t *testing.T) {
	f := NewFormState(models.ProductTypeSimple, 35)
	f.SwitchTo(models.ProductTypeSimple)
	assert.Equal(t, 35.0, f.ManualPrice())
}

func TestFormState_SubmitPrice(t *testing.T) {
	f := NewFormState(models.ProductTypeSimple, 35)
	assert.Equal(t, 35.0, f.SubmitPrice(nil))

	f.SwitchTo(models.ProductTypeVariable)
	assert.Equal(t, 0.0, f.SubmitPrice(nil))
	assert.Equal(t, 45.0, f.SubmitPrice([]models.ProductVariant{
		variant("Color", "Black", 0),
		variant("Color", "Brown", 45),
	}))
}
