package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariantUpdates_SalePriceTriState(t *testing.T) {
	// Absent key: sale price untouched
	updates, err := variantUpdates([]byte(`{"priceGhs": 50, "stock": 3}`))
	require.NoError(t, err)
	_, present := updates["compare_at_price_ghs"]
	assert.False(t, present, "an omitted key never clears the sale price")
	assert.Equal(t, 50.0, updates["price_ghs"])
	assert.Equal(t, 3, updates["stock"])

	// Explicit null: cleared
	updates, err = variantUpdates([]byte(`{"compareAtPriceGhs": null}`))
	require.NoError(t, err)
	cleared, present := updates["compare_at_price_ghs"]
	require.True(t, present)
	assert.Nil(t, cleared)

	// Number: set
	updates, err = variantUpdates([]byte(`{"compareAtPriceGhs": 35}`))
	require.NoError(t, err)
	set, present := updates["compare_at_price_ghs"]
	require.True(t, present)
	require.NotNil(t, set)
	assert.Equal(t, 35.0, *set.(*float64))
}

func TestVariantUpdates_AllFields(t *testing.T) {
	updates, err := variantUpdates([]byte(`{
		"name": "Color",
		"value": "Burgundy",
		"priceGhs": 60,
		"compareAtPriceGhs": 45,
		"stock": 8,
		"sku": "JH-BWW-002"
	}`))
	require.NoError(t, err)

	assert.Equal(t, "Color", updates["name"])
	assert.Equal(t, "Burgundy", updates["value"])
	assert.Equal(t, 60.0, updates["price_ghs"])
	assert.Equal(t, 8, updates["stock"])
	assert.Equal(t, "JH-BWW-002", updates["sku"])
	require.NotNil(t, updates["compare_at_price_ghs"])
	assert.Equal(t, 45.0, *updates["compare_at_price_ghs"].(*float64))
}

func TestVariantUpdates_InvalidBody(t *testing.T) {
	_, err := variantUpdates([]byte(`{`))
	assert.Error(t, err)
}
