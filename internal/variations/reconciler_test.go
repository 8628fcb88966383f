package variations

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wastwagon/juellehairgh.com-sub001/internal/models"
)

// fakeVariantStore is an in-memory VariantStore that counts list calls, so
// tests can assert the re-fetch-after-mutation contract.
type fakeVariantStore struct {
	variants  []models.ProductVariant
	listCalls int
}

func (f *fakeVariantStore) ListVariants(_ context.Context, _ uuid.UUID) ([]models.ProductVariant, error) {
	f.listCalls++
	out := make([]models.ProductVariant, len(f.variants))
	copy(out, f.variants)
	return out, nil
}

func (f *fakeVariantStore) CreateVariant(_ context.Context, req models.CreateVariantRequest) (*models.ProductVariant, error) {
	v := models.ProductVariant{
		ID:                uuid.New(),
		ProductID:         uuid.MustParse(req.ProductID),
		Name:              req.Name,
		Value:             req.Value,
		PriceGhs:          req.PriceGhs,
		CompareAtPriceGhs: req.CompareAtPriceGhs,
		Stock:             req.Stock,
		SKU:               req.SKU,
	}
	f.variants = append(f.variants, v)
	return &v, nil
}

func (f *fakeVariantStore) UpdateVariant(_ context.Context, variantID uuid.UUID, req models.UpdateVariantRequest) (*models.ProductVariant, error) {
	for i := range f.variants {
		if f.variants[i].ID != variantID {
			continue
		}
		v := &f.variants[i]
		if req.Name != nil {
			v.Name = *req.Name
		}
		if req.Value != nil {
			v.Value = *req.Value
		}
		if req.PriceGhs != nil {
			v.PriceGhs = *req.PriceGhs
		}
		v.CompareAtPriceGhs = req.CompareAtPriceGhs
		if req.Stock != nil {
			v.Stock = *req.Stock
		}
		if req.SKU != nil {
			v.SKU = req.SKU
		}
		return v, nil
	}
	return nil, assert.AnError
}

func (f *fakeVariantStore) DeleteVariant(_ context.Context, variantID uuid.UUID) error {
	for i := range f.variants {
		if f.variants[i].ID == variantID {
			f.variants = append(f.variants[:i], f.variants[i+1:]...)
			return nil
		}
	}
	return assert.AnError
}

func comboByKey(t *testing.T, combos []Combination, key string) Combination {
	t.Helper()
	for _, c := range combos {
		if c.ComboKey == key {
			return c
		}
	}
	t.Fatalf("no combination with key %q", key)
	return Combination{}
}

func TestReconciler_DraftStagingRoundTrip(t *testing.T) {
	ctx := context.Background()
	sel := NewSelectionState()
	sel.AddColor("Black")
	sel.AddColor("Brown")
	r := NewDraftReconciler(sel)

	var headline float64
	r.OnHeadlinePrice = func(p float64) { headline = p }

	combos := r.Combinations()
	require.Len(t, combos, 2)

	require.NoError(t, r.SaveVariation(ctx, combos[0], VariationInput{RegularPrice: 50, Stock: 10}))
	assert.Equal(t, 50.0, headline, "first saved variation sets the headline price")

	require.NoError(t, r.SaveVariation(ctx, r.Combinations()[1], VariationInput{RegularPrice: 60, Stock: 5}))
	assert.Equal(t, 50.0, headline, "second save leaves the headline price alone")

	staged := r.Variants()
	require.Len(t, staged, 2)
	assert.Equal(t, "Color", staged[0].Name)
	assert.Equal(t, "Black", staged[0].Value)
	assert.Equal(t, "Brown", staged[1].Value)

	// Both combinations now link to their staged records
	for _, c := range r.Combinations() {
		assert.NotNil(t, c.ExistingVariant)
	}
}

func TestReconciler_DraftSaveIsUpsert(t *testing.T) {
	ctx := context.Background()
	sel := NewSelectionState()
	sel.AddColor("Black")
	r := NewDraftReconciler(sel)

	combo := r.Combinations()[0]
	require.NoError(t, r.SaveVariation(ctx, combo, VariationInput{RegularPrice: 40}))
	require.NoError(t, r.SaveVariation(ctx, r.Combinations()[0], VariationInput{RegularPrice: 55}))

	staged := r.Variants()
	require.Len(t, staged, 1, "re-saving the same combination replaces the staged entry")
	assert.Equal(t, 55.0, staged[0].PriceGhs)
}

func TestReconciler_SalePriceZeroStoredAsNull(t *testing.T) {
	ctx := context.Background()
	sel := NewSelectionState()
	sel.AddColor("Black")
	r := NewDraftReconciler(sel)

	require.NoError(t, r.SaveVariation(ctx, r.Combinations()[0], VariationInput{RegularPrice: 40, SalePrice: 0}))
	assert.Nil(t, r.Variants()[0].CompareAtPriceGhs)

	require.NoError(t, r.SaveVariation(ctx, r.Combinations()[0], VariationInput{RegularPrice: 40, SalePrice: 35}))
	require.NotNil(t, r.Variants()[0].CompareAtPriceGhs)
	assert.Equal(t, 35.0, *r.Variants()[0].CompareAtPriceGhs)
}

func TestReconciler_PersistedCreateThenRefetch(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()
	store := &fakeVariantStore{}

	sel := NewSelectionState()
	sel.AddColor("Black")
	sel.AddLength("12\"")
	r := NewPersistedReconciler(store, sel, productID)
	require.NoError(t, r.Refresh(ctx))

	combo := r.Combinations()[0]
	require.Nil(t, combo.ExistingVariant)

	require.NoError(t, r.SaveVariation(ctx, combo, VariationInput{RegularPrice: 85, Stock: 3}))
	assert.Equal(t, 2, store.listCalls, "every remote mutation is followed by a list re-fetch")

	// The server-assigned id is now visible locally
	got := r.Combinations()[0]
	require.NotNil(t, got.ExistingVariant)
	assert.Equal(t, store.variants[0].ID, got.ExistingVariant.ID)
	assert.Equal(t, productID, got.ExistingVariant.ProductID)
	assert.Equal(t, "Color / Length", got.ExistingVariant.Name)
	assert.Equal(t, "Black / 12\"", got.ExistingVariant.Value)
}

func TestReconciler_PersistedSaveUpdatesExisting(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()
	existing := models.ProductVariant{
		ID:        uuid.New(),
		ProductID: productID,
		Name:      "Color",
		Value:     "Black",
		PriceGhs:  40,
	}
	store := &fakeVariantStore{variants: []models.ProductVariant{existing}}

	sel := NewSelectionState()
	sel.AddColor("Black")
	r := NewPersistedReconciler(store, sel, productID)
	require.NoError(t, r.Refresh(ctx))

	combo := r.Combinations()[0]
	require.NotNil(t, combo.ExistingVariant)

	require.NoError(t, r.SaveVariation(ctx, combo, VariationInput{RegularPrice: 65, Stock: 7}))

	require.Len(t, store.variants, 1, "saving a matched combination updates, never duplicates")
	assert.Equal(t, existing.ID, store.variants[0].ID)
	assert.Equal(t, 65.0, store.variants[0].PriceGhs)
	assert.Equal(t, 7, store.variants[0].Stock)
}

func TestReconciler_PersistedSalePriceOnlySaveRefreshesMatrix(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()
	store := &fakeVariantStore{}

	sel := NewSelectionState()
	sel.AddColor("Black")
	r := NewPersistedReconciler(store, sel, productID)
	require.NoError(t, r.Refresh(ctx))

	require.NoError(t, r.SaveVariation(ctx, r.Combinations()[0], VariationInput{RegularPrice: 40, SalePrice: 35, Stock: 5}))

	combo := r.Combinations()[0]
	require.NotNil(t, combo.ExistingVariant)
	require.NotNil(t, combo.ExistingVariant.CompareAtPriceGhs)
	assert.Equal(t, 35.0, *combo.ExistingVariant.CompareAtPriceGhs)

	// Only the sale price changes; the re-fetched list must show through
	require.NoError(t, r.SaveVariation(ctx, combo, VariationInput{RegularPrice: 40, SalePrice: 20, Stock: 5}))

	combo = r.Combinations()[0]
	require.NotNil(t, combo.ExistingVariant.CompareAtPriceGhs)
	assert.Equal(t, 20.0, *combo.ExistingVariant.CompareAtPriceGhs)

	// Clearing the sale price shows through as well
	require.NoError(t, r.SaveVariation(ctx, combo, VariationInput{RegularPrice: 40, SalePrice: 0, Stock: 5}))
	assert.Nil(t, r.Combinations()[0].ExistingVariant.CompareAtPriceGhs)
}

func TestReconciler_DeleteRequiresConfirmation(t *testing.T) {
	ctx := context.Background()
	sel := NewSelectionState()
	sel.AddColor("Black")
	r := NewDraftReconciler(sel)
	require.NoError(t, r.SaveVariation(ctx, r.Combinations()[0], VariationInput{RegularPrice: 40}))

	r.Confirm = func(Combination) bool { return false }
	err := r.DeleteVariation(ctx, r.Combinations()[0])
	assert.ErrorIs(t, err, ErrDeleteNotConfirmed)
	assert.Len(t, r.Variants(), 1, "refused delete leaves everything untouched")
	assert.True(t, sel.HasColor("Black"))
}

func TestReconciler_PersistedDeleteRefetchesAndCleansTerms(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()
	store := &fakeVariantStore{}

	sel := NewSelectionState()
	sel.AddColor("Black")
	sel.AddColor("Brown")
	sel.AddLength("12\"")
	r := NewPersistedReconciler(store, sel, productID)
	require.NoError(t, r.Refresh(ctx))

	for _, key := range []string{"Black / 12\"", "Brown / 12\""} {
		combo := comboByKey(t, r.Combinations(), key)
		require.NoError(t, r.SaveVariation(ctx, combo, VariationInput{RegularPrice: 80}))
	}
	require.Len(t, store.variants, 2)

	r.Confirm = func(Combination) bool { return true }
	combo := comboByKey(t, r.Combinations(), "Brown / 12\"")
	require.NoError(t, r.DeleteVariation(ctx, combo))

	require.Len(t, store.variants, 1)
	assert.Equal(t, "Black / 12\"", store.variants[0].Value)

	// "Brown" has no other combination left, so the cleanup pass drops it.
	// "12\"" is still referenced through Black.
	assert.False(t, sel.HasColor("Brown"))
	assert.True(t, sel.HasColor("Black"))
	assert.True(t, sel.HasLength("12\""))
	assert.Len(t, r.Combinations(), 1)
}

func TestReconciler_DeleteLastVariationClearsBothTerms(t *testing.T) {
	ctx := context.Background()
	sel := NewSelectionState()
	sel.AddColor("Black")
	sel.AddLength("12\"")
	r := NewDraftReconciler(sel)
	require.NoError(t, r.SaveVariation(ctx, r.Combinations()[0], VariationInput{RegularPrice: 40}))

	require.NoError(t, r.DeleteVariation(ctx, r.Combinations()[0]))

	assert.Empty(t, sel.Colors())
	assert.Empty(t, sel.Lengths())
	assert.Empty(t, r.Combinations())
}

func TestReconciler_FlushCreatesStagedVariantsRemotely(t *testing.T) {
	ctx := context.Background()
	sel := NewSelectionState()
	sel.AddColor("Black")
	sel.AddColor("Brown")
	r := NewDraftReconciler(sel)

	require.NoError(t, r.SaveVariation(ctx, r.Combinations()[0], VariationInput{RegularPrice: 50, Stock: 4}))
	require.NoError(t, r.SaveVariation(ctx, r.Combinations()[1], VariationInput{RegularPrice: 60, Stock: 2}))

	productID := uuid.New()
	store := &fakeVariantStore{}
	require.NoError(t, r.Flush(ctx, store, productID))

	require.Len(t, store.variants, 2)
	assert.Equal(t, "Black", store.variants[0].Value)
	assert.Equal(t, "Brown", store.variants[1].Value)
	for _, v := range store.variants {
		assert.Equal(t, productID, v.ProductID)
	}

	// Flushed reconciler is persisted: the next save goes straight to the store
	require.NoError(t, r.SaveVariation(ctx, r.Combinations()[0], VariationInput{RegularPrice: 55}))
	assert.Equal(t, 55.0, store.variants[0].PriceGhs)
	assert.ErrorIs(t, r.Flush(ctx, store, productID), ErrNotDraft)
}

func TestReconciler_EndToEndDraftScenario(t *testing.T) {
	ctx := context.Background()
	sel := NewSelectionState()
	sel.ToggleColor("Black")
	sel.ToggleColor("Brown")
	r := NewDraftReconciler(sel)

	var headline float64
	r.OnHeadlinePrice = func(p float64) { headline = p }

	combos := r.Combinations()
	require.Len(t, combos, 2)
	assert.Nil(t, combos[0].ExistingVariant)
	assert.Nil(t, combos[1].ExistingVariant)

	require.NoError(t, r.SaveVariation(ctx, comboByKey(t, combos, "Black"), VariationInput{RegularPrice: 50, Stock: 12}))
	require.NoError(t, r.SaveVariation(ctx, comboByKey(t, r.Combinations(), "Brown"), VariationInput{RegularPrice: 60, SalePrice: 45, Stock: 8}))

	assert.Equal(t, 50.0, headline)

	staged := r.Variants()
	require.Len(t, staged, 2)
	assert.Nil(t, staged[0].CompareAtPriceGhs)
	require.NotNil(t, staged[1].CompareAtPriceGhs)
	assert.Equal(t, 45.0, *staged[1].CompareAtPriceGhs)

	price, ok := DerivedPrice(staged)
	require.True(t, ok)
	assert.Equal(t, 50.0, price)
}
