package variations

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/wastwagon/juellehairgh.com-sub001/internal/models"
)

var (
	// ErrDeleteNotConfirmed is returned when the confirmation hook refuses a delete
	ErrDeleteNotConfirmed = errors.New("variation delete not confirmed")
	// ErrNoDimensions is returned for a combination carrying neither a color nor a length term
	ErrNoDimensions = errors.New("combination has no color or length term")
	// ErrNotDraft is returned when Flush is called on an already-persisted reconciler
	ErrNotDraft = errors.New("reconciler is not in draft state")
)

// VariantStore is the variant persistence contract the reconciler mutates
// through. The HTTP admin client satisfies it, so tooling drives the same
// flow the product form does.
type VariantStore interface {
	ListVariants(ctx context.Context, productID uuid.UUID) ([]models.ProductVariant, error)
	CreateVariant(ctx context.Context, req models.CreateVariantRequest) (*models.ProductVariant, error)
	UpdateVariant(ctx context.Context, variantID uuid.UUID, req models.UpdateVariantRequest) (*models.ProductVariant, error)
	DeleteVariant(ctx context.Context, variantID uuid.UUID) error
}

// VariationInput carries the per-combination form fields
type VariationInput struct {
	RegularPrice float64
	SalePrice    float64
	Stock        int
	SKU          string
}

type reconcilerState int

const (
	stateDraft reconcilerState = iota
	statePersisted
)

// Reconciler keeps the displayed combination matrix consistent with the
// variant store. It is an explicit two-state machine: a draft product stages
// variant-shaped entries locally (keyed by their (name, value) identity, so
// at most one entry per combination can ever exist), while a persisted
// product mutates the remote store and re-fetches the full variant list
// after every mutation instead of patching local state optimistically.
type Reconciler struct {
	state     reconcilerState
	store     VariantStore
	productID uuid.UUID

	selection *SelectionState
	matrix    *Matrix
	staging   *stagingList

	// Confirm gates destructive deletes. A nil hook allows the delete;
	// a hook returning false aborts it with ErrDeleteNotConfirmed.
	Confirm func(Combination) bool

	// OnHeadlinePrice receives the regular price of the very first saved
	// variation: a variable product's listing price is defined as the price
	// of its first priced variant, not an independent field.
	OnHeadlinePrice func(float64)
}

// NewDraftReconciler creates a reconciler for a product that does not exist
// remotely yet. Saves go to a local staging list until Flush.
func NewDraftReconciler(selection *SelectionState) *Reconciler {
	return &Reconciler{
		state:     stateDraft,
		selection: selection,
		matrix:    NewMatrix(selection),
		staging:   newStagingList(),
	}
}

// NewPersistedReconciler creates a reconciler bound to a persisted product.
// Call Refresh before reading combinations.
func NewPersistedReconciler(store VariantStore, selection *SelectionState, productID uuid.UUID) *Reconciler {
	return &Reconciler{
		state:     statePersisted,
		store:     store,
		productID: productID,
		selection: selection,
		matrix:    NewMatrix(selection),
	}
}

// Selection returns the reconciler's selection state
func (r *Reconciler) Selection() *SelectionState {
	return r.selection
}

// Variants returns the current backing variant list: the staged entries for
// a draft product, the last fetched server list for a persisted one.
func (r *Reconciler) Variants() []models.ProductVariant {
	if r.state == stateDraft {
		return r.staging.snapshot()
	}
	return r.matrix.Variants()
}

// Combinations returns the derived combination matrix
func (r *Reconciler) Combinations() []Combination {
	if r.state == stateDraft {
		r.matrix.SetVariants(r.staging.snapshot())
	}
	return r.matrix.Combinations()
}

// Refresh replaces local variant state with the store's list. It runs
// automatically after every remote mutation; callers use it for the initial
// load.
func (r *Reconciler) Refresh(ctx context.Context) error {
	if r.state != statePersisted {
		return nil
	}
	variants, err := r.store.ListVariants(ctx, r.productID)
	if err != nil {
		return fmt.Errorf("failed to fetch variants: %w", err)
	}
	r.matrix.SetVariants(variants)
	return nil
}

// SaveVariation creates or updates the variant record backing the given
// combination. The (name, value) encoding is derived with the same rule the
// generator matches on, so the combination re-attaches to its record on the
// next pass. A sale price of zero means "no sale price" and is stored as
// null, never as 0.
func (r *Reconciler) SaveVariation(ctx context.Context, combo Combination, input VariationInput) error {
	name, value, err := deriveEncoding(combo)
	if err != nil {
		return err
	}

	firstVariation := len(r.Variants()) == 0

	salePrice := normalizeSalePrice(input.SalePrice)
	var sku *string
	if input.SKU != "" {
		sku = &input.SKU
	}

	switch r.state {
	case stateDraft:
		r.staging.upsert(models.ProductVariant{
			Name:              name,
			Value:             value,
			PriceGhs:          input.RegularPrice,
			CompareAtPriceGhs: salePrice,
			Stock:             input.Stock,
			SKU:               sku,
		})
		r.matrix.SetVariants(r.staging.snapshot())

	case statePersisted:
		if combo.ExistingVariant != nil {
			req := models.UpdateVariantRequest{
				Name:              &name,
				Value:             &value,
				PriceGhs:          &input.RegularPrice,
				CompareAtPriceGhs: salePrice,
				Stock:             &input.Stock,
				SKU:               sku,
			}
			if _, err := r.store.UpdateVariant(ctx, combo.ExistingVariant.ID, req); err != nil {
				return err
			}
		} else {
			req := models.CreateVariantRequest{
				ProductID:         r.productID.String(),
				Name:              name,
				Value:             value,
				PriceGhs:          input.RegularPrice,
				CompareAtPriceGhs: salePrice,
				Stock:             input.Stock,
				SKU:               sku,
			}
			if _, err := r.store.CreateVariant(ctx, req); err != nil {
				return err
			}
		}
		// Re-sync from the source of truth so server-assigned ids land in
		// the matrix before the next status pass.
		if err := r.Refresh(ctx); err != nil {
			return err
		}
	}

	if firstVariation && input.RegularPrice > 0 && r.OnHeadlinePrice != nil {
		r.OnHeadlinePrice(input.RegularPrice)
	}
	return nil
}

// DeleteVariation removes the variant record backing the combination, then
// runs the cleanup pass: a term no other displayed combination references is
// dropped from the selection, so the grid tidies itself up.
func (r *Reconciler) DeleteVariation(ctx context.Context, combo Combination) error {
	if r.Confirm != nil && !r.Confirm(combo) {
		return ErrDeleteNotConfirmed
	}

	switch r.state {
	case stateDraft:
		name, value, err := deriveEncoding(combo)
		if err != nil {
			return err
		}
		r.staging.remove(name, value)
		r.matrix.SetVariants(r.staging.snapshot())

	case statePersisted:
		if combo.ExistingVariant != nil && combo.ExistingVariant.ID != uuid.Nil {
			if err := r.store.DeleteVariant(ctx, combo.ExistingVariant.ID); err != nil {
				return err
			}
			if err := r.Refresh(ctx); err != nil {
				return err
			}
		}
	}

	r.cleanupTerms(combo)
	return nil
}

// Flush transitions a draft reconciler to persisted: every staged entry is
// created remotely against the now-existing product, then local state is
// replaced by the server's list.
func (r *Reconciler) Flush(ctx context.Context, store VariantStore, productID uuid.UUID) error {
	if r.state != stateDraft {
		return ErrNotDraft
	}
	for _, staged := range r.staging.snapshot() {
		req := models.CreateVariantRequest{
			ProductID:         productID.String(),
			Name:              staged.Name,
			Value:             staged.Value,
			PriceGhs:          staged.PriceGhs,
			CompareAtPriceGhs: staged.CompareAtPriceGhs,
			Stock:             staged.Stock,
			SKU:               staged.SKU,
		}
		if _, err := store.CreateVariant(ctx, req); err != nil {
			return fmt.Errorf("failed to flush staged variation %q: %w", staged.Value, err)
		}
	}
	r.state = statePersisted
	r.store = store
	r.productID = productID
	r.staging = newStagingList()
	return r.Refresh(ctx)
}

// cleanupTerms drops the deleted combination's terms from the selection when
// no other displayed combination still references them. Removing the last
// length for a color shrinks the matrix by a whole row, which is the
// intended tidy-up.
func (r *Reconciler) cleanupTerms(deleted Combination) {
	combos := GenerateCombinations(r.selection.Colors(), r.selection.Lengths(), r.Variants())

	if deleted.Color != nil {
		referenced := false
		for _, c := range combos {
			if c.ComboKey != deleted.ComboKey && c.Color != nil && *c.Color == *deleted.Color {
				referenced = true
				break
			}
		}
		if !referenced {
			r.selection.RemoveColor(*deleted.Color)
		}
	}
	if deleted.Length != nil {
		referenced := false
		for _, c := range combos {
			if c.ComboKey != deleted.ComboKey && c.Length != nil && *c.Length == *deleted.Length {
				referenced = true
				break
			}
		}
		if !referenced {
			r.selection.RemoveLength(*deleted.Length)
		}
	}
}

// deriveEncoding maps a combination to the (name, value) pair its variant
// record carries. Kept in lockstep with the generator's matching rule.
func deriveEncoding(combo Combination) (name, value string, err error) {
	switch {
	case combo.Color != nil && combo.Length != nil:
		return "Color / Length", *combo.Color + " / " + *combo.Length, nil
	case combo.Color != nil:
		return "Color", *combo.Color, nil
	case combo.Length != nil:
		return "Length", *combo.Length, nil
	default:
		return "", "", ErrNoDimensions
	}
}

func normalizeSalePrice(salePrice float64) *float64 {
	if salePrice <= 0 {
		return nil
	}
	return &salePrice
}

// stagingList holds variant-shaped entries for a not-yet-persisted product.
// Entries are keyed by their (name, value) identity, which makes "at most
// one record per combination" structural, and insertion order is preserved
// so the first staged variation stays first for headline pricing.
type stagingList struct {
	order []string
	items map[string]models.ProductVariant
}

func newStagingList() *stagingList {
	return &stagingList{items: make(map[string]models.ProductVariant)}
}

func stagingKey(name, value string) string {
	return name + "\x00" + value
}

func (s *stagingList) upsert(v models.ProductVariant) {
	key := stagingKey(v.Name, v.Value)
	if _, exists := s.items[key]; !exists {
		s.order = append(s.order, key)
	}
	s.items[key] = v
}

func (s *stagingList) remove(name, value string) {
	key := stagingKey(name, value)
	if _, exists := s.items[key]; !exists {
		return
	}
	delete(s.items, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *stagingList) snapshot() []models.ProductVariant {
	out := make([]models.ProductVariant, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.items[key])
	}
	return out
}
