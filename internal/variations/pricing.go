package variations

import "github.com/wastwagon/juellehairgh.com-sub001/internal/models"

// DerivedPrice returns the headline price of a variable product: the price
// of the first variant in list order carrying a positive price. The boolean
// reports whether any priced variant was found.
func DerivedPrice(variants []models.ProductVariant) (float64, bool) {
	for i := range variants {
		if variants[i].PriceGhs > 0 {
			return variants[i].PriceGhs, true
		}
	}
	return 0, false
}

// SubmitPrice resolves the price a product record is written with. A simple
// product keeps its manually entered price. A variable product always gets a
// numeric price, derived from its variants, and falls back to zero when no
// variant is priced yet; the field is never omitted or null on the wire.
func SubmitPrice(productType models.ProductType, manualPrice float64, variants []models.ProductVariant) float64 {
	if productType != models.ProductTypeVariable {
		return manualPrice
	}
	price, _ := DerivedPrice(variants)
	return price
}

// FormState models the pricing-mode half of the product form: switching to
// variable parks the manual price, switching back restores it. The parked
// value survives any number of round trips, so flipping the toggle twice is
// lossless.
type FormState struct {
	productType models.ProductType
	manualPrice float64
	parkedPrice float64
}

// NewFormState creates a form state for an existing or blank product
func NewFormState(productType models.ProductType, price float64) *FormState {
	return &FormState{productType: productType, manualPrice: price}
}

// ProductType returns the current pricing mode
func (f *FormState) ProductType() models.ProductType {
	return f.productType
}

// SetManualPrice records an operator-entered price. Only meaningful in
// simple mode; ignored while the product is variable.
func (f *FormState) SetManualPrice(price float64) {
	if f.productType == models.ProductTypeSimple {
		f.manualPrice = price
	}
}

// ManualPrice returns the manually entered price
func (f *FormState) ManualPrice() float64 {
	return f.manualPrice
}

// SwitchTo changes the pricing mode. Moving to variable parks the manual
// price and zeroes the field; moving back to simple restores the parked
// value.
func (f *FormState) SwitchTo(productType models.ProductType) {
	if productType == f.productType {
		return
	}
	switch productType {
	case models.ProductTypeVariable:
		f.parkedPrice = f.manualPrice
		f.manualPrice = 0
	case models.ProductTypeSimple:
		f.manualPrice = f.parkedPrice
	}
	f.productType = productType
}

// SubmitPrice resolves the price for the current mode and variant list
func (f *FormState) SubmitPrice(variants []models.ProductVariant) float64 {
	return SubmitPrice(f.productType, f.manualPrice, variants)
}
