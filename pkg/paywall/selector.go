package paywall

import "fmt"

// SelectDefault returns the product a variant preselects, or nil.
//
//   - VariantFirst preselects the first product.
//   - VariantSecond preselects the second product.
//
// Short lists yield nil instead of faulting. Every Variant must be handled
// here explicitly: a value outside the closed set is a programming error and panics.
func SelectDefault[T any](v Variant, products []T) *T {
	switch v {
	case VariantFirst:
		return at(products, 0)
	case VariantSecond:
		return at(products, 1)
	default:
		panic(fmt.Sprintf("paywall: unhandled variant %d", int(v)))
	}
}

// at is a bounds-checked index returning nil when i is out of range.
func at[T any](items []T, i int) *T {
	if i < 0 || i >= len(items) {
		return nil
	}
	return &items[i]
}
