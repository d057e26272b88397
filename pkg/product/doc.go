// Package product annotates provider products with the values a paywall shows:
// inferred subscription duration, numeric and display price, currency symbol and
// trial length in days.
//
// Live prices come from the provider's StoreProduct. In debug mode Annotate
// substitutes a fixed table keyed by duration for the numeric price and the
// constant DebugPriceDisplay for the display string.
package product
