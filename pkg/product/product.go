package product

import (
	"strconv"
	"strings"

	"github.com/dmitrymomot/premiumkit/pkg/billing"
)

// Product is a provider product annotated with the fields a paywall renders.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name,omitempty"`
	Duration    Duration `json:"duration"`
	PriceNumber *float64 `json:"price_number,omitempty"` // nil when the provider has no price
	Price       string   `json:"price,omitempty"`        // display price, empty when unavailable
	Currency    string   `json:"currency"`
	TrialDays   *int     `json:"trial_days,omitempty"` // nil when there is no introductory period

	Source billing.Product `json:"-"`
}

// Annotate derives the display fields of src.
// With debug set, prices come from the fixed debug table instead of the provider.
func Annotate(src billing.Product, debug bool) Product {
	p := Product{
		ID:        src.ID,
		Name:      src.Name,
		Duration:  DurationOf(src.ID),
		Currency:  currencyOf(src.Store),
		TrialDays: trialDays(src.Store),
		Source:    src,
	}

	if debug {
		n := DebugPriceNumber(p.Duration)
		p.PriceNumber = &n
		p.Price = DebugPriceDisplay
		return p
	}

	if src.Store == nil {
		return p
	}
	raw := strings.TrimSpace(src.Store.Price)
	if raw == "" {
		return p
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		p.PriceNumber = &n
	}
	p.Price = p.Currency + raw
	return p
}

// AnnotateAll annotates every product, keeping order.
func AnnotateAll(src []billing.Product, debug bool) []Product {
	out := make([]Product, 0, len(src))
	for _, s := range src {
		out = append(out, Annotate(s, debug))
	}
	return out
}

// IDs returns product identifiers in order.
func IDs(products []Product) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

func currencyOf(store *billing.StoreProduct) string {
	if store == nil {
		return DefaultCurrencySymbol
	}
	if store.CurrencySymbol != "" {
		return store.CurrencySymbol
	}
	return CurrencySymbol(store.CurrencyCode)
}
