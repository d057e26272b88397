package billing

// PaywallVariantKey is the key of the integer variant code inside Paywall.JSON.
const PaywallVariantKey = "paywall"

// Placement is a remotely configured slot that may carry a paywall.
type Placement struct {
	ID      string   `json:"id" yaml:"id"`
	Paywall *Paywall `json:"paywall,omitempty" yaml:"paywall,omitempty"`
}

// Paywall is a remotely configured paywall definition.
// JSON is the free-form remote configuration attached to it; it may be nil.
type Paywall struct {
	ID       string         `json:"id" yaml:"id"`
	Name     string         `json:"name,omitempty" yaml:"name,omitempty"`
	JSON     map[string]any `json:"json,omitempty" yaml:"json,omitempty"`
	Products []Product      `json:"products,omitempty" yaml:"products,omitempty"`
}

// Product is a purchasable item as reported by the provider.
type Product struct {
	ID          string        `json:"id" yaml:"id"`                                         // store product identifier, e.g. com.app.yearly
	ProviderRef string        `json:"provider_ref,omitempty" yaml:"provider_ref,omitempty"` // id the provider needs to purchase it
	Name        string        `json:"name,omitempty" yaml:"name,omitempty"`
	Store       *StoreProduct `json:"store,omitempty" yaml:"store,omitempty"` // nil when price data is unavailable
}

// Ref returns the identifier used to purchase the product.
func (p Product) Ref() string {
	if p.ProviderRef != "" {
		return p.ProviderRef
	}
	return p.ID
}

// StoreProduct carries the price data the store reported for a product.
type StoreProduct struct {
	Price          string  `json:"price" yaml:"price"`                                         // decimal string, e.g. "4.99"
	CurrencyCode   string  `json:"currency_code,omitempty" yaml:"currency_code,omitempty"`     // ISO 4217
	CurrencySymbol string  `json:"currency_symbol,omitempty" yaml:"currency_symbol,omitempty"` // as localised by the store
	Introductory   *Period `json:"introductory,omitempty" yaml:"introductory,omitempty"`       // trial period, if any
}

// PeriodUnit is the unit of a subscription period.
type PeriodUnit string

const (
	PeriodDay   PeriodUnit = "day"
	PeriodWeek  PeriodUnit = "week"
	PeriodMonth PeriodUnit = "month"
	PeriodYear  PeriodUnit = "year"
)

// Period is a count of PeriodUnits.
type Period struct {
	Unit  PeriodUnit `json:"unit" yaml:"unit"`
	Count int        `json:"count" yaml:"count"`
}
