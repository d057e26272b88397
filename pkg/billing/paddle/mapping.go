package paddle

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/currency"

	"github.com/dmitrymomot/premiumkit/pkg/billing"
)

// Custom data keys read from Paddle products and prices.
const (
	KeyPlacement = "placement"  // product: placement the product's prices belong to
	KeyPaywall   = "paywall"    // product: paywall variant code
	KeyProductID = "product_id" // price: store product identifier
	KeyPosition  = "position"   // price: order on the paywall
	KeyPaywallID = "paywall_id" // product: paywall identifier, defaults to the product ID
)

// MapPlacements groups catalog products into placements. Each Paddle product
// tagged with a placement becomes one paywall; its custom data is the
// paywall's remote config. Products without a placement tag are skipped.
// Placements keep the order in which they first appear.
func MapPlacements(products []CatalogProduct) []billing.Placement {
	var out []billing.Placement
	index := map[string]int{}

	for _, cp := range products {
		placementID := stringValue(cp.CustomData, KeyPlacement)
		if placementID == "" {
			continue
		}
		if _, ok := index[placementID]; ok {
			// one paywall per placement, first wins
			continue
		}

		pw := &billing.Paywall{
			ID:       cmp.Or(stringValue(cp.CustomData, KeyPaywallID), cp.ID),
			Name:     cp.Name,
			JSON:     paywallJSON(cp.CustomData),
			Products: MapPrices(cp.Prices),
		}
		index[placementID] = len(out)
		out = append(out, billing.Placement{ID: placementID, Paywall: pw})
	}
	return out
}

// MapPrices converts active prices into billing products ordered by their
// position custom data. Prices without a position keep their relative order
// after the positioned ones.
func MapPrices(prices []CatalogPrice) []billing.Product {
	type ranked struct {
		pos     int
		product billing.Product
	}

	list := make([]ranked, 0, len(prices))
	for _, pr := range prices {
		if pr.Archived {
			continue
		}
		pos, ok := intValue(pr.CustomData, KeyPosition)
		if !ok {
			pos = int(^uint(0) >> 1)
		}
		list = append(list, ranked{pos: pos, product: mapPrice(pr)})
	}
	slices.SortStableFunc(list, func(a, b ranked) int { return cmp.Compare(a.pos, b.pos) })

	out := make([]billing.Product, len(list))
	for i, r := range list {
		out[i] = r.product
	}
	return out
}

func mapPrice(pr CatalogPrice) billing.Product {
	p := billing.Product{
		ID:          cmp.Or(stringValue(pr.CustomData, KeyProductID), pr.ID),
		ProviderRef: pr.ID,
		Name:        pr.Name,
	}

	price, err := FormatAmount(pr.Amount, pr.CurrencyCode)
	if err != nil {
		return p
	}
	p.Store = &billing.StoreProduct{
		Price:        price,
		CurrencyCode: strings.ToUpper(pr.CurrencyCode),
	}
	if pr.Trial != nil && pr.Trial.Count > 0 {
		trial := *pr.Trial
		p.Store.Introductory = &trial
	}
	return p
}

// FormatAmount converts a minor-unit amount into a decimal string using the
// currency's standard scale: FormatAmount("499", "USD") is "4.99",
// FormatAmount("500", "JPY") is "500". Unknown currencies use two decimals.
func FormatAmount(amount, code string) (string, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(amount), 10, 64)
	if err != nil {
		return "", fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	scale := 2
	if unit, err := currency.ParseISO(code); err == nil {
		scale, _ = currency.Standard.Rounding(unit)
	}
	if scale == 0 {
		return strconv.FormatInt(n, 10), nil
	}

	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	div := int64(1)
	for range scale {
		div *= 10
	}
	return fmt.Sprintf("%s%d.%0*d", sign, n/div, scale, n%div), nil
}

// paywallJSON is the product custom data without the keys used for mapping.
func paywallJSON(data map[string]any) map[string]any {
	if len(data) == 0 {
		return nil
	}
	out := make(map[string]any, len(data))
	for k, v := range data {
		switch k {
		case KeyPlacement, KeyPaywallID:
			continue
		}
		out[k] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func stringValue(data map[string]any, key string) string {
	s, _ := data[key].(string)
	return strings.TrimSpace(s)
}

func intValue(data map[string]any, key string) (int, bool) {
	switch v := data[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case string:
		n, err := strconv.Atoi(v)
		return n, err == nil
	default:
		return 0, false
	}
}
