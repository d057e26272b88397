package paywall

import (
	"encoding/json"
	"math"

	"github.com/dmitrymomot/premiumkit/pkg/billing"
)

// Resolution is the outcome of resolving a placements payload.
type Resolution struct {
	Variant  Variant
	Paywall  *billing.Paywall // nil when the payload carried no paywall
	Products []billing.Product
}

// Resolve picks the first placement's paywall and its variant.
// It never fails: a missing paywall, missing JSON or a missing, non-integer or
// unknown variant code all resolve to Fallback.
func Resolve(placements []billing.Placement) Resolution {
	if len(placements) == 0 || placements[0].Paywall == nil {
		return Resolution{Variant: Fallback}
	}

	pw := placements[0].Paywall
	res := Resolution{
		Variant:  Fallback,
		Paywall:  pw,
		Products: pw.Products,
	}
	if code, ok := variantCode(pw.JSON); ok {
		res.Variant = ParseVariant(code)
	}
	return res
}

// variantCode reads the integer variant code from a decoded JSON/YAML map.
// Decoders disagree on number types, so every integral representation is accepted.
func variantCode(raw map[string]any) (int, bool) {
	v, ok := raw[billing.PaywallVariantKey]
	if !ok {
		return 0, false
	}

	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint64:
		if n > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || math.Abs(n) > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}
