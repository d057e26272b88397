package paywall

import (
	"fmt"
	"strconv"
)

// Variant selects how a paywall is presented and which product it preselects.
type Variant int

const (
	VariantFirst  Variant = 1
	VariantSecond Variant = 2
)

// Fallback is used whenever the remote signal is absent or out of range.
const Fallback = VariantSecond

// Variants is the closed set of known variants.
var Variants = []Variant{VariantFirst, VariantSecond}

// ParseVariant maps a remote variant code to a Variant, falling back for unknown codes.
func ParseVariant(code int) Variant {
	switch Variant(code) {
	case VariantFirst:
		return VariantFirst
	case VariantSecond:
		return VariantSecond
	default:
		return Fallback
	}
}

// IsValid reports whether v belongs to the closed variant set.
func (v Variant) IsValid() bool {
	return v == VariantFirst || v == VariantSecond
}

func (v Variant) String() string {
	switch v {
	case VariantFirst:
		return "first"
	case VariantSecond:
		return "second"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// MarshalText encodes the variant by name.
func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText accepts a variant name or its numeric code. Unknown values
// decode to Fallback.
func (v *Variant) UnmarshalText(text []byte) error {
	switch s := string(text); s {
	case "first":
		*v = VariantFirst
	case "second":
		*v = VariantSecond
	default:
		n, err := strconv.Atoi(s)
		if err != nil {
			*v = Fallback
			return nil
		}
		*v = ParseVariant(n)
	}
	return nil
}
