package product

import (
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultCurrencySymbol is used when the provider reports no usable price data.
const DefaultCurrencySymbol = "$"

var symbolPrinter = message.NewPrinter(language.English)

// CurrencySymbol returns the symbol for an ISO 4217 code, e.g. "EUR" -> "€".
// It returns DefaultCurrencySymbol for empty or unknown codes.
func CurrencySymbol(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return DefaultCurrencySymbol
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return DefaultCurrencySymbol
	}
	sym := symbolPrinter.Sprint(currency.Symbol(unit))
	if sym == "" {
		return DefaultCurrencySymbol
	}
	return sym
}
