package product

import "github.com/dmitrymomot/premiumkit/pkg/billing"

// DaysIn converts a subscription period to days using fixed multipliers
// (day=1, week=7, month=30, year=365). Unknown units yield 0.
func DaysIn(p billing.Period) int {
	switch p.Unit {
	case billing.PeriodDay:
		return p.Count
	case billing.PeriodWeek:
		return p.Count * 7
	case billing.PeriodMonth:
		return p.Count * 30
	case billing.PeriodYear:
		return p.Count * 365
	default:
		return 0
	}
}

// trialDays returns nil when the product has no introductory period.
func trialDays(store *billing.StoreProduct) *int {
	if store == nil || store.Introductory == nil {
		return nil
	}
	days := DaysIn(*store.Introductory)
	return &days
}
