package product_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/premiumkit/pkg/billing"
	"github.com/dmitrymomot/premiumkit/pkg/product"
)

func TestDurationOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   string
		want product.Duration
	}{
		{"com.app.YEARLY_SUB", product.DurationYear},
		{"com.app.weekly", product.DurationWeek},
		{"com.app.month_trial", product.DurationMonth},
		{"com.app.Day.pass", product.DurationDay},
		{"com.app.quarter", product.DurationQuarter},
		{"com.app.lifetime", product.DurationWeek},
		{"", product.DurationWeek},
		// week is declared before month, so it wins when both appear
		{"com.app.week_or_month", product.DurationWeek},
		// month wins over day for "monthday"
		{"monthday", product.DurationMonth},
		// "daily" does not contain the "day" token
		{"com.app.daily", product.DurationWeek},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, product.DurationOf(tt.id))
		})
	}
}

func TestDuration_LongDescription(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "weekly", product.DurationWeek.LongDescription())
	assert.Equal(t, "monthly", product.DurationMonth.LongDescription())
	assert.Equal(t, "yearly", product.DurationYear.LongDescription())
	assert.Equal(t, "daily", product.DurationDay.LongDescription())
	assert.Equal(t, "quarterly", product.DurationQuarter.LongDescription())
}

func TestDaysIn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		period billing.Period
		want   int
	}{
		{"2 weeks", billing.Period{Unit: billing.PeriodWeek, Count: 2}, 14},
		{"1 month", billing.Period{Unit: billing.PeriodMonth, Count: 1}, 30},
		{"1 year", billing.Period{Unit: billing.PeriodYear, Count: 1}, 365},
		{"3 days", billing.Period{Unit: billing.PeriodDay, Count: 3}, 3},
		{"unknown unit", billing.Period{Unit: "fortnight", Count: 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, product.DaysIn(tt.period))
		})
	}
}

func TestCurrencySymbol(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "$", product.CurrencySymbol("USD"))
	assert.Equal(t, "€", product.CurrencySymbol("EUR"))
	assert.Equal(t, product.DefaultCurrencySymbol, product.CurrencySymbol(""))
	assert.Equal(t, product.DefaultCurrencySymbol, product.CurrencySymbol("not-a-code"))
}

func TestAnnotate_Live(t *testing.T) {
	t.Parallel()

	t.Run("uses provider price data", func(t *testing.T) {
		src := billing.Product{
			ID:   "com.app.monthly",
			Name: "Monthly",
			Store: &billing.StoreProduct{
				Price:          "9.49",
				CurrencySymbol: "€",
				Introductory:   &billing.Period{Unit: billing.PeriodWeek, Count: 1},
			},
		}

		p := product.Annotate(src, false)

		assert.Equal(t, "com.app.monthly", p.ID)
		assert.Equal(t, product.DurationMonth, p.Duration)
		require.NotNil(t, p.PriceNumber)
		assert.InDelta(t, 9.49, *p.PriceNumber, 0.0001)
		assert.Equal(t, "€9.49", p.Price)
		assert.Equal(t, "€", p.Currency)
		require.NotNil(t, p.TrialDays)
		assert.Equal(t, 7, *p.TrialDays)
		assert.Equal(t, src, p.Source)
	})

	t.Run("derives symbol from currency code", func(t *testing.T) {
		p := product.Annotate(billing.Product{
			ID:    "com.app.yearly",
			Store: &billing.StoreProduct{Price: "39.99", CurrencyCode: "USD"},
		}, false)

		assert.Equal(t, "$39.99", p.Price)
		assert.Nil(t, p.TrialDays)
	})

	t.Run("missing price data leaves prices empty", func(t *testing.T) {
		p := product.Annotate(billing.Product{ID: "com.app.weekly"}, false)

		assert.Nil(t, p.PriceNumber)
		assert.Empty(t, p.Price)
		assert.Equal(t, product.DefaultCurrencySymbol, p.Currency)
		assert.Nil(t, p.TrialDays)
	})

	t.Run("unparsable price keeps display string only", func(t *testing.T) {
		p := product.Annotate(billing.Product{
			ID:    "com.app.weekly",
			Store: &billing.StoreProduct{Price: "n/a", CurrencySymbol: "$"},
		}, false)

		assert.Nil(t, p.PriceNumber)
		assert.Equal(t, "$n/a", p.Price)
	})
}

// Debug mode keeps a fixed display price while the numeric price follows the
// duration table. Both must hold at the same time.
func TestAnnotate_DebugPriceMismatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   string
		want float64
	}{
		{"com.app.weekly", 4.99},
		{"com.app.monthly", 9.99},
		{"com.app.yearly", 39.99},
		{"com.app.day", 1.99},
		{"com.app.quarterly", 5.99},
		{"com.app.unknown", 4.99},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			p := product.Annotate(billing.Product{
				ID:    tt.id,
				Store: &billing.StoreProduct{Price: "100.00", CurrencySymbol: "£"},
			}, true)

			require.NotNil(t, p.PriceNumber)
			assert.InDelta(t, tt.want, *p.PriceNumber, 0.0001)
			assert.Equal(t, "$2.29", p.Price)
		})
	}
}

func TestAnnotate_DebugWithoutStoreData(t *testing.T) {
	t.Parallel()

	p := product.Annotate(billing.Product{ID: "com.app.monthly"}, true)

	require.NotNil(t, p.PriceNumber)
	assert.InDelta(t, 9.99, *p.PriceNumber, 0.0001)
	assert.Equal(t, product.DebugPriceDisplay, p.Price)
	assert.Equal(t, product.DefaultCurrencySymbol, p.Currency)
}

func TestAnnotateAll(t *testing.T) {
	t.Parallel()

	src := []billing.Product{{ID: "a.week"}, {ID: "b.month"}, {ID: "c.year"}}
	got := product.AnnotateAll(src, false)

	require.Len(t, got, 3)
	assert.Equal(t, []string{"a.week", "b.month", "c.year"}, product.IDs(got))
	assert.Empty(t, product.AnnotateAll(nil, false))
}
