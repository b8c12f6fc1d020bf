package types

import ierr "github.com/apnmt/payment/internal/errors"

// Currency is the ISO currency a price is denominated in. The lowercase
// values mirror what the billing provider's API expects.
type Currency string

const (
	CurrencyEUR Currency = "eur"
	CurrencyUSD Currency = "usd"
	CurrencyGBP Currency = "gbp"
)

func (c Currency) Validate() error {
	switch c {
	case CurrencyEUR, CurrencyUSD, CurrencyGBP:
		return nil
	default:
		return ierr.NewErrorf("invalid currency: %s", c).
			WithHint("Currency must be one of: eur, usd, gbp").
			Mark(ierr.ErrValidation)
	}
}

// BillingInterval is the recurring interval of a price.
type BillingInterval string

const (
	BillingIntervalDay   BillingInterval = "day"
	BillingIntervalWeek  BillingInterval = "week"
	BillingIntervalMonth BillingInterval = "month"
	BillingIntervalYear  BillingInterval = "year"
)

func (i BillingInterval) Validate() error {
	switch i {
	case BillingIntervalDay, BillingIntervalWeek, BillingIntervalMonth, BillingIntervalYear:
		return nil
	default:
		return ierr.NewErrorf("invalid billing interval: %s", i).
			WithHint("Billing interval must be one of: day, week, month, year").
			Mark(ierr.ErrValidation)
	}
}
