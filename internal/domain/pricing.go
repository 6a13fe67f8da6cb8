package domain

import (
	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimal places prices are displayed with.
const MoneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// RoundMoney rounds an amount to cents using round-half-to-even, so exact
// half-cent ties do not drift upward across many prices.
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.RoundBank(MoneyPlaces)
}

// FinalPrice returns the discount-adjusted price shown to customers:
// round(base * (1 - discount/100), 2). It is derived on every read and never stored.
func FinalPrice(basePrice, discountPercent decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(discountPercent.Div(hundred))
	return RoundMoney(basePrice.Mul(factor))
}

// ValidatePricing checks the preconditions of FinalPrice.
func ValidatePricing(op string, basePrice, discountPercent decimal.Decimal) error {
	var err error
	if basePrice.IsNegative() {
		err = AddFieldError(err, "base_price", "must not be negative")
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThan(hundred) {
		err = AddFieldError(err, "discount_percent", "must be between 0 and 100")
	}
	if ve, ok := err.(*ValidationError); ok {
		ve.Op = op
		return ve
	}
	return nil
}
