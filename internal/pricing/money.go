package pricing

import "github.com/shopspring/decimal"

// MoneyPlaces is the number of decimal places every computed amount is rounded to.
const MoneyPlaces = 2

var (
	zero = decimal.Zero
	one  = decimal.NewFromInt(1)
)

// RoundMoney rounds half-up to MoneyPlaces. decimal.Round rounds half away from
// zero, which is half-up for the non-negative amounts the engine produces.
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyPlaces)
}

func validFraction(p decimal.Decimal) bool {
	return p.GreaterThan(zero) && p.LessThan(one)
}
