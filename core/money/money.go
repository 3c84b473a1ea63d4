// Package money centralizes the fixed-point decimal arithmetic the ledger,
// intake, campaign assigner, and reconciler all depend on (spec §3: balances
// at scale 8, prices at scale 2 or 8). Grounded on the decimal.Decimal usage
// in luxfi-adx's sdk/go/client.go, the only pack example carrying
// shopspring/decimal for monetary fields.
package money

import "github.com/shopspring/decimal"

// BalanceScale is the decimal scale used for User.balance and
// BalanceTransaction amounts (spec §3).
const BalanceScale = 8

// ChargeScale is the decimal scale used for the user-visible Order.charge
// (spec §4.4 step 2).
const ChargeScale = 2

// Zero is the additive identity, exported so callers never construct it by
// parsing a literal string.
var Zero = decimal.Zero

// ChargeForQuantity computes charge = quantity * pricePerThousand / 1000,
// rounded to ChargeScale using banker's rounding (round-half-to-even), as
// spec §4.4 step 2 requires for the debit amount.
func ChargeForQuantity(quantity int64, pricePerThousand decimal.Decimal) decimal.Decimal {
	qty := decimal.NewFromInt(quantity)
	raw := qty.Mul(pricePerThousand).Div(decimal.NewFromInt(1000))
	return RoundBankers(raw, ChargeScale)
}

// RoundBankers rounds d to the given number of decimal places using
// round-half-to-even, matching the "banker's rounding" spec §4.4 names
// explicitly.
func RoundBankers(d decimal.Decimal, places int32) decimal.Decimal {
	return d.RoundBank(places)
}

// ViewsFromClicks converts delivered clicks into delivered views using a
// service/mode coefficient, per spec §4.6 reconciliation: totalViews =
// floor(totalClicks / coefficient).
func ViewsFromClicks(clicks int64, coefficient decimal.Decimal) int64 {
	if coefficient.IsZero() {
		return 0
	}
	return decimal.NewFromInt(clicks).Div(coefficient).Floor().IntPart()
}

// ClicksRequired computes clicksRequired = ceil(quantity * coefficient), per
// spec §4.6 step 4.
func ClicksRequired(quantity int64, coefficient decimal.Decimal) int64 {
	return decimal.NewFromInt(quantity).Mul(coefficient).Ceil().IntPart()
}
