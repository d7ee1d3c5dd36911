package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// BalanceTolerance is the absolute difference allowed between debit and credit totals.
	BalanceTolerance = decimal.New(1, -9)

	// machineEpsilon is float64 epsilon, added before half-up rounding so that
	// values sitting exactly on a .xx5 boundary round away from zero on the positive side.
	machineEpsilon = decimal.RequireFromString("2.220446049250313e-16")

	half = decimal.New(5, -1)
)

// CoerceAmount converts a textual amount to a decimal.
// Blank or malformed input yields zero and never fails.
func CoerceAmount(text string) decimal.Decimal {
	text = strings.TrimSpace(text)
	if text == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Round2 rounds to 2 decimal places, half-up on (value + epsilon).
func Round2(v decimal.Decimal) decimal.Decimal {
	return v.Add(machineEpsilon).Shift(2).Add(half).Floor().Shift(-2)
}

// IsNegligible reports whether v lies within BalanceTolerance of zero
func IsNegligible(v decimal.Decimal) bool {
	return v.Abs().LessThanOrEqual(BalanceTolerance)
}
