package trade

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// amountPattern accepts the decimal strings the sell input may hold. Validation
// happens at this boundary so the reducer stores whatever it is given verbatim.
var amountPattern = regexp.MustCompile(`^[0-9]*\.?[0-9]*$`)

// ValidAmountInput reports whether s is an acceptable sell-amount string.
// The empty string is valid (it clears the form).
func ValidAmountInput(s string) bool {
	return amountPattern.MatchString(s)
}

// ToSmallestUnit converts a human-readable amount into the token's integer
// base unit (amount × 10^decimals). The second return is false when the input
// does not parse or when the multiplication yields a fractional base-unit
// amount, which is not representable on-chain and must skip the request.
func ToSmallestUnit(amount string, decimals uint8) (string, bool) {
	if amount == "" {
		return "", false
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return "", false
	}

	scaled := d.Shift(int32(decimals))
	if !scaled.IsInteger() {
		return "", false
	}

	return scaled.String(), true
}

// FromSmallestUnit converts an integer base-unit amount back to human units
// using the token's decimal precision.
func FromSmallestUnit(amount string, decimals uint8) (string, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return "", err
	}

	return d.Shift(-int32(decimals)).String(), nil
}

// isZeroAmount reports whether the decimal string is numerically zero.
func isZeroAmount(s string) bool {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return true
	}
	return d.IsZero()
}
