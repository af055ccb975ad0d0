// Package money converts between major-unit decimal amounts used on the API
// boundary and the integer minor-unit (cent) amounts used everywhere else.
package money

import (
	"fmt"

	"github.com/Justinvibez/prime-vault/internal/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ToCents converts a major-unit amount to cents. Amounts that are not a whole
// number of cents are rejected, not rounded.
func ToCents(amount decimal.Decimal) (int64, error) {
	cents := amount.Mul(hundred)
	if !cents.IsInteger() {
		return 0, fmt.Errorf("amount %s is not a whole number of cents: %w", amount, models.ErrInvalidInput)
	}
	if !cents.BigInt().IsInt64() {
		return 0, fmt.Errorf("amount %s out of range: %w", amount, models.ErrInvalidInput)
	}
	v := cents.IntPart()
	if v <= 0 {
		return 0, fmt.Errorf("amount must be positive: %w", models.ErrInvalidInput)
	}
	return v, nil
}

// FromCents renders cents as a major-unit decimal for responses.
func FromCents(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(hundred)
}
