// Package valueobject contains domain value objects for the personal finance system.
package valueobject

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Ceiling is the exclusive upper bound a monetary amount must stay below.
type Ceiling int64

const (
	// TransactionCeiling bounds single expenses and budget limits.
	TransactionCeiling Ceiling = 10_000_000
	// GoalCeiling bounds goal targets, balances and contributions.
	GoalCeiling Ceiling = 100_000_000
	// SummaryCeiling bounds aggregate profile fields such as balance or income.
	SummaryCeiling Ceiling = 1_000_000_000
)

var (
	ErrNegativeAmount  = errors.New("amount must not be negative")
	ErrZeroAmount      = errors.New("amount must be greater than zero")
	ErrAmountTooLarge  = errors.New("amount exceeds the allowed maximum")
	ErrMalformedAmount = errors.New("amount is not a valid number")
)

// Decimal returns the ceiling as a decimal.
func (c Ceiling) Decimal() decimal.Decimal {
	return decimal.NewFromInt(int64(c))
}

// Float returns the ceiling as a float64, for validator tags.
func (c Ceiling) Float() float64 {
	return float64(c)
}

// ValidateAmount checks amount against the MonetaryAmount rules: non-negative,
// strictly below ceiling and, unless allowZero, strictly positive.
func ValidateAmount(amount decimal.Decimal, ceiling Ceiling, allowZero bool) error {
	switch {
	case amount.IsNegative():
		return ErrNegativeAmount
	case amount.IsZero() && !allowZero:
		return ErrZeroAmount
	case amount.GreaterThanOrEqual(ceiling.Decimal()):
		return fmt.Errorf("%w: must be less than %s", ErrAmountTooLarge, ceiling.Decimal().String())
	}
	return nil
}

// NormalizeAmount rounds amount to cents and validates the rounded value, so
// what is checked is what gets stored. A sub-cent positive amount rounds to
// zero and fails when zero is not allowed.
func NormalizeAmount(amount decimal.Decimal, ceiling Ceiling, allowZero bool) (decimal.Decimal, error) {
	rounded := amount.Round(2)
	if err := ValidateAmount(rounded, ceiling, allowZero); err != nil {
		return decimal.Zero, err
	}
	return rounded, nil
}

// ParseAmount parses a user-supplied amount string, accepting an optional
// thousands separator, and rounds it to cents.
func ParseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return decimal.Zero, ErrMalformedAmount
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrMalformedAmount, raw)
	}
	return amount.Round(2), nil
}
