package progress

import (
	"github.com/shopspring/decimal"
)

// Entry is one current/target pair folded into a Summary.
type Entry struct {
	Current float64
	Target  float64
}

// Summary aggregates a set of entries for dashboard totals.
type Summary struct {
	TotalCurrent      decimal.Decimal
	TotalTarget       decimal.Decimal
	OverallPercentage float64
	OverCount         int
}

// Rollup folds entries into totals. Sums are exact decimals, so the result does
// not depend on entry order. An empty set yields a zero Summary.
func Rollup(entries []Entry) (Summary, error) {
	totalCurrent := decimal.Zero
	totalTarget := decimal.Zero
	overCount := 0

	for _, e := range entries {
		if !validAmount(e.Current) || !validAmount(e.Target) {
			return Summary{}, invalidAmount()
		}
		totalCurrent = totalCurrent.Add(decimal.NewFromFloat(e.Current))
		totalTarget = totalTarget.Add(decimal.NewFromFloat(e.Target))
		if e.Current > e.Target {
			overCount++
		}
	}

	summary := Summary{
		TotalCurrent: totalCurrent,
		TotalTarget:  totalTarget,
		OverCount:    overCount,
	}
	if totalTarget.IsZero() {
		return summary, nil
	}

	result, err := Compute(totalCurrent.InexactFloat64(), totalTarget.InexactFloat64())
	if err != nil {
		return Summary{}, err
	}
	summary.OverallPercentage = result.Percentage

	return summary, nil
}

// EntryFromDecimal builds an Entry from persisted decimal amounts.
func EntryFromDecimal(current, target decimal.Decimal) Entry {
	return Entry{
		Current: current.InexactFloat64(),
		Target:  target.InexactFloat64(),
	}
}

// ComputeDecimal is Compute for persisted decimal amounts.
func ComputeDecimal(current, target decimal.Decimal) (Result, error) {
	return Compute(current.InexactFloat64(), target.InexactFloat64())
}
