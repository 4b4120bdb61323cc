// Package progress computes completion percentages, remaining amounts and status
// bands for budgets and savings goals.
package progress

import (
	"math"

	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
)

// Status is the band a current/target ratio falls into.
type Status string

const (
	StatusGood    Status = "good"
	StatusWarning Status = "warning"
	StatusDanger  Status = "danger"
)

// Band thresholds, in percent of target. Each band includes its lower bound.
const (
	WarningThreshold = 75.0
	DangerThreshold  = 90.0
)

// Result is the derived progress of a current amount against a target.
// It is never persisted.
type Result struct {
	// Percentage is current/target*100 clamped to [0, 100].
	Percentage float64
	// Remaining is target - current. Negative values are overage.
	Remaining float64
	// Status is classified on the unclamped ratio.
	Status Status
}

// Complete reports whether current has reached the target.
func (r Result) Complete() bool {
	return r.Remaining <= 0
}

// Over reports whether current is strictly above the target.
func (r Result) Over() bool {
	return r.Remaining < 0
}

// Compute returns the progress of current against target.
// It fails with ErrInvalidAmount for negative or non-finite inputs, target
// included, and with ErrInvalidTarget only when target is zero.
func Compute(current, target float64) (Result, error) {
	if !validAmount(current) || !isFinite(target) {
		return Result{}, invalidAmount()
	}
	if target < 0 {
		return Result{}, invalidAmount()
	}
	if target == 0 {
		return Result{}, domainerror.NewProgressError(
			domainerror.ErrCodeInvalidTarget,
			"cannot compute progress against an empty target",
			domainerror.ErrInvalidTarget,
		)
	}

	ratio := current * 100 / target
	if !isFinite(ratio) {
		return Result{}, invalidAmount()
	}

	return Result{
		Percentage: clamp(ratio, 0, 100),
		Remaining:  target - current,
		Status:     classify(ratio),
	}, nil
}

// Classify returns the status band for an unclamped percentage.
func Classify(ratio float64) Status {
	return classify(ratio)
}

func classify(ratio float64) Status {
	switch {
	case ratio >= DangerThreshold:
		return StatusDanger
	case ratio >= WarningThreshold:
		return StatusWarning
	default:
		return StatusGood
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func validAmount(v float64) bool {
	return isFinite(v) && v >= 0
}

func invalidAmount() error {
	return domainerror.NewProgressError(
		domainerror.ErrCodeInvalidAmount,
		"progress amounts must be finite and non-negative",
		domainerror.ErrInvalidAmount,
	)
}
