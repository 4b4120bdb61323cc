package progress

import (
	"errors"
	"math"
	"testing"

	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
)

func TestCompute_StatusBands(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		target  float64
		want    Status
	}{
		{"exactly 90 is danger", 90, 100, StatusDanger},
		{"just below 90 is warning", 89.999, 100, StatusWarning},
		{"exactly 75 is warning", 75, 100, StatusWarning},
		{"just below 75 is good", 74.999, 100, StatusGood},
		{"zero spent is good", 0, 100, StatusGood},
		{"over target is danger", 150, 100, StatusDanger},
		{"at target is danger", 100, 100, StatusDanger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Compute(tt.current, tt.target)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Status != tt.want {
				t.Errorf("Compute(%v, %v).Status = %q, want %q", tt.current, tt.target, result.Status, tt.want)
			}
		})
	}
}

func TestCompute_OverTargetClampsPercentage(t *testing.T) {
	result, err := Compute(150, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Percentage != 100 {
		t.Errorf("Percentage = %v, want 100", result.Percentage)
	}
	if result.Remaining != -50 {
		t.Errorf("Remaining = %v, want -50", result.Remaining)
	}
	if !result.Over() || !result.Complete() {
		t.Error("expected result to be over and complete")
	}
}

func TestCompute_PercentageIsMonotonic(t *testing.T) {
	target := 800.0
	previous := -1.0

	for current := 0.0; current <= target; current += 12.5 {
		result, err := Compute(current, target)
		if err != nil {
			t.Fatalf("Compute(%v, %v) returned error: %v", current, target, err)
		}
		if result.Percentage < 0 || result.Percentage > 100 {
			t.Fatalf("Percentage %v out of range for current %v", result.Percentage, current)
		}
		if result.Percentage < previous {
			t.Fatalf("Percentage decreased from %v to %v at current %v", previous, result.Percentage, current)
		}
		previous = result.Percentage
	}
}

func TestCompute_IsIdempotent(t *testing.T) {
	first, err := Compute(280, 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Compute(280, 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Errorf("results differ: %+v vs %+v", first, second)
	}
}

func TestCompute_Errors(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		target   float64
		wantErr  error
		wantCode domainerror.ProgressErrorCode
	}{
		{"zero target", 50, 0, domainerror.ErrInvalidTarget, domainerror.ErrCodeInvalidTarget},
		{"negative current", -10, 100, domainerror.ErrInvalidAmount, domainerror.ErrCodeInvalidAmount},
		{"negative target", 10, -100, domainerror.ErrInvalidAmount, domainerror.ErrCodeInvalidAmount},
		{"NaN current", math.NaN(), 100, domainerror.ErrInvalidAmount, domainerror.ErrCodeInvalidAmount},
		{"infinite current", math.Inf(1), 100, domainerror.ErrInvalidAmount, domainerror.ErrCodeInvalidAmount},
		{"infinite target", 10, math.Inf(1), domainerror.ErrInvalidAmount, domainerror.ErrCodeInvalidAmount},
		{"ratio overflows", math.MaxFloat64, 0.5, domainerror.ErrInvalidAmount, domainerror.ErrCodeInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(tt.current, tt.target)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Compute(%v, %v) error = %v, want %v", tt.current, tt.target, err, tt.wantErr)
			}

			var progressErr *domainerror.ProgressError
			if !errors.As(err, &progressErr) {
				t.Fatalf("expected *ProgressError, got %T", err)
			}
			if progressErr.Code != tt.wantCode {
				t.Errorf("Code = %s, want %s", progressErr.Code, tt.wantCode)
			}
		})
	}
}
