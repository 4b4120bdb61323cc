package valueobject

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name      string
		amount    string
		ceiling   Ceiling
		allowZero bool
		wantErr   error
	}{
		{"positive expense", "42.50", TransactionCeiling, false, nil},
		{"just below transaction ceiling", "9999999.99", TransactionCeiling, false, nil},
		{"at transaction ceiling", "10000000", TransactionCeiling, false, ErrAmountTooLarge},
		{"goal amount above transaction ceiling", "50000000", GoalCeiling, false, nil},
		{"at goal ceiling", "100000000", GoalCeiling, true, ErrAmountTooLarge},
		{"summary field", "999999999.99", SummaryCeiling, true, nil},
		{"zero when required positive", "0", TransactionCeiling, false, ErrZeroAmount},
		{"zero allowed", "0", GoalCeiling, true, nil},
		{"negative", "-0.01", SummaryCeiling, true, ErrNegativeAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount(decimal.RequireFromString(tt.amount), tt.ceiling, tt.allowZero)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		name      string
		amount    string
		ceiling   Ceiling
		allowZero bool
		want      string
		wantErr   error
	}{
		{"rounds to cents", "12.345", TransactionCeiling, false, "12.35", nil},
		{"sub-cent rounds to zero", "0.001", TransactionCeiling, false, "", ErrZeroAmount},
		{"sub-cent allowed as zero", "0.004", GoalCeiling, true, "0", nil},
		{"rounds up to transaction ceiling", "9999999.999", TransactionCeiling, false, "", ErrAmountTooLarge},
		{"just below after rounding", "9999999.994", TransactionCeiling, false, "9999999.99", nil},
		{"rounds up to summary ceiling", "999999999.995", SummaryCeiling, true, "", ErrAmountTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeAmount(decimal.RequireFromString(tt.amount), tt.ceiling, tt.allowZero)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("NormalizeAmount(%s) = %s, want %s", tt.amount, got, tt.want)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"1,250.75", "1250.75", false},
		{" 19.999 ", "20", false},
		{"300", "300", false},
		{"", "", true},
		{"12abc", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedAmount) {
					t.Errorf("ParseAmount(%q) error = %v, want ErrMalformedAmount", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q) unexpected error: %v", tt.input, err)
			}
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("ParseAmount(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}
