package progress

import "testing"

func TestLabelSet_Label(t *testing.T) {
	tests := []struct {
		name    string
		labels  LabelSet
		current float64
		target  float64
		want    string
	}{
		{"budget good", BudgetLabels, 100, 800, "Good"},
		{"budget close", BudgetLabels, 650, 800, "Close"},
		{"budget at limit", BudgetLabels, 800, 800, "Over"},
		{"budget over limit", BudgetLabels, 900, 800, "Over"},
		{"goal in progress", GoalLabels, 10, 100, "In Progress"},
		{"goal almost there", GoalLabels, 80, 100, "Almost There"},
		{"goal nearly complete", GoalLabels, 95, 100, "Nearly Complete"},
		{"goal reached", GoalLabels, 100, 100, "Complete"},
		{"goal exceeded", GoalLabels, 120, 100, "Complete"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Compute(tt.current, tt.target)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := tt.labels.Label(result); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}
