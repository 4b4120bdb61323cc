package progress

// LabelSet maps status bands to display labels. Budgets and goals use
// separate sets on the same thresholds.
type LabelSet struct {
	Good    string
	Warning string
	Danger  string
	// Complete, when set, overrides the band once current reaches target.
	Complete string
}

var (
	BudgetLabels = LabelSet{
		Good:    "Good",
		Warning: "Close",
		Danger:  "Over",
	}

	GoalLabels = LabelSet{
		Good:     "In Progress",
		Warning:  "Almost There",
		Danger:   "Nearly Complete",
		Complete: "Complete",
	}
)

// Label returns the label for a computed result.
func (l LabelSet) Label(r Result) string {
	if l.Complete != "" && r.Complete() {
		return l.Complete
	}
	switch r.Status {
	case StatusDanger:
		return l.Danger
	case StatusWarning:
		return l.Warning
	default:
		return l.Good
	}
}
