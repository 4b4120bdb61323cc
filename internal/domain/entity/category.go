// Package entity defines the core business entities for the domain layer.
package entity

import "strings"

// CategoryKind selects which catalog a category belongs to.
type CategoryKind string

const (
	CategoryKindExpense CategoryKind = "expense"
	CategoryKindBudget  CategoryKind = "budget"
	CategoryKindGoal    CategoryKind = "goal"
)

// Category is read-only display metadata for a category key.
type Category struct {
	Key   string
	Label string
	Icon  string
	Color string
}

// Expense category keys. Budgets reuse these so spending can be attributed.
const (
	ExpenseCategoryFood          = "food"
	ExpenseCategoryTransport     = "transport"
	ExpenseCategoryUtilities     = "utilities"
	ExpenseCategoryEntertainment = "entertainment"
	ExpenseCategoryHealthcare    = "healthcare"
	ExpenseCategoryEducation     = "education"
	ExpenseCategoryTravel        = "travel"
	ExpenseCategoryOther         = "other"
)

// Goal category keys.
const (
	GoalCategoryEmergency = "emergency"
	GoalCategoryTravel    = "travel"
	GoalCategoryTech      = "tech"
	GoalCategoryHousing   = "housing"
	GoalCategoryEducation = "education"
	GoalCategoryVehicle   = "vehicle"
	GoalCategoryOther     = "other"
)

var expenseCategories = []Category{
	{Key: ExpenseCategoryFood, Label: "Food", Icon: "shopping-cart", Color: "#F97316"},
	{Key: ExpenseCategoryTransport, Label: "Transport", Icon: "car", Color: "#3B82F6"},
	{Key: ExpenseCategoryUtilities, Label: "Utilities", Icon: "home", Color: "#22C55E"},
	{Key: ExpenseCategoryEntertainment, Label: "Entertainment", Icon: "gamepad", Color: "#EC4899"},
	{Key: ExpenseCategoryHealthcare, Label: "Healthcare", Icon: "heart", Color: "#EF4444"},
	{Key: ExpenseCategoryEducation, Label: "Education", Icon: "book", Color: "#8B5CF6"},
	{Key: ExpenseCategoryTravel, Label: "Travel", Icon: "plane", Color: "#06B6D4"},
	{Key: ExpenseCategoryOther, Label: "Other", Icon: "tag", Color: "#6366F1"},
}

var goalCategories = []Category{
	{Key: GoalCategoryEmergency, Label: "Emergency Fund", Icon: "shield", Color: "#EF4444"},
	{Key: GoalCategoryTravel, Label: "Travel", Icon: "plane", Color: "#06B6D4"},
	{Key: GoalCategoryTech, Label: "Tech", Icon: "laptop", Color: "#8B5CF6"},
	{Key: GoalCategoryHousing, Label: "Housing", Icon: "home", Color: "#22C55E"},
	{Key: GoalCategoryEducation, Label: "Education", Icon: "graduation-cap", Color: "#F59E0B"},
	{Key: GoalCategoryVehicle, Label: "Vehicle", Icon: "car", Color: "#3B82F6"},
	{Key: GoalCategoryOther, Label: "Other", Icon: "target", Color: "#6366F1"},
}

// Categories returns a copy of the catalog for kind, or nil for an unknown kind.
func Categories(kind CategoryKind) []Category {
	var src []Category
	switch kind {
	case CategoryKindExpense, CategoryKindBudget:
		src = expenseCategories
	case CategoryKindGoal:
		src = goalCategories
	default:
		return nil
	}
	out := make([]Category, len(src))
	copy(out, src)
	return out
}

// LookupCategory finds key in the catalog for kind. Matching ignores case and
// surrounding whitespace.
func LookupCategory(kind CategoryKind, key string) (Category, bool) {
	key = NormalizeCategoryKey(key)
	for _, c := range Categories(kind) {
		if c.Key == key {
			return c, true
		}
	}
	return Category{}, false
}

// NormalizeCategoryKey lowercases and trims a category key.
func NormalizeCategoryKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// IsValidCategoryKind reports whether kind names a catalog.
func IsValidCategoryKind(kind CategoryKind) bool {
	switch kind {
	case CategoryKindExpense, CategoryKindBudget, CategoryKindGoal:
		return true
	}
	return false
}
