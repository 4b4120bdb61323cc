package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
)

// Trend window bounds, in months.
const (
	DefaultTrendMonths = 6
	MaxTrendMonths     = 24
)

// GetTrendsInput represents the input for getting trends.
// Months of zero selects DefaultTrendMonths.
type GetTrendsInput struct {
	UserID uuid.UUID
	Months int
}

// TrendPoint represents a single trend data point.
type TrendPoint struct {
	Month       time.Time       `json:"month"`
	PeriodLabel string          `json:"period_label"`
	Expenses    decimal.Decimal `json:"expenses"`
}

// GetTrendsOutput represents the output of getting trends.
type GetTrendsOutput struct {
	Months int             `json:"months"`
	Trends []TrendPoint    `json:"trends"`
	Total  decimal.Decimal `json:"total"`
}

// GetTrendsUseCase returns monthly expense totals.
type GetTrendsUseCase struct {
	expenseRepo adapter.ExpenseRepository
	cache       adapter.SummaryCache
	now         func() time.Time
}

// NewGetTrendsUseCase creates a new GetTrendsUseCase instance. cache may be nil.
func NewGetTrendsUseCase(expenseRepo adapter.ExpenseRepository, cache adapter.SummaryCache) *GetTrendsUseCase {
	return &GetTrendsUseCase{
		expenseRepo: expenseRepo,
		cache:       cache,
		now:         time.Now,
	}
}

// Execute retrieves monthly totals for the trailing window, with empty months as zero.
func (uc *GetTrendsUseCase) Execute(ctx context.Context, input GetTrendsInput) (*GetTrendsOutput, error) {
	months := input.Months
	if months == 0 {
		months = DefaultTrendMonths
	}
	if months < 1 || months > MaxTrendMonths {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidTrendMonths,
			"months must be between 1 and 24",
			domainerror.ErrInvalidTrendMonths,
		)
	}

	cacheKey := fmt.Sprintf("trends:%d", months)
	var cached GetTrendsOutput
	if loadCached(ctx, uc.cache, input.UserID, cacheKey, &cached) {
		return &cached, nil
	}

	series := MonthSeries(uc.now(), months)
	start := series[0]
	end := series[len(series)-1].AddDate(0, 1, 0)

	totals, err := uc.expenseRepo.MonthlyTotals(ctx, input.UserID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly totals: %w", err)
	}

	byMonth := make(map[string]decimal.Decimal, len(totals))
	for _, t := range totals {
		key := MonthStart(t.Month).Format("2006-01")
		byMonth[key] = byMonth[key].Add(t.Total)
	}

	output := &GetTrendsOutput{
		Months: months,
		Trends: make([]TrendPoint, 0, len(series)),
		Total:  decimal.Zero,
	}
	for _, month := range series {
		amount, ok := byMonth[month.Format("2006-01")]
		if !ok {
			amount = decimal.Zero
		}
		output.Trends = append(output.Trends, TrendPoint{
			Month:       month,
			PeriodLabel: MonthLabel(month),
			Expenses:    amount,
		})
		output.Total = output.Total.Add(amount)
	}

	storeCached(ctx, uc.cache, input.UserID, cacheKey, output)

	return output, nil
}
