package finance

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dshills/smekit/internal/schema"
)

var (
	hundred = decimal.NewFromInt(100)
	twenty  = decimal.NewFromInt(20)
	ten     = decimal.NewFromInt(10)
)

// TotalExpenses sums every expense amount.
func TotalExpenses(expenses []schema.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// CashFlow is monthly income minus total expenses.
func CashFlow(income decimal.Decimal, expenses []schema.Expense) decimal.Decimal {
	return income.Sub(TotalExpenses(expenses))
}

// SavingsRate is cash flow as a percentage of income, or 0 when income is
// not positive.
func SavingsRate(income decimal.Decimal, expenses []schema.Expense) decimal.Decimal {
	if !income.IsPositive() {
		return decimal.Zero
	}
	return CashFlow(income, expenses).Div(income).Mul(hundred)
}

// HealthScore rates financial health from 0 to 100.
//
// Start at 50, adjust by savings-rate bracket (+30 above 20%, +20 above 10%,
// +10 above 0%, otherwise -20), add 10 for tracking at least three expenses
// and 10 for having stated goals, then clamp.
func HealthScore(income decimal.Decimal, expenses []schema.Expense, goals string) int {
	score := 50
	rate := SavingsRate(income, expenses)
	switch {
	case rate.GreaterThan(twenty):
		score += 30
	case rate.GreaterThan(ten):
		score += 20
	case rate.IsPositive():
		score += 10
	default:
		score -= 20
	}
	if len(expenses) >= 3 {
		score += 10
	}
	if hasGoals(goals) {
		score += 10
	}
	return clamp(score, 0, 100)
}

func hasGoals(goals string) bool {
	return goals != ""
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// CashFlowBreakdown returns the Income / Expenses / Savings series. Savings
// never goes below zero.
func CashFlowBreakdown(data schema.FinancialData) []schema.SeriesPoint {
	total := TotalExpenses(data.Expenses)
	savings := decimal.Max(decimal.Zero, data.MonthlyIncome.Sub(total))
	return []schema.SeriesPoint{
		{Name: "Income", Value: data.MonthlyIncome},
		{Name: "Expenses", Value: total},
		{Name: "Savings", Value: savings},
	}
}

// ExpenseBreakdown returns one point per expense, in entry order.
func ExpenseBreakdown(data schema.FinancialData) []schema.SeriesPoint {
	out := make([]schema.SeriesPoint, 0, len(data.Expenses))
	for _, e := range data.Expenses {
		out = append(out, schema.SeriesPoint{Name: strings.TrimSpace(e.Category), Value: e.Amount})
	}
	return out
}
