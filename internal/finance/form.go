package finance

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dshills/smekit/internal/schema"
	"github.com/dshills/smekit/internal/validate"
)

// Sectors lists the sectors offered by the finance form.
var Sectors = []string{"Retail", "Services", "Manufacturing", "Health", "Food", "Technology", "Agriculture"}

// BusinessSizes lists the size bands offered by the finance form.
var BusinessSizes = []string{"Micro", "Small", "Medium"}

// newID is swapped in tests for deterministic expense ids.
var newID = func() string { return uuid.NewString() }

// AddExpense appends an expense and reports whether it was added. Entries
// with a blank category or a non-positive amount are ignored.
func AddExpense(data schema.FinancialData, category string, amount decimal.Decimal) (schema.FinancialData, bool) {
	category = strings.TrimSpace(category)
	if category == "" || !amount.IsPositive() {
		return data, false
	}
	expenses := make([]schema.Expense, len(data.Expenses), len(data.Expenses)+1)
	copy(expenses, data.Expenses)
	data.Expenses = append(expenses, schema.Expense{ID: newID(), Category: category, Amount: amount})
	return data, true
}

// RemoveExpense drops every expense with the given id.
func RemoveExpense(data schema.FinancialData, id string) schema.FinancialData {
	kept := make([]schema.Expense, 0, len(data.Expenses))
	for _, e := range data.Expenses {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	data.Expenses = kept
	return data
}

// AssignIDs gives an id to every expense that lacks one.
func AssignIDs(data schema.FinancialData) schema.FinancialData {
	expenses := make([]schema.Expense, len(data.Expenses))
	copy(expenses, data.Expenses)
	for i := range expenses {
		if expenses[i].ID == "" {
			expenses[i].ID = newID()
		}
	}
	data.Expenses = expenses
	return data
}

// Validate checks the fields required before a summary can be computed.
// Monthly income must be non-zero.
func Validate(data schema.FinancialData) error {
	return validate.Required(
		validate.Text("business_name", data.BusinessName),
		validate.Text("business_size", data.BusinessSize),
		validate.Text("sector", data.Sector),
		validate.Field{Name: "monthly_income", Present: !data.MonthlyIncome.IsZero()},
	)
}

// Summarize validates data and computes every derived metric.
func Summarize(data schema.FinancialData) (schema.FinanceReport, error) {
	if err := Validate(data); err != nil {
		return schema.FinanceReport{}, err
	}
	data = AssignIDs(data)
	return schema.FinanceReport{
		Data:                 data,
		TotalExpenses:        TotalExpenses(data.Expenses),
		CashFlow:             CashFlow(data.MonthlyIncome, data.Expenses),
		SavingsRate:          SavingsRate(data.MonthlyIncome, data.Expenses).Round(2),
		HealthScore:          HealthScore(data.MonthlyIncome, data.Expenses, data.FinancialGoals),
		Recommendations:      Recommendations(data),
		FundingOpportunities: FundingOpportunities(),
		CashFlowBreakdown:    CashFlowBreakdown(data),
		ExpenseBreakdown:     ExpenseBreakdown(data),
	}, nil
}
