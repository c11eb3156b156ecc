package finance

import (
	"github.com/dshills/smekit/internal/schema"
)

// Recommendations returns tips in a fixed order. The last entry is always
// exactly one of the negative or positive cash-flow tips.
func Recommendations(data schema.FinancialData) []schema.Tip {
	var tips []schema.Tip
	rate := SavingsRate(data.MonthlyIncome, data.Expenses)
	if rate.LessThan(ten) {
		tips = append(tips, schema.Tip{
			Title:       "Improve Savings Rate",
			Description: "Your savings rate is below 10%. Try to reduce expenses or increase income.",
			Icon:        "💰",
		})
	}
	if len(data.Expenses) < 3 {
		tips = append(tips, schema.Tip{
			Title:       "Track More Expenses",
			Description: "Add more expense categories to get better insights into your spending.",
			Icon:        "📊",
		})
	}
	if !hasGoals(data.FinancialGoals) {
		tips = append(tips, schema.Tip{
			Title:       "Set Financial Goals",
			Description: "Define clear financial goals to guide your business decisions.",
			Icon:        "🎯",
		})
	}
	if CashFlow(data.MonthlyIncome, data.Expenses).IsNegative() {
		tips = append(tips, schema.Tip{
			Title:       "Negative Cash Flow",
			Description: "Your expenses exceed income. Review expenses or find ways to increase revenue.",
			Icon:        "⚠️",
		})
	} else {
		tips = append(tips, schema.Tip{
			Title:       "Positive Cash Flow",
			Description: "Great! Consider investing surplus funds or building an emergency fund.",
			Icon:        "✅",
		})
	}
	return tips
}

// FundingOpportunities returns the static funding catalogue.
func FundingOpportunities() []schema.FundingOpportunity {
	return []schema.FundingOpportunity{
		{
			Title:       "WEDF Loan",
			Type:        "Micro-loan",
			Amount:      "Up to KES 50,000",
			Description: "Low-interest loan for women entrepreneurs",
			Eligibility: "Women-owned businesses, registered with KRA",
		},
		{
			Title:       "Uwezo Fund",
			Type:        "Grant",
			Amount:      "KES 10,000 - 500,000",
			Description: "Youth and women empowerment fund",
			Eligibility: "Youth, women, and PWD-owned businesses",
		},
		{
			Title:       "SME Credit Scheme",
			Type:        "Business Loan",
			Amount:      "Up to KES 500,000",
			Description: "Affordable credit for small businesses",
			Eligibility: "Registered businesses with bank accounts",
		},
		{
			Title:       "KCB Business Loan",
			Type:        "Loan",
			Amount:      "KES 50,000 - 5M",
			Description: "Flexible repayment terms for SMEs",
			Eligibility: "Active business bank account",
		},
	}
}
