package schema

import (
	"time"

	"github.com/shopspring/decimal"
)

// Meta describes the run that produced a report.
type Meta struct {
	Tool        string    `json:"tool"`
	Version     string    `json:"version"`
	InputFile   string    `json:"input_file,omitempty"`
	InputHash   string    `json:"input_hash,omitempty"` // SHA-256 of the raw input file
	GeneratedAt time.Time `json:"generated_at"`
}

// ItemStatus is how strongly a compliance item applies to a business.
type ItemStatus string

const (
	StatusRequired    ItemStatus = "required"
	StatusRecommended ItemStatus = "recommended"
	StatusOptional    ItemStatus = "optional"
)

// CompletionStatus tracks whether a supporting document has been attached.
type CompletionStatus string

const (
	CompletionPending CompletionStatus = "pending"
	CompletionDone    CompletionStatus = "done"
)

// UploadedFile is the metadata kept for a document attached to a compliance item.
type UploadedFile struct {
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

// ComplianceItem is one regulatory or registration requirement.
type ComplianceItem struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	Status           ItemStatus       `json:"status"`
	CompletionStatus CompletionStatus `json:"completion_status"`
	UploadedFile     *UploadedFile    `json:"uploaded_file,omitempty"`
}

// BusinessProfile is the compliance checker form.
type BusinessProfile struct {
	BusinessName   string `json:"business_name"`
	BusinessType   string `json:"business_type"`
	Sector         string `json:"sector"`
	Region         string `json:"region"`
	HasEmployees   bool   `json:"has_employees"`
	OwnerCategory  string `json:"owner_category,omitempty"`
	HasECitizen    bool   `json:"has_ecitizen"`
	HasBankAccount bool   `json:"has_bank_account"`
}

// ComplianceReport is the rendered outcome of a compliance check.
type ComplianceReport struct {
	Meta            Meta             `json:"meta"`
	Business        BusinessProfile  `json:"business"`
	Items           []ComplianceItem `json:"items"`
	Progress        int              `json:"progress"`
	SectorBenchmark int              `json:"sector_benchmark"`
	Suggestions     []string         `json:"suggestions"`
	Notices         []string         `json:"notices,omitempty"`
}

// Expense is a single monthly expense line.
type Expense struct {
	ID       string          `json:"id"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// FinancialData is the finance companion form.
type FinancialData struct {
	BusinessName   string          `json:"business_name"`
	BusinessSize   string          `json:"business_size"`
	Sector         string          `json:"sector"`
	MonthlyIncome  decimal.Decimal `json:"monthly_income"`
	Expenses       []Expense       `json:"expenses"`
	FinancialGoals string          `json:"financial_goals"`
}

// Tip is a titled recommendation.
type Tip struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
}

// FundingOpportunity is an entry from the static funding catalogue.
type FundingOpportunity struct {
	Title       string `json:"title"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Eligibility string `json:"eligibility"`
}

// SeriesPoint is one named value of a chart series.
type SeriesPoint struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// FinanceReport is the rendered financial summary.
type FinanceReport struct {
	Meta                 Meta                 `json:"meta"`
	Data                 FinancialData        `json:"data"`
	TotalExpenses        decimal.Decimal      `json:"total_expenses"`
	CashFlow             decimal.Decimal      `json:"cash_flow"`
	SavingsRate          decimal.Decimal      `json:"savings_rate"`
	HealthScore          int                  `json:"health_score"`
	Recommendations      []Tip                `json:"recommendations"`
	FundingOpportunities []FundingOpportunity `json:"funding_opportunities"`
	CashFlowBreakdown    []SeriesPoint        `json:"cash_flow_breakdown"`
	ExpenseBreakdown     []SeriesPoint        `json:"expense_breakdown"`
}

// Profile is the SME profile builder form.
type Profile struct {
	BusinessName      string          `json:"business_name"`
	Country           string          `json:"country"`
	Sector            string          `json:"sector"`
	Employees         int             `json:"employees"`
	AnnualRevenue     decimal.Decimal `json:"annual_revenue"`
	TechAdoptionLevel string          `json:"tech_adoption_level"`
	MainChallenges    []string        `json:"main_challenges"`
	DigitalToolsUsed  []string        `json:"digital_tools_used"`
	GrowthLastYr      float64         `json:"growth_last_yr"`
	FundingStatus     string          `json:"funding_status"`
	FemaleOwned       bool            `json:"female_owned"`
	RemoteWorkPolicy  string          `json:"remote_work_policy"`
	ContactEmail      string          `json:"contact_email,omitempty"`
	PhoneNumber       string          `json:"phone_number,omitempty"`
}

// ScorePoint is one entry of a historical score series.
type ScorePoint struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
}

// ReportData is the generated SME report.
type ReportData struct {
	BusinessName     string         `json:"business_name"`
	Profile          Profile        `json:"profile"`
	MLFeatures       map[string]any `json:"ml_features"`
	Summary          string         `json:"summary"`
	Suggestions      []string       `json:"suggestions"`
	ComplianceScore  int            `json:"compliance_score"`
	SectorAverage    int            `json:"sector_average"`
	HistoricalScores []ScorePoint   `json:"historical_scores"`
	Model            string         `json:"model"`
	GeneratedAt      time.Time      `json:"generated_at"`
}

// ProfileReport wraps ReportData with run metadata.
type ProfileReport struct {
	Meta   Meta       `json:"meta"`
	Report ReportData `json:"report"`
}
