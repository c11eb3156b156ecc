package compliance

import (
	"math"

	"github.com/dshills/smekit/internal/schema"
)

// SectorBenchmark is the sector-average completion percentage shown next to
// a business's own progress.
const SectorBenchmark = 75

// Checklist returns the built-in requirement list. NSSF and NHIF become
// required when the business has employees.
func Checklist(hasEmployees bool) []schema.ComplianceItem {
	nssf := schema.ComplianceItem{
		ID:               "4",
		Name:             "NSSF Registration",
		Description:      "Register with National Social Security Fund",
		Status:           schema.StatusRecommended,
		CompletionStatus: schema.CompletionPending,
	}
	nhif := schema.ComplianceItem{
		ID:               "5",
		Name:             "NHIF Registration",
		Description:      "Register with National Hospital Insurance Fund",
		Status:           schema.StatusRecommended,
		CompletionStatus: schema.CompletionPending,
	}
	if hasEmployees {
		nssf.Description = "Required: Register with National Social Security Fund for employee benefits"
		nssf.Status = schema.StatusRequired
		nhif.Description = "Required: Register with National Hospital Insurance Fund for employees"
		nhif.Status = schema.StatusRequired
	}

	return []schema.ComplianceItem{
		{
			ID:               "1",
			Name:             "Business Registration Certificate",
			Description:      "Register your business with the Business Registration Service (BRS)",
			Status:           schema.StatusRequired,
			CompletionStatus: schema.CompletionPending,
		},
		{
			ID:               "2",
			Name:             "KRA PIN Certificate",
			Description:      "Obtain a Personal Identification Number from Kenya Revenue Authority",
			Status:           schema.StatusRequired,
			CompletionStatus: schema.CompletionPending,
		},
		{
			ID:               "3",
			Name:             "County Business Permit",
			Description:      "Apply for a single business permit from your county government",
			Status:           schema.StatusRequired,
			CompletionStatus: schema.CompletionPending,
		},
		nssf,
		nhif,
		{
			ID:               "6",
			Name:             "Fire Safety Certificate",
			Description:      "Obtain fire safety compliance certificate from county fire department",
			Status:           schema.StatusOptional,
			CompletionStatus: schema.CompletionPending,
		},
	}
}

// Progress returns the rounded percentage of items marked done, or 0 for an
// empty list.
func Progress(items []schema.ComplianceItem) int {
	if len(items) == 0 {
		return 0
	}
	done := 0
	for _, item := range items {
		if item.CompletionStatus == schema.CompletionDone {
			done++
		}
	}
	return int(math.Round(100 * float64(done) / float64(len(items))))
}
