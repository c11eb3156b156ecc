package profile

import (
	"github.com/shopspring/decimal"

	"github.com/dshills/smekit/internal/schema"
)

// Choice lists offered by the profile form.
var (
	TechAdoptionLevels = []string{"Low", "Medium", "High"}
	FundingStatuses    = []string{"Bootstrapped", "Seed Funded", "Series A", "Series B+"}
	RemoteWorkPolicies = []string{"None", "Partial", "Hybrid", "Full"}
)

// Demo returns a filled-in sample profile.
func Demo() schema.Profile {
	return schema.Profile{
		BusinessName:      "TechVentures Kenya Ltd",
		Country:           "Kenya",
		Sector:            "Technology",
		Employees:         45,
		AnnualRevenue:     decimal.NewFromInt(2500000),
		TechAdoptionLevel: "High",
		MainChallenges:    []string{"Funding", "Talent Acquisition"},
		DigitalToolsUsed:  []string{"Cloud Services", "CRM", "Project Management"},
		GrowthLastYr:      35,
		FundingStatus:     "Seed Funded",
		FemaleOwned:       true,
		RemoteWorkPolicy:  "Hybrid",
	}
}
