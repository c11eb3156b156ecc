package scoring

import (
	"fmt"
	"strings"

	"github.com/dshills/smekit/internal/money"
	"github.com/dshills/smekit/internal/schema"
)

// SectorAverage returns the benchmark compliance score for a sector:
// Technology 78, Retail 72, any other sector 75.
func SectorAverage(sector string) int {
	switch sector {
	case "Technology":
		return 78
	case "Retail":
		return 72
	default:
		return 75
	}
}

// HistoricalScores returns the quarterly series ending with latest.
func HistoricalScores(latest int) []schema.ScorePoint {
	return []schema.ScorePoint{
		{Date: "Q1 2024", Score: 60},
		{Date: "Q2 2024", Score: 68},
		{Date: "Q3 2024", Score: 73},
		{Date: "Q4 2024", Score: latest},
	}
}

// Summary describes the business in one paragraph.
func Summary(p schema.Profile) string {
	kind := p.Sector
	if p.FemaleOwned {
		kind = "woman-owned " + kind
	}
	return fmt.Sprintf(
		"%s is a %s business in %s with %d employees. With an annual revenue of $%s, the company has achieved %s%% growth last year. The business maintains a %s work policy and shows %s technology adoption.",
		p.BusinessName, kind, p.Country, p.Employees,
		money.Format(p.AnnualRevenue), money.Number(p.GrowthLastYr),
		p.RemoteWorkPolicy, p.TechAdoptionLevel,
	)
}

// Suggestions returns the five profile-driven suggestions.
func Suggestions(p schema.Profile) []string {
	return []string{
		fmt.Sprintf("Given your %s tech adoption, consider integrating AI-powered analytics to optimize operations.", p.TechAdoptionLevel),
		fmt.Sprintf("With %d employees, invest in comprehensive training programs to boost productivity.", p.Employees),
		fmt.Sprintf("Your %s%% growth rate is promising - explore scaling opportunities in adjacent markets.", money.Number(p.GrowthLastYr)),
		fmt.Sprintf("Address key challenges: %s through strategic partnerships.", strings.Join(p.MainChallenges, ", ")),
		fmt.Sprintf("Leverage your %s stack for data-driven decision making.", strings.Join(p.DigitalToolsUsed, ", ")),
	}
}
