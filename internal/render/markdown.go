package render

import (
	"bytes"
	"fmt"
	"text/template"
)

type markdownRenderer struct{}

var mdTemplate = template.Must(template.New("md").Funcs(funcs).Parse(`
{{- define "footer" }}
---
*Generated on {{ ymd .GeneratedAt }} by {{ .Tool }} {{ .Version }}*
{{ end -}}

{{- define "compliance" -}}
# Compliance Report: {{ .Business.BusinessName }}

**Type:** {{ .Business.BusinessType }} | **Sector:** {{ .Business.Sector }} | **Region:** {{ .Business.Region }}
**Progress:** {{ .Progress }}% (sector average {{ .SectorBenchmark }}%)

## Checklist ({{ len .Items }} items)
{{ range .Items }}
- [{{ if eq .CompletionStatus "done" }}x{{ else }} {{ end }}] **{{ .Name }}** · {{ .Status }}
  {{ .Description }}{{ with .UploadedFile }}
  Uploaded: {{ .Name }} ({{ ymd .Timestamp }}){{ end }}
{{- end }}

## Recommendations
{{ range .Suggestions }}
- {{ . }}
{{- end }}
{{ if .Notices }}
## Notices
{{ range .Notices }}
- {{ . }}
{{- end }}
{{ end }}
> This checklist is generated from a fixed requirement list. For precise requirements, consult BRS or legal advisors.
{{ template "footer" .Meta }}
{{- end -}}

{{- define "finance" -}}
# Financial Report: {{ .Data.BusinessName }}

**Size:** {{ .Data.BusinessSize }} | **Sector:** {{ .Data.Sector }}
**Health Score:** {{ .HealthScore }}/100

| Metric | Value |
|---|---|
| Monthly income | {{ kes .Data.MonthlyIncome }} |
| Total expenses | {{ kes .TotalExpenses }} |
| Cash flow | {{ kes .CashFlow }} |
| Savings rate | {{ percent .SavingsRate }} |
{{ if .Data.Expenses }}
## Expenses
{{ range .Data.Expenses }}
- {{ .Category }}: {{ kes .Amount }}
{{- end }}
{{ end }}{{ with .Data.FinancialGoals }}
## Goals

{{ . }}
{{ end }}
## Recommendations
{{ range .Recommendations }}
- {{ .Icon }} **{{ .Title }}**: {{ .Description }}
{{- end }}

## Funding Opportunities
{{ range .FundingOpportunities }}
- **{{ .Title }}** ({{ .Type }}, {{ .Amount }}): {{ .Description }}. Eligibility: {{ .Eligibility }}
{{- end }}
{{ template "footer" .Meta }}
{{- end -}}

{{- define "profile" -}}
{{- $r := .Report -}}
# SME Report: {{ $r.BusinessName }}

{{ $r.Summary }}

**Compliance Score:** {{ $r.ComplianceScore }}/100 (sector average {{ $r.SectorAverage }})

## Profile

| Field | Value |
|---|---|
| Country | {{ $r.Profile.Country }} |
| Sector | {{ $r.Profile.Sector }} |
| Employees | {{ $r.Profile.Employees }} |
| Annual revenue | {{ amount $r.Profile.AnnualRevenue }} |
| Growth last year | {{ number $r.Profile.GrowthLastYr }}% |
| Funding status | {{ $r.Profile.FundingStatus }} |
| Tech adoption | {{ $r.Profile.TechAdoptionLevel }} |
| Remote work | {{ $r.Profile.RemoteWorkPolicy }} |

## Historical Scores
{{ range $r.HistoricalScores }}
- {{ .Date }}: {{ .Score }}
{{- end }}

## Suggestions
{{ range $r.Suggestions }}
- {{ . }}
{{- end }}
{{ template "footer" .Meta }}
*Model: {{ $r.Model }}*
{{- end -}}
`))

func (r *markdownRenderer) Render(report any) ([]byte, error) {
	name, err := templateName(report)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := mdTemplate.ExecuteTemplate(&buf, name, report); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *markdownRenderer) Ext() string { return "md" }
