package render

import (
	"bytes"
	"fmt"
	"html/template"
)

// htmlRenderer produces a self-contained printable page.
type htmlRenderer struct{}

var htmlTemplate = template.Must(template.New("html").Funcs(funcs).Parse(`
{{- define "head" -}}
<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{ . }}</title>
<style>
body { font-family: Inter, Helvetica, Arial, sans-serif; margin: 2rem; color: #222; }
h1 { color: #c2410c; }
table { border-collapse: collapse; }
td, th { border: 1px solid #ddd; padding: 0.3rem 0.6rem; text-align: left; }
.required { color: #b91c1c; } .recommended { color: #92400e; } .optional { color: #6b7280; }
.bar { background: #fed7aa; height: 0.8rem; }
.bar > span { display: block; background: #ea580c; height: 100%; }
footer { margin-top: 2rem; font-size: 0.8rem; color: #6b7280; }
@media print { body { margin: 0.5in; } }
</style>
</head>
<body>
{{- end -}}

{{- define "foot" }}
<footer>Generated on {{ ymd .GeneratedAt }} by {{ .Tool }} {{ .Version }}</footer>
</body>
</html>
{{ end -}}

{{- define "compliance" -}}
{{ template "head" (printf "Compliance Report: %s" .Business.BusinessName) }}
<h1>Compliance Report: {{ .Business.BusinessName }}</h1>
<p>{{ .Business.BusinessType }} · {{ .Business.Sector }} · {{ .Business.Region }}</p>
<h2>Progress</h2>
<p>Your business: {{ .Progress }}%</p>
<div class="bar"><span style="width: {{ .Progress }}%"></span></div>
<p>Sector average: {{ .SectorBenchmark }}%</p>
<div class="bar"><span style="width: {{ .SectorBenchmark }}%"></span></div>
<h2>Checklist ({{ len .Items }} items)</h2>
<table>
<tr><th>Item</th><th>Status</th><th>Document</th></tr>
{{- range .Items }}
<tr>
<td><strong>{{ .Name }}</strong><br>{{ .Description }}</td>
<td class="{{ .Status }}">{{ .Status }}{{ if eq .CompletionStatus "done" }} ✓ Done{{ end }}</td>
<td>{{ with .UploadedFile }}{{ .Name }} ({{ ymd .Timestamp }}){{ else }}pending{{ end }}</td>
</tr>
{{- end }}
</table>
<h2>Recommendations</h2>
<ul>
{{- range .Suggestions }}
<li>{{ . }}</li>
{{- end }}
</ul>
{{ template "foot" .Meta }}
{{- end -}}

{{- define "finance" -}}
{{ template "head" (printf "Financial Report: %s" .Data.BusinessName) }}
<h1>Financial Report: {{ .Data.BusinessName }}</h1>
<p>{{ .Data.BusinessSize }} · {{ .Data.Sector }}</p>
<h2>Financial Health Score: {{ .HealthScore }}/100</h2>
<div class="bar"><span style="width: {{ .HealthScore }}%"></span></div>
<table>
<tr><th>Monthly income</th><td>{{ kes .Data.MonthlyIncome }}</td></tr>
<tr><th>Total expenses</th><td>{{ kes .TotalExpenses }}</td></tr>
<tr><th>Cash flow</th><td>{{ kes .CashFlow }}</td></tr>
<tr><th>Savings rate</th><td>{{ percent .SavingsRate }}</td></tr>
</table>
{{- if .ExpenseBreakdown }}
<h2>Expense Breakdown</h2>
<table>
{{- range .ExpenseBreakdown }}
<tr><td>{{ .Name }}</td><td>{{ kes .Value }}</td></tr>
{{- end }}
</table>
{{- end }}
<h2>Recommendations</h2>
<ul>
{{- range .Recommendations }}
<li>{{ .Icon }} <strong>{{ .Title }}</strong>: {{ .Description }}</li>
{{- end }}
</ul>
<h2>Funding Opportunities</h2>
<table>
<tr><th>Programme</th><th>Type</th><th>Amount</th><th>Eligibility</th></tr>
{{- range .FundingOpportunities }}
<tr><td><strong>{{ .Title }}</strong><br>{{ .Description }}</td><td>{{ .Type }}</td><td>{{ .Amount }}</td><td>{{ .Eligibility }}</td></tr>
{{- end }}
</table>
{{ template "foot" .Meta }}
{{- end -}}

{{- define "profile" -}}
{{- $r := .Report -}}
{{ template "head" (printf "SME Report: %s" $r.BusinessName) }}
<h1>SME Report: {{ $r.BusinessName }}</h1>
<p>{{ $r.Summary }}</p>
<h2>Compliance Score: {{ $r.ComplianceScore }}/100</h2>
<div class="bar"><span style="width: {{ $r.ComplianceScore }}%"></span></div>
<p>Sector average: {{ $r.SectorAverage }}</p>
<h2>Historical Scores</h2>
<table>
{{- range $r.HistoricalScores }}
<tr><td>{{ .Date }}</td><td>{{ .Score }}</td></tr>
{{- end }}
</table>
<h2>Suggestions</h2>
<ul>
{{- range $r.Suggestions }}
<li>{{ . }}</li>
{{- end }}
</ul>
{{ template "foot" .Meta }}
{{- end -}}
`))

func (r *htmlRenderer) Render(report any) ([]byte, error) {
	name, err := templateName(report)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := htmlTemplate.ExecuteTemplate(&buf, name, report); err != nil {
		return nil, fmt.Errorf("rendering html: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *htmlRenderer) Ext() string { return "html" }
