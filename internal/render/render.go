package render

import (
	"fmt"
	"time"

	"github.com/dshills/smekit/internal/money"
	"github.com/dshills/smekit/internal/schema"
)

// Renderer formats a report into bytes for output. Reports are
// *schema.ComplianceReport, *schema.FinanceReport or *schema.ProfileReport.
type Renderer interface {
	Render(report any) ([]byte, error)
	// Ext is the file extension used when the output is exported.
	Ext() string
}

// NewRenderer returns a Renderer for the given format string.
// Supported formats: "json" (default), "md", "html".
func NewRenderer(format string) (Renderer, error) {
	switch format {
	case "json", "":
		return &jsonRenderer{}, nil
	case "md":
		return &markdownRenderer{}, nil
	case "html":
		return &htmlRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q: supported formats are json, md, html", format)
	}
}

// templateName maps a report value to the template that renders it.
func templateName(report any) (string, error) {
	switch report.(type) {
	case *schema.ComplianceReport:
		return "compliance", nil
	case *schema.FinanceReport:
		return "finance", nil
	case *schema.ProfileReport:
		return "profile", nil
	default:
		return "", fmt.Errorf("unsupported report type %T", report)
	}
}

// funcs are shared by the Markdown and HTML templates.
var funcs = map[string]any{
	"kes":     money.KES,
	"amount":  money.Format,
	"percent": money.Percent,
	"number":  money.Number,
	"ymd":     func(t time.Time) string { return t.Format("2006-01-02") },
}
