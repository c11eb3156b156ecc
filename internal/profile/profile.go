package profile

import (
	"fmt"
	"strings"

	"github.com/dshills/smekit/internal/schema"
	"github.com/dshills/smekit/internal/validate"
)

// FieldType is the value kind an ML field carries.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeNumber  FieldType = "number"
	TypeBoolean FieldType = "boolean"
	TypeArray   FieldType = "array"
)

// FieldMeta classifies one profile field. Fields with MLField set are sent
// to the scoring model under MLName; the rest are for reporting only.
type FieldMeta struct {
	Name    string
	MLField bool
	MLName  string
	Type    FieldType
	value   func(p schema.Profile) any
}

var fields = []FieldMeta{
	{Name: "business_name", value: func(p schema.Profile) any { return p.BusinessName }},
	{Name: "country", MLField: true, MLName: "country", Type: TypeString,
		value: func(p schema.Profile) any { return p.Country }},
	{Name: "sector", MLField: true, MLName: "sector", Type: TypeString,
		value: func(p schema.Profile) any { return p.Sector }},
	{Name: "employees", MLField: true, MLName: "employees", Type: TypeNumber,
		value: func(p schema.Profile) any { return p.Employees }},
	{Name: "annual_revenue", MLField: true, MLName: "annual_revenue", Type: TypeNumber,
		value: func(p schema.Profile) any { return p.AnnualRevenue.InexactFloat64() }},
	{Name: "tech_adoption_level", MLField: true, MLName: "tech_adoption_level", Type: TypeString,
		value: func(p schema.Profile) any { return p.TechAdoptionLevel }},
	{Name: "main_challenges", MLField: true, MLName: "main_challenges", Type: TypeArray,
		value: func(p schema.Profile) any { return nonNil(p.MainChallenges) }},
	{Name: "digital_tools_used", MLField: true, MLName: "digital_tools_used", Type: TypeArray,
		value: func(p schema.Profile) any { return nonNil(p.DigitalToolsUsed) }},
	{Name: "growth_last_yr", MLField: true, MLName: "growth_last_yr", Type: TypeNumber,
		value: func(p schema.Profile) any { return p.GrowthLastYr }},
	{Name: "funding_status", MLField: true, MLName: "funding_status", Type: TypeString,
		value: func(p schema.Profile) any { return p.FundingStatus }},
	{Name: "female_owned", MLField: true, MLName: "female_owned", Type: TypeBoolean,
		value: func(p schema.Profile) any { return p.FemaleOwned }},
	{Name: "remote_work_policy", MLField: true, MLName: "remote_work_policy", Type: TypeString,
		value: func(p schema.Profile) any { return p.RemoteWorkPolicy }},
	{Name: "contact_email", value: func(p schema.Profile) any { return p.ContactEmail }},
	{Name: "phone_number", value: func(p schema.Profile) any { return p.PhoneNumber }},
}

// Fields returns the field classification table in form order.
func Fields() []FieldMeta {
	out := make([]FieldMeta, len(fields))
	copy(out, fields)
	return out
}

// Field returns the metadata for a named profile field.
func Field(name string) (FieldMeta, error) {
	for _, f := range fields {
		if f.Name == name {
			return f, nil
		}
	}
	return FieldMeta{}, fmt.Errorf("unknown profile field %q", name)
}

// MLFeatures extracts the model input from p, keyed by ML name.
func MLFeatures(p schema.Profile) map[string]any {
	out := make(map[string]any)
	for _, f := range fields {
		if f.MLField && f.MLName != "" {
			out[f.MLName] = f.value(p)
		}
	}
	return out
}

// Validate checks the fields a report cannot be generated without.
func Validate(p schema.Profile) error {
	return validate.Required(
		validate.Text("business_name", p.BusinessName),
		validate.Text("country", p.Country),
		validate.Text("sector", p.Sector),
	)
}

// FormatFieldTable renders the classification table as Markdown.
func FormatFieldTable() string {
	var sb strings.Builder
	sb.WriteString("| field | ml | ml name | type |\n|---|---|---|---|\n")
	for _, f := range fields {
		ml := "no"
		if f.MLField {
			ml = "yes"
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", f.Name, ml, f.MLName, f.Type))
	}
	return sb.String()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
