package render

import (
	"encoding/json"
)

type jsonRenderer struct{}

func (r *jsonRenderer) Render(report any) ([]byte, error) {
	if _, err := templateName(report); err != nil {
		return nil, err
	}
	return json.MarshalIndent(report, "", "  ")
}

func (r *jsonRenderer) Ext() string { return "json" }
