package intake

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dshills/smekit/internal/schema"
)

// File holds a loaded form file with derived metadata.
type File struct {
	Path string
	Hash string // "sha256:<hex>"
	Raw  []byte
}

// UploadRef points a checklist item at a document on disk.
type UploadRef struct {
	ItemID string `json:"item_id"`
	Path   string `json:"path"`
}

// ComplianceForm is the compliance checker input: the business profile plus
// any documents to attach.
type ComplianceForm struct {
	schema.BusinessProfile
	Uploads []UploadRef `json:"uploads,omitempty"`
}

// Load reads a form file from disk and computes its hash.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading form file: %w", err)
	}
	sum := sha256.Sum256(data)
	return &File{
		Path: path,
		Hash: fmt.Sprintf("sha256:%x", sum),
		Raw:  data,
	}, nil
}

// Decode parses f as YAML or JSON into target. Field names follow the json
// tags of the target type; unknown fields are rejected.
func (f *File) Decode(target any) error {
	return Decode(f.Raw, target)
}

// Resolve returns p relative to the directory of the form file unless it is
// already absolute.
func (f *File) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(filepath.Dir(f.Path), p)
}

// Decode parses raw YAML (or JSON, which is valid YAML) into target.
func Decode(raw []byte, target any) error {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}
	if doc == nil {
		return fmt.Errorf("parse failed: form is empty")
	}
	if _, ok := doc.(map[string]any); !ok {
		return fmt.Errorf("parse failed: form must be a mapping, got %T", doc)
	}

	// Round-trip through JSON so one set of struct tags serves both formats.
	buf, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(buf))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return fmt.Errorf("invalid form: %w", err)
	}
	return nil
}

// LoadCompliance loads and decodes a compliance form.
func LoadCompliance(path string) (*File, *ComplianceForm, error) {
	f, err := Load(path)
	if err != nil {
		return nil, nil, err
	}
	var form ComplianceForm
	if err := f.Decode(&form); err != nil {
		return nil, nil, err
	}
	for i, u := range form.Uploads {
		if u.ItemID == "" || u.Path == "" {
			return nil, nil, fmt.Errorf("invalid form: uploads[%d] needs item_id and path", i)
		}
	}
	return f, &form, nil
}

// LoadFinance loads and decodes a finance form.
func LoadFinance(path string) (*File, *schema.FinancialData, error) {
	f, err := Load(path)
	if err != nil {
		return nil, nil, err
	}
	var data schema.FinancialData
	if err := f.Decode(&data); err != nil {
		return nil, nil, err
	}
	return f, &data, nil
}

// LoadProfile loads and decodes an SME profile form.
func LoadProfile(path string) (*File, *schema.Profile, error) {
	f, err := Load(path)
	if err != nil {
		return nil, nil, err
	}
	var p schema.Profile
	if err := f.Decode(&p); err != nil {
		return nil, nil, err
	}
	return f, &p, nil
}
