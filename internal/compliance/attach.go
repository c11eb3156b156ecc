package compliance

import (
	"errors"
	"fmt"

	"github.com/dshills/smekit/internal/schema"
)

var (
	// ErrUnsupportedType is returned when an uploaded document is not a PDF, JPEG or PNG.
	ErrUnsupportedType = errors.New("only PDF, JPG, and PNG files are allowed")
	// ErrUnknownItem is returned when no checklist item has the requested id.
	ErrUnknownItem = errors.New("unknown compliance item")
)

var allowedTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
}

// AllowedType reports whether mimeType may be attached to a checklist item.
func AllowedType(mimeType string) bool {
	return allowedTypes[mimeType]
}

// Attach returns a copy of items with itemID marked done and carrying file.
// On error the input slice is returned untouched.
func Attach(items []schema.ComplianceItem, itemID string, file schema.UploadedFile) ([]schema.ComplianceItem, error) {
	if !AllowedType(file.Type) {
		return items, fmt.Errorf("%s (%s): %w", file.Name, file.Type, ErrUnsupportedType)
	}

	idx := -1
	for i, item := range items {
		if item.ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return items, fmt.Errorf("item %q: %w", itemID, ErrUnknownItem)
	}

	out := make([]schema.ComplianceItem, len(items))
	copy(out, items)
	f := file
	out[idx].CompletionStatus = schema.CompletionDone
	out[idx].UploadedFile = &f
	return out, nil
}
