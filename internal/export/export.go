package export

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Report types used in export file names.
const (
	TypeCompliance = "Compliance_Report"
	TypeFinance    = "Financial_Report"
	TypeProfile    = "SME_Report"
)

var (
	whitespace = regexp.MustCompile(`\s+`)
	unsafe     = regexp.MustCompile(`[/\\:*?"<>|]`)
)

// Sanitize turns a business name into a file-name fragment: whitespace runs
// become "_" and path or reserved characters are dropped.
func Sanitize(name string) string {
	name = strings.TrimSpace(name)
	name = unsafe.ReplaceAllString(name, "")
	return whitespace.ReplaceAllString(name, "_")
}

// Filename returns "<SanitizedBusinessName>_<ReportType>_<YYYY-MM-DD>.<ext>".
func Filename(businessName, reportType string, t time.Time, ext string) string {
	name := Sanitize(businessName)
	if name == "" {
		name = "Business"
	}
	return fmt.Sprintf("%s_%s_%s.%s", name, reportType, t.Format("2006-01-02"), ext)
}

// Write stores body under dir using Filename and returns the written path.
// An empty body writes nothing and returns "".
func Write(dir, businessName, reportType string, t time.Time, ext string, body []byte) (string, error) {
	if len(body) == 0 {
		return "", nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	path := filepath.Join(dir, Filename(businessName, reportType, t, ext))
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("writing export: %w", err)
	}
	return path, nil
}
