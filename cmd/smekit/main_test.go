package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/smekit/internal/schema"
)

// testdataDir is the root of the testdata directory.
const testdataDir = "../../testdata"

// formPath returns the path to a file in testdata/forms/.
func formPath(name string) string {
	return filepath.Join(testdataDir, "forms", name)
}

// docPath returns the path to a file in testdata/docs/.
func docPath(name string) string {
	return filepath.Join(testdataDir, "docs", name)
}

// setTestEnv removes simulated latency and disables history unless a test
// opts in with withHistory.
func setTestEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SMEKIT_CHECK_DELAY", "0s")
	t.Setenv("SMEKIT_SCORER_DELAY", "0s")
	t.Setenv("SMEKIT_SCORER", "mock")
	t.Setenv("SMEKIT_DB_PATH", "")
	t.Setenv("SMEKIT_LOG_LEVEL", "error")
}

// withHistory points SMEKIT_DB_PATH at a fresh database.
func withHistory(t *testing.T) {
	t.Helper()
	t.Setenv("SMEKIT_DB_PATH", filepath.Join(t.TempDir(), "history.db"))
}

// run executes the root command with args and returns captured output.
func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd(&out, &errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

// exitCode returns the code carried by err, 1 for other errors and 0 for nil.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exitErr
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}

// --- Compliance ---

func TestCompliance_AttachesFormUpload(t *testing.T) {
	setTestEnv(t)

	stdout, stderr, err := run(t, "compliance", formPath("compliance.yaml"))
	if err != nil {
		t.Fatalf("compliance returned error: %v", err)
	}

	var report schema.ComplianceReport
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, stdout)
	}
	if len(report.Items) != 6 {
		t.Fatalf("expected 6 items, got %d", len(report.Items))
	}
	if report.Items[0].CompletionStatus != schema.CompletionDone {
		t.Errorf("item 1 should be done after upload")
	}
	if report.Items[0].UploadedFile == nil || report.Items[0].UploadedFile.Type != "application/pdf" {
		t.Errorf("uploaded file metadata = %+v", report.Items[0].UploadedFile)
	}
	if report.Progress != 17 {
		t.Errorf("progress = %d, want 17", report.Progress)
	}
	if report.SectorBenchmark != 75 {
		t.Errorf("sector benchmark = %d, want 75", report.SectorBenchmark)
	}
	if report.Meta.InputHash == "" || !strings.HasPrefix(report.Meta.InputHash, "sha256:") {
		t.Errorf("input hash = %q", report.Meta.InputHash)
	}
	if !strings.Contains(stderr, "Compliance check completed!") {
		t.Errorf("stderr missing completion notice: %q", stderr)
	}
	if !strings.Contains(stderr, "registration.pdf uploaded successfully") {
		t.Errorf("stderr missing upload notice: %q", stderr)
	}
}

func TestCompliance_RejectsUnsupportedUpload(t *testing.T) {
	setTestEnv(t)

	stdout, stderr, err := run(t, "compliance", formPath("compliance.yaml"),
		"--upload", "2="+docPath("notes.txt"))
	if err != nil {
		t.Fatalf("compliance returned error: %v", err)
	}

	var report schema.ComplianceReport
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if report.Items[1].CompletionStatus != schema.CompletionPending || report.Items[1].UploadedFile != nil {
		t.Errorf("rejected upload changed item 2: %+v", report.Items[1])
	}
	if n := strings.Count(stderr, "Only PDF, JPG, and PNG files are allowed"); n != 1 {
		t.Errorf("rejection notice printed %d times, want 1\n%s", n, stderr)
	}
}

func TestCompliance_RejectionWritesOneStderrLine(t *testing.T) {
	setTestEnv(t)
	t.Setenv("SMEKIT_LOG_LEVEL", "warn")

	_, stderr, err := run(t, "compliance", formPath("compliance.yaml"),
		"--upload", "2="+docPath("notes.txt"))
	if err != nil {
		t.Fatalf("compliance returned error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	want := []string{
		"Compliance check completed!",
		"registration.pdf uploaded successfully",
		"Only PDF, JPG, and PNG files are allowed",
	}
	if len(lines) != len(want) {
		t.Fatalf("stderr has %d lines, want %d:\n%s", len(lines), len(want), stderr)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("stderr line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestCompliance_ExportDateIsUTC(t *testing.T) {
	setTestEnv(t)
	orig := time.Local
	time.Local = time.FixedZone("UTC+14", 14*60*60)
	t.Cleanup(func() { time.Local = orig })
	dir := t.TempDir()

	before := time.Now().UTC().Format("2006-01-02")
	if _, _, err := run(t, "compliance", formPath("compliance.yaml"), "--export-dir", dir); err != nil {
		t.Fatalf("compliance returned error: %v", err)
	}
	after := time.Now().UTC().Format("2006-01-02")

	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected one exported file, got %v", matches)
	}
	name := filepath.Base(matches[0])
	if name != "Mama_Mboga_Ltd_Compliance_Report_"+before+".json" &&
		name != "Mama_Mboga_Ltd_Compliance_Report_"+after+".json" {
		t.Errorf("export name %q does not carry the UTC date %s", name, after)
	}
}

func TestCompliance_MissingFieldsBlocked(t *testing.T) {
	setTestEnv(t)

	stdout, _, err := run(t, "compliance", formPath("compliance_incomplete.yaml"))
	if code := exitCode(err); code != exitValidation {
		t.Fatalf("exit code = %d, want %d (err: %v)", code, exitValidation, err)
	}
	if !strings.Contains(err.Error(), "region") {
		t.Errorf("error should name the missing field: %v", err)
	}
	if stdout != "" {
		t.Errorf("no report expected when blocked, got %q", stdout)
	}
}

func TestCompliance_BadUploadFlag(t *testing.T) {
	setTestEnv(t)

	_, _, err := run(t, "compliance", formPath("compliance.yaml"), "--upload", "no-separator")
	if code := exitCode(err); code != exitInput {
		t.Errorf("exit code = %d, want %d", code, exitInput)
	}
}

func TestCompliance_UnknownItem(t *testing.T) {
	setTestEnv(t)

	_, _, err := run(t, "compliance", formPath("compliance.yaml"), "--upload", "42="+docPath("registration.pdf"))
	if code := exitCode(err); code != exitInput {
		t.Errorf("exit code = %d, want %d (err: %v)", code, exitInput, err)
	}
}

func TestCompliance_MarkdownExport(t *testing.T) {
	setTestEnv(t)
	dir := t.TempDir()

	stdout, _, err := run(t, "compliance", formPath("compliance.yaml"), "--format", "md", "--export-dir", dir)
	if err != nil {
		t.Fatalf("compliance returned error: %v", err)
	}
	if !strings.Contains(stdout, "Mama Mboga Ltd") {
		t.Errorf("markdown output missing business name:\n%s", stdout)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "Mama_Mboga_Ltd_Compliance_Report_*.md"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected one exported file, got %v", matches)
	}
	exported, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	if string(exported) != stdout && string(exported)+"\n" != stdout {
		t.Errorf("exported file differs from stdout")
	}
}

func TestCompliance_InvalidFormat(t *testing.T) {
	setTestEnv(t)

	_, _, err := run(t, "compliance", formPath("compliance.yaml"), "--format", "pdf")
	if code := exitCode(err); code != exitInput {
		t.Errorf("exit code = %d, want %d", code, exitInput)
	}
}

// --- Finance ---

func TestFinance_Summary(t *testing.T) {
	setTestEnv(t)

	stdout, _, err := run(t, "finance", formPath("finance.json"))
	if err != nil {
		t.Fatalf("finance returned error: %v", err)
	}

	var report schema.FinanceReport
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, stdout)
	}
	if report.TotalExpenses.String() != "70000" {
		t.Errorf("total expenses = %s, want 70000", report.TotalExpenses)
	}
	if report.CashFlow.String() != "30000" {
		t.Errorf("cash flow = %s, want 30000", report.CashFlow)
	}
	if report.HealthScore != 90 {
		t.Errorf("health score = %d, want 90", report.HealthScore)
	}
	if len(report.FundingOpportunities) != 4 {
		t.Errorf("funding opportunities = %d, want 4", len(report.FundingOpportunities))
	}
}

func TestFinance_AnalysisCompleteNotice(t *testing.T) {
	setTestEnv(t)

	_, stderr, err := run(t, "finance", formPath("finance.json"))
	if err != nil {
		t.Fatalf("finance returned error: %v", err)
	}
	if n := strings.Count(stderr, "Analysis complete"); n != 1 {
		t.Errorf("analysis notice printed %d times, want 1\n%s", n, stderr)
	}
}

func TestFinance_MarkdownSavingsRateHasOneDecimal(t *testing.T) {
	setTestEnv(t)

	stdout, _, err := run(t, "finance", formPath("finance.json"), "--format", "md")
	if err != nil {
		t.Fatalf("finance returned error: %v", err)
	}
	if !strings.Contains(stdout, "| Savings rate | 30.0% |") {
		t.Errorf("savings rate not rendered with one decimal:\n%s", stdout)
	}
}

func TestFinance_AddAndRemoveExpenses(t *testing.T) {
	setTestEnv(t)

	stdout, stderr, err := run(t, "finance", formPath("finance.json"),
		"--add-expense", "Utilities=5000",
		"--add-expense", "Nothing=0",
		"--remove-expense", "salaries")
	if err != nil {
		t.Fatalf("finance returned error: %v", err)
	}

	var report schema.FinanceReport
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(report.Data.Expenses) != 2 {
		t.Fatalf("expenses = %d, want 2: %+v", len(report.Data.Expenses), report.Data.Expenses)
	}
	if report.TotalExpenses.String() != "35000" {
		t.Errorf("total expenses = %s, want 35000", report.TotalExpenses)
	}
	if !strings.Contains(stderr, "Expense added: Utilities - KES 5,000") {
		t.Errorf("stderr missing add notice: %q", stderr)
	}
	if !strings.Contains(stderr, "Expense ignored") {
		t.Errorf("stderr missing ignored notice: %q", stderr)
	}
}

func TestFinance_BadExpenseAmount(t *testing.T) {
	setTestEnv(t)

	_, _, err := run(t, "finance", formPath("finance.json"), "--add-expense", "Rent=lots")
	if code := exitCode(err); code != exitInput {
		t.Errorf("exit code = %d, want %d", code, exitInput)
	}
}

func TestFinance_MissingIncomeBlocked(t *testing.T) {
	setTestEnv(t)

	_, _, err := run(t, "finance", formPath("finance_no_income.yaml"))
	if code := exitCode(err); code != exitValidation {
		t.Fatalf("exit code = %d, want %d (err: %v)", code, exitValidation, err)
	}
	if !strings.Contains(err.Error(), "monthly_income") {
		t.Errorf("error should name monthly_income: %v", err)
	}
}

func TestFinance_Redact(t *testing.T) {
	setTestEnv(t)

	stdout, _, err := run(t, "finance", formPath("finance.json"), "--redact")
	if err != nil {
		t.Fatalf("finance returned error: %v", err)
	}
	if strings.Contains(stdout, "owner@example.com") {
		t.Errorf("email leaked into redacted output")
	}
	if !strings.Contains(stdout, "[REDACTED]") {
		t.Errorf("expected redaction marker in output")
	}
}

// --- Profile ---

func TestProfile_FromForm(t *testing.T) {
	setTestEnv(t)

	stdout, stderr, err := run(t, "profile", formPath("profile.yaml"), "--seed", "7")
	if err != nil {
		t.Fatalf("profile returned error: %v", err)
	}

	var report schema.ProfileReport
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, stdout)
	}
	r := report.Report
	if r.ComplianceScore < 65 || r.ComplianceScore >= 95 {
		t.Errorf("compliance score %d out of [65,95)", r.ComplianceScore)
	}
	if r.SectorAverage != 72 {
		t.Errorf("sector average = %d, want 72", r.SectorAverage)
	}
	if len(r.HistoricalScores) != 4 || r.HistoricalScores[3].Score < 65 {
		t.Errorf("historical scores = %+v", r.HistoricalScores)
	}
	if len(r.Suggestions) != 5 {
		t.Errorf("suggestions = %d, want 5", len(r.Suggestions))
	}
	if strings.Contains(r.Summary, "  ") {
		t.Errorf("summary contains a double space: %q", r.Summary)
	}
	if !strings.Contains(stderr, "Report generated successfully!") {
		t.Errorf("stderr missing success notice: %q", stderr)
	}
}

func TestProfile_SeedIsDeterministic(t *testing.T) {
	setTestEnv(t)

	first, _, err := run(t, "profile", "--demo", "--seed", "42")
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, _, err := run(t, "profile", "--demo", "--seed", "42")
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	var a, b schema.ProfileReport
	if err := json.Unmarshal([]byte(first), &a); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(second), &b); err != nil {
		t.Fatal(err)
	}
	if a.Report.ComplianceScore != b.Report.ComplianceScore {
		t.Errorf("same seed gave scores %d and %d", a.Report.ComplianceScore, b.Report.ComplianceScore)
	}
	if a.Report.BusinessName != "TechVentures Kenya Ltd" {
		t.Errorf("demo business = %q", a.Report.BusinessName)
	}
}

func TestProfile_Redact(t *testing.T) {
	setTestEnv(t)

	stdout, _, err := run(t, "profile", formPath("profile.yaml"), "--redact", "--seed", "1")
	if err != nil {
		t.Fatalf("profile returned error: %v", err)
	}
	if strings.Contains(stdout, "owner@savanna.co.ke") || strings.Contains(stdout, "712 345 678") {
		t.Errorf("contact details leaked into redacted output:\n%s", stdout)
	}
}

func TestProfile_RequiresFormOrDemo(t *testing.T) {
	setTestEnv(t)

	_, _, err := run(t, "profile")
	if code := exitCode(err); code != exitInput {
		t.Errorf("exit code = %d, want %d", code, exitInput)
	}
	_, _, err = run(t, "profile", "--demo", formPath("profile.yaml"))
	if code := exitCode(err); code != exitInput {
		t.Errorf("exit code = %d, want %d", code, exitInput)
	}
}

func TestProfile_UnknownScorer(t *testing.T) {
	setTestEnv(t)
	t.Setenv("SMEKIT_SCORER", "oracle")

	_, _, err := run(t, "profile", "--demo")
	if code := exitCode(err); code != exitScorer {
		t.Errorf("exit code = %d, want %d", code, exitScorer)
	}
}

func TestProfile_Fields(t *testing.T) {
	setTestEnv(t)

	stdout, _, err := run(t, "profile", "--fields")
	if err != nil {
		t.Fatalf("profile --fields: %v", err)
	}
	if !strings.Contains(stdout, "| business_name |") {
		t.Errorf("field table missing business_name row:\n%s", stdout)
	}
}

// --- History ---

func TestHistory_SaveListShowDiff(t *testing.T) {
	setTestEnv(t)
	withHistory(t)

	if _, _, err := run(t, "finance", formPath("finance.json"), "--format", "md"); err != nil {
		t.Fatalf("first finance run: %v", err)
	}
	if _, _, err := run(t, "finance", formPath("finance.json"), "--format", "md", "--add-expense", "Utilities=5000"); err != nil {
		t.Fatalf("second finance run: %v", err)
	}

	listing, _, err := run(t, "history", "list", "--kind", "finance")
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(listing), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got:\n%s", listing)
	}

	// Both runs may share a timestamp, so tell them apart by content.
	var before, after string
	for _, line := range lines[1:] {
		id := strings.Fields(line)[0]
		shown, _, err := run(t, "history", "show", id)
		if err != nil {
			t.Fatalf("history show %s: %v", id, err)
		}
		if strings.Contains(shown, "Utilities") {
			after = id
		} else {
			before = id
		}
	}
	if before == "" || after == "" {
		t.Fatalf("expected one report with and one without the added expense")
	}

	diff, _, err := run(t, "history", "diff", before, after)
	if err != nil {
		t.Fatalf("history diff: %v", err)
	}
	if !strings.Contains(diff, "+ ") || !strings.Contains(diff, "Utilities") {
		t.Errorf("diff should show the added expense:\n%s", diff)
	}
}

func TestHistory_UnknownID(t *testing.T) {
	setTestEnv(t)
	withHistory(t)

	_, _, err := run(t, "history", "show", "does-not-exist")
	if code := exitCode(err); code != exitInput {
		t.Errorf("exit code = %d, want %d (err: %v)", code, exitInput, err)
	}
}

func TestHistory_RequiresDBPath(t *testing.T) {
	setTestEnv(t)

	_, _, err := run(t, "history", "list")
	if code := exitCode(err); code != exitInput {
		t.Errorf("exit code = %d, want %d", code, exitInput)
	}
}
