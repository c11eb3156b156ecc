package redact

import (
	"regexp"

	"github.com/dshills/smekit/internal/schema"
)

const redacted = "[REDACTED]"

// patterns holds single-line personal-data regexes in priority order.
var patterns = []*regexp.Regexp{
	// Email addresses
	regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`),
	// KRA PINs: A or P, nine digits, one letter
	regexp.MustCompile(`\b[AP]\d{9}[A-Z]\b`),
	// Kenyan phone numbers: +254 / 254 / 0 prefix followed by a 7xx or 1xx subscriber number
	regexp.MustCompile(`(?:\+?254|\b0)[ \-]?[17]\d{2}[ \-]?\d{3}[ \-]?\d{3}\b`),
	// Inline password assignments
	regexp.MustCompile(`(?i)password\s*[:=]\s*\S+`),
}

// Redact replaces personal data in input with [REDACTED].
// Line structure is preserved: the number of newlines in the output
// always equals the number of newlines in the input.
func Redact(input string) string {
	for _, re := range patterns {
		input = re.ReplaceAllString(input, redacted)
	}
	return input
}

// Profile returns p with contact details masked and free text redacted.
func Profile(p schema.Profile) schema.Profile {
	if p.ContactEmail != "" {
		p.ContactEmail = redacted
	}
	if p.PhoneNumber != "" {
		p.PhoneNumber = redacted
	}
	p.MainChallenges = redactAll(p.MainChallenges)
	return p
}

// Finance returns data with its free-text goals redacted.
func Finance(data schema.FinancialData) schema.FinancialData {
	data.FinancialGoals = Redact(data.FinancialGoals)
	return data
}

func redactAll(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = Redact(s)
	}
	return out
}
