package compliance

import (
	"fmt"
	"strings"

	"github.com/dshills/smekit/internal/schema"
)

// maxSuggestions caps the number of pending items that produce a suggestion.
const maxSuggestions = 3

// AllDoneMessage is returned alone when no item is pending.
const AllDoneMessage = "🎉 All compliance items completed! You're fully compliant."

// Suggestions returns up to three reminders for pending items, in list order.
// The first matching rule wins for each item.
func Suggestions(items []schema.ComplianceItem, hasEmployees bool) []string {
	var pending []schema.ComplianceItem
	for _, item := range items {
		if item.CompletionStatus != schema.CompletionDone {
			pending = append(pending, item)
		}
	}
	if len(pending) == 0 {
		return []string{AllDoneMessage}
	}
	if len(pending) > maxSuggestions {
		pending = pending[:maxSuggestions]
	}

	out := make([]string, 0, len(pending))
	for _, item := range pending {
		out = append(out, suggestionFor(item, hasEmployees))
	}
	return out
}

func suggestionFor(item schema.ComplianceItem, hasEmployees bool) string {
	switch {
	case strings.Contains(item.Name, "NHIF") && hasEmployees:
		return "You haven't uploaded your NHIF certificate — required for businesses with employees."
	case strings.Contains(item.Name, "NSSF") && hasEmployees:
		return "You haven't uploaded your NSSF certificate — required for businesses with employees."
	default:
		return fmt.Sprintf("%s is %s but not yet uploaded.", item.Name, item.Status)
	}
}
