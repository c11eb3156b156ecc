package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/smekit/internal/export"
	"github.com/dshills/smekit/internal/finance"
	"github.com/dshills/smekit/internal/intake"
	"github.com/dshills/smekit/internal/money"
	"github.com/dshills/smekit/internal/redact"
	"github.com/dshills/smekit/internal/store"
)

type financeFlags struct {
	outputFlags
	redact        bool
	addExpense    []string
	removeExpense []string
}

func newFinanceCmd(stdout, stderr io.Writer) *cobra.Command {
	var flags financeFlags
	cmd := &cobra.Command{
		Use:   "finance <form-file>",
		Short: "Summarize monthly finances and compute a financial health score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFinance(cmd, args[0], flags, stdout, stderr)
		},
	}
	flags.register(cmd)
	fl := cmd.Flags()
	fl.BoolVar(&flags.redact, "redact", false, "Redact personal data in free-text fields before output")
	fl.StringArrayVar(&flags.addExpense, "add-expense", nil, "Add an expense as <category>=<amount> (repeatable)")
	fl.StringArrayVar(&flags.removeExpense, "remove-expense", nil, "Remove the expense with this id (repeatable)")
	return cmd
}

type expenseArg struct {
	category string
	amount   decimal.Decimal
}

// parseExpenseFlags splits each <category>=<amount> value on its last '='.
func parseExpenseFlags(values []string) ([]expenseArg, error) {
	out := make([]expenseArg, 0, len(values))
	for _, v := range values {
		i := strings.LastIndex(v, "=")
		if i < 0 {
			return nil, fmt.Errorf("--add-expense must be <category>=<amount>, got %q", v)
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(v[i+1:]))
		if err != nil {
			return nil, fmt.Errorf("--add-expense %q: invalid amount: %w", v, err)
		}
		out = append(out, expenseArg{category: v[:i], amount: amount})
	}
	return out, nil
}

func runFinance(cmd *cobra.Command, formPath string, flags financeFlags, stdout, stderr io.Writer) error {
	if err := validateOutputFlags(flags.outputFlags); err != nil {
		return codeError(exitInput, "%s", err)
	}
	additions, err := parseExpenseFlags(flags.addExpense)
	if err != nil {
		return codeError(exitInput, "%s", err)
	}

	a, err := newApp(flags.verbose, stdout, stderr)
	if err != nil {
		return err
	}
	defer a.close()

	in, data, err := intake.LoadFinance(formPath)
	if err != nil {
		return codeError(exitInput, "%s", err)
	}
	fd := finance.AssignIDs(*data)

	for _, id := range flags.removeExpense {
		before := len(fd.Expenses)
		fd = finance.RemoveExpense(fd, id)
		if len(fd.Expenses) == before {
			a.notice("No expense with id %s", id)
		}
	}
	for _, e := range additions {
		var added bool
		fd, added = finance.AddExpense(fd, e.category, e.amount)
		if !added {
			a.notice("Expense ignored: category and a positive amount are required")
			continue
		}
		a.notice("Expense added: %s - %s", strings.TrimSpace(e.category), money.KES(e.amount))
	}

	report, err := finance.Summarize(fd)
	if err != nil {
		if b := blocked(err); b != nil {
			return b
		}
		return codeError(1, "finance summary failed: %s", err)
	}
	report.Meta = a.meta(in)
	if flags.redact {
		report.Data = redact.Finance(report.Data)
	}
	a.log.Debug("finance summary computed",
		zap.Int("expenses", len(report.Data.Expenses)),
		zap.Int("health_score", report.HealthScore))
	a.notice("Analysis complete: your financial summary is ready")

	return a.emit(cmd.Context(), emitted{
		report:     &report,
		kind:       store.KindFinance,
		reportType: export.TypeFinance,
		business:   report.Data.BusinessName,
		score:      report.HealthScore,
		input:      in,
	}, flags.outputFlags)
}
