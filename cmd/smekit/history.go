package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/smekit/internal/history"
	"github.com/dshills/smekit/internal/store"
)

func newHistoryCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse and compare saved reports (requires SMEKIT_DB_PATH)",
	}
	cmd.AddCommand(
		newHistoryListCmd(stdout, stderr),
		newHistoryShowCmd(stdout, stderr),
		newHistoryDiffCmd(stdout, stderr),
	)
	return cmd
}

// openHistory loads config and opens the report store.
func openHistory(stdout, stderr io.Writer) (*app, *store.Store, error) {
	a, err := newApp(false, stdout, stderr)
	if err != nil {
		return nil, nil, err
	}
	if a.cfg.DBPath == "" {
		a.close()
		return nil, nil, codeError(exitInput, "SMEKIT_DB_PATH is not set; report history is disabled")
	}
	s, err := store.Open(a.cfg.DBPath)
	if err != nil {
		a.close()
		return nil, nil, codeError(exitStorage, "opening history: %s", err)
	}
	return a, s, nil
}

func storeError(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return codeError(exitInput, "%s", err)
	}
	return codeError(exitStorage, "%s", err)
}

func newHistoryListCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		kind  string
		limit int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved reports, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch kind {
			case "", store.KindCompliance, store.KindFinance, store.KindProfile:
			default:
				return codeError(exitInput, "--kind must be compliance, finance or profile, got %q", kind)
			}
			a, s, err := openHistory(stdout, stderr)
			if err != nil {
				return err
			}
			defer a.close()
			defer s.Close()

			recs, err := s.List(cmd.Context(), kind, limit)
			if err != nil {
				return storeError(err)
			}
			if len(recs) == 0 {
				a.notice("No saved reports")
				return nil
			}
			tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tKIND\tBUSINESS\tSCORE\tFORMAT\tCREATED")
			for _, r := range recs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
					r.ID, r.Kind, r.BusinessName, r.Score, r.Format, r.CreatedAt.Format(time.RFC3339))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "Only list reports of this kind: compliance, finance or profile")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of reports to list (0 for all)")
	return cmd
}

func newHistoryShowCmd(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved report exactly as it was rendered",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, s, err := openHistory(stdout, stderr)
			if err != nil {
				return err
			}
			defer a.close()
			defer s.Close()

			rec, err := s.Get(cmd.Context(), args[0])
			if err != nil {
				return storeError(err)
			}
			_, err = io.WriteString(stdout, rec.Body)
			return err
		},
	}
}

func newHistoryDiffCmd(stdout, stderr io.Writer) *cobra.Command {
	var patch bool
	cmd := &cobra.Command{
		Use:   "diff <before-id> <after-id>",
		Short: "Show what changed between two saved reports",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, s, err := openHistory(stdout, stderr)
			if err != nil {
				return err
			}
			defer a.close()
			defer s.Close()

			ctx := cmd.Context()
			before, err := s.Get(ctx, args[0])
			if err != nil {
				return storeError(err)
			}
			after, err := s.Get(ctx, args[1])
			if err != nil {
				return storeError(err)
			}
			if before.Kind != after.Kind {
				a.notice("Comparing a %s report with a %s report", before.Kind, after.Kind)
			}

			var out string
			if patch {
				out = history.Patch(before.Body, after.Body)
			} else {
				out = history.Diff(before.Body, after.Body)
			}
			if out == "" {
				a.notice("Reports are identical")
				return nil
			}
			_, err = io.WriteString(stdout, out)
			return err
		},
	}
	cmd.Flags().BoolVar(&patch, "patch", false, "Print a diff-match-patch patch instead of a line diff")
	return cmd
}
