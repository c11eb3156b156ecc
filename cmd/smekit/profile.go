package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/smekit/internal/export"
	"github.com/dshills/smekit/internal/intake"
	"github.com/dshills/smekit/internal/profile"
	"github.com/dshills/smekit/internal/redact"
	"github.com/dshills/smekit/internal/schema"
	"github.com/dshills/smekit/internal/scorer"
	"github.com/dshills/smekit/internal/scoring"
	"github.com/dshills/smekit/internal/store"
)

type profileFlags struct {
	outputFlags
	demo   bool
	seed   int64
	redact bool
	fields bool
}

func newProfileCmd(stdout, stderr io.Writer) *cobra.Command {
	var flags profileFlags
	cmd := &cobra.Command{
		Use:   "profile [form-file]",
		Short: "Score an SME profile and build its business report",
		Long: "Score an SME profile and build its business report.\n\n" +
			"The profile is read from form-file, or the built-in sample is used with --demo.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.fields {
				_, err := fmt.Fprint(stdout, profile.FormatFieldTable())
				return err
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runProfile(cmd, path, flags, stdout, stderr)
		},
	}
	flags.register(cmd)
	fl := cmd.Flags()
	fl.BoolVar(&flags.demo, "demo", false, "Use the built-in sample profile")
	fl.Int64Var(&flags.seed, "seed", 0, "Seed for the mock scorer (0 seeds from the clock)")
	fl.BoolVar(&flags.redact, "redact", false, "Mask contact details and redact free text before scoring and output")
	fl.BoolVar(&flags.fields, "fields", false, "Print the profile field classification table and exit")
	return cmd
}

func runProfile(cmd *cobra.Command, formPath string, flags profileFlags, stdout, stderr io.Writer) error {
	if err := validateOutputFlags(flags.outputFlags); err != nil {
		return codeError(exitInput, "%s", err)
	}
	switch {
	case flags.demo && formPath != "":
		return codeError(exitInput, "--demo cannot be combined with a form file")
	case !flags.demo && formPath == "":
		return codeError(exitInput, "a form file is required unless --demo is set")
	}

	a, err := newApp(flags.verbose, stdout, stderr)
	if err != nil {
		return err
	}
	defer a.close()

	var (
		in *intake.File
		p  schema.Profile
	)
	if flags.demo {
		p = profile.Demo()
		a.log.Debug("using demo profile", zap.String("business", p.BusinessName))
	} else {
		var loaded *schema.Profile
		in, loaded, err = intake.LoadProfile(formPath)
		if err != nil {
			return codeError(exitInput, "%s", err)
		}
		p = *loaded
	}
	if flags.redact {
		p = redact.Profile(p)
	}

	sc, err := scorer.New(scorer.Config{
		Kind:  a.cfg.Scorer,
		URL:   a.cfg.ScorerURL,
		Delay: a.cfg.ScorerDelay,
		Seed:  flags.seed,
	})
	if err != nil {
		return codeError(exitScorer, "%s", err)
	}

	ctx := cmd.Context()
	data, err := scoring.NewBuilder(sc, a.log).Build(ctx, p)
	if err != nil {
		if b := blocked(err); b != nil {
			return b
		}
		if errors.Is(err, ctx.Err()) {
			return codeError(1, "report generation cancelled: %s", err)
		}
		return codeError(exitScorer, "Failed to generate report: %s", err)
	}
	if flags.redact {
		data.Summary = redact.Redact(data.Summary)
	}
	a.notice("Report generated successfully!")

	report := schema.ProfileReport{Meta: a.meta(in), Report: *data}
	return a.emit(ctx, emitted{
		report:     &report,
		kind:       store.KindProfile,
		reportType: export.TypeProfile,
		business:   data.BusinessName,
		score:      data.ComplianceScore,
		input:      in,
	}, flags.outputFlags)
}
