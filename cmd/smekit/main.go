package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/smekit/internal/config"
	"github.com/dshills/smekit/internal/export"
	"github.com/dshills/smekit/internal/intake"
	"github.com/dshills/smekit/internal/render"
	"github.com/dshills/smekit/internal/schema"
	"github.com/dshills/smekit/internal/store"
	"github.com/dshills/smekit/internal/validate"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

// exitErr carries a numeric exit code through the cobra error path.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

// codeError returns an exitErr for the given code.
func codeError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

// Exit codes.
const (
	exitValidation = 2 // required fields missing; the action was blocked
	exitInput      = 3 // bad flags, config or form file
	exitScorer     = 4
	exitStorage    = 5
)

// outputFlags are shared by every report-producing command.
type outputFlags struct {
	format    string
	out       string
	exportDir string
	verbose   bool
}

func (f *outputFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.format, "format", "json", "Output format: json, md or html")
	fl.StringVar(&f.out, "out", "", "Write output to file instead of stdout")
	fl.StringVar(&f.exportDir, "export-dir", "", "Also export the report to <dir>/<Business>_<ReportType>_<date>.<ext>")
	fl.BoolVar(&f.verbose, "verbose", false, "Log processing steps to stderr")
}

func validateOutputFlags(f outputFlags) error {
	switch f.format {
	case "json", "md", "html":
		return nil
	default:
		return fmt.Errorf("--format must be json, md or html, got %q", f.format)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCmd(os.Stdout, os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, "Error:", ee.msg)
			stop()
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "smekit",
		Short:         "Compliance, finance and profile reports for small businesses",
		Long:          "smekit turns SME form data (YAML or JSON) into compliance checklists, financial health summaries and scored business reports.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.AddCommand(
		newComplianceCmd(stdout, stderr),
		newFinanceCmd(stdout, stderr),
		newProfileCmd(stdout, stderr),
		newHistoryCmd(stdout, stderr),
	)
	return root
}

// app bundles the runtime dependencies of a single command invocation.
type app struct {
	cfg    config.Config
	log    *zap.Logger
	stdout io.Writer
	stderr io.Writer
	now    func() time.Time
}

func newApp(verbose bool, stdout, stderr io.Writer) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, codeError(exitInput, "loading config: %s", err)
	}
	log, err := cfg.NewLogger(verbose, stderr)
	if err != nil {
		return nil, codeError(exitInput, "%s", err)
	}
	return &app{cfg: cfg, log: log, stdout: stdout, stderr: stderr, now: time.Now}, nil
}

func (a *app) close() {
	_ = a.log.Sync()
}

// notice writes a single user-facing message line to stderr.
func (a *app) notice(format string, args ...any) {
	fmt.Fprintf(a.stderr, format+"\n", args...)
}

func (a *app) meta(in *intake.File) schema.Meta {
	m := schema.Meta{Tool: "smekit", Version: version, GeneratedAt: a.now().UTC()}
	if in != nil {
		m.InputFile = in.Path
		m.InputHash = in.Hash
	}
	return m
}

// blocked converts a required-field failure into the validation exit code.
func blocked(err error) error {
	if errors.Is(err, validate.ErrMissingFields) {
		return codeError(exitValidation, "Missing information: %s", err)
	}
	return nil
}

// emitted describes a finished report for output, export and history.
type emitted struct {
	report     any
	kind       string
	reportType string
	business   string
	score      int
	input      *intake.File
}

func (a *app) emit(ctx context.Context, e emitted, flags outputFlags) error {
	renderer, err := render.NewRenderer(flags.format)
	if err != nil {
		return codeError(exitInput, "invalid format: %s", err)
	}
	a.log.Debug("rendering report", zap.String("kind", e.kind), zap.String("format", flags.format))
	body, err := renderer.Render(e.report)
	if err != nil {
		return codeError(exitInput, "rendering output: %s", err)
	}

	if flags.out != "" {
		if err := os.WriteFile(flags.out, body, 0o644); err != nil {
			return codeError(exitInput, "writing output file: %s", err)
		}
	} else {
		if _, err := a.stdout.Write(body); err != nil {
			return codeError(exitInput, "writing output: %s", err)
		}
		// Ensure output ends with a newline for terminal friendliness.
		if len(body) > 0 && body[len(body)-1] != '\n' {
			fmt.Fprintln(a.stdout)
		}
	}

	if flags.exportDir != "" {
		path, err := export.Write(flags.exportDir, e.business, e.reportType, a.now().UTC(), renderer.Ext(), body)
		if err != nil {
			return codeError(exitInput, "%s", err)
		}
		if path != "" {
			a.notice("Report exported to %s", path)
		}
	}

	if a.cfg.DBPath == "" {
		return nil
	}
	s, err := store.Open(a.cfg.DBPath)
	if err != nil {
		return codeError(exitStorage, "opening history: %s", err)
	}
	defer s.Close()

	rec := store.Record{
		Kind:         e.kind,
		BusinessName: e.business,
		Score:        e.score,
		Format:       flags.format,
		Body:         string(body),
	}
	if e.input != nil {
		rec.InputHash = e.input.Hash
	}
	rec, err = s.Put(ctx, rec)
	if err != nil {
		return codeError(exitStorage, "saving report: %s", err)
	}
	a.log.Info("report saved to history", zap.String("id", rec.ID), zap.String("kind", rec.Kind))
	return nil
}
