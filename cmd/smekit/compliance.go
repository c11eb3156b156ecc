package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/smekit/internal/compliance"
	"github.com/dshills/smekit/internal/export"
	"github.com/dshills/smekit/internal/intake"
	"github.com/dshills/smekit/internal/schema"
	"github.com/dshills/smekit/internal/store"
	"github.com/dshills/smekit/internal/upload"
)

type complianceFlags struct {
	outputFlags
	uploads []string
}

func newComplianceCmd(stdout, stderr io.Writer) *cobra.Command {
	var flags complianceFlags
	cmd := &cobra.Command{
		Use:   "compliance <form-file>",
		Short: "Build a compliance checklist for a business and attach documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompliance(cmd, args[0], flags, stdout, stderr)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringArrayVar(&flags.uploads, "upload", nil, "Attach a document to a checklist item as <item-id>=<path> (repeatable)")
	return cmd
}

func runCompliance(cmd *cobra.Command, formPath string, flags complianceFlags, stdout, stderr io.Writer) error {
	if err := validateOutputFlags(flags.outputFlags); err != nil {
		return codeError(exitInput, "%s", err)
	}
	refs, err := parseUploadFlags(flags.uploads)
	if err != nil {
		return codeError(exitInput, "%s", err)
	}

	a, err := newApp(flags.verbose, stdout, stderr)
	if err != nil {
		return err
	}
	defer a.close()

	in, form, err := intake.LoadCompliance(formPath)
	if err != nil {
		return codeError(exitInput, "%s", err)
	}
	formRefs := make([]intake.UploadRef, 0, len(form.Uploads)+len(refs))
	for _, u := range form.Uploads {
		formRefs = append(formRefs, intake.UploadRef{ItemID: u.ItemID, Path: in.Resolve(u.Path)})
	}
	refs = append(formRefs, refs...)
	a.log.Debug("compliance form loaded", zap.String("file", in.Path), zap.Int("uploads", len(refs)))

	ctx := cmd.Context()
	checker := compliance.NewChecker(compliance.StaticSource{Delay: a.cfg.CheckDelay}, a.log)
	items, err := checker.Check(ctx, form.BusinessProfile)
	if err != nil {
		if b := blocked(err); b != nil {
			return b
		}
		return codeError(1, "compliance check failed: %s", err)
	}

	report := schema.ComplianceReport{
		Meta:            a.meta(in),
		Business:        form.BusinessProfile,
		SectorBenchmark: compliance.SectorBenchmark,
	}
	report.Notices = append(report.Notices, "Compliance check completed!")
	a.notice("Compliance check completed!")

	items, notices, err := attachUploads(ctx, a, items, refs)
	if err != nil {
		return err
	}
	report.Notices = append(report.Notices, notices...)

	report.Items = items
	report.Progress = compliance.Progress(items)
	report.Suggestions = compliance.Suggestions(items, form.HasEmployees)

	return a.emit(ctx, emitted{
		report:     &report,
		kind:       store.KindCompliance,
		reportType: export.TypeCompliance,
		business:   form.BusinessName,
		score:      report.Progress,
		input:      in,
	}, flags.outputFlags)
}

// attachUploads loads every referenced document and attaches the accepted
// ones. Rejected documents leave their item untouched and yield a notice.
func attachUploads(ctx context.Context, a *app, items []schema.ComplianceItem, refs []intake.UploadRef) ([]schema.ComplianceItem, []string, error) {
	if len(refs) == 0 {
		return items, nil, nil
	}
	paths := make([]string, len(refs))
	for i, r := range refs {
		paths[i] = r.Path
	}
	docs, err := upload.LoadAll(ctx, paths)
	if err != nil {
		return nil, nil, codeError(exitInput, "%s", err)
	}

	var notices []string
	for i, doc := range docs {
		meta := doc.Metadata(a.now().UTC())
		next, err := compliance.Attach(items, refs[i].ItemID, meta)
		switch {
		case errors.Is(err, compliance.ErrUnsupportedType):
			a.log.Debug("upload rejected", zap.String("file", doc.Name), zap.String("type", doc.Type))
			notices = append(notices, "Only PDF, JPG, and PNG files are allowed")
			continue
		case errors.Is(err, compliance.ErrUnknownItem):
			return nil, nil, codeError(exitInput, "%s", err)
		case err != nil:
			return nil, nil, codeError(1, "%s", err)
		}
		items = next
		notices = append(notices, fmt.Sprintf("%s uploaded successfully", doc.Name))
	}
	for _, n := range notices {
		a.notice("%s", n)
	}
	return items, notices, nil
}

// parseUploadFlags splits each <item-id>=<path> value.
func parseUploadFlags(values []string) ([]intake.UploadRef, error) {
	refs := make([]intake.UploadRef, 0, len(values))
	for _, v := range values {
		id, path, ok := strings.Cut(v, "=")
		id, path = strings.TrimSpace(id), strings.TrimSpace(path)
		if !ok || id == "" || path == "" {
			return nil, fmt.Errorf("--upload must be <item-id>=<path>, got %q", v)
		}
		refs = append(refs, intake.UploadRef{ItemID: id, Path: path})
	}
	return refs, nil
}
