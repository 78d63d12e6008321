package domain

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
	"unwrapaudit.dev/pkg/unwrapaudit/internal/adapter"
	"unwrapaudit.dev/pkg/unwrapaudit/internal/controller"
	m "unwrapaudit.dev/pkg/unwrapaudit/internal/model"
	pkg "unwrapaudit.dev/pkg/unwrapaudit/pkg"
)

// AuditArgs configures a scan run.
type AuditArgs struct {
	Options m.ScanOptions
	Threads int
	Reports m.Path // reports directory; empty disables persistence
}

// ViewArgs configures viewing a previously saved report.
type ViewArgs struct {
	Reports m.Path
}

// Workflow ties the enumerator, scanner and aggregator together behind the
// CLI commands.
type Workflow interface {
	// Audit scans the tree, prints the full report and optionally
	// persists it.
	Audit(ctx context.Context, args AuditArgs) error

	// Count scans the tree and prints per-file finding counts.
	Count(ctx context.Context, args AuditArgs) error

	// View renders a previously saved report.
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	fs         adapter.SourceFSAdapter
	store      adapter.ReportStore
	ui         controller.UI
	enumerator Enumerator
}

// NewWorkflow creates a Workflow with the provided dependencies.
func NewWorkflow(fs adapter.SourceFSAdapter, store adapter.ReportStore, ui controller.UI) Workflow {
	return &workflow{
		fs:         fs,
		store:      store,
		ui:         ui,
		enumerator: NewEnumerator(fs),
	}
}

// Audit implements Workflow.
func (w *workflow) Audit(ctx context.Context, args AuditArgs) error {
	report, err := w.collectFindings(ctx, args)
	if err != nil {
		return err
	}

	if args.Reports != "" {
		if err := w.store.SaveReport(args.Reports, report); err != nil {
			slog.Error("failed to save report", "dir", args.Reports, "error", err)
			return err
		}

		slog.Debug("saved report", "dir", args.Reports, "findings", report.Total())
	}

	return w.ui.DisplayReport(ctx, report)
}

// Count implements Workflow.
func (w *workflow) Count(ctx context.Context, args AuditArgs) error {
	report, err := w.collectFindings(ctx, args)
	if err != nil {
		return err
	}

	return w.ui.DisplayFileCounts(ctx, report)
}

// View implements Workflow.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	report, err := w.store.LoadReport(args.Reports)
	if err != nil {
		slog.Error("failed to load report", "dir", args.Reports, "error", err)
		return err
	}

	return w.ui.BrowseReport(ctx, report)
}

// collectFindings enumerates the tree and scans every file, with up to
// args.Threads files in flight. Findings are spooled as they arrive and
// globally sorted afterwards, so the output ordering does not depend on
// scan completion order.
func (w *workflow) collectFindings(ctx context.Context, args AuditArgs) (m.Report, error) {
	paths, err := w.enumerator.Sources(args.Options)
	if err != nil {
		slog.Error("enumeration failed", "root", args.Options.Root, "error", err)
		return m.Report{}, err
	}

	spool, err := pkg.NewSpool[m.Finding]()
	if err != nil {
		return m.Report{}, err
	}

	defer func() {
		if err := spool.Close(); err != nil {
			slog.Error("failed to close findings spool", "error", err)
		}
	}()

	threads := args.Threads
	if threads < 1 {
		threads = 1
	}

	scanner := NewLineScanner(args.Options)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(threads)

	for _, path := range paths {
		path := path
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			lines, err := w.fs.ReadLines(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			findings := scanner.ScanLines(path, lines)
			slog.Debug("scanned file", "path", path, "findings", len(findings))

			return spool.AppendBatch(findings)
		})
	}

	if err := group.Wait(); err != nil {
		slog.Error("scan failed", "root", args.Options.Root, "error", err)
		return m.Report{}, err
	}

	findings := make([]m.Finding, 0, spool.Len())

	err = spool.Range(func(_ uint64, finding m.Finding) error {
		findings = append(findings, finding)
		return nil
	})
	if err != nil {
		return m.Report{}, err
	}

	return BuildReport(args.Options, findings), nil
}
