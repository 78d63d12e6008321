// Package controller provides output adapters for displaying audit reports.
package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
	m "unwrapaudit.dev/pkg/unwrapaudit/internal/model"
)

// UI defines the interface for presenting audit results. Implementations
// can use different output methods (plain text, TUI).
type UI interface {
	// DisplayReport prints the full report: one line per finding plus
	// the trailing summary.
	DisplayReport(ctx context.Context, report m.Report) error

	// DisplayFileCounts prints per-file finding counts.
	DisplayFileCounts(ctx context.Context, report m.Report) error

	// BrowseReport presents the report for reading, interactively where
	// the implementation supports it.
	BrowseReport(ctx context.Context, report m.Report) error
}

// NewUI picks the UI implementation: interactive output gets the Bubble
// Tea browser, everything else plain text.
func NewUI(output io.Writer, interactive bool) UI {
	if interactive {
		return NewTUI(output)
	}

	return NewSimpleUI(output)
}

// IsTTY reports whether the file is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// renderReport renders the report in its canonical form: one
// "<path>:<line>: <code>" line per finding, a blank line, and the summary
// count. This exact shape is relied on for diffing runs against each other.
func renderReport(report m.Report) string {
	var b strings.Builder

	for _, finding := range report.Findings {
		fmt.Fprintf(&b, "%s:%d: %s\n", finding.File, finding.Line, finding.Code)
	}

	fmt.Fprintf(&b, "\nTotal non-test %s calls: %d\n", report.Pattern, report.Total())

	return b.String()
}
