package controller

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	m "unwrapaudit.dev/pkg/unwrapaudit/internal/model"
)

// SimpleUI implements UI with plain text written to an io.Writer.
type SimpleUI struct {
	output io.Writer
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(output io.Writer) *SimpleUI {
	return &SimpleUI{output: output}
}

// DisplayReport prints the findings and the summary line.
func (s *SimpleUI) DisplayReport(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := io.WriteString(s.output, renderReport(report))

	return err
}

// DisplayFileCounts prints a table of finding counts per file.
func (s *SimpleUI) DisplayFileCounts(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := io.WriteString(s.output, renderFileCountsTable(report))

	return err
}

// BrowseReport prints the report; SimpleUI has no interactive mode.
func (s *SimpleUI) BrowseReport(ctx context.Context, report m.Report) error {
	return s.DisplayReport(ctx, report)
}

func renderFileCountsTable(report m.Report) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Findings"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	counts := report.FileCounts()
	for _, count := range counts {
		table.Append([]string{string(count.File), fmt.Sprintf("%d", count.Count)})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(counts)),
		fmt.Sprintf("%d", report.Total()),
	})

	table.Render()

	return tableBuffer.String()
}
